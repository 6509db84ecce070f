// Package registry provides a thread-safe, insertion-ordered registry for
// values indexed by key.
//
// Ordered behaves like a map whose iteration order is the order in which keys
// were first registered. Overwriting an existing key replaces its value but
// keeps its original position, which is what the context-provider merge and
// the tag catalog rely on.
//
// # Basic Usage
//
//	r := registry.New[string, int]()
//	r.Register("one", 1)
//	r.Register("two", 2)
//	r.Register("one", 10) // still first
//
//	r.Keys() // ["one", "two"]
//
// # Thread Safety
//
// All methods are safe for concurrent use. Range and Keys operate on a
// snapshot, so callbacks may call Register or Delete without affecting the
// iteration in progress.
package registry
