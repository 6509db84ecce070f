package registry

import "sync"

// Ordered is a thread-safe registry that remembers insertion order.
// It uses sync.RWMutex for read-heavy workloads.
type Ordered[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	order   []K
}

// New creates a new empty registry.
func New[K comparable, V any]() *Ordered[K, V] {
	return &Ordered[K, V]{
		entries: make(map[K]V),
	}
}

// Register adds or updates a value. An existing key keeps its position.
func (r *Ordered[K, V]) Register(key K, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(key, value)
}

// set must be called with the write lock held.
func (r *Ordered[K, V]) set(key K, value V) {
	if _, ok := r.entries[key]; !ok {
		r.order = append(r.order, key)
	}
	r.entries[key] = value
}

// Update applies fn to the current value for key (zero value and false when
// absent) and stores the result. The read-modify-write happens under a single
// write lock.
func (r *Ordered[K, V]) Update(key K, fn func(current V, exists bool) V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.entries[key]
	r.set(key, fn(cur, ok))
}

// Get returns the value for a key and whether it exists.
func (r *Ordered[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	return v, ok
}

// Has returns true if the key exists in the registry.
func (r *Ordered[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Delete removes a key. Deleting an unknown key is a no-op.
func (r *Ordered[K, V]) Delete(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		return
	}
	delete(r.entries, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Keys returns all keys in registration order.
func (r *Ordered[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}

// Len returns the number of entries in the registry.
func (r *Ordered[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Range iterates over a snapshot of the registry in registration order.
// If fn returns false, iteration stops.
func (r *Ordered[K, V]) Range(fn func(K, V) bool) {
	r.mu.RLock()
	keys := make([]K, len(r.order))
	copy(keys, r.order)
	values := make([]V, len(r.order))
	for i, k := range keys {
		values[i] = r.entries[k]
	}
	r.mu.RUnlock()

	for i, k := range keys {
		if !fn(k, values[i]) {
			return
		}
	}
}
