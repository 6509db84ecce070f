package eventroute

import (
	"errors"
	"fmt"
)

// Sentinel errors for consumer registration.
var (
	// ErrEmptyConsumerID indicates Register was called without an identifier.
	ErrEmptyConsumerID = errors.New("consumer id is required")

	// ErrNoLevels indicates Register was called with no levels.
	ErrNoLevels = errors.New("at least one level is required")

	// ErrNoTags indicates Register was called with no tags.
	ErrNoTags = errors.New("at least one tag is required")

	// ErrEmptyTag indicates a tag list contained an empty string.
	ErrEmptyTag = errors.New("tag cannot be empty")

	// ErrUnknownLevel indicates a level name outside the recognised set.
	ErrUnknownLevel = errors.New("unknown level")
)

// ErrUnknownEvent indicates a catalog lookup for an unregistered event.
var ErrUnknownEvent = errors.New("unknown event")

// DispatchError wraps an error returned by a consumer callback.
// The remaining consumers of that dispatch were not invoked.
type DispatchError struct {
	// ConsumerID is the consumer whose callback failed.
	ConsumerID string
	// Level and Tag identify the routing cell being dispatched.
	Level Level
	Tag   string
	// Name is the event name.
	Name string
	// Err is the callback's error.
	Err error
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s/%s %q to consumer %s: %v", e.Level, e.Tag, e.Name, e.ConsumerID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DispatchError) Unwrap() error {
	return e.Err
}

// ProviderError wraps an error returned by a context provider.
type ProviderError struct {
	// Scope is "application" or "user".
	Scope string
	// ProviderID is the id the provider was registered under.
	ProviderID string
	// Err is the provider's error.
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s context provider %s: %v", e.Scope, e.ProviderID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ProviderError) Unwrap() error {
	return e.Err
}
