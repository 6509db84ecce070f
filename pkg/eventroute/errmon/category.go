package errmon

import "errors"

// Category represents how the monitor treats an error.
type Category int

const (
	// CategoryReportable errors are forwarded to the event router.
	CategoryReportable Category = iota

	// CategoryNavigationAborted errors are expected cancellations.
	CategoryNavigationAborted

	// CategoryAdapter errors were already reported by their adapter.
	CategoryAdapter
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryReportable:
		return "reportable"
	case CategoryNavigationAborted:
		return "navigation_aborted"
	case CategoryAdapter:
		return "adapter"
	default:
		return "unknown"
	}
}

// Ignored reports whether errors of this category are dropped.
func (c Category) Ignored() bool {
	return c == CategoryNavigationAborted || c == CategoryAdapter
}

// Classify determines how an error should be handled.
func Classify(err error) Category {
	if errors.Is(err, ErrNavigationAborted) {
		return CategoryNavigationAborted
	}

	var adapterErr *AdapterError
	if errors.As(err, &adapterErr) {
		return CategoryAdapter
	}

	return CategoryReportable
}
