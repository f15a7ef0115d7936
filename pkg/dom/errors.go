package dom

import "errors"

var (
	// ErrNotFound is returned when a reference child is not a child of the element.
	ErrNotFound = errors.New("dom: node is not a child of this element")

	// ErrHierarchy is returned when an insertion would create a cycle.
	ErrHierarchy = errors.New("dom: node cannot be inserted at this position")
)
