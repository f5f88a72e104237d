package position

import (
	"errors"
	"fmt"

	errs "github.com/matzehuels/stackorder/pkg/errors"
)

var (
	// ErrFocusUndefined is returned by [Builder.Before] and [Builder.After]
	// when no element has been registered as focus yet.
	ErrFocusUndefined = errs.New(errs.ErrCodeFocusUndefined, "no current element is defined")

	// ErrUnknownElement is matched by every *UnknownElementError via errors.Is.
	ErrUnknownElement = errors.New("unknown element")
)

// UnknownElementError reports a reference to an element ID that is not in
// the registry. Constraints are resolved lazily, so this surfaces from Sort
// rather than from Before/After.
type UnknownElementError struct {
	ID string
}

// Error implements the error interface.
func (e *UnknownElementError) Error() string {
	return fmt.Sprintf("element not found with id: %s", e.ID)
}

// Unwrap returns ErrUnknownElement.
func (e *UnknownElementError) Unwrap() error { return ErrUnknownElement }

// Code returns errs.ErrCodeUnknownElement.
func (e *UnknownElementError) Code() errs.Code { return errs.ErrCodeUnknownElement }
