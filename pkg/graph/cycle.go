package graph

import (
	"errors"
	"fmt"
	"strings"

	errs "github.com/matzehuels/stackorder/pkg/errors"
)

// ErrCycleDetected is matched by every *CycleError via errors.Is.
var ErrCycleDetected = errors.New("cycle detected")

// CycleError is returned by Sort when the edges admit no total order.
type CycleError struct {
	// Cycle is one offending cycle in edge direction, with its first ID
	// repeated at the end (e.g. [a b a]). It may be empty if no path
	// could be reconstructed.
	Cycle []string

	// Remaining lists, in registration order, the IDs that could not be
	// emitted. It includes nodes downstream of the cycle.
	Remaining []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if len(e.Cycle) > 0 {
		return fmt.Sprintf("%v: %s", ErrCycleDetected, strings.Join(e.Cycle, " -> "))
	}
	return fmt.Sprintf("%v among %s", ErrCycleDetected, strings.Join(e.Remaining, ", "))
}

// Unwrap returns ErrCycleDetected.
func (e *CycleError) Unwrap() error { return ErrCycleDetected }

// Code returns errs.ErrCodeCycleDetected.
func (e *CycleError) Code() errs.Code { return errs.ErrCodeCycleDetected }
