// Package service implements the check-in and check-out processors and the
// capacity snapshot over narrow store interfaces, so the lifecycle
// guarantees can be exercised without a live database.
package service

import "fmt"

// InvalidStateError reports that an entity exists but is not in the state
// the requested transition needs, e.g. checking in a reservation that is
// already STORED or checking out a record that is already RETRIEVED.  It
// carries the current status so callers can produce a precise message
// ("already checked in" rather than a generic failure).
type InvalidStateError struct {
    Entity string // "reservation" or "storage record"
    Status string // the status the entity currently holds
}

func (e *InvalidStateError) Error() string {
    return fmt.Sprintf("%s is in state %s", e.Entity, e.Status)
}

// ValidationError reports structurally invalid input: zero total bags at
// check-in, an empty storage code, or a presented identity that does not
// match the admission snapshot.  The caller may correct the input and
// retry; nothing was mutated.
type ValidationError struct {
    Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
