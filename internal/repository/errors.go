// Package repository provides database access for locations, reservations
// and storage records.  This file defines the sentinel errors shared across
// repositories.  Higher layers use them to distinguish failure scenarios:
// the not-found sentinels map to HTTP 404 while ErrConflict signals that a
// conditional state transition matched zero rows because a concurrent
// operation got there first, which handlers report as HTTP 409.
package repository

import "errors"

// ErrReservationNotFound is returned when no reservation exists for the
// given reservation number or id.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrStorageRecordNotFound is returned when no storage record exists for
// the given storage code or id.
var ErrStorageRecordNotFound = errors.New("storage record not found")

// ErrLocationNotFound is returned when no location exists for the given id.
var ErrLocationNotFound = errors.New("location not found")

// ErrConflict is returned when a compare-and-set transition affected zero
// rows: the row existed in the required state when it was read, but another
// operation changed it before this one committed.  Callers that validated
// the precondition can therefore tell "you lost a race" apart from "this
// was never a legal transition".
var ErrConflict = errors.New("conflict")
