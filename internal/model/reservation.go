package model

import "time"

// Reservation status enumeration.  A reservation is created as RESERVED by
// the booking flow, becomes STORED exactly once when the customer's bags are
// physically admitted, and ends as COMPLETED after the bags have been
// returned.  CANCELLED is terminal and set by the cancellation flow.
const (
    ReservationStatusReserved  = "RESERVED"
    ReservationStatusStored    = "STORED"
    ReservationStatusCompleted = "COMPLETED"
    ReservationStatusCancelled = "CANCELLED"
)

// Reservation is a pre-paid booking for storage space at a location over a
// wall-clock time window on a single day.  Date and times are kept as the
// location-local strings entered at booking time; they are only combined
// into absolute instants by the display-status derivation.
//
// Fields:
//  ID                – primary key identifier.
//  ReservationNumber – unique customer-facing booking number.
//  LocationID        – location where the bags will be stored.
//  CustomerID        – account that made the booking.
//  CustomerName      – customer name at booking time.
//  CustomerEmail     – customer email at booking time.
//  StorageDate       – calendar day of storage ("2006-01-02").
//  StartTime         – drop-off time of day ("15:04").
//  EndTime           – pick-up time of day ("15:04").
//  RequestedBags     – bag counts the customer paid for.
//  Status            – lifecycle status (see constants above).
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Reservation struct {
    ID                uint64    `json:"id"`                 // reservations.id
    ReservationNumber string    `json:"reservation_number"` // reservations.reservation_number
    LocationID        uint64    `json:"location_id"`        // reservations.location_id
    CustomerID        uint64    `json:"customer_id"`        // reservations.customer_id
    CustomerName      string    `json:"customer_name"`      // reservations.customer_name
    CustomerEmail     string    `json:"customer_email"`     // reservations.customer_email
    StorageDate       string    `json:"storage_date"`       // reservations.storage_date
    StartTime         string    `json:"start_time"`         // reservations.start_time
    EndTime           string    `json:"end_time"`           // reservations.end_time
    RequestedBags     BagCounts `json:"requested_bags"`     // reservations.requested_*
    Status            string    `json:"status"`             // reservations.status
    CreatedAt         time.Time `json:"created_at"`         // reservations.created_at
    UpdatedAt         time.Time `json:"updated_at"`         // reservations.updated_at
}

// CanAdmit reports whether the reservation is in a state that allows
// admission.  Only RESERVED reservations may be admitted; admitting an
// already-STORED reservation must fail rather than silently succeed, which
// is what prevents a double check-in from creating a second storage record.
func (r *Reservation) CanAdmit() bool {
    return r.Status == ReservationStatusReserved
}
