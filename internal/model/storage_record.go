package model

import "time"

// StorageRecord status enumeration.  A record is created as STORED and
// moves to RETRIEVED exactly once when the bags are returned.
const (
    StorageStatusStored    = "STORED"
    StorageStatusRetrieved = "RETRIEVED"
)

// IdentitySnapshot is the customer-identifying data frozen at admission
// time.  It is copied verbatim from the reservation and never re-read from
// the live customer record, so a later profile edit cannot invalidate the
// release authorization captured here.
type IdentitySnapshot struct {
    CustomerName  string `json:"customer_name"`  // storage_records.customer_name
    CustomerEmail string `json:"customer_email"` // storage_records.customer_email
}

// StorageRecord is the physical-custody record created once a reservation's
// bags are actually deposited.  Records are never deleted; a retrieved
// record remains as the audit trail of the custody period.
//
// Fields:
//  ID                 – primary key identifier.
//  StorageCode        – unique opaque code handed to the customer (QR payload).
//  ReservationID      – the reservation this record fulfils (1:1, immutable).
//  LocationID         – location holding the bags.
//  ActualBags         – bag counts physically verified at admission; may
//                       differ from the reservation's requested counts.
//  Photos             – opaque blob-store references captured at check-in.
//  Identity           – customer identity frozen at admission.
//  StaffNotesCheckIn  – free-form staff notes taken at admission.
//  StaffNotesCheckOut – free-form staff notes taken at release.
//  CheckInTime        – when custody began.
//  CheckOutTime       – when custody ended; nil while STORED.
//  Status             – STORED or RETRIEVED.
type StorageRecord struct {
    ID                 uint64           `json:"id"`                   // storage_records.id
    StorageCode        string           `json:"storage_code"`         // storage_records.storage_code
    ReservationID      uint64           `json:"reservation_id"`       // storage_records.reservation_id
    LocationID         uint64           `json:"location_id"`          // storage_records.location_id
    ActualBags         BagCounts        `json:"actual_bags"`          // storage_records.actual_*
    Photos             []string         `json:"photos"`               // storage_records.photos (JSON array)
    Identity           IdentitySnapshot `json:"identity"`             // frozen customer identity
    StaffNotesCheckIn  string           `json:"staff_notes_check_in"` // storage_records.notes_check_in
    StaffNotesCheckOut string           `json:"staff_notes_check_out"`// storage_records.notes_check_out
    CheckInTime        time.Time        `json:"check_in_time"`        // storage_records.check_in_time
    CheckOutTime       *time.Time       `json:"check_out_time"`       // storage_records.check_out_time (nullable)
    Status             string           `json:"status"`               // storage_records.status
}

// CanRelease reports whether the record is still in custody and may be
// released.  RETRIEVED is terminal.
func (s *StorageRecord) CanRelease() bool {
    return s.Status == StorageStatusStored
}
