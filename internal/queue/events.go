// Package queue defines the storage lifecycle events exchanged over the
// message broker, the publisher that emits them and the background consumer
// that records them.
package queue

import (
    "time"

    "github.com/google/uuid"

    "github.com/sm227/TravelLight-sub000/internal/model"
)

// Event type discriminators carried in StorageEvent.Type.
const (
    EventTypeCheckedIn  = "storage.checked_in"
    EventTypeCheckedOut = "storage.checked_out"
)

// StorageEvent is published whenever custody of a customer's bags changes
// hands.  It carries enough for downstream consumers (the notification
// dispatcher in particular) to act without querying the primary database.
// Delivery of the resulting notifications is the consumer's business, not
// this service's.
type StorageEvent struct {
    EventID           string          `json:"event_id"`
    Type              string          `json:"type"`
    StorageRecordID   uint64          `json:"storage_record_id"`
    StorageCode       string          `json:"storage_code"`
    ReservationID     uint64          `json:"reservation_id"`
    ReservationNumber string          `json:"reservation_number"`
    LocationID        uint64          `json:"location_id"`
    CustomerName      string          `json:"customer_name"`
    CustomerEmail     string          `json:"customer_email"`
    Bags              model.BagCounts `json:"bags"`
    OccurredAt        string          `json:"occurred_at"`
}

// NewStorageEvent builds an event of the given type from a storage record
// and its reservation number.  A fresh uuid is assigned as the correlation
// id and the occurrence time is recorded in RFC3339 UTC.
func NewStorageEvent(eventType string, rec *model.StorageRecord, reservationNumber string, at time.Time) StorageEvent {
    return StorageEvent{
        EventID:           uuid.NewString(),
        Type:              eventType,
        StorageRecordID:   rec.ID,
        StorageCode:       rec.StorageCode,
        ReservationID:     rec.ReservationID,
        ReservationNumber: reservationNumber,
        LocationID:        rec.LocationID,
        CustomerName:      rec.Identity.CustomerName,
        CustomerEmail:     rec.Identity.CustomerEmail,
        Bags:              rec.ActualBags,
        OccurredAt:        at.UTC().Format(time.RFC3339),
    }
}
