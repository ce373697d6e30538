package service

import (
    "context"
    "log"
    "time"

    "github.com/sm227/TravelLight-sub000/internal/model"
    "github.com/sm227/TravelLight-sub000/internal/queue"
)

// ReservationLookup is the read side the check-in processor needs.
type ReservationLookup interface {
    GetByNumber(ctx context.Context, number string) (*model.Reservation, error)
}

// CheckInStore performs the atomic admission transaction: the
// RESERVED->STORED compare-and-set on the reservation plus the storage
// record insert, both-or-neither.  Implementations return
// repository.ErrConflict when the reservation lost its RESERVED state to a
// concurrent check-in between the processor's read and the transaction.
type CheckInStore interface {
    AdmitAndCreate(ctx context.Context, rec *model.StorageRecord) (*model.StorageRecord, error)
}

// EventSink receives storage lifecycle events.  Publishing is best-effort;
// processors log a failed publish and still return success, because custody
// has already changed hands.
type EventSink interface {
    Publish(ctx context.Context, ev queue.StorageEvent) error
}

// CheckInInput carries everything a staff terminal submits at admission.
type CheckInInput struct {
    ReservationNumber string
    ActualBags        model.BagCounts
    Photos            []string
    StaffNotes        string
}

// CheckInService converts a RESERVED reservation into a STORED storage
// record.  It owns the only code path that admits a reservation.
type CheckInService struct {
    Reservations ReservationLookup
    Store        CheckInStore
    Events       EventSink        // optional
    Now          func() time.Time // injectable clock
}

// NewCheckInService constructs a CheckInService with a UTC wall clock.
func NewCheckInService(reservations ReservationLookup, store CheckInStore, events EventSink) *CheckInService {
    return &CheckInService{
        Reservations: reservations,
        Store:        store,
        Events:       events,
        Now:          func() time.Time { return time.Now().UTC() },
    }
}

// CheckIn admits a reservation's bags and returns the created record.
//
// Failure modes, in order: repository.ErrReservationNotFound for an unknown
// number; InvalidStateError carrying the current status when the
// reservation is not RESERVED; ValidationError for non-positive bag counts;
// repository.ErrConflict when a concurrent check-in won the race after the
// status was read.  The identity snapshot is copied from the reservation at
// this instant and never re-read afterwards.
func (s *CheckInService) CheckIn(ctx context.Context, in CheckInInput) (*model.StorageRecord, error) {
    res, err := s.Reservations.GetByNumber(ctx, in.ReservationNumber)
    if err != nil {
        return nil, err
    }
    if !res.CanAdmit() {
        return nil, &InvalidStateError{Entity: "reservation", Status: res.Status}
    }
    if in.ActualBags.Small < 0 || in.ActualBags.Medium < 0 || in.ActualBags.Large < 0 {
        return nil, &ValidationError{Reason: "bag counts must not be negative"}
    }
    if in.ActualBags.Total() == 0 {
        return nil, &ValidationError{Reason: "at least one bag is required"}
    }

    photos := in.Photos
    if photos == nil {
        photos = []string{}
    }
    now := s.Now()
    rec := &model.StorageRecord{
        ReservationID: res.ID,
        LocationID:    res.LocationID,
        ActualBags:    in.ActualBags,
        Photos:        photos,
        Identity: model.IdentitySnapshot{
            CustomerName:  res.CustomerName,
            CustomerEmail: res.CustomerEmail,
        },
        StaffNotesCheckIn: in.StaffNotes,
        CheckInTime:       now,
        Status:            model.StorageStatusStored,
    }
    stored, err := s.Store.AdmitAndCreate(ctx, rec)
    if err != nil {
        return nil, err
    }

    if s.Events != nil {
        ev := queue.NewStorageEvent(queue.EventTypeCheckedIn, stored, res.ReservationNumber, now)
        if err := s.Events.Publish(ctx, ev); err != nil {
            log.Printf("check-in: event publish failed for %s: %v", stored.StorageCode, err)
        }
    }
    return stored, nil
}
