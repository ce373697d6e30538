package service

import (
    "context"
    "log"
    "strings"
    "time"

    "github.com/sm227/TravelLight-sub000/internal/model"
    "github.com/sm227/TravelLight-sub000/internal/queue"
)

// QRPayloadPrefix wraps storage codes when they are rendered as QR
// payloads.  Scanners hand the wrapped form back verbatim, so the processor
// accepts both "TRAVELLIGHT:<code>" and the bare code.
const QRPayloadPrefix = "TRAVELLIGHT:"

// NormalizeStorageCode strips surrounding whitespace and, when present, the
// QR payload prefix, returning the bare storage code.
func NormalizeStorageCode(payload string) string {
    code := strings.TrimSpace(payload)
    if strings.HasPrefix(code, QRPayloadPrefix) {
        code = strings.TrimSpace(strings.TrimPrefix(code, QRPayloadPrefix))
    }
    return code
}

// StorageLookup is the read side the check-out processor needs.
type StorageLookup interface {
    GetByCode(ctx context.Context, code string) (*model.StorageRecord, error)
}

// CheckOutStore performs the atomic release transaction: the
// STORED->RETRIEVED compare-and-set on the record plus completion of the
// owning reservation.  Implementations return repository.ErrConflict when a
// concurrent check-out already retrieved the record.
type CheckOutStore interface {
    Release(ctx context.Context, rec *model.StorageRecord, notes string, at time.Time) (*model.StorageRecord, error)
}

// ReservationGetter loads a reservation by id; used only to enrich the
// checked-out event with the booking number.
type ReservationGetter interface {
    GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
}

// CheckOutInput carries what the customer presents at pick-up.
type CheckOutInput struct {
    CodeOrPayload  string
    PresentedName  string
    PresentedEmail string
    StaffNotes     string
}

// CheckOutService releases a stored record back to its customer.  The
// identity gate runs before any mutation: a mismatch leaves the record
// STORED and the attempt can simply be retried with corrected input.
type CheckOutService struct {
    Storage      StorageLookup
    Store        CheckOutStore
    Reservations ReservationGetter // optional, event enrichment only
    Events       EventSink         // optional
    Now          func() time.Time  // injectable clock
}

// NewCheckOutService constructs a CheckOutService with a UTC wall clock.
func NewCheckOutService(storage StorageLookup, store CheckOutStore, reservations ReservationGetter, events EventSink) *CheckOutService {
    return &CheckOutService{
        Storage:      storage,
        Store:        store,
        Reservations: reservations,
        Events:       events,
        Now:          func() time.Time { return time.Now().UTC() },
    }
}

// Lookup resolves a scanned or typed payload to its storage record without
// mutating anything.  Staff terminals call it to show the confirmation
// screen before collecting the customer's identity.
func (s *CheckOutService) Lookup(ctx context.Context, codeOrPayload string) (*model.StorageRecord, error) {
    code := NormalizeStorageCode(codeOrPayload)
    if code == "" {
        return nil, &ValidationError{Reason: "storage code is required"}
    }
    return s.Storage.GetByCode(ctx, code)
}

// CheckOut verifies the presented identity against the admission snapshot
// and releases the record.
//
// Failure modes, in order: ValidationError for an empty code;
// repository.ErrStorageRecordNotFound for an unknown code;
// InvalidStateError carrying the current status when the record is not
// STORED (so "already retrieved" can be reported precisely);
// ValidationError when the trimmed presented name and email do not exactly
// equal the snapshot (comparison is case-sensitive by contract);
// repository.ErrConflict when a concurrent check-out won the race.
func (s *CheckOutService) CheckOut(ctx context.Context, in CheckOutInput) (*model.StorageRecord, error) {
    rec, err := s.Lookup(ctx, in.CodeOrPayload)
    if err != nil {
        return nil, err
    }
    if !rec.CanRelease() {
        return nil, &InvalidStateError{Entity: "storage record", Status: rec.Status}
    }
    name := strings.TrimSpace(in.PresentedName)
    email := strings.TrimSpace(in.PresentedEmail)
    if name != rec.Identity.CustomerName || email != rec.Identity.CustomerEmail {
        return nil, &ValidationError{Reason: "identity does not match"}
    }

    now := s.Now()
    released, err := s.Store.Release(ctx, rec, in.StaffNotes, now)
    if err != nil {
        return nil, err
    }

    if s.Events != nil {
        number := ""
        if s.Reservations != nil {
            if res, err := s.Reservations.GetByID(ctx, released.ReservationID); err == nil {
                number = res.ReservationNumber
            }
        }
        ev := queue.NewStorageEvent(queue.EventTypeCheckedOut, released, number, now)
        if err := s.Events.Publish(ctx, ev); err != nil {
            log.Printf("check-out: event publish failed for %s: %v", released.StorageCode, err)
        }
    }
    return released, nil
}
