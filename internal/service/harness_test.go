package service

// Shared test doubles for the processor tests.  memStore is a mutex-guarded
// in-memory stand-in for the MySQL-backed repositories; its AdmitAndCreate
// and Release reproduce the compare-and-set semantics of the real
// conditional updates, so the at-most-once properties can be exercised with
// the race detector and without a database.

import (
    "context"
    "fmt"
    "sync"
    "time"

    "github.com/sm227/TravelLight-sub000/internal/model"
    "github.com/sm227/TravelLight-sub000/internal/queue"
    "github.com/sm227/TravelLight-sub000/internal/repository"
)

var fixedNow = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

type memStore struct {
    mu           sync.Mutex
    reservations map[uint64]*model.Reservation
    byNumber     map[string]uint64
    records      map[uint64]*model.StorageRecord
    byCode       map[string]uint64
    locations    map[uint64]model.Location
    nextID       uint64
}

func newMemStore() *memStore {
    return &memStore{
        reservations: make(map[uint64]*model.Reservation),
        byNumber:     make(map[string]uint64),
        records:      make(map[uint64]*model.StorageRecord),
        byCode:       make(map[string]uint64),
        locations:    make(map[uint64]model.Location),
    }
}

func (m *memStore) addLocation(loc model.Location) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.locations[loc.ID] = loc
}

func (m *memStore) addReservation(res model.Reservation) {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.nextID++
    res.ID = m.nextID
    r := res
    m.reservations[res.ID] = &r
    m.byNumber[res.ReservationNumber] = res.ID
}

func (m *memStore) setReservationField(number string, mutate func(*model.Reservation)) {
    m.mu.Lock()
    defer m.mu.Unlock()
    if id, ok := m.byNumber[number]; ok {
        mutate(m.reservations[id])
    }
}

func (m *memStore) reservationStatus(number string) string {
    m.mu.Lock()
    defer m.mu.Unlock()
    if id, ok := m.byNumber[number]; ok {
        return m.reservations[id].Status
    }
    return ""
}

func (m *memStore) recordCount() int {
    m.mu.Lock()
    defer m.mu.Unlock()
    return len(m.records)
}

func (m *memStore) GetByNumber(_ context.Context, number string) (*model.Reservation, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    id, ok := m.byNumber[number]
    if !ok {
        return nil, repository.ErrReservationNotFound
    }
    res := *m.reservations[id]
    return &res, nil
}

func (m *memStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    stored, ok := m.reservations[id]
    if !ok {
        return nil, repository.ErrReservationNotFound
    }
    res := *stored
    return &res, nil
}

func (m *memStore) AdmitAndCreate(_ context.Context, rec *model.StorageRecord) (*model.StorageRecord, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    res, ok := m.reservations[rec.ReservationID]
    if !ok {
        return nil, repository.ErrReservationNotFound
    }
    // Same arbitration as UPDATE ... WHERE status = 'RESERVED'.
    if res.Status != model.ReservationStatusReserved {
        return nil, repository.ErrConflict
    }
    res.Status = model.ReservationStatusStored
    m.nextID++
    stored := *rec
    stored.ID = m.nextID
    stored.StorageCode = fmt.Sprintf("CODE%04d", m.nextID)
    m.records[stored.ID] = &stored
    m.byCode[stored.StorageCode] = stored.ID
    out := stored
    return &out, nil
}

func (m *memStore) GetByCode(_ context.Context, code string) (*model.StorageRecord, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    id, ok := m.byCode[code]
    if !ok {
        return nil, repository.ErrStorageRecordNotFound
    }
    rec := *m.records[id]
    return &rec, nil
}

func (m *memStore) Release(_ context.Context, rec *model.StorageRecord, notes string, at time.Time) (*model.StorageRecord, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    stored, ok := m.records[rec.ID]
    if !ok {
        return nil, repository.ErrStorageRecordNotFound
    }
    // Same arbitration as UPDATE ... WHERE status = 'STORED'.
    if stored.Status != model.StorageStatusStored {
        return nil, repository.ErrConflict
    }
    stored.Status = model.StorageStatusRetrieved
    t := at
    stored.CheckOutTime = &t
    stored.StaffNotesCheckOut = notes
    if res, ok := m.reservations[stored.ReservationID]; ok && res.Status == model.ReservationStatusStored {
        res.Status = model.ReservationStatusCompleted
    }
    out := *stored
    return &out, nil
}

func (m *memStore) UsageByLocation(_ context.Context, locationID uint64) (model.BagCounts, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    var usage model.BagCounts
    for _, rec := range m.records {
        if rec.LocationID == locationID && rec.Status == model.StorageStatusStored {
            usage = usage.Add(rec.ActualBags)
        }
    }
    return usage, nil
}

func (m *memStore) GetLocation(_ context.Context, id uint64) (*model.Location, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    loc, ok := m.locations[id]
    if !ok {
        return nil, repository.ErrLocationNotFound
    }
    return &loc, nil
}

// locationLookup adapts memStore to the LocationLookup interface without
// colliding with the reservation GetByID method set.
type locationLookup struct{ store *memStore }

func (l locationLookup) GetByID(ctx context.Context, id uint64) (*model.Location, error) {
    return l.store.GetLocation(ctx, id)
}

type eventRecorder struct {
    mu     sync.Mutex
    events []queue.StorageEvent
}

func (r *eventRecorder) Publish(_ context.Context, ev queue.StorageEvent) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.events = append(r.events, ev)
    return nil
}

func (r *eventRecorder) all() []queue.StorageEvent {
    r.mu.Lock()
    defer r.mu.Unlock()
    return append([]queue.StorageEvent(nil), r.events...)
}

func reservedFixture(number string) model.Reservation {
    return model.Reservation{
        ReservationNumber: number,
        LocationID:        7,
        CustomerID:        42,
        CustomerName:      "Jane Doe",
        CustomerEmail:     "jane@x.com",
        StorageDate:       "2025-06-10",
        StartTime:         "09:00",
        EndTime:           "18:00",
        RequestedBags:     model.BagCounts{Small: 1},
        Status:            model.ReservationStatusReserved,
    }
}

func newCheckInFixture() (*memStore, *eventRecorder, *CheckInService) {
    st := newMemStore()
    ev := &eventRecorder{}
    svc := NewCheckInService(st, st, ev)
    svc.Now = func() time.Time { return fixedNow }
    return st, ev, svc
}

func newCheckOutFixture() (*memStore, *eventRecorder, *CheckInService, *CheckOutService) {
    st := newMemStore()
    ev := &eventRecorder{}
    in := NewCheckInService(st, st, ev)
    in.Now = func() time.Time { return fixedNow }
    out := NewCheckOutService(st, st, st, ev)
    out.Now = func() time.Time { return fixedNow.Add(8 * time.Hour) }
    return st, ev, in, out
}
