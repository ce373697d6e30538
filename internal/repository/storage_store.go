package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/sm227/TravelLight-sub000/internal/model"
)

// StorageStore bundles the two cross-table transactions of the storage
// lifecycle.  Admission must flip the reservation and insert the record as
// one unit, and release must flip the record and complete the reservation
// as one unit; neither half may persist without the other, so both run on a
// single *sql.Tx spanning the reservation and storage record repositories.
type StorageStore struct {
    db           *sql.DB
    reservations *ReservationRepo
    records      *StorageRecordRepo
}

// NewStorageStore returns a StorageStore over the given repositories.  Both
// repositories must be bound to the same database handle.
func NewStorageStore(db *sql.DB, reservations *ReservationRepo, records *StorageRecordRepo) *StorageStore {
    return &StorageStore{db: db, reservations: reservations, records: records}
}

// AdmitAndCreate performs the admission transaction: the RESERVED->STORED
// compare-and-set on the reservation followed by the record insert.  The
// passed record must carry reservation id, location id, verified bag
// counts, photos, identity snapshot and check-in time; the generated id and
// storage code are written back into it.  ErrConflict is returned when the
// reservation lost its RESERVED state to a concurrent check-in.
func (s *StorageStore) AdmitAndCreate(ctx context.Context, rec *model.StorageRecord) (*model.StorageRecord, error) {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := s.reservations.AdmitTx(ctx, tx, rec.ReservationID); err != nil {
        return nil, err
    }
    if err := s.records.InsertTx(ctx, tx, rec); err != nil {
        return nil, err
    }
    stored, err := s.records.GetByIDTx(ctx, tx, rec.ID)
    if err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return stored, nil
}

// Release performs the release transaction: the STORED->RETRIEVED
// compare-and-set on the record followed by completion of the owning
// reservation.  ErrConflict is returned when another check-out already
// retrieved the record.
func (s *StorageStore) Release(ctx context.Context, rec *model.StorageRecord, notes string, at time.Time) (*model.StorageRecord, error) {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := s.records.ReleaseTx(ctx, tx, rec.ID, notes, at); err != nil {
        return nil, err
    }
    if err := s.reservations.CompleteTx(ctx, tx, rec.ReservationID); err != nil {
        return nil, err
    }
    released, err := s.records.GetByIDTx(ctx, tx, rec.ID)
    if err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return released, nil
}
