package repository

import (
    "context"
    "database/sql"

    "github.com/sm227/TravelLight-sub000/internal/model"
)

// reservationColumns is the select list shared by every reservation query.
// storage_date and the time-of-day columns are formatted back into the
// location-local strings the model carries; they are wall-clock values and
// must not be shifted through a time zone conversion.
const reservationColumns = `id, reservation_number, location_id, customer_id,
       customer_name, customer_email,
       DATE_FORMAT(storage_date, '%Y-%m-%d'),
       TIME_FORMAT(start_time, '%H:%i'),
       TIME_FORMAT(end_time, '%H:%i'),
       requested_small, requested_medium, requested_large,
       status, created_at, updated_at`

// ReservationRepo provides read access to reservations plus the single
// write this service is allowed to perform on them: the RESERVED->STORED
// admission, executed as a conditional update.  Reservation creation,
// cancellation and payment belong to the marketplace backend.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions that
// span this repository and others.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

func scanReservation(row *sql.Row) (*model.Reservation, error) {
    var res model.Reservation
    err := row.Scan(
        &res.ID, &res.ReservationNumber, &res.LocationID, &res.CustomerID,
        &res.CustomerName, &res.CustomerEmail,
        &res.StorageDate, &res.StartTime, &res.EndTime,
        &res.RequestedBags.Small, &res.RequestedBags.Medium, &res.RequestedBags.Large,
        &res.Status, &res.CreatedAt, &res.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &res, nil
}

// GetByNumber loads a reservation by its customer-facing reservation
// number.  Returns ErrReservationNotFound when no such booking exists.
func (r *ReservationRepo) GetByNumber(ctx context.Context, number string) (*model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_number = ?`
    res, err := scanReservation(r.db.QueryRowContext(ctx, q, number))
    if err == sql.ErrNoRows {
        return nil, ErrReservationNotFound
    }
    return res, err
}

// GetByID loads a reservation by primary key.  Returns
// ErrReservationNotFound when the id is unknown.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return nil, ErrReservationNotFound
    }
    return res, err
}

// AdmitTx transitions a reservation RESERVED->STORED inside the caller's
// transaction.  The WHERE clause is the compare-and-set: when two check-in
// attempts race, exactly one update matches the RESERVED row and the other
// sees zero rows affected and gets ErrConflict.  No other code path writes
// this transition.
func (r *ReservationRepo) AdmitTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    const q = `UPDATE reservations
               SET status = ?, updated_at = UTC_TIMESTAMP()
               WHERE id = ? AND status = ?`
    result, err := tx.ExecContext(ctx, q, model.ReservationStatusStored, id, model.ReservationStatusReserved)
    if err != nil {
        return err
    }
    n, err := result.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrConflict
    }
    return nil
}

// CompleteTx transitions a reservation STORED->COMPLETED inside the
// caller's transaction.  It is invoked by the release path once the storage
// record has been marked RETRIEVED.  A zero-row result is tolerated: an
// external completion path may already have closed the booking, and the
// release itself must not be undone because of it.
func (r *ReservationRepo) CompleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    const q = `UPDATE reservations
               SET status = ?, updated_at = UTC_TIMESTAMP()
               WHERE id = ? AND status = ?`
    _, err := tx.ExecContext(ctx, q, model.ReservationStatusCompleted, id, model.ReservationStatusStored)
    return err
}

// ListByLocationAndDate returns all reservations stored (or to be stored)
// at a location on the given calendar day, ordered by start time.  The
// date must be in "2006-01-02" form.  Used by the partner dashboard, which
// attaches the time-derived display status on every read.
func (r *ReservationRepo) ListByLocationAndDate(ctx context.Context, locationID uint64, date string) ([]model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + `
               FROM reservations
               WHERE location_id = ? AND storage_date = ?
               ORDER BY start_time, id`
    rows, err := r.db.QueryContext(ctx, q, locationID, date)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    list := make([]model.Reservation, 0)
    for rows.Next() {
        var res model.Reservation
        if err := rows.Scan(
            &res.ID, &res.ReservationNumber, &res.LocationID, &res.CustomerID,
            &res.CustomerName, &res.CustomerEmail,
            &res.StorageDate, &res.StartTime, &res.EndTime,
            &res.RequestedBags.Small, &res.RequestedBags.Medium, &res.RequestedBags.Large,
            &res.Status, &res.CreatedAt, &res.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        list = append(list, res)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return list, nil
}
