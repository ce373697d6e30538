package repository

import (
    "context"
    "crypto/rand"
    "database/sql"
    "encoding/hex"
    "encoding/json"
    "errors"
    "strings"
    "time"

    "github.com/go-sql-driver/mysql"

    "github.com/sm227/TravelLight-sub000/internal/model"
)

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// codeAttempts bounds the storage-code regeneration loop on collisions.
const codeAttempts = 5

const storageRecordColumns = `id, storage_code, reservation_id, location_id,
       actual_small, actual_medium, actual_large,
       photos, customer_name, customer_email,
       notes_check_in, notes_check_out,
       check_in_time, check_out_time, status`

// StorageRecordRepo persists storage records.  Records are append-then-
// release only: a row is inserted at admission, mutated exactly once at
// release, and never deleted so the custody audit trail survives.
type StorageRecordRepo struct {
    db *sql.DB
}

// NewStorageRecordRepo returns a new StorageRecordRepo bound to the given database.
func NewStorageRecordRepo(db *sql.DB) *StorageRecordRepo { return &StorageRecordRepo{db: db} }

// DB exposes the underlying handle for cross-repository transactions.
func (r *StorageRecordRepo) DB() *sql.DB { return r.db }

// newStorageCode generates an opaque storage code from six bytes of
// cryptographically secure randomness, upper-cased hex.  Uniqueness is not
// assumed from the generator alone; the unique index on storage_code is the
// authority and InsertTx retries with a fresh code on a collision.
func newStorageCode() (string, error) {
    b := make([]byte, 6)
    if _, err := rand.Read(b); err != nil {
        return "", err
    }
    return strings.ToUpper(hex.EncodeToString(b)), nil
}

func isDuplicateKey(err error, index string) bool {
    var me *mysql.MySQLError
    if !errors.As(err, &me) || me.Number != mysqlDuplicateEntry {
        return false
    }
    return strings.Contains(me.Message, index)
}

// InsertTx inserts a new STORED record inside the caller's transaction,
// generating and collision-checking the storage code.  The generated id and
// code are written back into the passed record.  A duplicate on the
// reservation_id unique index means another check-in already created a
// record for this reservation and yields ErrConflict.
func (r *StorageRecordRepo) InsertTx(ctx context.Context, tx *sql.Tx, rec *model.StorageRecord) error {
    photos, err := json.Marshal(rec.Photos)
    if err != nil {
        return err
    }
    const q = `INSERT INTO storage_records
               (storage_code, reservation_id, location_id,
                actual_small, actual_medium, actual_large,
                photos, customer_name, customer_email,
                notes_check_in, check_in_time, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    for attempt := 0; attempt < codeAttempts; attempt++ {
        code, err := newStorageCode()
        if err != nil {
            return err
        }
        result, err := tx.ExecContext(ctx, q,
            code, rec.ReservationID, rec.LocationID,
            rec.ActualBags.Small, rec.ActualBags.Medium, rec.ActualBags.Large,
            photos, rec.Identity.CustomerName, rec.Identity.CustomerEmail,
            rec.StaffNotesCheckIn, rec.CheckInTime.UTC(), model.StorageStatusStored,
        )
        if err != nil {
            if isDuplicateKey(err, "uq_storage_records_code") {
                continue // code collision, roll a new one
            }
            if isDuplicateKey(err, "uq_storage_records_reservation") {
                return ErrConflict
            }
            return err
        }
        id, err := result.LastInsertId()
        if err != nil {
            return err
        }
        rec.ID = uint64(id)
        rec.StorageCode = code
        rec.Status = model.StorageStatusStored
        return nil
    }
    return errors.New("storage code generation exhausted retries")
}

// ReleaseTx transitions a record STORED->RETRIEVED inside the caller's
// transaction.  The status predicate in the WHERE clause makes release
// at-most-once: the loser of a concurrent double check-out matches zero
// rows and gets ErrConflict.  check_out_time is set from the caller's clock
// so it is consistent with the service's injected time source.
func (r *StorageRecordRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, id uint64, notes string, at time.Time) error {
    const q = `UPDATE storage_records
               SET status = ?, check_out_time = ?, notes_check_out = ?
               WHERE id = ? AND status = ?`
    result, err := tx.ExecContext(ctx, q, model.StorageStatusRetrieved, at.UTC(), notes, id, model.StorageStatusStored)
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

func scanStorageRecord(scan func(dest ...interface{}) error) (*model.StorageRecord, error) {
    var rec model.StorageRecord
    var photos []byte
    var notesOut sql.NullString
    var checkOut sql.NullTime
    err := scan(
        &rec.ID, &rec.StorageCode, &rec.ReservationID, &rec.LocationID,
        &rec.ActualBags.Small, &rec.ActualBags.Medium, &rec.ActualBags.Large,
        &photos, &rec.Identity.CustomerName, &rec.Identity.CustomerEmail,
        &rec.StaffNotesCheckIn, &notesOut,
        &rec.CheckInTime, &checkOut, &rec.Status,
    )
    if err != nil {
        return nil, err
    }
    rec.Photos = []string{}
    if len(photos) > 0 {
        if err := json.Unmarshal(photos, &rec.Photos); err != nil {
            return nil, err
        }
    }
    if notesOut.Valid {
        rec.StaffNotesCheckOut = notesOut.String
    }
    if checkOut.Valid {
        t := checkOut.Time
        rec.CheckOutTime = &t
    }
    return &rec, nil
}

// GetByCode loads a record by its storage code.  Returns
// ErrStorageRecordNotFound when the code is unknown.
func (r *StorageRecordRepo) GetByCode(ctx context.Context, code string) (*model.StorageRecord, error) {
    const q = `SELECT ` + storageRecordColumns + ` FROM storage_records WHERE storage_code = ?`
    rec, err := scanStorageRecord(r.db.QueryRowContext(ctx, q, code).Scan)
    if err == sql.ErrNoRows {
        return nil, ErrStorageRecordNotFound
    }
    return rec, err
}

// GetByIDTx reloads a record by primary key inside a transaction, used to
// return the post-transition row to the caller.
func (r *StorageRecordRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.StorageRecord, error) {
    const q = `SELECT ` + storageRecordColumns + ` FROM storage_records WHERE id = ?`
    rec, err := scanStorageRecord(tx.QueryRowContext(ctx, q, id).Scan)
    if err == sql.ErrNoRows {
        return nil, ErrStorageRecordNotFound
    }
    return rec, err
}

// UsageByLocation sums the actual bag counts over the location's STORED
// records.  This is the capacity ledger: recomputed on every read instead
// of kept as an incremental counter, so it cannot drift from the records
// under crashes or lost races.
func (r *StorageRecordRepo) UsageByLocation(ctx context.Context, locationID uint64) (model.BagCounts, error) {
    const q = `SELECT COALESCE(SUM(actual_small), 0),
                      COALESCE(SUM(actual_medium), 0),
                      COALESCE(SUM(actual_large), 0)
               FROM storage_records
               WHERE location_id = ? AND status = ?`
    var usage model.BagCounts
    err := r.db.QueryRowContext(ctx, q, locationID, model.StorageStatusStored).
        Scan(&usage.Small, &usage.Medium, &usage.Large)
    return usage, err
}

// ListActiveByLocation returns the location's STORED records ordered by
// check-in time, newest first.
func (r *StorageRecordRepo) ListActiveByLocation(ctx context.Context, locationID uint64) ([]model.StorageRecord, error) {
    const q = `SELECT ` + storageRecordColumns + `
               FROM storage_records
               WHERE location_id = ? AND status = ?
               ORDER BY check_in_time DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q, locationID, model.StorageStatusStored)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    list := make([]model.StorageRecord, 0)
    for rows.Next() {
        rec, err := scanStorageRecord(rows.Scan)
        if err != nil {
            return nil, err
        }
        list = append(list, *rec)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return list, nil
}
