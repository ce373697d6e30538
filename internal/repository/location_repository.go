package repository

import (
    "context"
    "database/sql"

    "github.com/sm227/TravelLight-sub000/internal/model"
)

// LocationRepo provides read access to locations.  Capacity configuration
// is edited in the marketplace backend; this service only consumes it.
type LocationRepo struct {
    db *sql.DB
}

// NewLocationRepo returns a new LocationRepo bound to the given database.
func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{db: db} }

// GetByID loads a location by primary key.  Returns ErrLocationNotFound
// when the id is unknown.
func (r *LocationRepo) GetByID(ctx context.Context, id uint64) (*model.Location, error) {
    const q = `SELECT id, name, address, max_small, max_medium, max_large
               FROM locations WHERE id = ?`
    var loc model.Location
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &loc.ID, &loc.Name, &loc.Address,
        &loc.MaxCapacity.Small, &loc.MaxCapacity.Medium, &loc.MaxCapacity.Large,
    )
    if err == sql.ErrNoRows {
        return nil, ErrLocationNotFound
    }
    if err != nil {
        return nil, err
    }
    return &loc, nil
}
