package service

import (
    "context"

    "github.com/sm227/TravelLight-sub000/internal/model"
)

// LocationLookup resolves a location and its configured capacity.
type LocationLookup interface {
    GetByID(ctx context.Context, id uint64) (*model.Location, error)
}

// UsageStore sums the actual bag counts over a location's STORED records.
type UsageStore interface {
    UsageByLocation(ctx context.Context, locationID uint64) (model.BagCounts, error)
}

// CapacityService derives the advisory capacity snapshot staff dashboards
// display.  Usage is recomputed from the records on every call; the
// snapshot never gates check-in.
type CapacityService struct {
    Locations LocationLookup
    Usage     UsageStore
}

// NewCapacityService constructs a CapacityService.
func NewCapacityService(locations LocationLookup, usage UsageStore) *CapacityService {
    return &CapacityService{Locations: locations, Usage: usage}
}

// Snapshot returns the location's capacity snapshot.  Returns
// repository.ErrLocationNotFound for an unknown location.
func (s *CapacityService) Snapshot(ctx context.Context, locationID uint64) (model.CapacitySnapshot, error) {
    loc, err := s.Locations.GetByID(ctx, locationID)
    if err != nil {
        return model.CapacitySnapshot{}, err
    }
    usage, err := s.Usage.UsageByLocation(ctx, locationID)
    if err != nil {
        return model.CapacitySnapshot{}, err
    }
    return model.NewCapacitySnapshot(loc.ID, loc.MaxCapacity, usage), nil
}
