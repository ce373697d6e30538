package model

// CapacitySnapshot is the derived, advisory view of a location's occupancy
// at the moment it was computed.  CurrentUsage is the sum of actual bag
// counts over the location's STORED records; it is recomputed on every read
// rather than maintained as a persisted running counter, so it can never
// drift from the records themselves.  AvailableCapacity is floored at zero
// per size class for display.  The snapshot does not gate check-in.
type CapacitySnapshot struct {
    LocationID        uint64    `json:"location_id"`
    MaxCapacity       BagCounts `json:"max_capacity"`
    CurrentUsage      BagCounts `json:"current_usage"`
    AvailableCapacity BagCounts `json:"available_capacity"`
}

// NewCapacitySnapshot derives a snapshot from a location's configured
// capacity and its current usage.
func NewCapacitySnapshot(locationID uint64, max, usage BagCounts) CapacitySnapshot {
    return CapacitySnapshot{
        LocationID:        locationID,
        MaxCapacity:       max,
        CurrentUsage:      usage,
        AvailableCapacity: max.SubFloorZero(usage),
    }
}
