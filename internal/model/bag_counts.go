package model

// BagCounts groups bag quantities by the three physical size classes a
// location stores.  The same shape is used for a reservation's requested
// bags, a storage record's physically verified bags and a location's
// configured capacity.
type BagCounts struct {
    Small  int `json:"small"`  // number of small bags
    Medium int `json:"medium"` // number of medium bags
    Large  int `json:"large"`  // number of large bags
}

// Total returns the sum over all size classes.
func (b BagCounts) Total() int {
    return b.Small + b.Medium + b.Large
}

// Add returns the element-wise sum of two counts.
func (b BagCounts) Add(o BagCounts) BagCounts {
    return BagCounts{
        Small:  b.Small + o.Small,
        Medium: b.Medium + o.Medium,
        Large:  b.Large + o.Large,
    }
}

// SubFloorZero returns b minus o with every class floored at zero.  It is
// used when presenting remaining capacity so a temporarily over-occupied
// location never displays negative availability.
func (b BagCounts) SubFloorZero(o BagCounts) BagCounts {
    return BagCounts{
        Small:  maxInt(0, b.Small-o.Small),
        Medium: maxInt(0, b.Medium-o.Medium),
        Large:  maxInt(0, b.Large-o.Large),
    }
}

func maxInt(a, b int) int {
    if a > b {
        return a
    }
    return b
}
