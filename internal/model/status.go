package model

import "time"

// DisplayStatus is the label a dashboard shows for a reservation.  It is a
// projection of (reservation, wall-clock time) and never feeds back into the
// persisted reservation status: COMPLETED_TODAY in particular means "the
// booked window has passed today" and does not move the row to COMPLETED.
type DisplayStatus string

const (
    DisplayReserved       DisplayStatus = "RESERVED"
    DisplayInUse          DisplayStatus = "IN_USE"
    DisplayCompletedToday DisplayStatus = "COMPLETED_TODAY"
    DisplayCompleted      DisplayStatus = "COMPLETED"
)

// dateTimeLayout combines the stored date and time-of-day strings.
const dateTimeLayout = "2006-01-02 15:04"

// DeriveDisplayStatus maps a reservation and a point in time to the label a
// read-only dashboard should display.  The reservation's date and times are
// interpreted in now's own time zone, which callers set to the location's
// zone.  The function is pure: it mutates nothing and the same inputs always
// produce the same label, so dashboards simply re-evaluate it on every
// refresh instead of running a scheduler that rewrites statuses.
func DeriveDisplayStatus(r *Reservation, now time.Time) DisplayStatus {
    if r.Status != ReservationStatusReserved {
        return DisplayCompleted
    }
    loc := now.Location()
    start, errStart := time.ParseInLocation(dateTimeLayout, r.StorageDate+" "+r.StartTime, loc)
    end, errEnd := time.ParseInLocation(dateTimeLayout, r.StorageDate+" "+r.EndTime, loc)
    if errStart != nil || errEnd != nil {
        // Malformed window: fall back to the persisted state's label.
        return DisplayReserved
    }
    switch {
    case now.Before(start):
        return DisplayReserved
    case now.Before(end):
        return DisplayInUse
    default:
        return DisplayCompletedToday
    }
}
