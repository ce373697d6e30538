package model

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func reservedOn(date, start, end string) *Reservation {
    return &Reservation{
        StorageDate: date,
        StartTime:   start,
        EndTime:     end,
        Status:      ReservationStatusReserved,
    }
}

func at(t *testing.T, value string) time.Time {
    t.Helper()
    ts, err := time.Parse("2006-01-02T15:04", value)
    if err != nil {
        t.Fatalf("bad test timestamp %q: %v", value, err)
    }
    return ts
}

func TestDeriveDisplayStatusWindow(t *testing.T) {
    res := reservedOn("2025-06-10", "09:00", "18:00")

    cases := []struct {
        name string
        now  string
        want DisplayStatus
    }{
        {"before start", "2025-06-10T08:00", DisplayReserved},
        {"at start", "2025-06-10T09:00", DisplayInUse},
        {"mid window", "2025-06-10T12:00", DisplayInUse},
        {"at end", "2025-06-10T18:00", DisplayCompletedToday},
        {"after end", "2025-06-10T19:00", DisplayCompletedToday},
        {"day before", "2025-06-09T12:00", DisplayReserved},
        {"day after", "2025-06-11T08:00", DisplayCompletedToday},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, DeriveDisplayStatus(res, at(t, tc.now)))
        })
    }
}

func TestDeriveDisplayStatusNonReserved(t *testing.T) {
    for _, status := range []string{
        ReservationStatusStored,
        ReservationStatusCompleted,
        ReservationStatusCancelled,
    } {
        res := reservedOn("2025-06-10", "09:00", "18:00")
        res.Status = status
        assert.Equal(t, DisplayCompleted, DeriveDisplayStatus(res, at(t, "2025-06-10T12:00")), status)
    }
}

func TestDeriveDisplayStatusMalformedWindow(t *testing.T) {
    res := reservedOn("2025-06-10", "", "18:00")
    assert.Equal(t, DisplayReserved, DeriveDisplayStatus(res, at(t, "2025-06-10T12:00")))
}

// The derivation is a pure projection: repeated calls with the same inputs
// agree, and the reservation itself is never mutated.
func TestDeriveDisplayStatusIsPure(t *testing.T) {
    res := reservedOn("2025-06-10", "09:00", "18:00")
    now := at(t, "2025-06-10T12:00")

    first := DeriveDisplayStatus(res, now)
    second := DeriveDisplayStatus(res, now)
    assert.Equal(t, first, second)
    assert.Equal(t, ReservationStatusReserved, res.Status)
}

// The derivation interprets the stored wall-clock strings in now's zone,
// so the same reservation flips labels at the location's local hours.
func TestDeriveDisplayStatusUsesClockZone(t *testing.T) {
    res := reservedOn("2025-06-10", "09:00", "18:00")
    seoul := time.FixedZone("KST", 9*60*60)

    noonSeoul := time.Date(2025, 6, 10, 12, 0, 0, 0, seoul)
    assert.Equal(t, DisplayInUse, DeriveDisplayStatus(res, noonSeoul))

    // The same instant is 03:00 UTC; a UTC clock reads it as pre-window.
    assert.Equal(t, DisplayReserved, DeriveDisplayStatus(res, noonSeoul.UTC()))
}
