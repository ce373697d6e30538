package service

import (
    "context"
    "fmt"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/sm227/TravelLight-sub000/internal/model"
    "github.com/sm227/TravelLight-sub000/internal/repository"
)

func newCapacityFixture() (*memStore, *CheckInService, *CheckOutService, *CapacityService) {
    st, _, in, out := newCheckOutFixture()
    capSvc := NewCapacityService(locationLookup{store: st}, st)
    return st, in, out, capSvc
}

// Capacity conservation: after N check-ins and M check-outs, usage equals
// the sum of actual bags over the N-M records still in custody.
func TestCapacityConservation(t *testing.T) {
    st, in, out, capSvc := newCapacityFixture()
    st.addLocation(model.Location{ID: 7, Name: "Seoul Station", MaxCapacity: model.BagCounts{Small: 10, Medium: 10, Large: 10}})

    bags := []model.BagCounts{
        {Small: 1},
        {Small: 2, Medium: 1},
        {Medium: 2, Large: 1},
        {Large: 2},
    }
    codes := make([]string, 0, len(bags))
    for i, b := range bags {
        number := fmt.Sprintf("R-10%02d", i)
        st.addReservation(reservedFixture(number))
        rec, err := in.CheckIn(context.Background(), CheckInInput{ReservationNumber: number, ActualBags: b})
        require.NoError(t, err)
        codes = append(codes, rec.StorageCode)
    }

    snap, err := capSvc.Snapshot(context.Background(), 7)
    require.NoError(t, err)
    assert.Equal(t, model.BagCounts{Small: 3, Medium: 3, Large: 3}, snap.CurrentUsage)
    assert.Equal(t, model.BagCounts{Small: 7, Medium: 7, Large: 7}, snap.AvailableCapacity)

    // Release the first two records; usage must shrink by exactly their bags.
    for _, code := range codes[:2] {
        _, err := out.CheckOut(context.Background(), CheckOutInput{
            CodeOrPayload:  code,
            PresentedName:  "Jane Doe",
            PresentedEmail: "jane@x.com",
        })
        require.NoError(t, err)
    }

    snap, err = capSvc.Snapshot(context.Background(), 7)
    require.NoError(t, err)
    assert.Equal(t, model.BagCounts{Small: 0, Medium: 3, Large: 3}, snap.CurrentUsage)
    assert.Equal(t, model.BagCounts{Small: 10, Medium: 7, Large: 7}, snap.AvailableCapacity)
}

// Check-in is advisory with respect to capacity: admission beyond the
// configured maximum succeeds and the displayed availability floors at
// zero instead of going negative.
func TestCapacityAvailableFloorsAtZero(t *testing.T) {
    st, in, _, capSvc := newCapacityFixture()
    st.addLocation(model.Location{ID: 7, Name: "Hongdae", MaxCapacity: model.BagCounts{Small: 1}})

    st.addReservation(reservedFixture("R-1001"))
    _, err := in.CheckIn(context.Background(), CheckInInput{
        ReservationNumber: "R-1001",
        ActualBags:        model.BagCounts{Small: 2, Medium: 1},
    })
    require.NoError(t, err)

    snap, err := capSvc.Snapshot(context.Background(), 7)
    require.NoError(t, err)
    assert.Equal(t, model.BagCounts{Small: 2, Medium: 1}, snap.CurrentUsage)
    assert.Equal(t, model.BagCounts{}, snap.AvailableCapacity)
}

func TestCapacityUnknownLocation(t *testing.T) {
    _, _, _, capSvc := newCapacityFixture()

    _, err := capSvc.Snapshot(context.Background(), 99)
    assert.ErrorIs(t, err, repository.ErrLocationNotFound)
}
