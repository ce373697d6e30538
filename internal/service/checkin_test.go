package service

import (
    "context"
    "errors"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/sm227/TravelLight-sub000/internal/model"
    "github.com/sm227/TravelLight-sub000/internal/queue"
    "github.com/sm227/TravelLight-sub000/internal/repository"
)

func TestCheckInCreatesRecord(t *testing.T) {
    st, ev, svc := newCheckInFixture()
    st.addReservation(reservedFixture("R-1001"))

    rec, err := svc.CheckIn(context.Background(), CheckInInput{
        ReservationNumber: "R-1001",
        ActualBags:        model.BagCounts{Small: 1},
        StaffNotes:        "front shelf",
    })
    require.NoError(t, err)
    require.NotNil(t, rec)

    assert.NotEmpty(t, rec.StorageCode)
    assert.Equal(t, model.StorageStatusStored, rec.Status)
    assert.Equal(t, uint64(7), rec.LocationID)
    assert.Equal(t, fixedNow, rec.CheckInTime)
    assert.Nil(t, rec.CheckOutTime)
    assert.Equal(t, "front shelf", rec.StaffNotesCheckIn)
    assert.NotNil(t, rec.Photos)

    // Identity snapshot is copied from the reservation at this instant.
    assert.Equal(t, "Jane Doe", rec.Identity.CustomerName)
    assert.Equal(t, "jane@x.com", rec.Identity.CustomerEmail)

    assert.Equal(t, model.ReservationStatusStored, st.reservationStatus("R-1001"))

    events := ev.all()
    require.Len(t, events, 1)
    assert.Equal(t, queue.EventTypeCheckedIn, events[0].Type)
    assert.Equal(t, "R-1001", events[0].ReservationNumber)
    assert.Equal(t, rec.StorageCode, events[0].StorageCode)
    assert.NotEmpty(t, events[0].EventID)
}

func TestCheckInUnknownReservation(t *testing.T) {
    _, _, svc := newCheckInFixture()

    _, err := svc.CheckIn(context.Background(), CheckInInput{
        ReservationNumber: "R-9999",
        ActualBags:        model.BagCounts{Small: 1},
    })
    assert.ErrorIs(t, err, repository.ErrReservationNotFound)
}

func TestCheckInRejectsEmptyAdmission(t *testing.T) {
    st, ev, svc := newCheckInFixture()
    st.addReservation(reservedFixture("R-1001"))

    _, err := svc.CheckIn(context.Background(), CheckInInput{
        ReservationNumber: "R-1001",
        ActualBags:        model.BagCounts{},
    })
    var verr *ValidationError
    require.ErrorAs(t, err, &verr)

    // Nothing was mutated and nothing was published.
    assert.Equal(t, model.ReservationStatusReserved, st.reservationStatus("R-1001"))
    assert.Zero(t, st.recordCount())
    assert.Empty(t, ev.all())
}

func TestCheckInRejectsNegativeBags(t *testing.T) {
    st, _, svc := newCheckInFixture()
    st.addReservation(reservedFixture("R-1001"))

    _, err := svc.CheckIn(context.Background(), CheckInInput{
        ReservationNumber: "R-1001",
        ActualBags:        model.BagCounts{Small: 2, Medium: -1},
    })
    var verr *ValidationError
    assert.ErrorAs(t, err, &verr)
}

func TestCheckInTwiceFailsWithCurrentStatus(t *testing.T) {
    st, _, svc := newCheckInFixture()
    st.addReservation(reservedFixture("R-1001"))

    in := CheckInInput{ReservationNumber: "R-1001", ActualBags: model.BagCounts{Small: 1}}
    _, err := svc.CheckIn(context.Background(), in)
    require.NoError(t, err)

    _, err = svc.CheckIn(context.Background(), in)
    var ierr *InvalidStateError
    require.ErrorAs(t, err, &ierr)
    assert.Equal(t, model.ReservationStatusStored, ierr.Status)
    assert.Equal(t, 1, st.recordCount())
}

func TestCheckInCancelledReservation(t *testing.T) {
    st, _, svc := newCheckInFixture()
    res := reservedFixture("R-1001")
    res.Status = model.ReservationStatusCancelled
    st.addReservation(res)

    _, err := svc.CheckIn(context.Background(), CheckInInput{
        ReservationNumber: "R-1001",
        ActualBags:        model.BagCounts{Small: 1},
    })
    var ierr *InvalidStateError
    require.ErrorAs(t, err, &ierr)
    assert.Equal(t, model.ReservationStatusCancelled, ierr.Status)
}

// TestCheckInAtMostOnce races N admissions for one reservation: exactly one
// may win, every loser must see invalid-state or conflict, and exactly one
// record may exist afterwards.
func TestCheckInAtMostOnce(t *testing.T) {
    st, ev, svc := newCheckInFixture()
    st.addReservation(reservedFixture("R-1001"))

    const n = 16
    errs := make([]error, n)
    var wg sync.WaitGroup
    for i := 0; i < n; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, errs[i] = svc.CheckIn(context.Background(), CheckInInput{
                ReservationNumber: "R-1001",
                ActualBags:        model.BagCounts{Small: 1},
            })
        }(i)
    }
    wg.Wait()

    successes := 0
    for _, err := range errs {
        if err == nil {
            successes++
            continue
        }
        var ierr *InvalidStateError
        if !errors.As(err, &ierr) && !errors.Is(err, repository.ErrConflict) {
            t.Fatalf("unexpected error kind: %v", err)
        }
    }
    assert.Equal(t, 1, successes)
    assert.Equal(t, 1, st.recordCount())
    assert.Len(t, ev.all(), 1)
}
