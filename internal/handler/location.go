package handler

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/sm227/TravelLight-sub000/internal/model"
    "github.com/sm227/TravelLight-sub000/internal/repository"
    "github.com/sm227/TravelLight-sub000/internal/service"
)

// LocationHandler serves the read-only partner dashboard: the capacity
// snapshot and the per-day reservation and active storage listings.  All of
// it is advisory display data; nothing here participates in lifecycle
// transitions.
type LocationHandler struct {
    Capacity     *service.CapacityService
    Reservations *repository.ReservationRepo
    Records      *repository.StorageRecordRepo
    Now          func() time.Time // injectable clock for status derivation
}

// NewLocationHandler constructs a LocationHandler using the local wall
// clock, which dashboards treat as the location's zone.
func NewLocationHandler(capacity *service.CapacityService, reservations *repository.ReservationRepo, records *repository.StorageRecordRepo) *LocationHandler {
    if capacity == nil || reservations == nil || records == nil {
        panic("nil dependency passed to NewLocationHandler")
    }
    return &LocationHandler{
        Capacity:     capacity,
        Reservations: reservations,
        Records:      records,
        Now:          time.Now,
    }
}

func locationIDParam(c echo.Context) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

// HandleCapacity handles GET /v1/locations/:id/capacity.  Usage is
// recomputed from STORED records on each call; the route sits behind the
// short-TTL response cache.
func (h *LocationHandler) HandleCapacity(c echo.Context) error {
    locationID, ok := locationIDParam(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id", "kind": "validation"})
    }
    snap, err := h.Capacity.Snapshot(c.Request().Context(), locationID)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, snap)
}

// reservationRow pairs a reservation with its time-derived display label.
type reservationRow struct {
    model.Reservation
    DisplayStatus model.DisplayStatus `json:"display_status"`
}

// HandleReservations handles GET /v1/locations/:id/reservations?date=YYYY-MM-DD.
// The date defaults to today.  The display status is derived from the wall
// clock on every request, so the same row can read RESERVED in the morning
// and COMPLETED_TODAY in the evening without any write having happened.
func (h *LocationHandler) HandleReservations(c echo.Context) error {
    locationID, ok := locationIDParam(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id", "kind": "validation"})
    }
    now := h.Now()
    date := c.QueryParam("date")
    if date == "" {
        date = now.Format("2006-01-02")
    } else if _, err := time.Parse("2006-01-02", date); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD", "kind": "validation"})
    }
    list, err := h.Reservations.ListByLocationAndDate(c.Request().Context(), locationID, date)
    if err != nil {
        return writeError(c, err)
    }
    rows := make([]reservationRow, 0, len(list))
    for _, res := range list {
        rows = append(rows, reservationRow{
            Reservation:   res,
            DisplayStatus: model.DeriveDisplayStatus(&res, now),
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"date": date, "reservations": rows})
}

// HandleActiveStorage handles GET /v1/locations/:id/storage, listing the
// records currently in custody at the location.
func (h *LocationHandler) HandleActiveStorage(c echo.Context) error {
    locationID, ok := locationIDParam(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id", "kind": "validation"})
    }
    list, err := h.Records.ListActiveByLocation(c.Request().Context(), locationID)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"storage": list})
}
