package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/sm227/TravelLight-sub000/internal/model"
    "github.com/sm227/TravelLight-sub000/internal/service"
)

// StorageHandler exposes the check-in and check-out processors to staff
// terminals.  JWT authentication and role validation have already been
// performed by middleware; the processors own all state transitions, so
// these handlers only bind input, delegate and translate errors.
type StorageHandler struct {
    CheckIn  *service.CheckInService
    CheckOut *service.CheckOutService
}

// NewStorageHandler constructs a StorageHandler.  Both services must be
// non-nil.
func NewStorageHandler(checkIn *service.CheckInService, checkOut *service.CheckOutService) *StorageHandler {
    if checkIn == nil || checkOut == nil {
        panic("nil service passed to NewStorageHandler")
    }
    return &StorageHandler{CheckIn: checkIn, CheckOut: checkOut}
}

// HandleCheckIn handles POST /v1/storage/check-in.  The body carries the
// reservation number, the bag counts physically verified by staff, the
// photo references returned by the blob-upload collaborator and optional
// notes.  On success it returns 201 Created with the new record; its
// storage_code is what the terminal renders as the customer's QR payload.
func (h *StorageHandler) HandleCheckIn(c echo.Context) error {
    var body struct {
        ReservationNumber string          `json:"reservation_number"`
        ActualBags        model.BagCounts `json:"actual_bags"`
        Photos            []string        `json:"photos"`
        StaffNotes        string          `json:"staff_notes"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body", "kind": "validation"})
    }
    if body.ReservationNumber == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_number is required", "kind": "validation"})
    }
    rec, err := h.CheckIn.CheckIn(c.Request().Context(), service.CheckInInput{
        ReservationNumber: body.ReservationNumber,
        ActualBags:        body.ActualBags,
        Photos:            body.Photos,
        StaffNotes:        body.StaffNotes,
    })
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, rec)
}

// HandleLookup handles GET /v1/storage/:code.  The path segment may be the
// bare storage code or the full scanned QR payload; either resolves to the
// record without mutating it.  Terminals call this to show the
// confirmation screen before collecting the customer's identity.
func (h *StorageHandler) HandleLookup(c echo.Context) error {
    rec, err := h.CheckOut.Lookup(c.Request().Context(), c.Param("code"))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, rec)
}

// HandleCheckOut handles POST /v1/storage/check-out.  The body carries the
// storage code (or QR payload), the identity the customer presented and
// optional notes.  Identity verification happens before any mutation; a
// mismatch returns 400 and leaves the record STORED.
func (h *StorageHandler) HandleCheckOut(c echo.Context) error {
    var body struct {
        StorageCode   string `json:"storage_code"`
        CustomerName  string `json:"customer_name"`
        CustomerEmail string `json:"customer_email"`
        StaffNotes    string `json:"staff_notes"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body", "kind": "validation"})
    }
    rec, err := h.CheckOut.CheckOut(c.Request().Context(), service.CheckOutInput{
        CodeOrPayload:  body.StorageCode,
        PresentedName:  body.CustomerName,
        PresentedEmail: body.CustomerEmail,
        StaffNotes:     body.StaffNotes,
    })
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, rec)
}
