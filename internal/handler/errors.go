package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/sm227/TravelLight-sub000/internal/repository"
    "github.com/sm227/TravelLight-sub000/internal/service"
)

// writeError translates the storage lifecycle error taxonomy into HTTP
// responses.  Every failure kind is reported as a structured body so staff
// terminals can render precise messages: invalid_state carries the current
// status ("already checked in" vs "cancelled"), and conflict tells a
// retrying client it lost a race rather than attempted an illegal
// transition.
func writeError(c echo.Context, err error) error {
    var invalid *service.InvalidStateError
    var validation *service.ValidationError
    switch {
    case errors.Is(err, repository.ErrReservationNotFound),
        errors.Is(err, repository.ErrStorageRecordNotFound),
        errors.Is(err, repository.ErrLocationNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{
            "error": err.Error(),
            "kind":  "not_found",
        })
    case errors.As(err, &invalid):
        return c.JSON(http.StatusConflict, echo.Map{
            "error":  invalid.Error(),
            "kind":   "invalid_state",
            "status": invalid.Status,
        })
    case errors.As(err, &validation):
        return c.JSON(http.StatusBadRequest, echo.Map{
            "error": validation.Error(),
            "kind":  "validation",
        })
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{
            "error": "a concurrent operation won this transition",
            "kind":  "conflict",
        })
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
}
