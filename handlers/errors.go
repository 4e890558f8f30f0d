package handlers

import (
	"errors"
	"net/http"

	availabilityRepo "availcal/database/repository/availability"
	sessionRepo "availcal/database/repository/session"
	"availcal/services/availability"
	"availcal/services/calendar"
	"availcal/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, message string, err error) {
	var (
		alignErr    *availability.ClockAlignmentError
		overlapErr  *availability.OverlappingRangeError
		rangeErr    *availability.InvalidRangeError
		intervalErr *availability.InvalidIntervalError
		clockErr    *availability.ClockFormatError
		shapeErr    *availability.ShapeMismatchError
	)

	switch {
	case errors.Is(err, sessionRepo.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "sessionNotFound", message, err.Error())
	case errors.Is(err, availabilityRepo.ErrAvailabilityNotFound):
		utils.JSONError(c, http.StatusNotFound, "availabilityNotFound", message, err.Error())
	case errors.Is(err, calendar.ErrWindowConflict):
		utils.JSONError(c, http.StatusConflict, "windowConflict", message, err.Error())
	case errors.Is(err, calendar.ErrPastMonth):
		utils.JSONError(c, http.StatusUnprocessableEntity, "pastMonth", message, err.Error())
	case errors.Is(err, calendar.ErrDayUnavailable):
		utils.JSONError(c, http.StatusUnprocessableEntity, "dayUnavailable", message, err.Error())
	case errors.Is(err, calendar.ErrSlotOutOfRange):
		utils.JSONError(c, http.StatusUnprocessableEntity, "slotOutOfRange", message, err.Error())
	case errors.Is(err, calendar.ErrInvalidZone):
		utils.JSONError(c, http.StatusBadRequest, "invalidTimezone", message, err.Error())
	case errors.Is(err, calendar.ErrSaveInFlight):
		utils.JSONError(c, http.StatusConflict, "saveInFlight", message, err.Error())
	case errors.As(err, &alignErr):
		utils.JSONError(c, http.StatusBadRequest, alignErr.Code, message, err.Error())
	case errors.As(err, &overlapErr):
		utils.JSONError(c, http.StatusBadRequest, overlapErr.Code, message, err.Error())
	case errors.As(err, &rangeErr):
		utils.JSONError(c, http.StatusBadRequest, rangeErr.Code, message, err.Error())
	case errors.As(err, &intervalErr):
		utils.JSONError(c, http.StatusBadRequest, intervalErr.Code, message, err.Error())
	case errors.As(err, &clockErr):
		utils.JSONError(c, http.StatusBadRequest, clockErr.Code, message, err.Error())
	case errors.As(err, &shapeErr):
		utils.JSONError(c, http.StatusBadRequest, shapeErr.Code, message, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal", message, err.Error())
	}
}
