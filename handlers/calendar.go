package handlers

import (
	"net/http"
	"strconv"

	"availcal/middleware"
	"availcal/models"
	"availcal/services/calendar"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler exposes calendar editing sessions.
type CalendarHandler struct {
	Service calendar.CalendarService
	Logger  *zap.Logger
}

func NewCalendarHandler(svc calendar.CalendarService, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{Service: svc, Logger: logger}
}

func ownerFrom(c *gin.Context) (string, bool) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Owner not authenticated"})
	}
	return ownerID, ok
}

// OpenSessionHandler handles POST /api/calendar/sessions.
func (h *CalendarHandler) OpenSessionHandler(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}

	var opts models.CalendarOptions
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
			return
		}
	}

	view, err := h.Service.OpenSession(c.Request.Context(), ownerID, opts)
	if err != nil {
		respondError(c, "Failed to open calendar session", err)
		return
	}
	h.Logger.Debug("calendar session opened", zap.String("sessionID", view.SessionID))
	c.JSON(http.StatusCreated, view)
}

// GetSessionHandler handles GET /api/calendar/sessions/:sessionID.
func (h *CalendarHandler) GetSessionHandler(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	view, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"), ownerID)
	if err != nil {
		respondError(c, "Failed to fetch calendar session", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ShiftMonthHandler handles POST /api/calendar/sessions/:sessionID/month.
func (h *CalendarHandler) ShiftMonthHandler(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	var body struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid delta in request body"})
		return
	}
	view, err := h.Service.ShiftMonth(c.Request.Context(), c.Param("sessionID"), ownerID, body.Delta)
	if err != nil {
		respondError(c, "Failed to change month", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// JumpToCurrentHandler handles POST /api/calendar/sessions/:sessionID/jump.
func (h *CalendarHandler) JumpToCurrentHandler(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	view, err := h.Service.JumpToCurrent(c.Request.Context(), c.Param("sessionID"), ownerID)
	if err != nil {
		respondError(c, "Failed to jump to current month", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SelectDayHandler handles POST /api/calendar/sessions/:sessionID/days/:day.
func (h *CalendarHandler) SelectDayHandler(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day in path"})
		return
	}
	view, err := h.Service.SelectDay(c.Request.Context(), c.Param("sessionID"), ownerID, day)
	if err != nil {
		respondError(c, "Failed to select day", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ToggleMultipleHandler handles POST /api/calendar/sessions/:sessionID/multiple.
func (h *CalendarHandler) ToggleMultipleHandler(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	view, err := h.Service.ToggleMultiple(c.Request.Context(), c.Param("sessionID"), ownerID)
	if err != nil {
		respondError(c, "Failed to toggle multiple-day mode", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ToggleTimeHandler handles POST /api/calendar/sessions/:sessionID/times/:index.
func (h *CalendarHandler) ToggleTimeHandler(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot index in path"})
		return
	}
	view, err := h.Service.ToggleTime(c.Request.Context(), c.Param("sessionID"), ownerID, index)
	if err != nil {
		respondError(c, "Failed to toggle slot", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SaveHandler handles POST /api/calendar/sessions/:sessionID/save.
// Responds 202 while the save is still in flight.
func (h *CalendarHandler) SaveHandler(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	view, err := h.Service.Save(c.Request.Context(), c.Param("sessionID"), ownerID)
	if err != nil {
		respondError(c, "Failed to save availability", err)
		return
	}
	status := http.StatusOK
	if view.Saving {
		status = http.StatusAccepted
	}
	c.JSON(status, view)
}

// CloseSessionHandler handles DELETE /api/calendar/sessions/:sessionID.
func (h *CalendarHandler) CloseSessionHandler(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	if err := h.Service.CloseSession(c.Request.Context(), c.Param("sessionID"), ownerID); err != nil {
		respondError(c, "Failed to close calendar session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Calendar session closed"})
}

// ResetAvailabilityHandler handles DELETE /api/calendar/availability.
func (h *CalendarHandler) ResetAvailabilityHandler(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	if err := h.Service.ResetAvailability(c.Request.Context(), ownerID); err != nil {
		respondError(c, "Failed to reset availability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability reset"})
}
