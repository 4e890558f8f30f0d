package handlers

import (
	"fmt"
	"net/http"
	"time"

	"availcal/models"
	"availcal/services/availability"
	"availcal/services/calendar"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the stateless conversion endpoints.
type AvailabilityHandler struct {
	Defaults calendar.Settings
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewAvailabilityHandler(defaults calendar.Settings, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Defaults: defaults, Logger: logger, Now: time.Now}
}

// slotWindow is the optional per-request calendar window.
type slotWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Interval  int    `json:"interval"`
	Timezone  string `json:"timezone"`
}

func (h *AvailabilityHandler) resolve(w slotWindow) (availability.SlotConfig, *time.Location, error) {
	start, end, interval := h.Defaults.StartTime, h.Defaults.EndTime, h.Defaults.Interval
	if w.StartTime != "" {
		start = w.StartTime
	}
	if w.EndTime != "" {
		end = w.EndTime
	}
	if w.Interval != 0 {
		interval = w.Interval
	}
	cfg, err := availability.NewSlotConfig(start, end, interval)
	if err != nil {
		return availability.SlotConfig{}, nil, err
	}

	loc := h.Defaults.Location
	if w.Timezone != "" {
		loc, err = time.LoadLocation(w.Timezone)
		if err != nil {
			return availability.SlotConfig{}, nil, fmt.Errorf("%w %q: %v", calendar.ErrInvalidZone, w.Timezone, err)
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	return cfg, loc, nil
}

func (h *AvailabilityHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// SlotsHandler handles POST /api/availability/slots.
func (h *AvailabilityHandler) SlotsHandler(c *gin.Context) {
	var req slotWindow
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
			return
		}
	}
	cfg, _, err := h.resolve(req)
	if err != nil {
		respondError(c, "Invalid slot configuration", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": availability.DefaultSlots(cfg)})
}

type decodeRequest struct {
	slotWindow
	Strict *bool                      `json:"strict"`
	Ranges []models.AvailabilityRange `json:"ranges"`
}

type skippedRange struct {
	Index int                      `json:"index"`
	Range models.AvailabilityRange `json:"range"`
	Error string                   `json:"error"`
}

// DecodeHandler handles POST /api/availability/decode.
func (h *AvailabilityHandler) DecodeHandler(c *gin.Context) {
	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	cfg, loc, err := h.resolve(req.slotWindow)
	if err != nil {
		respondError(c, "Invalid slot configuration", err)
		return
	}
	strict := h.Defaults.Strict
	if req.Strict != nil {
		strict = *req.Strict
	}

	res, err := availability.Decode(cfg, req.Ranges, availability.DecodeOptions{Location: loc, Strict: strict})
	if err != nil {
		respondError(c, "Failed to decode availability", err)
		return
	}

	skipped := make([]skippedRange, 0, len(res.Skipped))
	for _, sk := range res.Skipped {
		skipped = append(skipped, skippedRange{Index: sk.Index, Range: sk.Range, Error: sk.Err.Error()})
	}
	if len(skipped) > 0 {
		h.Logger.Info("lenient decode skipped ranges", zap.Int("count", len(skipped)))
	}
	c.JSON(http.StatusOK, gin.H{"days": res.Tree.Snapshot(), "skipped": skipped})
}

type encodeRequest struct {
	slotWindow
	Days []models.DayAvailability `json:"days"`
}

// EncodeHandler handles POST /api/availability/encode.
func (h *AvailabilityHandler) EncodeHandler(c *gin.Context) {
	var req encodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	cfg, loc, err := h.resolve(req.slotWindow)
	if err != nil {
		respondError(c, "Invalid slot configuration", err)
		return
	}
	tree, err := availability.TreeFromSnapshot(cfg, req.Days)
	if err != nil {
		respondError(c, "Day slots do not match the slot configuration", err)
		return
	}
	ranges := availability.Encode(tree, loc)
	if ranges == nil {
		ranges = []models.AvailabilityRange{}
	}
	c.JSON(http.StatusOK, gin.H{"ranges": ranges})
}

type quickRequest struct {
	Timezone string                     `json:"timezone"`
	Now      *time.Time                 `json:"now"`
	Ranges   []models.AvailabilityRange `json:"ranges"`
}

// QuickHandler handles POST /api/availability/quick.
func (h *AvailabilityHandler) QuickHandler(c *gin.Context) {
	var req quickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	_, loc, err := h.resolve(slotWindow{Timezone: req.Timezone})
	if err != nil {
		respondError(c, "Invalid timezone", err)
		return
	}
	now := h.now()
	if req.Now != nil {
		now = *req.Now
	}
	c.JSON(http.StatusOK, gin.H{"quick": availability.BuildQuickIndex(req.Ranges, now, loc)})
}
