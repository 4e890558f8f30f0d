package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Stateless availability endpoints
	SlotsHandler  gin.HandlerFunc
	DecodeHandler gin.HandlerFunc
	EncodeHandler gin.HandlerFunc
	QuickHandler  gin.HandlerFunc

	// Calendar session endpoints
	OpenSession    gin.HandlerFunc
	GetSession     gin.HandlerFunc
	ShiftMonth     gin.HandlerFunc
	JumpToCurrent  gin.HandlerFunc
	SelectDay      gin.HandlerFunc
	ToggleMultiple gin.HandlerFunc
	ToggleTime     gin.HandlerFunc
	Save           gin.HandlerFunc
	CloseSession   gin.HandlerFunc

	ResetAvailability gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires handler methods into a bundle.
func NewHandlerBundle(av *AvailabilityHandler, cal *CalendarHandler, health gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		SlotsHandler:  av.SlotsHandler,
		DecodeHandler: av.DecodeHandler,
		EncodeHandler: av.EncodeHandler,
		QuickHandler:  av.QuickHandler,

		OpenSession:    cal.OpenSessionHandler,
		GetSession:     cal.GetSessionHandler,
		ShiftMonth:     cal.ShiftMonthHandler,
		JumpToCurrent:  cal.JumpToCurrentHandler,
		SelectDay:      cal.SelectDayHandler,
		ToggleMultiple: cal.ToggleMultipleHandler,
		ToggleTime:     cal.ToggleTimeHandler,
		Save:           cal.SaveHandler,
		CloseSession:   cal.CloseSessionHandler,

		ResetAvailability: cal.ResetAvailabilityHandler,

		HealthHandler: health,
	}
}
