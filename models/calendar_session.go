package models

import "time"

// CalendarMode is the editing state of a calendar session.
type CalendarMode string

const (
	ModeBrowsing         CalendarMode = "browsing"
	ModeEditingSingleDay CalendarMode = "editing-single-day"
	ModeEditingMultiple  CalendarMode = "editing-multiple"
)

// CalendarTheme is carried through untouched for the rendering client.
type CalendarTheme struct {
	PrimaryColor     string `bson:"primaryColor" json:"primaryColor"`
	SecondaryColor   string `bson:"secondaryColor" json:"secondaryColor"`
	FontFamily       string `bson:"fontFamily" json:"fontFamily"`
	FontSize         int    `bson:"fontSize" json:"fontSize"`
	PrimaryFontColor string `bson:"primaryFontColor" json:"primaryFontColor"`
}

// DefaultCalendarTheme mirrors the widget's stock palette.
func DefaultCalendarTheme() CalendarTheme {
	return CalendarTheme{
		PrimaryColor:     "#DF1B1B",
		SecondaryColor:   "#47b2a2",
		FontFamily:       "Roboto",
		FontSize:         12,
		PrimaryFontColor: "#222222",
	}
}

// CalendarOptions configures a session. Empty fields fall back to server defaults.
type CalendarOptions struct {
	StartTime string         `json:"startTime,omitempty"`
	EndTime   string         `json:"endTime,omitempty"`
	Interval  int            `json:"interval,omitempty"`
	Timezone  string         `json:"timezone,omitempty"`
	Theme     *CalendarTheme `json:"theme,omitempty"`
}

// SlotWindow is the slot configuration a range list was built with.
type SlotWindow struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	Interval  int    `bson:"interval" json:"interval"`
	Timezone  string `bson:"timezone" json:"timezone"`
}

// CalendarSession is the persisted snapshot of one editing session.
type CalendarSession struct {
	SessionID     string                 `json:"sessionId"`
	OwnerID       string                 `json:"ownerId"`
	StartTime     string                 `json:"startTime"`
	EndTime       string                 `json:"endTime"`
	Interval      int                    `json:"interval"`
	Timezone      string                 `json:"timezone"`
	StrictDecode  bool                   `json:"strictDecode"`
	Theme         CalendarTheme          `json:"theme"`
	Mode          CalendarMode           `json:"mode"`
	Year          int                    `json:"year"`
	Month         time.Month             `json:"month"`
	ActiveDay     int                    `json:"activeDay,omitempty"`
	Template      DaySlots               `json:"template"`
	Days          []DayAvailability      `json:"days"`
	Unapplied     []AvailabilityRange    `json:"unapplied,omitempty"`
	Quick         QuickAvailabilityIndex `json:"quick"`
	Saving        bool                   `json:"saving"`
	LastSaveError string                 `json:"lastSaveError,omitempty"`
	LastSavedAt   *time.Time             `json:"lastSavedAt,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// DayCell is one position of the month grid. Day is 0 for padding cells.
type DayCell struct {
	Day             int      `json:"day"`
	Label           string   `json:"label,omitempty"`
	HasAvailability bool     `json:"hasAvailability"`
	Disabled        bool     `json:"disabled"`
	Active          bool     `json:"active"`
	Quick           []string `json:"quick,omitempty"`
}

// SlotButton is one toggleable "start - end" entry of the selected template.
type SlotButton struct {
	Index     int    `json:"index"`
	Time      string `json:"time"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// CalendarView is what the client renders for a session.
type CalendarView struct {
	SessionID     string        `json:"sessionId"`
	Year          int           `json:"year"`
	Month         time.Month    `json:"month"`
	MonthName     string        `json:"monthName"`
	Mode          CalendarMode  `json:"mode"`
	ActiveDay     int           `json:"activeDay,omitempty"`
	CanGoBack     bool          `json:"canGoBack"`
	IsCurrent     bool          `json:"isCurrentMonth"`
	Weeks         [6][7]DayCell `json:"weeks"`
	Slots         []SlotButton  `json:"slots"`
	Unapplied     int           `json:"unappliedRanges"`
	Saving        bool          `json:"saving"`
	LastSaveError string        `json:"lastSaveError,omitempty"`
	LastSavedAt   *time.Time    `json:"lastSavedAt,omitempty"`
	Theme         CalendarTheme `json:"theme"`
}

// SaveRequest is handed to the persistence collaborator on save.
type SaveRequest struct {
	SessionID string              `json:"sessionId"`
	OwnerID   string              `json:"ownerId"`
	Window    SlotWindow          `json:"window"`
	Ranges    []AvailabilityRange `json:"ranges"`
}

// AvailabilityDocument is the stored flat range list of one owner.
type AvailabilityDocument struct {
	ID        string              `bson:"id" json:"id"`
	OwnerID   string              `bson:"ownerId" json:"ownerId"`
	Window    *SlotWindow         `bson:"window,omitempty" json:"window,omitempty"`
	Ranges    []AvailabilityRange `bson:"ranges" json:"ranges"`
	Version   int                 `bson:"version" json:"version"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}
