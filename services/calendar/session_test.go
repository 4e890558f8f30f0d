package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"availcal/models"
	"availcal/services/availability"
)

// 2024-03-15 is a Friday; March 2024 starts on a Friday.
var fixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func testSettings() Settings {
	return Settings{
		StartTime: "8:00",
		EndTime:   "20:00",
		Interval:  60,
		Location:  time.UTC,
		Strict:    true,
		Theme:     models.DefaultCalendarTheme(),
	}
}

func newTestSession(t *testing.T, ranges ...models.AvailabilityRange) *Session {
	t.Helper()
	s, skipped, err := NewSession("sess-1", "owner-1", testSettings(), ranges, clock)
	require.NoError(t, err)
	require.Empty(t, skipped)
	return s
}

func hours(day, from, to int) models.AvailabilityRange {
	return models.AvailabilityRange{
		Start: time.Date(2024, time.March, day, from, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, day, to, 0, 0, 0, time.UTC),
	}
}

func availableTimes(slots models.DaySlots) []string {
	var out []string
	for _, s := range slots {
		if s.Available {
			out = append(out, s.Time)
		}
	}
	return out
}

func march(day int) models.DayKey {
	return models.DayKey{Year: 2024, Month: time.March, Day: day}
}

func TestNewSessionOpensCurrentMonth(t *testing.T) {
	s := newTestSession(t, hours(20, 9, 11), hours(1, 9, 10))

	v := s.View()
	assert.Equal(t, 2024, v.Year)
	assert.Equal(t, time.March, v.Month)
	assert.Equal(t, "March", v.MonthName)
	assert.Equal(t, models.ModeBrowsing, v.Mode)
	assert.True(t, v.IsCurrent)
	assert.False(t, v.CanGoBack)

	assert.Len(t, s.Template(), 13)
	assert.Empty(t, availableTimes(s.Template()))

	// only future ranges are previewed
	assert.Equal(t, models.QuickAvailabilityIndex{"March 20, 2024": {"9:00 - 11:00"}}, s.Quick())
	assert.True(t, s.Tree().HasAvailability(march(1)))
}

func TestNewSessionRejectsMisalignedRangeInStrictMode(t *testing.T) {
	bad := models.AvailabilityRange{
		Start: time.Date(2024, time.March, 20, 9, 30, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 20, 11, 0, 0, 0, time.UTC),
	}
	_, _, err := NewSession("s", "o", testSettings(), []models.AvailabilityRange{bad}, clock)

	var alignErr *availability.ClockAlignmentError
	require.True(t, errors.As(err, &alignErr))
	assert.Equal(t, availability.CodeClockAlignment, alignErr.Code)
}

func TestNewSessionLenientReportsSkipped(t *testing.T) {
	settings := testSettings()
	settings.Strict = false
	inverted := hours(20, 11, 9)

	s, skipped, err := NewSession("s", "o", settings, []models.AvailabilityRange{hours(21, 9, 10), inverted}, clock)
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.Equal(t, 1, skipped[0].Index)
	assert.True(t, s.Tree().HasAvailability(march(21)))
	assert.Equal(t, []models.AvailabilityRange{inverted}, s.Unapplied())
	assert.Equal(t, 1, s.View().Unapplied)

	restored, err := FromSnapshot(s.Snapshot(), clock)
	require.NoError(t, err)
	assert.Equal(t, s.Unapplied(), restored.Unapplied())

	ranges, err := restored.BeginSave()
	require.NoError(t, err)
	assert.Equal(t, []models.AvailabilityRange{inverted, hours(21, 9, 10)}, ranges, "kept verbatim, ordered by start")
}

func TestShiftMonth(t *testing.T) {
	s := newTestSession(t)

	require.ErrorIs(t, s.ShiftMonth(-1), ErrPastMonth)

	require.NoError(t, s.ShiftMonth(1))
	v := s.View()
	assert.Equal(t, time.April, v.Month)
	assert.True(t, v.CanGoBack)

	require.NoError(t, s.ShiftMonth(9))
	v = s.View()
	assert.Equal(t, 2025, v.Year)
	assert.Equal(t, time.January, v.Month)

	require.NoError(t, s.ShiftMonth(-2))
	v = s.View()
	assert.Equal(t, 2024, v.Year)
	assert.Equal(t, time.November, v.Month)

	s.JumpToCurrent()
	assert.Equal(t, time.March, s.View().Month)
}

func TestSelectDayRejectsPastAndToday(t *testing.T) {
	s := newTestSession(t)

	for _, day := range []int{0, 10, 15, 32} {
		err := s.SelectDay(day)
		assert.ErrorIs(t, err, ErrDayUnavailable, "day %d", day)
	}
	assert.Equal(t, models.ModeBrowsing, s.Mode())

	require.NoError(t, s.ShiftMonth(1))
	require.NoError(t, s.SelectDay(1), "every day of a future month is selectable")
}

func TestSelectDayLoadsExistingSlots(t *testing.T) {
	s := newTestSession(t, hours(20, 9, 11))

	require.NoError(t, s.SelectDay(20))
	assert.Equal(t, models.ModeEditingSingleDay, s.Mode())
	assert.Equal(t, 20, s.ActiveDay())
	assert.Equal(t, []string{"09:00", "10:00"}, availableTimes(s.Template()))

	require.NoError(t, s.SelectDay(21))
	assert.Equal(t, 21, s.ActiveDay())
	assert.Empty(t, availableTimes(s.Template()))
}

func TestToggleTimeWritesThroughToActiveDay(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.SelectDay(16))

	require.NoError(t, s.ToggleTime(0))
	require.NoError(t, s.ToggleTime(1))

	slots, ok := s.Tree().Day(march(16))
	require.True(t, ok)
	assert.Equal(t, []string{"08:00", "09:00"}, availableTimes(slots))
	assert.Equal(t, []models.AvailabilityRange{hours(16, 8, 10)}, s.Ranges())
	assert.Equal(t, []string{"8:00 - 10:00"}, s.Quick()["March 16, 2024"])

	require.NoError(t, s.ToggleTime(0))
	assert.Equal(t, []models.AvailabilityRange{hours(16, 9, 10)}, s.Ranges())
}

func TestToggleTimeBounds(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.SelectDay(16))

	for _, i := range []int{-1, 12, 13} {
		assert.ErrorIs(t, s.ToggleTime(i), ErrSlotOutOfRange, "index %d", i)
	}
	require.NoError(t, s.ToggleTime(11))
	assert.Equal(t, []models.AvailabilityRange{hours(16, 19, 20)}, s.Ranges())
}

func TestToggleTimeWithoutActiveDayOnlyEditsTemplate(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.ToggleTime(2))
	assert.Equal(t, []string{"10:00"}, availableTimes(s.Template()))
	assert.Equal(t, 0, s.Tree().Len())
}

func TestMultipleModeBroadcastsTemplate(t *testing.T) {
	s := newTestSession(t, hours(20, 8, 9))

	s.ToggleMultiple()
	assert.Equal(t, models.ModeEditingMultiple, s.Mode())
	assert.Equal(t, 0, s.ActiveDay())

	require.NoError(t, s.ToggleTime(1))
	require.NoError(t, s.SelectDay(20))
	require.NoError(t, s.SelectDay(21))
	assert.Equal(t, models.ModeEditingMultiple, s.Mode())

	tree := s.Tree()
	day20, _ := tree.Day(march(20))
	day21, _ := tree.Day(march(21))
	assert.Equal(t, []string{"08:00", "09:00"}, availableTimes(day20), "merged into existing slots")
	assert.Equal(t, []string{"09:00"}, availableTimes(day21))

	// later template edits must not leak into days already written
	require.NoError(t, s.ToggleTime(5))
	day21, _ = s.Tree().Day(march(21))
	assert.Equal(t, []string{"09:00"}, availableTimes(day21))

	assert.Equal(t, []models.AvailabilityRange{hours(20, 8, 10), hours(21, 9, 10)}, s.Ranges())

	s.ToggleMultiple()
	assert.Equal(t, models.ModeBrowsing, s.Mode())
}

func TestNavigationResetsEditing(t *testing.T) {
	s := newTestSession(t)
	s.ToggleMultiple()
	require.NoError(t, s.ToggleTime(0))

	require.NoError(t, s.ShiftMonth(1))
	assert.Equal(t, models.ModeBrowsing, s.Mode())
	assert.Empty(t, availableTimes(s.Template()))

	require.NoError(t, s.SelectDay(3))
	s.JumpToCurrent()
	assert.Equal(t, models.ModeBrowsing, s.Mode())
	assert.Equal(t, 0, s.ActiveDay())
}

func TestSaveLifecycle(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.SelectDay(16))
	require.NoError(t, s.ToggleTime(0))

	ranges, err := s.BeginSave()
	require.NoError(t, err)
	assert.Equal(t, []models.AvailabilityRange{hours(16, 8, 9)}, ranges)
	assert.True(t, s.Saving())

	_, err = s.BeginSave()
	assert.ErrorIs(t, err, ErrSaveInFlight)

	s.CompleteSave(errors.New("disk full"))
	v := s.View()
	assert.False(t, v.Saving)
	assert.Equal(t, "disk full", v.LastSaveError)
	assert.Nil(t, v.LastSavedAt)

	_, err = s.BeginSave()
	require.NoError(t, err)
	s.CompleteSave(nil)
	v = s.View()
	assert.Empty(t, v.LastSaveError)
	require.NotNil(t, v.LastSavedAt)
	assert.Equal(t, fixedNow, *v.LastSavedAt)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestSession(t, hours(20, 9, 11))
	require.NoError(t, s.SelectDay(16))
	require.NoError(t, s.ToggleTime(3))

	restored, err := FromSnapshot(s.Snapshot(), clock)
	require.NoError(t, err)
	assert.Equal(t, s.View(), restored.View())
	assert.Equal(t, s.Ranges(), restored.Ranges())

	require.NoError(t, restored.ToggleTime(4))
	assert.Equal(t, []models.AvailabilityRange{hours(16, 11, 13), hours(20, 9, 11)}, restored.Ranges())
}

func TestViewGrid(t *testing.T) {
	s := newTestSession(t, hours(20, 9, 11))
	require.NoError(t, s.SelectDay(16))
	v := s.View()

	first := v.Weeks[0][5]
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, "March 1, 2024", first.Label)
	assert.True(t, first.Disabled)
	assert.True(t, v.Weeks[0][0].Disabled, "padding")
	assert.Equal(t, 0, v.Weeks[0][0].Day)

	// March 16 is a Saturday in the third row
	cell := v.Weeks[2][6]
	assert.Equal(t, 16, cell.Day)
	assert.True(t, cell.Active)
	assert.False(t, cell.Disabled)

	cell = v.Weeks[2][5]
	assert.Equal(t, 15, cell.Day)
	assert.True(t, cell.Disabled, "today")

	cell = v.Weeks[3][3]
	assert.Equal(t, 20, cell.Day)
	assert.True(t, cell.HasAvailability)
	assert.Equal(t, []string{"9:00 - 11:00"}, cell.Quick)

	assert.Equal(t, 31, v.Weeks[5][0].Day)
	assert.Equal(t, 0, v.Weeks[5][1].Day)

	require.Len(t, v.Slots, 12)
	assert.Equal(t, "8:00 AM - 9:00 AM", v.Slots[0].Label)
	assert.Equal(t, "7:00 PM - 8:00 PM", v.Slots[11].Label)
	assert.Equal(t, "08:00", v.Slots[0].Time)
}

func TestViewWithUnevenInterval(t *testing.T) {
	settings := testSettings()
	settings.Interval = 50
	s, _, err := NewSession("s", "o", settings, nil, clock)
	require.NoError(t, err)

	// the last slot starts at 19:40 and runs to the end of the window
	v := s.View()
	require.Len(t, v.Slots, 15)
	assert.Equal(t, "7:40 PM - 8:00 PM", v.Slots[14].Label)

	require.NoError(t, s.SelectDay(16))
	require.NoError(t, s.ToggleTime(14))
	assert.Equal(t, []models.AvailabilityRange{{
		Start: time.Date(2024, time.March, 16, 19, 40, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 16, 20, 0, 0, 0, time.UTC),
	}}, s.Ranges())
}

func TestClearingADayRemovesIt(t *testing.T) {
	s := newTestSession(t, hours(20, 9, 10))
	require.NoError(t, s.SelectDay(20))

	require.NoError(t, s.ToggleTime(1))
	_, ok := s.Tree().Day(march(20))
	assert.False(t, ok)
	assert.Empty(t, s.Ranges())
	assert.Empty(t, s.Quick())
	assert.False(t, s.View().Weeks[3][3].HasAvailability)
}
