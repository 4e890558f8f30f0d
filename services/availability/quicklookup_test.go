package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"availcal/models"
)

func TestBuildQuickIndex(t *testing.T) {
	now := at(2024, time.January, 1, 0, 0)
	ranges := []models.AvailabilityRange{
		rng(at(2024, time.January, 2, 14, 0), at(2024, time.January, 2, 15, 0)),
		rng(at(2023, time.December, 31, 9, 0), at(2023, time.December, 31, 10, 0)),
		rng(at(2024, time.January, 2, 9, 0), at(2024, time.January, 2, 11, 30)),
		rng(now, at(2024, time.January, 1, 9, 0)),
	}

	got := BuildQuickIndex(ranges, now, time.UTC)
	assert.Equal(t, models.QuickAvailabilityIndex{
		"January 2, 2024": {"14:00 - 15:00", "9:00 - 11:30"},
	}, got)
}

func TestBuildQuickIndexEmpty(t *testing.T) {
	got := BuildQuickIndex(nil, time.Now(), nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "March 1, 2024", DayLabel(models.DayKey{Year: 2024, Month: time.March, Day: 1}))
	assert.Equal(t, "8:00 AM", ButtonLabel(480))
	assert.Equal(t, "1:30 PM", ButtonLabel(13*60+30))
}
