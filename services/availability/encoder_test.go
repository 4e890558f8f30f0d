package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"availcal/models"
)

func dayWith(t *testing.T, cfg SlotConfig, times ...string) models.DaySlots {
	t.Helper()
	slots := DefaultSlots(cfg)
	for _, want := range times {
		found := false
		for i := range slots {
			if slots[i].Time == want {
				slots[i].Available = true
				found = true
			}
		}
		require.True(t, found, "no slot at %s", want)
	}
	return slots
}

func TestEncodeSingleRun(t *testing.T) {
	cfg, err := NewSlotConfig("8:00", "11:00", 60)
	require.NoError(t, err)

	tree := NewTree(cfg)
	key := models.DayKey{Year: 2024, Month: time.March, Day: 1}
	require.NoError(t, tree.Set(key, dayWith(t, cfg, "09:00", "10:00")))

	got := Encode(tree, time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, at(2024, time.March, 1, 9, 0), got[0].Start)
	assert.Equal(t, at(2024, time.March, 1, 11, 0), got[0].End)
}

func TestEncodeRunsAndOrdering(t *testing.T) {
	cfg := DefaultSlotConfig()
	tree := NewTree(cfg)
	later := models.DayKey{Year: 2024, Month: time.April, Day: 2}
	earlier := models.DayKey{Year: 2024, Month: time.March, Day: 30}
	require.NoError(t, tree.Set(later, dayWith(t, cfg, "08:00", "12:00", "13:00")))
	require.NoError(t, tree.Set(earlier, dayWith(t, cfg, "15:00")))
	require.NoError(t, tree.Set(models.DayKey{Year: 2024, Month: time.March, Day: 31}, DefaultSlots(cfg)))

	got := Encode(tree, time.UTC)
	assert.Equal(t, []models.AvailabilityRange{
		rng(at(2024, time.March, 30, 15, 0), at(2024, time.March, 30, 16, 0)),
		rng(at(2024, time.April, 2, 8, 0), at(2024, time.April, 2, 9, 0)),
		rng(at(2024, time.April, 2, 12, 0), at(2024, time.April, 2, 14, 0)),
	}, got)
}

func TestEncodeClosesTrailingRunAtWindowEnd(t *testing.T) {
	cfg := DefaultSlotConfig()
	tree := NewTree(cfg)
	key := models.DayKey{Year: 2024, Month: time.March, Day: 1}
	require.NoError(t, tree.Set(key, dayWith(t, cfg, "18:00", "19:00", "20:00")))

	got := Encode(tree, time.UTC)
	assert.Equal(t, []models.AvailabilityRange{rng(at(2024, time.March, 1, 18, 0), at(2024, time.March, 1, 20, 0))}, got)

	// Only the zero-width closing slot set: nothing to emit.
	require.NoError(t, tree.Set(key, dayWith(t, cfg, "20:00")))
	assert.Empty(t, Encode(tree, time.UTC))

	odd, err := NewSlotConfig("8:00", "20:00", 90)
	require.NoError(t, err)
	oddTree := NewTree(odd)
	require.NoError(t, oddTree.Set(key, dayWith(t, odd, "18:30")))
	assert.Equal(t, []models.AvailabilityRange{rng(at(2024, time.March, 1, 18, 30), at(2024, time.March, 1, 20, 0))}, Encode(oddTree, time.UTC))
}

func TestEncodeUsesLocation(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)
	cfg := DefaultSlotConfig()
	tree := NewTree(cfg)
	require.NoError(t, tree.Set(models.DayKey{Year: 2024, Month: time.March, Day: 1}, dayWith(t, cfg, "09:00")))

	got := Encode(tree, nairobi)
	require.Len(t, got, 1)
	assert.True(t, got[0].Start.Equal(at(2024, time.March, 1, 6, 0)))
}

func TestRoundTrip(t *testing.T) {
	cfgs := map[string]SlotConfig{"hourly": DefaultSlotConfig()}
	quarter, err := NewSlotConfig("7:30", "18:45", 15)
	require.NoError(t, err)
	cfgs["quarter"] = quarter

	for name, cfg := range cfgs {
		t.Run(name, func(t *testing.T) {
			tree := NewTree(cfg)
			n := cfg.SlotCount()
			for d := 1; d <= 5; d++ {
				slots := DefaultSlots(cfg)
				for i := 0; i < n-1; i++ {
					// deterministic but irregular pattern
					slots[i].Available = (i*d+d)%3 != 0
				}
				require.NoError(t, tree.Set(models.DayKey{Year: 2025, Month: time.January, Day: d}, slots))
			}

			ranges := Encode(tree, time.UTC)
			res, err := Decode(cfg, ranges, DecodeOptions{Strict: true})
			require.NoError(t, err)

			for _, key := range tree.Keys() {
				want, _ := tree.Day(key)
				got := res.Tree.DayOrDefault(key)
				assert.Equal(t, want, got, key.String())
			}
			assert.Equal(t, ranges, Encode(res.Tree, time.UTC))
		})
	}
}
