package availability

import (
	"sort"

	"availcal/models"
)

// Tree is the per-day slot editing representation. Days that are absent are
// implicitly all-unavailable.
type Tree struct {
	cfg  SlotConfig
	days map[models.DayKey]models.DaySlots
}

func NewTree(cfg SlotConfig) *Tree {
	return &Tree{cfg: cfg, days: make(map[models.DayKey]models.DaySlots)}
}

func (t *Tree) Config() SlotConfig { return t.cfg }

// Day returns the stored slots for key, or nil and false when the day is default.
func (t *Tree) Day(key models.DayKey) (models.DaySlots, bool) {
	slots, ok := t.days[key]
	return slots, ok
}

// DayOrDefault returns a copy of the stored slots or a fresh default template.
func (t *Tree) DayOrDefault(key models.DayKey) models.DaySlots {
	if slots, ok := t.days[key]; ok {
		return slots.Clone()
	}
	return DefaultSlots(t.cfg)
}

// Ensure returns the stored slots for key, initializing them from DefaultSlots.
func (t *Tree) Ensure(key models.DayKey) models.DaySlots {
	slots, ok := t.days[key]
	if !ok {
		slots = DefaultSlots(t.cfg)
		t.days[key] = slots
	}
	return slots
}

// Set stores a copy of slots for key. The slots must share the tree's shape.
func (t *Tree) Set(key models.DayKey, slots models.DaySlots) error {
	if err := sameShape(DefaultSlots(t.cfg), slots); err != nil {
		return err
	}
	t.days[key] = slots.Clone()
	return nil
}

func (t *Tree) Delete(key models.DayKey) { delete(t.days, key) }

// HasAvailability reports whether key has at least one available slot.
func (t *Tree) HasAvailability(key models.DayKey) bool {
	slots, ok := t.days[key]
	return ok && slots.HasAvailability()
}

// Keys returns the stored days in chronological order.
func (t *Tree) Keys() []models.DayKey {
	keys := make([]models.DayKey, 0, len(t.days))
	for k := range t.days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

func (t *Tree) Len() int { return len(t.days) }

// Clone deep-copies the tree.
func (t *Tree) Clone() *Tree {
	out := NewTree(t.cfg)
	for k, v := range t.days {
		out.days[k] = v.Clone()
	}
	return out
}

// Snapshot exports the stored days for serialization.
func (t *Tree) Snapshot() []models.DayAvailability {
	keys := t.Keys()
	out := make([]models.DayAvailability, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.DayAvailability{Day: k, Slots: t.days[k].Clone()})
	}
	return out
}

// TreeFromSnapshot rebuilds a tree, rejecting days whose shape does not match cfg.
func TreeFromSnapshot(cfg SlotConfig, days []models.DayAvailability) (*Tree, error) {
	t := NewTree(cfg)
	for _, d := range days {
		if err := t.Set(d.Day, d.Slots); err != nil {
			return nil, err
		}
	}
	return t, nil
}
