package availability

import (
	"fmt"
	"time"

	"availcal/models"
)

// DecodeOptions controls how a flat range list is turned into a Tree.
type DecodeOptions struct {
	// Location is the calendar's timezone; ranges are converted into it before
	// their day and clock are derived. Defaults to UTC.
	Location *time.Location
	// Strict rejects misaligned, overlapping and invalid ranges. When false,
	// boundaries clamp to the nearest slot, overlaps are unioned and unusable
	// ranges are skipped.
	Strict bool
}

// SkippedRange is an input range that lenient decoding could not apply.
type SkippedRange struct {
	Index int
	Range models.AvailabilityRange
	Err   error
}

// DecodeResult carries the decoded tree and, in lenient mode, what was dropped.
type DecodeResult struct {
	Tree    *Tree
	Skipped []SkippedRange
}

// Decode converts the persisted flat range list into a Tree.
func Decode(cfg SlotConfig, ranges []models.AvailabilityRange, opts DecodeOptions) (*DecodeResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	res := &DecodeResult{Tree: NewTree(cfg)}
	for i, r := range ranges {
		var err error
		if opts.Strict {
			err = decodeStrict(res.Tree, r, loc)
		} else {
			err = decodeLenient(res.Tree, r, loc)
		}
		if err == nil {
			continue
		}
		if opts.Strict {
			return nil, fmt.Errorf("range %d: %w", i, err)
		}
		res.Skipped = append(res.Skipped, SkippedRange{Index: i, Range: r, Err: err})
	}
	return res, nil
}

type rangeClock struct {
	day      models.DayKey
	startMin int
	endMin   int
	aligned  bool // no seconds or sub-second part on either edge
}

func splitRange(r models.AvailabilityRange, loc *time.Location) (rangeClock, error) {
	start, end := r.Start.In(loc), r.End.In(loc)
	if !start.Before(end) {
		return rangeClock{}, &InvalidRangeError{Code: CodeInvalidRange, Start: start, End: end, Message: "start must be before end"}
	}
	day := models.DayKeyOf(start)
	if models.DayKeyOf(end) != day {
		return rangeClock{}, &InvalidRangeError{Code: CodeInvalidRange, Start: start, End: end, Message: "range spans more than one day"}
	}
	return rangeClock{
		day:      day,
		startMin: start.Hour()*60 + start.Minute(),
		endMin:   end.Hour()*60 + end.Minute(),
		aligned:  start.Second() == 0 && start.Nanosecond() == 0 && end.Second() == 0 && end.Nanosecond() == 0,
	}, nil
}

func decodeStrict(t *Tree, r models.AvailabilityRange, loc *time.Location) error {
	rc, err := splitRange(r, loc)
	if err != nil {
		return err
	}
	cfg := t.cfg
	n := cfg.SlotCount()

	si, ok := cfg.boundaryIndex(rc.startMin)
	if !ok || !rc.aligned || si >= n || cfg.SlotStart(si) != rc.startMin {
		return &ClockAlignmentError{Code: CodeClockAlignment, Day: rc.day.String(), Clock: FormatClock(rc.startMin), Edge: "start"}
	}
	ei, ok := cfg.boundaryIndex(rc.endMin)
	if !ok || !rc.aligned || ei <= si {
		return &ClockAlignmentError{Code: CodeClockAlignment, Day: rc.day.String(), Clock: FormatClock(rc.endMin), Edge: "end"}
	}

	if existing, ok := t.Day(rc.day); ok {
		for i := si; i < ei; i++ {
			if existing[i].Available {
				return &OverlappingRangeError{Code: CodeOverlap, Day: rc.day.String(), Clock: existing[i].Time}
			}
		}
	}
	mark(t.Ensure(rc.day), si, ei)
	return nil
}

func decodeLenient(t *Tree, r models.AvailabilityRange, loc *time.Location) error {
	rc, err := splitRange(r, loc)
	if err != nil {
		return err
	}
	cfg := t.cfg
	si := cfg.nearestBoundary(rc.startMin)
	ei := cfg.nearestBoundary(rc.endMin)
	if si >= cfg.SlotCount() || ei <= si {
		return &InvalidRangeError{
			Code:    CodeInvalidRange,
			Start:   r.Start,
			End:     r.End,
			Message: "range falls outside the slot window after clamping",
		}
	}
	mark(t.Ensure(rc.day), si, ei)
	return nil
}

func mark(slots models.DaySlots, from, to int) {
	for i := from; i < to && i < len(slots); i++ {
		slots[i].Available = true
	}
}
