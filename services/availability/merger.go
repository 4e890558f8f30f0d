package availability

import (
	"fmt"

	"availcal/models"
)

// Merge returns the slot-wise union of a and b. Both must come from the same SlotConfig.
func Merge(a, b models.DaySlots) (models.DaySlots, error) {
	if err := sameShape(a, b); err != nil {
		return nil, err
	}
	out := make(models.DaySlots, len(a))
	for i := range a {
		out[i] = models.TimeSlot{Time: a[i].Time, Available: a[i].Available || b[i].Available}
	}
	return out, nil
}

func sameShape(a, b models.DaySlots) error {
	if len(a) != len(b) {
		return &ShapeMismatchError{
			Code:    CodeShapeMismatch,
			Message: fmt.Sprintf("slot count %d does not match %d", len(a), len(b)),
		}
	}
	for i := range a {
		if a[i].Time != b[i].Time {
			return &ShapeMismatchError{
				Code:    CodeShapeMismatch,
				Message: fmt.Sprintf("slot %d is %s in one array and %s in the other", i, a[i].Time, b[i].Time),
			}
		}
	}
	return nil
}
