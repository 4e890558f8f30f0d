package availability

import (
	"fmt"
	"time"
)

const (
	CodeClockFormat     = "clockFormat"
	CodeClockAlignment  = "clockAlignment"
	CodeInvalidRange    = "invalidRange"
	CodeInvalidInterval = "invalidInterval"
	CodeOverlap         = "overlappingRange"
	CodeShapeMismatch   = "shapeMismatch"
)

// ClockFormatError reports an unparsable or out-of-order clock value.
type ClockFormatError struct {
	Code    string
	Value   string
	Message string
}

func (e *ClockFormatError) Error() string {
	return fmt.Sprintf("%s: %q: %s", e.Code, e.Value, e.Message)
}

func newClockFormatError(value, msg string) error {
	return &ClockFormatError{Code: CodeClockFormat, Value: value, Message: msg}
}

// InvalidIntervalError reports an interval outside 1..60 minutes.
type InvalidIntervalError struct {
	Code     string
	Interval int
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("%s: interval %d must be between %d and %d minutes", e.Code, e.Interval, MinInterval, MaxInterval)
}

// ClockAlignmentError reports a range boundary that does not land on a slot boundary.
type ClockAlignmentError struct {
	Code  string
	Day   string
	Clock string
	Edge  string // "start" or "end"
}

func (e *ClockAlignmentError) Error() string {
	return fmt.Sprintf("%s: %s boundary %s on %s does not match a slot", e.Code, e.Edge, e.Clock, e.Day)
}

// OverlappingRangeError reports a range marking a slot that is already available.
type OverlappingRangeError struct {
	Code  string
	Day   string
	Clock string
}

func (e *OverlappingRangeError) Error() string {
	return fmt.Sprintf("%s: slot %s on %s is covered by more than one range", e.Code, e.Clock, e.Day)
}

// InvalidRangeError reports a range that is empty, inverted or spans several days.
type InvalidRangeError struct {
	Code    string
	Start   time.Time
	End     time.Time
	Message string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s: [%s, %s]: %s", e.Code, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339), e.Message)
}

// ShapeMismatchError reports slot arrays built from different configurations.
type ShapeMismatchError struct {
	Code    string
	Message string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
