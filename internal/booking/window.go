package booking

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// OperatingHours bounds bookable times of day, in minutes since midnight.
// Windows must start at or after Open; they may end at Close but not past it.
type OperatingHours struct {
	Open  int
	Close int
}

// DefaultHours is the 09:00-18:00 office schedule the rooms operate on.
var DefaultHours = OperatingHours{Open: 9 * 60, Close: 18 * 60}

func (h OperatingHours) OpenString() string  { return formatTimeOfDay(h.Open) }
func (h OperatingHours) CloseString() string { return formatTimeOfDay(h.Close) }

// ParseOperatingHours builds OperatingHours from "HH:MM" strings.
func ParseOperatingHours(open, close string) (OperatingHours, error) {
	o, err := parseTimeOfDay(open)
	if err != nil {
		return OperatingHours{}, fmt.Errorf("invalid open time %q: %w", open, err)
	}
	c, err := parseTimeOfDay(close)
	if err != nil {
		return OperatingHours{}, fmt.Errorf("invalid close time %q: %w", close, err)
	}
	if c <= o {
		return OperatingHours{}, fmt.Errorf("close time %q must be after open time %q", close, open)
	}
	return OperatingHours{Open: o, Close: c}, nil
}

// TimeWindow is a validated (date, start, end) triple. It is only constructed
// through Validate and never mutated afterwards; a new request produces a new
// window.
type TimeWindow struct {
	date  time.Time // midnight UTC
	start int       // minutes since midnight
	end   int
}

func (w TimeWindow) Date() time.Time { return w.date }
func (w TimeWindow) Start() int      { return w.start }
func (w TimeWindow) End() int        { return w.end }

// StartAt returns the absolute instant the window opens.
func (w TimeWindow) StartAt() time.Time { return w.date.Add(time.Duration(w.start) * time.Minute) }

// EndAt returns the absolute instant the window closes (exclusive).
func (w TimeWindow) EndAt() time.Time { return w.date.Add(time.Duration(w.end) * time.Minute) }

func (w TimeWindow) DateString() string  { return w.date.Format(dateLayout) }
func (w TimeWindow) StartString() string { return formatTimeOfDay(w.start) }
func (w TimeWindow) EndString() string   { return formatTimeOfDay(w.end) }

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s %s-%s", w.DateString(), w.StartString(), w.EndString())
}

// SameDate reports whether both windows fall on the same calendar date.
func (w TimeWindow) SameDate(other TimeWindow) bool { return w.date.Equal(other.date) }

// WindowFromInstants rebuilds a TimeWindow from absolute start/end instants,
// e.g. rows scanned out of the reservation store. The instants are assumed to
// come from a window that already passed validation, so only the shape is
// checked, not business rules.
func WindowFromInstants(startAt, endAt time.Time) (TimeWindow, error) {
	startAt = startAt.UTC()
	endAt = endAt.UTC()
	date := time.Date(startAt.Year(), startAt.Month(), startAt.Day(), 0, 0, 0, 0, time.UTC)
	if !endAt.After(startAt) {
		return TimeWindow{}, fmt.Errorf("end %s is not after start %s", endAt, startAt)
	}
	end := int(endAt.Sub(date).Minutes())
	if end > 24*60 {
		return TimeWindow{}, fmt.Errorf("window %s-%s crosses midnight", startAt, endAt)
	}
	return TimeWindow{
		date:  date,
		start: startAt.Hour()*60 + startAt.Minute(),
		end:   end,
	}, nil
}

// Validate checks a raw (date, start, end) request against calendar and
// operating-hour rules and returns the immutable window. Rules apply in
// order and the first failure wins:
//
//  1. all three fields present
//  2. fields parse as "2006-01-02" / "15:04"
//  3. date is today or later
//  4. if date is today, start has not already passed
//  5. end is strictly after start
//  6. start >= Open and end <= Close (end == Close is allowed)
//
// The clock is an explicit parameter so callers control "today".
func Validate(date, startTime, endTime string, now time.Time, hours OperatingHours) (TimeWindow, error) {
	switch {
	case date == "":
		return TimeWindow{}, &ValidationError{Kind: KindMissingField, Field: "date", Message: "date is required"}
	case startTime == "":
		return TimeWindow{}, &ValidationError{Kind: KindMissingField, Field: "start_time", Message: "start time is required"}
	case endTime == "":
		return TimeWindow{}, &ValidationError{Kind: KindMissingField, Field: "end_time", Message: "end time is required"}
	}

	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return TimeWindow{}, &ValidationError{Kind: KindInvalidFormat, Field: "date", Message: fmt.Sprintf("date %q is not in YYYY-MM-DD format", date)}
	}
	start, err := parseTimeOfDay(startTime)
	if err != nil {
		return TimeWindow{}, &ValidationError{Kind: KindInvalidFormat, Field: "start_time", Message: fmt.Sprintf("start time %q is not in HH:MM format", startTime)}
	}
	end, err := parseTimeOfDay(endTime)
	if err != nil {
		return TimeWindow{}, &ValidationError{Kind: KindInvalidFormat, Field: "end_time", Message: fmt.Sprintf("end time %q is not in HH:MM format", endTime)}
	}

	today := dateOnly(now)
	if day.Before(today) {
		return TimeWindow{}, &ValidationError{Kind: KindPastDate, Field: "date", Message: fmt.Sprintf("date %s is in the past", date)}
	}
	if day.Equal(today) {
		nowMinutes := now.Hour()*60 + now.Minute()
		if start < nowMinutes {
			return TimeWindow{}, &ValidationError{Kind: KindPastTime, Field: "start_time", Message: fmt.Sprintf("start time %s has already passed", startTime)}
		}
	}
	if end <= start {
		return TimeWindow{}, &ValidationError{Kind: KindInvalidRange, Field: "end_time", Message: "end time must be after start time"}
	}
	if start < hours.Open || end > hours.Close {
		return TimeWindow{}, &ValidationError{
			Kind:    KindOutsideHours,
			Field:   "start_time",
			Message: fmt.Sprintf("bookings run from %s to %s", formatTimeOfDay(hours.Open), formatTimeOfDay(hours.Close)),
		}
	}

	return TimeWindow{date: day, start: start, end: end}, nil
}

func parseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// dateOnly strips the time of day, keeping the caller's calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
