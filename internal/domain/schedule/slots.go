package schedule

import (
	"fmt"
	"time"
)

// Rule is a weekly recurring availability window: on Weekday the owner is
// bookable between Start and End (wall clock "HH:MM", salon timezone).
type Rule struct {
	Weekday int // 0 = Sunday, matching time.Weekday
	Start   string
	End     string
}

// Expand produces the candidate slot start times the rule yields on the
// given date, stepping by slot from the rule's start while the slot still
// ends within the window. A date on a different weekday yields no slots, as
// does a window shorter than the slot; neither is an error. Blackouts and
// existing appointments are not consulted here.
func Expand(r Rule, date time.Time, slot time.Duration) ([]time.Time, error) {
	if slot <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %s", slot)
	}
	if int(date.Weekday()) != r.Weekday {
		return nil, nil
	}

	windowStart, err := atTime(date, r.Start)
	if err != nil {
		return nil, err
	}
	windowEnd, err := atTime(date, r.End)
	if err != nil {
		return nil, err
	}

	var starts []time.Time
	for cur := windowStart; !cur.Add(slot).After(windowEnd); cur = cur.Add(slot) {
		starts = append(starts, cur)
	}
	return starts, nil
}

// Filter keeps the candidates whose slot-sized interval overlaps none of the
// busy intervals.
func Filter(candidates []time.Time, slot time.Duration, busy []Interval) []time.Time {
	free := make([]time.Time, 0, len(candidates))
	for _, start := range candidates {
		iv := Interval{Start: start, End: start.Add(slot)}
		if !OverlapsAny(iv, busy) {
			free = append(free, start)
		}
	}
	return free
}

// ParseClock parses a wall-clock "HH:MM" value.
func ParseClock(hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid wall-clock time %q: %w", hm, err)
	}
	return t, nil
}

// atTime anchors a wall-clock "HH:MM" on the date's calendar day, in the
// date's location.
func atTime(date time.Time, hm string) (time.Time, error) {
	t, err := ParseClock(hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}
