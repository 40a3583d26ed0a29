package schedule

import "time"

// Bookable combines expansion and conflict filtering for one rule on one
// date: it walks the rule's window stepping by slot, and whenever the
// candidate overlaps a busy interval it resumes at that interval's end
// rather than discarding the rest of the fixed grid. When an obstacle has
// displaced the walk past the latest start that still fits the window, that
// last start is offered too if it is free.
//
// Busy intervals use the same half-open Overlaps predicate as Filter; a
// slot ending exactly when a busy interval starts is bookable.
func Bookable(r Rule, date time.Time, slot time.Duration, busy []Interval) ([]time.Time, error) {
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

	lastStart := windowEnd.Add(-slot)
	if lastStart.Before(windowStart) {
		return nil, nil
	}

	var starts []time.Time
	displaced := false

	cur := windowStart
	for !cur.After(lastStart) {
		iv := Interval{Start: cur, End: cur.Add(slot)}
		if b, ok := firstOverlap(iv, busy); ok {
			// b.End is strictly after cur, so the walk always advances.
			displaced = true
			cur = b.End
			continue
		}
		starts = append(starts, cur)
		cur = cur.Add(slot)
	}

	// Tail slot: the walk overshot lastStart because obstacles shifted it
	// off the grid, yet a final appointment ending exactly at closing time
	// may still fit.
	if displaced {
		tail := Interval{Start: lastStart, End: windowEnd}
		if (len(starts) == 0 || lastStart.After(starts[len(starts)-1])) && !OverlapsAny(tail, busy) {
			starts = append(starts, lastStart)
		}
	}

	return starts, nil
}

// firstOverlap returns the busy interval with the earliest end among those
// overlapping iv, so the walk resumes as soon as capacity frees up.
func firstOverlap(iv Interval, busy []Interval) (Interval, bool) {
	var hit Interval
	found := false
	for _, b := range busy {
		if !iv.Overlaps(b) {
			continue
		}
		if !found || b.End.Before(hit.End) {
			hit = b
			found = true
		}
	}
	return hit, found
}
