package domain

import (
	"math"
	"time"
)

// DaysUntil returns the whole-day countdown from now to deadline. Future
// deadlines round up, so 36 hours away reads as 2 days. Past deadlines
// round away from zero so that anything already behind now reads as
// expired (negative), even earlier the same day. Zero means the deadline
// is right now ("today").
func DaysUntil(now, deadline time.Time) int {
	d := deadline.Sub(now)
	days := d.Hours() / 24
	if d < 0 {
		return -int(math.Ceil(-days))
	}
	return int(math.Ceil(days))
}

// Urgency is a display tier derived from a day countdown. It drives color
// and labels only, never filtering.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencySoon
	UrgencyUrgent
)

// UrgencyFor tiers a countdown: three days or less is urgent, a week or
// less is soon, anything further is normal.
func UrgencyFor(daysLeft int) Urgency {
	switch {
	case daysLeft <= 3:
		return UrgencyUrgent
	case daysLeft <= 7:
		return UrgencySoon
	}
	return UrgencyNormal
}

// Progress returns the completion percentage, 0 when there is nothing to
// complete.
func Progress(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// DayWindow returns the half-open interval [start of now's day, +24h) in
// now's location.
func DayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.Add(24 * time.Hour)
}

// InToday reports whether t falls inside now's day window.
func InToday(now, t time.Time) bool {
	start, end := DayWindow(now)
	return !t.Before(start) && t.Before(end)
}

// WeekStart returns the Monday 00:00 beginning the week containing now,
// in now's location.
func WeekStart(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := day.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return day.AddDate(0, 0, -int(weekday-time.Monday))
}

// CompletionHistogram buckets completion timestamps into the seven days of
// the week starting at weekStart (Monday..Sunday). Timestamps outside the
// week are ignored; days without completions stay zero.
func CompletionHistogram(completedAt []time.Time, weekStart time.Time) [7]int {
	var buckets [7]int
	weekEnd := weekStart.AddDate(0, 0, 7)
	for _, t := range completedAt {
		if t.Before(weekStart) || !t.Before(weekEnd) {
			continue
		}
		idx := int(t.Sub(weekStart).Hours() / 24)
		if idx >= 0 && idx < 7 {
			buckets[idx]++
		}
	}
	return buckets
}
