package store

import (
	"fmt"
	"math"
	"time"
)

// GetWeeklyStats computes the weekly review aggregate for the week
// [weekStart, weekStart+7d). Completed count and completion rate cover
// todos touched in the week; focus hours sum sessions started in the
// week; the streak counts consecutive days with at least one completion,
// ending today.
func (s *Store) GetWeeklyStats(weekStart time.Time) (*WeeklyStats, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)
	from, to := fmtTime(weekStart), fmtTime(weekEnd)

	stats := &WeeklyStats{}

	var total int
	err := s.db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN completed = 1 AND completed_at >= ? AND completed_at < ? THEN 1 ELSE 0 END), 0),
			COUNT(*)
		FROM todos
		WHERE owner_id = ?
		  AND ((completed_at >= ? AND completed_at < ?) OR (created_at >= ? AND created_at < ?))`,
		from, to, s.owner.String(), from, to, from, to,
	).Scan(&stats.CompletedTasksCount, &total)
	if err != nil {
		return nil, fmt.Errorf("weekly todo stats: %w", err)
	}
	if total > 0 {
		stats.CompletionRate = float64(stats.CompletedTasksCount) / float64(total) * 100
	}

	var focusMinutes int64
	err = s.db.QueryRow(`
		SELECT COALESCE(SUM(duration_minutes), 0)
		FROM focus_sessions
		WHERE owner_id = ? AND started_at >= ? AND started_at < ?`,
		s.owner.String(), from, to,
	).Scan(&focusMinutes)
	if err != nil {
		return nil, fmt.Errorf("weekly focus stats: %w", err)
	}
	stats.FocusHours = math.Round(float64(focusMinutes)/60*10) / 10

	streak, err := s.completionStreak()
	if err != nil {
		return nil, err
	}
	stats.StreakDays = streak

	return stats, nil
}

// completionStreak counts consecutive UTC days ending today on which at
// least one todo was completed.
func (s *Store) completionStreak() (int, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT date(completed_at)
		FROM todos
		WHERE owner_id = ? AND completed = 1 AND completed_at IS NOT NULL`,
		s.owner.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("completion streak: %w", err)
	}
	defer rows.Close()

	days := make(map[string]bool)
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return 0, err
		}
		days[day] = true
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	streak := 0
	for day := time.Now().UTC(); days[day.Format("2006-01-02")]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak, nil
}
