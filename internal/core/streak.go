package core

import "time"

// StreakData summarizes consecutive-day activity over productive
// categories.
type StreakData struct {
	CurrentStreak   int `json:"currentStreak"`
	LongestStreak   int `json:"longestStreak"`
	TotalActiveDays int `json:"totalActiveDays"`
}

// Streak walks the distinct productive-activity dates, newest first, and
// returns the current streak, the longest streak and the count of active
// days. The current streak only counts when the newest date is today or
// yesterday; once the head of the list is older than that it stays 0, but
// the longest streak is still computed from runs deeper in the list.
// Dates must be distinct and sorted descending.
func Streak(dates []time.Time, today time.Time) StreakData {
	if len(dates) == 0 {
		return StreakData{}
	}

	today = Midnight(today)
	current, longest, run := 0, 0, 0
	var last time.Time

	for i, d := range dates {
		d = Midnight(d)
		if i == 0 {
			if daysBetween(d, today) <= 1 {
				current = 1
				run = 1
			}
		} else {
			if daysBetween(d, last) == 1 {
				run++
				if current > 0 {
					current = run
				}
			} else {
				if run > longest {
					longest = run
				}
				run = 1
			}
		}
		last = d
	}
	if run > longest {
		longest = run
	}

	return StreakData{
		CurrentStreak:   current,
		LongestStreak:   longest,
		TotalActiveDays: len(dates),
	}
}

// Midnight truncates t to its calendar day in UTC so day arithmetic is
// exact regardless of the wall clock or zone t arrived in.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
