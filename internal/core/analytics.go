package core

import "time"

// DayPoint is one day of the rolling-window series.
type DayPoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// WeekStats summarizes the trailing 7-day window ending at the reference
// instant.
type WeekStats struct {
	WindowTotal float64    `json:"window_total"`
	AvgDaily    float64    `json:"avg_daily"`
	Count       int        `json:"count"`
	Trend       float64    `json:"trend"`
	Daily       []DayPoint `json:"daily"`
}

// ComputeWeekStats derives the rolling aggregates from a ledger snapshot.
// The reference instant is an explicit parameter so callers and tests
// control "now"; the function is pure and recomputed on every call.
//
// The window spans [start of day now-7d, end of day now] while the daily
// series has exactly 7 points (now-6 .. now), and the average divides by a
// fixed 7 rather than by the number of days with data.
func ComputeWeekStats(expenses []Expense, now time.Time) WeekStats {
	start := startOfDay(now.AddDate(0, 0, -7))
	end := endOfDay(now)

	var stats WeekStats
	for _, e := range expenses {
		d, err := time.ParseInLocation(DateLayout, e.Date, now.Location())
		if err != nil {
			// Records with unparsable dates stay out of the window.
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		stats.WindowTotal += e.Total
		stats.Count++
	}
	stats.AvgDaily = stats.WindowTotal / 7

	stats.Daily = make([]DayPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := Day(now.AddDate(0, 0, -i))
		point := DayPoint{Date: day}
		for _, e := range expenses {
			if e.Date == day {
				point.Total += e.Total
				point.Count++
			}
		}
		stats.Daily = append(stats.Daily, point)
	}

	// First three days against the last three; the middle day belongs to
	// neither half. A zero first half pins the trend to exactly 0.
	var firstHalf, secondHalf float64
	for _, p := range stats.Daily[:3] {
		firstHalf += p.Total
	}
	for _, p := range stats.Daily[4:] {
		secondHalf += p.Total
	}
	if firstHalf > 0 {
		stats.Trend = (secondHalf - firstHalf) / firstHalf * 100
	}

	return stats
}

// AllTimeTotal sums total over the entire unfiltered ledger.
func AllTimeTotal(expenses []Expense) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Total
	}
	return sum
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
