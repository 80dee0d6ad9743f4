package aggregation

import (
	"time"

	"sfd/internal/models"
)

const trendDays = 7

// trendSeries computes per-day average overall rating and record count
// for the trailing week, oldest day first. It runs over the unfiltered
// collection so the chart shows absolute activity regardless of the
// current filter.
func trendSeries(records []*models.FeedbackRecord, now time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, trendDays)

	for offset := trendDays - 1; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		sum, count := 0, 0
		for _, r := range records {
			if sameDay(r.Date.In(now.Location()), day) {
				sum += r.Overall
				count++
			}
		}

		avg := 0.0
		if count > 0 {
			avg = float64(sum) / float64(count)
		}
		points = append(points, TrendPoint{
			Day:     day.Format("2006-01-02"),
			Average: formatScore(avg),
			Count:   count,
		})
	}
	return points
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
