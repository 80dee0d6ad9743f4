package aggregation

import (
	"fmt"

	"sfd/internal/models"
)

const (
	maxInsights      = 4
	lowScoreBar      = 3.5
	highScoreBar     = 4.5
	negativeAlertPct = 30.0
	recentWindow     = 10
	trendDelta       = 0.5
)

// buildInsights runs the fixed rule list against the computed averages
// and sentiment. Output keeps rule order and is capped at maxInsights.
func buildInsights(filtered []*models.FeedbackRecord, raw map[string]float64, sentiment Sentiment) []Insight {
	insights := make([]Insight, 0, maxInsights)

	if len(filtered) > 0 && raw["food"] < lowScoreBar {
		insights = append(insights, Insight{
			Type:        "improvement",
			Priority:    "high",
			Title:       "Improve Food Quality",
			Description: fmt.Sprintf("Food rating averages %.1f, below the %.1f target.", raw["food"], lowScoreBar),
			Action:      "Review menu items and kitchen workflow with recent comments in hand.",
		})
	}
	if len(filtered) > 0 && raw["service"] < lowScoreBar {
		insights = append(insights, Insight{
			Type:        "improvement",
			Priority:    "high",
			Title:       "Raise Service Standards",
			Description: fmt.Sprintf("Service rating averages %.1f, below the %.1f target.", raw["service"], lowScoreBar),
			Action:      "Schedule a staff refresher on guest interaction.",
		})
	}
	if negPct := float64(sentiment.Negative) / max(float64(sentiment.Total), 1) * 100; negPct > negativeAlertPct {
		insights = append(insights, Insight{
			Type:        "alert",
			Priority:    "critical",
			Title:       "High Negative Sentiment",
			Description: fmt.Sprintf("%.1f%% of comments in view read negative.", negPct),
			Action:      "Read the negative comments and follow up with affected guests.",
		})
	}
	if raw["food"] > highScoreBar {
		insights = append(insights, Insight{
			Type:        "strength",
			Priority:    "maintain",
			Title:       "Food Is a Standout",
			Description: fmt.Sprintf("Food rating averages %.1f.", raw["food"]),
			Action:      "Keep the current menu and suppliers; highlight it in promotion.",
		})
	}
	if recentMean, ok := recentOverallMean(filtered); ok && recentMean-raw["overall"] > trendDelta {
		insights = append(insights, Insight{
			Type:        "trend",
			Priority:    "info",
			Title:       "Ratings Trending Up",
			Description: fmt.Sprintf("The last %d reviews average %.1f overall against %.1f for the whole view.", recentWindow, recentMean, raw["overall"]),
			Action:      "Identify what changed recently and lock it in.",
		})
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

// recentOverallMean averages the overall rating of the newest records in
// the (already newest-first) filtered set.
func recentOverallMean(filtered []*models.FeedbackRecord) (float64, bool) {
	if len(filtered) == 0 {
		return 0, false
	}
	n := min(recentWindow, len(filtered))
	sum := 0
	for _, r := range filtered[:n] {
		sum += r.Overall
	}
	return float64(sum) / float64(n), true
}
