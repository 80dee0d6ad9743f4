package aggregation

import (
	"strings"

	"sfd/internal/models"
)

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Classify buckets one comment by keyword presence. A comment matching
// both tables (or neither) is neutral.
func (a *Aggregator) Classify(comment string) string {
	lc := strings.ToLower(comment)
	pos := containsAny(lc, a.keywords.Positive)
	neg := containsAny(lc, a.keywords.Negative)

	switch {
	case pos && !neg:
		return SentimentPositive
	case neg && !pos:
		return SentimentNegative
	}
	return SentimentNeutral
}

func (a *Aggregator) classifyAll(records []*models.FeedbackRecord) Sentiment {
	s := Sentiment{Total: len(records)}
	for _, r := range records {
		switch a.Classify(r.Comments) {
		case SentimentPositive:
			s.Positive++
		case SentimentNegative:
			s.Negative++
		default:
			s.Neutral++
		}
	}

	s.PositivePct = percentage(s.Positive, s.Total)
	s.NeutralPct = percentage(s.Neutral, s.Total)
	s.NegativePct = percentage(s.Negative, s.Total)
	return s
}

func percentage(count, total int) string {
	if total == 0 {
		return "0.0"
	}
	return formatScore(float64(count) / float64(total) * 100)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
