package aggregation

import "sfd/internal/structures"

// Keywords holds the sentiment and theme tables the aggregator matches
// against. Tables are data, not code: deployments can override any of
// them in config, empty sections fall back to the defaults below.
type Keywords struct {
	Positive []string
	Negative []string
	Themes   []structures.ThemeBucket
}

func DefaultKeywords() Keywords {
	return Keywords{
		Positive: []string{
			"excellent", "amazing", "great", "good", "wonderful", "fantastic",
			"delicious", "friendly", "love", "loved", "best", "awesome", "perfect",
		},
		Negative: []string{
			"bad", "poor", "terrible", "awful", "slow", "cold", "rude",
			"worst", "disappointing", "horrible",
		},
		Themes: []structures.ThemeBucket{
			{Name: "food", Keywords: []string{"food", "dish", "meal", "taste", "delicious", "menu"}},
			{Name: "service", Keywords: []string{"service", "staff", "waiter", "server", "friendly", "rude"}},
			{Name: "ambience", Keywords: []string{"ambience", "atmosphere", "music", "decor", "environment", "vibe"}},
			{Name: "price", Keywords: []string{"price", "expensive", "cheap", "value", "cost", "worth"}},
			{Name: "time", Keywords: []string{"wait", "time", "slow", "quick", "fast", "delay"}},
		},
	}
}

// KeywordsFromConfig merges configured tables over the defaults.
func KeywordsFromConfig(conf *structures.Config) Keywords {
	kw := DefaultKeywords()
	if conf == nil {
		return kw
	}
	if len(conf.Feedback.Sentiment.Positive) > 0 {
		kw.Positive = conf.Feedback.Sentiment.Positive
	}
	if len(conf.Feedback.Sentiment.Negative) > 0 {
		kw.Negative = conf.Feedback.Sentiment.Negative
	}
	if len(conf.Feedback.Themes) > 0 {
		kw.Themes = conf.Feedback.Themes
	}
	return kw
}
