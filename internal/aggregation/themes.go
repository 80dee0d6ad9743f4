package aggregation

import (
	"sort"
	"strings"

	"sfd/internal/models"
)

const (
	maxThemeExamples = 3
	snippetLength    = 100
	topThemeCount    = 3
)

// rankThemes counts keyword hits per bucket over the filtered comments.
// A comment containing several synonyms of one theme counts once per
// synonym: repeated mentions are deliberate weighting.
func (a *Aggregator) rankThemes(records []*models.FeedbackRecord) []ThemeRank {
	ranks := make([]ThemeRank, len(a.keywords.Themes))
	order := make(map[string]int, len(a.keywords.Themes))
	for i, bucket := range a.keywords.Themes {
		ranks[i] = ThemeRank{Name: bucket.Name, Examples: []string{}}
		order[bucket.Name] = i
	}

	for _, r := range records {
		if r.Comments == "" {
			continue
		}
		lc := strings.ToLower(r.Comments)
		for i, bucket := range a.keywords.Themes {
			for _, keyword := range bucket.Keywords {
				if !strings.Contains(lc, keyword) {
					continue
				}
				ranks[i].Count++
				if len(ranks[i].Examples) < maxThemeExamples {
					ranks[i].Examples = append(ranks[i].Examples, Snippet(r.Comments, snippetLength))
				}
			}
		}
	}

	// Descending by count; bucket declaration order breaks ties.
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Count != ranks[j].Count {
			return ranks[i].Count > ranks[j].Count
		}
		return order[ranks[i].Name] < order[ranks[j].Name]
	})

	if len(ranks) > topThemeCount {
		ranks = ranks[:topThemeCount]
	}
	return ranks
}

// Snippet truncates text to limit runes, appending an ellipsis when
// anything was cut.
func Snippet(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
