package aggregation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"sfd/internal/models"
	"sfd/internal/structures"
)

const (
	TimeFilterAll    = "all"
	TimeFilter7Days  = "7days"
	TimeFilter30Days = "30days"
	TimeFilterCustom = "custom"
)

// Params are the dashboard filter controls. The zero value means
// "everything except archived records".
type Params struct {
	ShowArchived bool      `json:"showArchived"`
	Search       string    `json:"search"`
	TimeFilter   string    `json:"timeFilter"`
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
}

// CacheKey renders the params into a stable string, combined with the
// store version by callers that cache aggregation output.
func (p Params) CacheKey() string {
	return fmt.Sprintf("a=%t;q=%s;t=%s;f=%d;u=%d",
		p.ShowArchived, strings.ToLower(strings.TrimSpace(p.Search)),
		p.TimeFilter, p.From.Unix(), p.To.Unix())
}

type Sentiment struct {
	Positive    int    `json:"positive"`
	Neutral     int    `json:"neutral"`
	Negative    int    `json:"negative"`
	Total       int    `json:"total"`
	PositivePct string `json:"positivePct"`
	NeutralPct  string `json:"neutralPct"`
	NegativePct string `json:"negativePct"`
}

type ThemeRank struct {
	Name     string   `json:"name"`
	Count    int      `json:"count"`
	Examples []string `json:"examples"`
}

type TrendPoint struct {
	Day     string `json:"day"`
	Average string `json:"average"`
	Count   int    `json:"count"`
}

type Insight struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// Result is the full derived view the dashboard renders. It is
// disposable: nothing here is persisted.
type Result struct {
	Records         []*models.FeedbackRecord `json:"records"`
	Total           int                      `json:"total"`
	Averages        map[string]string        `json:"averages"`
	RecommendRate   string                   `json:"recommendRate"`
	Sentiment       Sentiment                `json:"sentiment"`
	Themes          []ThemeRank              `json:"themes"`
	Trend           []TrendPoint             `json:"trend"`
	Insights        []Insight                `json:"insights"`
	TopStrength     string                   `json:"topStrength"`
	ImprovementArea string                   `json:"improvementArea"`
}

// Aggregator derives dashboard views from the record list. It holds only
// the keyword tables; Aggregate itself is a pure function of its inputs.
type Aggregator struct {
	keywords Keywords
}

func NewAggregator(conf *structures.Config) *Aggregator {
	return &Aggregator{keywords: KeywordsFromConfig(conf)}
}

// Aggregate computes the filtered subset and every derived metric.
// The trend series deliberately runs over the unfiltered collection:
// it tracks absolute activity, not the current filter view.
func (a *Aggregator) Aggregate(records []*models.FeedbackRecord, params Params, now time.Time) *Result {
	filtered := Filter(records, params, now)

	averages := make(map[string]string, len(models.RatingKeys))
	raw := make(map[string]float64, len(models.RatingKeys))
	for _, key := range models.RatingKeys {
		avg := average(filtered, key)
		raw[key] = avg
		averages[key] = formatScore(avg)
	}

	sentiment := a.classifyAll(filtered)
	top, improvement := strengths(raw)

	return &Result{
		Records:         filtered,
		Total:           len(filtered),
		Averages:        averages,
		RecommendRate:   recommendRate(filtered),
		Sentiment:       sentiment,
		Themes:          a.rankThemes(filtered),
		Trend:           trendSeries(records, now),
		Insights:        buildInsights(filtered, raw, sentiment),
		TopStrength:     top,
		ImprovementArea: improvement,
	}
}

// Filter applies the dashboard pipeline in order: archive flag, text
// search, time window, then a stable newest-first sort.
func Filter(records []*models.FeedbackRecord, params Params, now time.Time) []*models.FeedbackRecord {
	out := make([]*models.FeedbackRecord, 0, len(records))

	term := strings.ToLower(strings.TrimSpace(params.Search))
	from, to, bounded := timeWindow(params, now)

	for _, r := range records {
		if r.Archived && !params.ShowArchived {
			continue
		}
		if term != "" && !matchesSearch(r, term) {
			continue
		}
		if bounded {
			if r.Date.Before(from) {
				continue
			}
			if !to.IsZero() && !r.Date.Before(to) {
				continue
			}
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func matchesSearch(r *models.FeedbackRecord, term string) bool {
	for _, field := range []string{r.Name, r.Email, r.Event, r.Comments} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// timeWindow resolves the filter to an inclusive [from, to) interval.
// The custom range is inclusive of both endpoint days.
func timeWindow(params Params, now time.Time) (from, to time.Time, bounded bool) {
	switch params.TimeFilter {
	case TimeFilter7Days:
		return now.AddDate(0, 0, -7), time.Time{}, true
	case TimeFilter30Days:
		return now.AddDate(0, 0, -30), time.Time{}, true
	case TimeFilterCustom:
		if params.From.IsZero() && params.To.IsZero() {
			return time.Time{}, time.Time{}, false
		}
		from = dayStart(params.From)
		if !params.To.IsZero() {
			to = dayStart(params.To).AddDate(0, 0, 1)
		}
		return from, to, true
	}
	return time.Time{}, time.Time{}, false
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// average sums one rating key over the set and divides by set size.
// The empty set yields 0 so the formatted result is exactly "0.0".
func average(records []*models.FeedbackRecord, key string) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, r := range records {
		sum += r.Rating(key)
	}
	return float64(sum) / float64(len(records))
}

func recommendRate(records []*models.FeedbackRecord) string {
	if len(records) == 0 {
		return "0.0"
	}
	yes := 0
	for _, r := range records {
		if r.Recommend == models.RecommendYes {
			yes++
		}
	}
	return formatScore(float64(yes) / float64(len(records)) * 100)
}

// strengths picks max and min categories over the fixed key order,
// first key wins ties.
func strengths(raw map[string]float64) (top, improvement string) {
	for _, key := range models.RatingKeys {
		if top == "" || raw[key] > raw[top] {
			top = key
		}
		if improvement == "" || raw[key] < raw[improvement] {
			improvement = key
		}
	}
	return top, improvement
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
