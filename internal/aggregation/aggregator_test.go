package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfd/internal/models"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func record(mutate func(r *models.FeedbackRecord)) *models.FeedbackRecord {
	r := &models.FeedbackRecord{
		ID:            "r1",
		Date:          testNow.AddDate(0, 0, -1),
		SubmitterKind: models.KindIndividual,
		Name:          "Rita",
		Email:         "rita@example.com",
		Event:         "Birthday",
		Food:          4,
		Ambience:      4,
		Service:       4,
		Overall:       4,
		Recommend:     models.RecommendYes,
		Comments:      "nice evening",
	}
	if mutate != nil {
		mutate(r)
	}
	return r
}

func newTestAggregator() *Aggregator {
	return NewAggregator(nil)
}

func TestAverage_ThreeRecords(t *testing.T) {
	agg := newTestAggregator()
	records := []*models.FeedbackRecord{
		record(func(r *models.FeedbackRecord) { r.ID = "a"; r.Overall = 5 }),
		record(func(r *models.FeedbackRecord) { r.ID = "b"; r.Overall = 3 }),
		record(func(r *models.FeedbackRecord) { r.ID = "c"; r.Overall = 1 }),
	}

	result := agg.Aggregate(records, Params{}, testNow)
	assert.Equal(t, "3.0", result.Averages["overall"])
}

func TestAverage_EmptySetIsZeroString(t *testing.T) {
	agg := newTestAggregator()
	result := agg.Aggregate(nil, Params{}, testNow)

	for _, key := range models.RatingKeys {
		assert.Equal(t, "0.0", result.Averages[key])
	}
	assert.Equal(t, "0.0", result.RecommendRate)
	assert.Zero(t, result.Total)
}

func TestAverage_WithinBounds(t *testing.T) {
	agg := newTestAggregator()
	records := []*models.FeedbackRecord{
		record(func(r *models.FeedbackRecord) { r.Food = 5; r.Overall = 5 }),
		record(func(r *models.FeedbackRecord) { r.ID = "b"; r.Food = 0; r.Overall = 1 }),
	}

	result := agg.Aggregate(records, Params{}, testNow)
	for _, key := range models.RatingKeys {
		v := result.Averages[key]
		require.Regexp(t, `^\d\.\d$`, v)
	}
}

func TestFilter_ArchivedHiddenByDefault(t *testing.T) {
	records := []*models.FeedbackRecord{
		record(nil),
		record(func(r *models.FeedbackRecord) { r.ID = "archived"; r.Archived = true }),
	}

	filtered := Filter(records, Params{}, testNow)
	require.Len(t, filtered, 1)
	assert.Equal(t, "r1", filtered[0].ID)

	shown := Filter(records, Params{ShowArchived: true}, testNow)
	assert.Len(t, shown, 2)
}

func TestFilter_SearchMatchesAnyField(t *testing.T) {
	records := []*models.FeedbackRecord{
		record(func(r *models.FeedbackRecord) { r.ID = "byName"; r.Name = "Margit" }),
		record(func(r *models.FeedbackRecord) { r.ID = "byComment"; r.Comments = "margit was here" }),
		record(func(r *models.FeedbackRecord) { r.ID = "noMatch"; r.Name = "Bo"; r.Comments = "fine" }),
	}

	filtered := Filter(records, Params{Search: "  MARGIT "}, testNow)
	require.Len(t, filtered, 2)
}

func TestFilter_SevenDayWindow(t *testing.T) {
	records := []*models.FeedbackRecord{
		record(func(r *models.FeedbackRecord) { r.ID = "old"; r.Date = testNow.AddDate(0, 0, -10) }),
		record(func(r *models.FeedbackRecord) { r.ID = "fresh"; r.Date = testNow.AddDate(0, 0, -1) }),
	}

	filtered := Filter(records, Params{TimeFilter: TimeFilter7Days}, testNow)
	require.Len(t, filtered, 1)
	assert.Equal(t, "fresh", filtered[0].ID)
}

func TestFilter_CustomRangeInclusive(t *testing.T) {
	from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	records := []*models.FeedbackRecord{
		record(func(r *models.FeedbackRecord) { r.ID = "before"; r.Date = from.AddDate(0, 0, -1) }),
		record(func(r *models.FeedbackRecord) { r.ID = "onStart"; r.Date = from }),
		record(func(r *models.FeedbackRecord) { r.ID = "onEndLate"; r.Date = to.Add(23 * time.Hour) }),
		record(func(r *models.FeedbackRecord) { r.ID = "after"; r.Date = to.AddDate(0, 0, 1) }),
	}

	filtered := Filter(records, Params{TimeFilter: TimeFilterCustom, From: from, To: to}, testNow)
	require.Len(t, filtered, 2)
	ids := []string{filtered[0].ID, filtered[1].ID}
	assert.Contains(t, ids, "onStart")
	assert.Contains(t, ids, "onEndLate")
}

func TestFilter_Idempotent(t *testing.T) {
	records := []*models.FeedbackRecord{
		record(func(r *models.FeedbackRecord) { r.ID = "a"; r.Archived = true }),
		record(func(r *models.FeedbackRecord) { r.ID = "b" }),
		record(func(r *models.FeedbackRecord) { r.ID = "c"; r.Comments = "slow slow" }),
	}
	params := Params{Search: "slow"}

	once := Filter(records, params, testNow)
	twice := Filter(once, params, testNow)
	assert.Equal(t, once, twice)
}

func TestFilter_SortStableOnEqualDates(t *testing.T) {
	shared := testNow.AddDate(0, 0, -2)
	make3 := func(ids ...string) []*models.FeedbackRecord {
		out := make([]*models.FeedbackRecord, 0, len(ids))
		for _, id := range ids {
			out = append(out, record(func(r *models.FeedbackRecord) { r.ID = id; r.Date = shared }))
		}
		return out
	}

	first := Filter(make3("x", "y", "z"), Params{}, testNow)
	second := Filter(make3("x", "y", "z"), Params{}, testNow)

	require.Len(t, first, 3)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
	// Equal dates keep input order
	assert.Equal(t, "x", first[0].ID)
	assert.Equal(t, "y", first[1].ID)
	assert.Equal(t, "z", first[2].ID)
}

func TestFilter_SortNewestFirst(t *testing.T) {
	records := []*models.FeedbackRecord{
		record(func(r *models.FeedbackRecord) { r.ID = "old"; r.Date = testNow.AddDate(0, 0, -3) }),
		record(func(r *models.FeedbackRecord) { r.ID = "new"; r.Date = testNow.AddDate(0, 0, -1) }),
		record(func(r *models.FeedbackRecord) { r.ID = "mid"; r.Date = testNow.AddDate(0, 0, -2) }),
	}

	filtered := Filter(records, Params{}, testNow)
	require.Len(t, filtered, 3)
	assert.Equal(t, "new", filtered[0].ID)
	assert.Equal(t, "mid", filtered[1].ID)
	assert.Equal(t, "old", filtered[2].ID)
}

func TestRecommendRate(t *testing.T) {
	agg := newTestAggregator()
	records := []*models.FeedbackRecord{
		record(func(r *models.FeedbackRecord) { r.Recommend = models.RecommendYes }),
		record(func(r *models.FeedbackRecord) { r.ID = "b"; r.Recommend = models.RecommendNo }),
		record(func(r *models.FeedbackRecord) { r.ID = "c"; r.Recommend = models.RecommendUnset }),
	}

	result := agg.Aggregate(records, Params{}, testNow)
	assert.Equal(t, "33.3", result.RecommendRate)
}

func TestStrengths_TieFirstKeyWins(t *testing.T) {
	top, improvement := strengths(map[string]float64{
		"food": 4.0, "ambience": 4.0, "service": 4.0, "overall": 4.0,
	})
	assert.Equal(t, "food", top)
	assert.Equal(t, "food", improvement)
}

func TestStrengths_MaxAndMin(t *testing.T) {
	top, improvement := strengths(map[string]float64{
		"food": 3.2, "ambience": 4.8, "service": 2.1, "overall": 4.0,
	})
	assert.Equal(t, "ambience", top)
	assert.Equal(t, "service", improvement)
}

func TestParams_CacheKeyStable(t *testing.T) {
	a := Params{Search: " Pasta ", TimeFilter: TimeFilter7Days}
	b := Params{Search: "pasta", TimeFilter: TimeFilter7Days}
	assert.Equal(t, a.CacheKey(), b.CacheKey())

	c := Params{Search: "pasta", TimeFilter: TimeFilter30Days}
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
}
