package models

import "time"

const (
	KindIndividual = "individual"
	KindGroup      = "group"
	KindAnonymous  = "anonymous"
)

const (
	RecommendYes   = "yes"
	RecommendNo    = "no"
	RecommendUnset = ""
)

// RatingKeys is the fixed iteration order for per-category averages.
// Strength/improvement ties resolve to the first key encountered here.
var RatingKeys = []string{"food", "ambience", "service", "overall"}

// FeedbackRecord is one submitted review. Records are immutable after
// creation except for the Archived flag; mutations address records by ID.
type FeedbackRecord struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	SubmitterKind string    `json:"submitterKind"`
	Name          string    `json:"name,omitempty"`
	Email         string    `json:"email,omitempty"`
	Contact       string    `json:"contact,omitempty"`
	Event         string    `json:"event"`
	Food          int       `json:"food"`
	Ambience      int       `json:"ambience"`
	Service       int       `json:"service"`
	Overall       int       `json:"overall"`
	Recommend     string    `json:"recommend,omitempty"`
	Comments      string    `json:"comments,omitempty"`
	Archived      bool      `json:"archived"`
}

// Rating returns the value for one of RatingKeys. Unknown keys return 0.
func (r *FeedbackRecord) Rating(key string) int {
	switch key {
	case "food":
		return r.Food
	case "ambience":
		return r.Ambience
	case "service":
		return r.Service
	case "overall":
		return r.Overall
	}
	return 0
}

// FeedbackSubmission is the raw public form payload before normalization.
// EventOther only matters when Event is the "Other" category.
type FeedbackSubmission struct {
	SubmitterKind string `json:"submitterKind" validate:"required|in:individual,group,anonymous"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Contact       string `json:"contact"`
	Event         string `json:"event" validate:"required"`
	EventOther    string `json:"eventOther"`
	Food          int    `json:"food" validate:"min:0|max:5"`
	Ambience      int    `json:"ambience" validate:"min:0|max:5"`
	Service       int    `json:"service" validate:"min:0|max:5"`
	Overall       int    `json:"overall" validate:"min:0|max:5"`
	Recommend     string `json:"recommend"`
	Comments      string `json:"comments"`
}
