package models

// Settings carries the small non-feedback state persisted alongside the
// collection (currently only the dashboard theme).
type Settings struct {
	Theme string `json:"theme"`
}

// StorageV2 is the persistence envelope with an explicit version field.
// V1 files are a bare JSON array of records — FileManager migrates them
// on load.
type StorageV2 struct {
	Version   int               `json:"version"`
	Feedbacks []*FeedbackRecord `json:"feedbacks"`
	Settings  Settings          `json:"settings"`
}

const StorageVersion = 2
