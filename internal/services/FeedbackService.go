package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
	"go.uber.org/atomic"

	"sfd/internal/models"
	"sfd/internal/providers"
	"sfd/internal/storage/interfaces"
)

var ErrNotFound = errors.New("feedback record not found")

// EventOther is the form category that gets replaced by the free-text
// description during normalization.
const EventOther = "Other"

var validThemes = map[string]bool{"light": true, "dark": true}

// ValidationError carries field-level messages back to the form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type FeedbackServiceInterface interface {
	Submit(sub *models.FeedbackSubmission) (*models.FeedbackRecord, error)
	List() []*models.FeedbackRecord
	Archive(id string, archived bool) error
	Delete(id string) error
	Theme() string
	SetTheme(theme string) error
	Count() int
	ArchivedCount() int
	Version() uint64
	Dirty() bool
	PersistNow() error
	Restore() error
	Subscribe() (<-chan Event, func())
}

// FeedbackService owns ingestion and every store mutation. Writes are
// write-through: the mutation is rolled back when the persist fails, so
// the in-memory view never drifts ahead of the file. opsMu serializes
// each mutate-persist-rollback sequence so a failed persist only rolls
// back its own mutation, never a concurrently accepted one, and Save
// calls never interleave on the persister.
type FeedbackService struct {
	store     *models.FeedbackStore
	persister interfaces.PersisterInterface
	notifier  *Notifier
	logger    providers.Logger

	opsMu sync.Mutex

	settingsMu sync.RWMutex
	settings   models.Settings

	lastSaved atomic.Uint64
}

func NewFeedbackService(persister interfaces.PersisterInterface, logger providers.Logger) FeedbackServiceInterface {
	return &FeedbackService{
		store:     models.NewFeedbackStore(),
		persister: persister,
		notifier:  NewNotifier(),
		logger:    logger,
	}
}

func (fs *FeedbackService) Submit(sub *models.FeedbackSubmission) (*models.FeedbackRecord, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}
	record := normalize(sub)

	fs.opsMu.Lock()
	defer fs.opsMu.Unlock()

	before := fs.store.LoadAll()
	fs.store.Append(record)

	if err := fs.persistLocked(); err != nil {
		fs.store.ReplaceAll(before)
		return nil, fmt.Errorf("persist submission: %w", err)
	}

	fs.logger.Infof(providers.TypePost, "Feedback %s accepted (%s, event %q)", record.ID, record.SubmitterKind, record.Event)
	fs.notifier.Publish(Event{Kind: EventCreated, RecordID: record.ID})
	return record, nil
}

func (fs *FeedbackService) List() []*models.FeedbackRecord {
	return fs.store.LoadAll()
}

func (fs *FeedbackService) Archive(id string, archived bool) error {
	fs.opsMu.Lock()
	defer fs.opsMu.Unlock()

	before := fs.store.LoadAll()
	if !fs.store.SetArchived(id, archived) {
		return ErrNotFound
	}

	if err := fs.persistLocked(); err != nil {
		fs.store.ReplaceAll(before)
		return fmt.Errorf("persist archive toggle: %w", err)
	}

	fs.notifier.Publish(Event{Kind: EventArchived, RecordID: id})
	return nil
}

func (fs *FeedbackService) Delete(id string) error {
	fs.opsMu.Lock()
	defer fs.opsMu.Unlock()

	before := fs.store.LoadAll()
	if !fs.store.DeleteByID(id) {
		return ErrNotFound
	}

	if err := fs.persistLocked(); err != nil {
		fs.store.ReplaceAll(before)
		return fmt.Errorf("persist delete: %w", err)
	}

	fs.notifier.Publish(Event{Kind: EventDeleted, RecordID: id})
	return nil
}

func (fs *FeedbackService) Theme() string {
	fs.settingsMu.RLock()
	defer fs.settingsMu.RUnlock()
	if fs.settings.Theme == "" {
		return "light"
	}
	return fs.settings.Theme
}

func (fs *FeedbackService) SetTheme(theme string) error {
	if !validThemes[theme] {
		return &ValidationError{Fields: map[string]string{"theme": "must be light or dark"}}
	}

	fs.opsMu.Lock()
	defer fs.opsMu.Unlock()

	fs.settingsMu.Lock()
	previous := fs.settings.Theme
	fs.settings.Theme = theme
	fs.settingsMu.Unlock()

	if err := fs.persistLocked(); err != nil {
		fs.settingsMu.Lock()
		fs.settings.Theme = previous
		fs.settingsMu.Unlock()
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

func (fs *FeedbackService) Count() int {
	return fs.store.Len()
}

func (fs *FeedbackService) ArchivedCount() int {
	count := 0
	for _, r := range fs.store.LoadAll() {
		if r.Archived {
			count++
		}
	}
	return count
}

func (fs *FeedbackService) Version() uint64 {
	return fs.store.Version()
}

// Dirty reports whether the store moved past the last successful save.
// The scheduler uses it to skip no-op safety persists.
func (fs *FeedbackService) Dirty() bool {
	return fs.store.Version() != fs.lastSaved.Load()
}

func (fs *FeedbackService) PersistNow() error {
	fs.opsMu.Lock()
	defer fs.opsMu.Unlock()
	return fs.persistLocked()
}

// persistLocked writes the current document; callers hold opsMu.
func (fs *FeedbackService) persistLocked() error {
	version := fs.store.Version()

	fs.settingsMu.RLock()
	settings := fs.settings
	fs.settingsMu.RUnlock()

	err := fs.persister.Save(&models.StorageV2{
		Version:   models.StorageVersion,
		Feedbacks: fs.store.LoadAll(),
		Settings:  settings,
	})
	if err != nil {
		return err
	}

	fs.lastSaved.Store(version)
	return nil
}

func (fs *FeedbackService) Restore() error {
	fs.opsMu.Lock()
	defer fs.opsMu.Unlock()

	doc, err := fs.persister.Load()
	if err != nil {
		return err
	}

	fs.store.ReplaceAll(doc.Feedbacks)
	fs.settingsMu.Lock()
	fs.settings = doc.Settings
	fs.settingsMu.Unlock()

	fs.lastSaved.Store(fs.store.Version())
	fs.logger.Infof(providers.TypeApp, "Restored %d feedback records", len(doc.Feedbacks))
	return nil
}

func (fs *FeedbackService) Subscribe() (<-chan Event, func()) {
	return fs.notifier.Subscribe()
}

// validateSubmission combines the struct rules with the kind-dependent
// required fields: individual and group submissions must identify the
// submitter, anonymous ones must not be forced to.
func validateSubmission(sub *models.FeedbackSubmission) error {
	fields := make(map[string]string)

	v := validate.Struct(sub)
	if !v.Validate() {
		for field, errs := range v.Errors.All() {
			for _, msg := range errs {
				fields[field] = msg
				break
			}
		}
	}

	if sub.SubmitterKind != models.KindAnonymous {
		for field, value := range map[string]string{
			"name":    sub.Name,
			"email":   sub.Email,
			"contact": sub.Contact,
		} {
			if strings.TrimSpace(value) == "" {
				fields[field] = "required for non-anonymous feedback"
			}
		}
	}

	if strings.EqualFold(strings.TrimSpace(sub.Event), EventOther) && strings.TrimSpace(sub.EventOther) == "" {
		fields["eventOther"] = "describe the event when choosing Other"
	}

	switch sub.Recommend {
	case models.RecommendYes, models.RecommendNo, models.RecommendUnset:
	default:
		fields["recommend"] = "must be yes or no"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// normalize turns a validated submission into the canonical record. The
// "Other" category is replaced by the free-text description and the
// redundant field dropped.
func normalize(sub *models.FeedbackSubmission) *models.FeedbackRecord {
	event := strings.TrimSpace(sub.Event)
	if strings.EqualFold(event, EventOther) {
		event = strings.TrimSpace(sub.EventOther)
	}

	record := &models.FeedbackRecord{
		ID:            uuid.NewString(),
		Date:          time.Now().UTC(),
		SubmitterKind: sub.SubmitterKind,
		Event:         event,
		Food:          sub.Food,
		Ambience:      sub.Ambience,
		Service:       sub.Service,
		Overall:       sub.Overall,
		Recommend:     sub.Recommend,
		Comments:      strings.TrimSpace(sub.Comments),
	}

	if sub.SubmitterKind != models.KindAnonymous {
		record.Name = strings.TrimSpace(sub.Name)
		record.Email = strings.TrimSpace(sub.Email)
		record.Contact = strings.TrimSpace(sub.Contact)
	}
	return record
}
