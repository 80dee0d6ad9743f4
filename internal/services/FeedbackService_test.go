package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfd/internal/models"
	"sfd/internal/providers"
)

// Local mocks: testutil depends on this package, so tests here carry
// their own.

type nopLogger struct{}

func (nopLogger) Errorf(providers.TypeEnum, string, ...interface{}) {}
func (nopLogger) Warnf(providers.TypeEnum, string, ...interface{})  {}
func (nopLogger) Debugf(providers.TypeEnum, string, ...interface{}) {}
func (nopLogger) Infof(providers.TypeEnum, string, ...interface{})  {}
func (nopLogger) Fatalf(providers.TypeEnum, string, ...interface{}) {}
func (nopLogger) Close()                                            {}

type fakePersister struct {
	saved   []*models.StorageV2
	saveErr error
	loadDoc *models.StorageV2
	loadErr error
}

func (p *fakePersister) Save(doc *models.StorageV2) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saved = append(p.saved, doc)
	return nil
}

func (p *fakePersister) Load() (*models.StorageV2, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	if p.loadDoc != nil {
		return p.loadDoc, nil
	}
	return &models.StorageV2{Version: models.StorageVersion}, nil
}

func newTestService() (FeedbackServiceInterface, *fakePersister) {
	persister := &fakePersister{}
	return NewFeedbackService(persister, nopLogger{}), persister
}

func validSubmission() *models.FeedbackSubmission {
	return &models.FeedbackSubmission{
		SubmitterKind: models.KindIndividual,
		Name:          "Rita",
		Email:         "rita@example.com",
		Contact:       "+31 6 1234",
		Event:         "Birthday",
		Food:          4,
		Ambience:      5,
		Service:       4,
		Overall:       4,
		Recommend:     models.RecommendYes,
		Comments:      "  great evening  ",
	}
}

func TestSubmit_Valid(t *testing.T) {
	service, persister := newTestService()

	record, err := service.Submit(validSubmission())
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.False(t, record.Date.IsZero())
	assert.Equal(t, "Rita", record.Name)
	assert.Equal(t, "great evening", record.Comments)
	assert.Equal(t, 1, service.Count())
	require.Len(t, persister.saved, 1)
	assert.Equal(t, models.StorageVersion, persister.saved[0].Version)
}

func TestSubmit_AnonymousStripsIdentity(t *testing.T) {
	service, _ := newTestService()

	sub := validSubmission()
	sub.SubmitterKind = models.KindAnonymous
	sub.Name = "should be dropped"
	sub.Email = "drop@example.com"
	sub.Contact = "drop"

	record, err := service.Submit(sub)
	require.NoError(t, err)
	assert.Empty(t, record.Name)
	assert.Empty(t, record.Email)
	assert.Empty(t, record.Contact)
	assert.Equal(t, models.KindAnonymous, record.SubmitterKind)
}

func TestSubmit_AnonymousWithoutIdentityIsValid(t *testing.T) {
	service, _ := newTestService()

	sub := validSubmission()
	sub.SubmitterKind = models.KindAnonymous
	sub.Name, sub.Email, sub.Contact = "", "", ""

	_, err := service.Submit(sub)
	assert.NoError(t, err)
}

func TestSubmit_OtherEventNormalized(t *testing.T) {
	service, _ := newTestService()

	sub := validSubmission()
	sub.Event = "Other"
	sub.EventOther = "  Company retreat  "

	record, err := service.Submit(sub)
	require.NoError(t, err)
	assert.Equal(t, "Company retreat", record.Event)
}

func TestSubmit_OtherWithoutDescriptionFails(t *testing.T) {
	service, _ := newTestService()

	sub := validSubmission()
	sub.Event = "Other"
	sub.EventOther = "   "

	_, err := service.Submit(sub)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "eventOther")
	assert.Zero(t, service.Count())
}

func TestSubmit_MissingIdentityFails(t *testing.T) {
	service, _ := newTestService()

	sub := validSubmission()
	sub.Name = ""
	sub.Contact = " "

	_, err := service.Submit(sub)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "contact")
	assert.NotContains(t, verr.Fields, "email")
}

func TestSubmit_BadKindFails(t *testing.T) {
	service, _ := newTestService()

	sub := validSubmission()
	sub.SubmitterKind = "committee"

	_, err := service.Submit(sub)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Fields)
}

func TestSubmit_BadRecommendFails(t *testing.T) {
	service, _ := newTestService()

	sub := validSubmission()
	sub.Recommend = "maybe"

	_, err := service.Submit(sub)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "recommend")
}

func TestSubmit_RatingOutOfRangeFails(t *testing.T) {
	service, _ := newTestService()

	sub := validSubmission()
	sub.Food = 9

	_, err := service.Submit(sub)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Fields)
}

func TestSubmit_PersistFailureRollsBack(t *testing.T) {
	service, persister := newTestService()
	persister.saveErr = errors.New("disk full")

	_, err := service.Submit(validSubmission())
	require.Error(t, err)
	assert.Zero(t, service.Count())
	assert.Empty(t, persister.saved)
}

// gatedPersister blocks inside its first Save and then fails it, so a
// test can interleave a second mutation with an in-flight persist.
type gatedPersister struct {
	mu      sync.Mutex
	armed   bool
	entered chan struct{}
	release chan struct{}
	saved   []*models.StorageV2
}

func newGatedPersister() *gatedPersister {
	return &gatedPersister{
		armed:   true,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (p *gatedPersister) Save(doc *models.StorageV2) error {
	p.mu.Lock()
	armed := p.armed
	p.armed = false
	p.mu.Unlock()

	if armed {
		close(p.entered)
		<-p.release
		return errors.New("disk full")
	}

	p.mu.Lock()
	p.saved = append(p.saved, doc)
	p.mu.Unlock()
	return nil
}

func (p *gatedPersister) Load() (*models.StorageV2, error) {
	return &models.StorageV2{Version: models.StorageVersion}, nil
}

func (p *gatedPersister) lastSaved() *models.StorageV2 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saved) == 0 {
		return nil
	}
	return p.saved[len(p.saved)-1]
}

func TestSubmit_FailedPersistOnlyRollsBackItsOwnRecord(t *testing.T) {
	persister := newGatedPersister()
	service := NewFeedbackService(persister, nopLogger{})

	type submitResult struct {
		record *models.FeedbackRecord
		err    error
	}

	resultA := make(chan submitResult, 1)
	go func() {
		record, err := service.Submit(validSubmission())
		resultA <- submitResult{record, err}
	}()
	<-persister.entered

	resultB := make(chan submitResult, 1)
	go func() {
		sub := validSubmission()
		sub.Name = "Bo"
		record, err := service.Submit(sub)
		resultB <- submitResult{record, err}
	}()

	// The second submission must wait for the first sequence to finish
	select {
	case <-resultB:
		t.Fatal("submission completed while another persist was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(persister.release)
	require.Error(t, (<-resultA).err)

	b := <-resultB
	require.NoError(t, b.err)

	// The first rollback erased only its own record
	all := service.List()
	require.Len(t, all, 1)
	assert.Equal(t, "Bo", all[0].Name)

	doc := persister.lastSaved()
	require.NotNil(t, doc)
	require.Len(t, doc.Feedbacks, 1)
	assert.Equal(t, b.record.ID, doc.Feedbacks[0].ID)
}

func TestArchive_TogglesAndPersists(t *testing.T) {
	service, persister := newTestService()
	record, err := service.Submit(validSubmission())
	require.NoError(t, err)

	require.NoError(t, service.Archive(record.ID, true))
	assert.Equal(t, 1, service.ArchivedCount())

	require.NoError(t, service.Archive(record.ID, false))
	assert.Zero(t, service.ArchivedCount())

	// submit + two toggles
	assert.Len(t, persister.saved, 3)
}

func TestArchive_UnknownIDIsNotFound(t *testing.T) {
	service, _ := newTestService()
	assert.ErrorIs(t, service.Archive("missing", true), ErrNotFound)
}

func TestArchive_PersistFailureRollsBack(t *testing.T) {
	service, persister := newTestService()
	record, err := service.Submit(validSubmission())
	require.NoError(t, err)

	persister.saveErr = errors.New("disk full")
	require.Error(t, service.Archive(record.ID, true))
	assert.Zero(t, service.ArchivedCount())
}

func TestDelete_RemovesAndPersists(t *testing.T) {
	service, _ := newTestService()
	record, err := service.Submit(validSubmission())
	require.NoError(t, err)

	require.NoError(t, service.Delete(record.ID))
	assert.Zero(t, service.Count())
	assert.ErrorIs(t, service.Delete(record.ID), ErrNotFound)
}

func TestDelete_PersistFailureRollsBack(t *testing.T) {
	service, persister := newTestService()
	record, err := service.Submit(validSubmission())
	require.NoError(t, err)

	persister.saveErr = errors.New("disk full")
	require.Error(t, service.Delete(record.ID))
	assert.Equal(t, 1, service.Count())
}

func TestTheme_DefaultAndSet(t *testing.T) {
	service, persister := newTestService()
	assert.Equal(t, "light", service.Theme())

	require.NoError(t, service.SetTheme("dark"))
	assert.Equal(t, "dark", service.Theme())
	require.Len(t, persister.saved, 1)
	assert.Equal(t, "dark", persister.saved[0].Settings.Theme)
}

func TestSetTheme_RejectsUnknown(t *testing.T) {
	service, _ := newTestService()
	var verr *ValidationError
	require.ErrorAs(t, service.SetTheme("sepia"), &verr)
	assert.Contains(t, verr.Fields, "theme")
}

func TestSetTheme_PersistFailureRollsBack(t *testing.T) {
	service, persister := newTestService()
	persister.saveErr = errors.New("disk full")

	require.Error(t, service.SetTheme("dark"))
	assert.Equal(t, "light", service.Theme())
}

func TestDirty_TracksUnsavedMutations(t *testing.T) {
	service, persister := newTestService()
	assert.False(t, service.Dirty())

	_, err := service.Submit(validSubmission())
	require.NoError(t, err)
	assert.False(t, service.Dirty())

	// A rolled-back submit still bumps the store version, so the store
	// reads dirty until the next successful save
	persister.saveErr = errors.New("disk full")
	_, err = service.Submit(validSubmission())
	require.Error(t, err)
	assert.True(t, service.Dirty())

	persister.saveErr = nil
	require.NoError(t, service.PersistNow())
	assert.False(t, service.Dirty())
}

func TestRestore_LoadsCollectionAndSettings(t *testing.T) {
	persister := &fakePersister{loadDoc: &models.StorageV2{
		Version: models.StorageVersion,
		Feedbacks: []*models.FeedbackRecord{
			{ID: "a", SubmitterKind: models.KindIndividual, Overall: 4},
			{ID: "b", SubmitterKind: models.KindAnonymous, Overall: 2, Archived: true},
		},
		Settings: models.Settings{Theme: "dark"},
	}}
	service := NewFeedbackService(persister, nopLogger{})

	require.NoError(t, service.Restore())
	assert.Equal(t, 2, service.Count())
	assert.Equal(t, 1, service.ArchivedCount())
	assert.Equal(t, "dark", service.Theme())
	assert.False(t, service.Dirty())
}

func TestRestore_PropagatesLoadError(t *testing.T) {
	persister := &fakePersister{loadErr: errors.New("corrupt")}
	service := NewFeedbackService(persister, nopLogger{})
	assert.Error(t, service.Restore())
}

func TestSubscribe_ReceivesMutationEvents(t *testing.T) {
	service, _ := newTestService()
	events, cancel := service.Subscribe()
	defer cancel()

	record, err := service.Submit(validSubmission())
	require.NoError(t, err)

	e := <-events
	assert.Equal(t, EventCreated, e.Kind)
	assert.Equal(t, record.ID, e.RecordID)

	require.NoError(t, service.Archive(record.ID, true))
	e = <-events
	assert.Equal(t, EventArchived, e.Kind)

	require.NoError(t, service.Delete(record.ID))
	e = <-events
	assert.Equal(t, EventDeleted, e.Kind)
}
