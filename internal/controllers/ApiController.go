package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"sfd/internal/aggregation"
	"sfd/internal/models"
	"sfd/internal/providers"
	"sfd/internal/report"
	"sfd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger     providers.Logger
	service    services.FeedbackServiceInterface
	aggregator *aggregation.Aggregator
	renderer   *report.Renderer
	cache      providers.CacheProviderInterface
	auth       providers.AuthProviderInterface
	metrics    providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, service services.FeedbackServiceInterface, aggregator *aggregation.Aggregator, renderer *report.Renderer, cache providers.CacheProviderInterface, auth providers.AuthProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:     logger,
		service:    service,
		aggregator: aggregator,
		renderer:   renderer,
		cache:      cache,
		auth:       auth,
		metrics:    metrics,
	}
}

// parseParams maps the dashboard query string onto filter params.
func parseParams(r *http.Request) aggregation.Params {
	q := r.URL.Query()
	params := aggregation.Params{
		ShowArchived: cast.ToBool(q.Get("archived")),
		Search:       q.Get("q"),
		TimeFilter:   q.Get("range"),
	}
	if params.TimeFilter == "" {
		params.TimeFilter = aggregation.TimeFilterAll
	}
	if from, err := time.Parse("2006-01-02", q.Get("from")); err == nil {
		params.From = from
	}
	if to, err := time.Parse("2006-01-02", q.Get("to")); err == nil {
		params.To = to
	}
	return params
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeError maps service failures onto the HTTP surface. Every body is
// a dismissible one-liner for the dashboard notification area.
func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		ac.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, services.ErrNotFound):
		ac.writeJSON(w, http.StatusNotFound, map[string]string{"error": "feedback record not found"})
	default:
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s failed: %s", r.Method, r.URL.Path, err)
		ac.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "feedback could not be saved, please retry"})
	}
}

func (ac *ApiController) authorized(w http.ResponseWriter, r *http.Request) bool {
	if err := ac.auth.Authorize(r); err != nil {
		ac.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return false
	}
	return true
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// Submission outcomes as counted by the metrics provider.
const (
	outcomeAccepted = "accepted"
	outcomeInvalid  = "invalid"
	outcomeFailed   = "failed"
)

// SubmitFeedback is the public form endpoint.
func (ac *ApiController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.FeedbackSubmission
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		ac.metrics.IncSubmissionsTotal(outcomeInvalid)
		ac.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	record, err := ac.service.Submit(&payload)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			ac.metrics.IncSubmissionsTotal(outcomeInvalid)
		} else {
			ac.metrics.IncSubmissionsTotal(outcomeFailed)
		}
		ac.writeError(w, r, err)
		return
	}
	ac.metrics.IncSubmissionsTotal(outcomeAccepted)
	ac.writeJSON(w, http.StatusCreated, record)
}

// ListFeedback returns the filtered record subset for the admin table.
func (ac *ApiController) ListFeedback(w http.ResponseWriter, r *http.Request) {
	if !ac.authorized(w, r) {
		return
	}
	params := parseParams(r)
	cacheKey := fmt.Sprintf("list:v%d:%s", ac.service.Version(), params.CacheKey())
	ac.serveFromCacheOrCompute(w, cacheKey, func() (any, error) {
		filtered := aggregation.Filter(ac.service.List(), params, time.Now())
		return map[string]any{"total": len(filtered), "records": filtered}, nil
	})
}

// GetSummary returns the full aggregation result for the dashboard.
func (ac *ApiController) GetSummary(w http.ResponseWriter, r *http.Request) {
	if !ac.authorized(w, r) {
		return
	}
	params := parseParams(r)
	cacheKey := fmt.Sprintf("summary:v%d:%s", ac.service.Version(), params.CacheKey())
	ac.serveFromCacheOrCompute(w, cacheKey, func() (any, error) {
		return ac.aggregator.Aggregate(ac.service.List(), params, time.Now()), nil
	})
}

type archiveRequest struct {
	ID       string `json:"id"`
	Archived bool   `json:"archived"`
}

func (ac *ApiController) ArchiveFeedback(w http.ResponseWriter, r *http.Request) {
	if !ac.authorized(w, r) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload archiveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ID == "" {
		ac.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "record id required"})
		return
	}

	if err := ac.service.Archive(payload.ID, payload.Archived); err != nil {
		ac.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	if !ac.authorized(w, r) {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		ac.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "record id required"})
		return
	}

	if err := ac.service.Delete(id); err != nil {
		ac.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportReport renders the printable document for the current filter
// view. An empty filtered set aborts before rendering.
func (ac *ApiController) ExportReport(w http.ResponseWriter, r *http.Request) {
	if !ac.authorized(w, r) {
		return
	}
	params := parseParams(r)
	result := ac.aggregator.Aggregate(ac.service.List(), params, time.Now())

	doc, err := ac.renderer.Render(result, filterLabel(params), time.Now())
	if err != nil {
		if errors.Is(err, report.ErrNoRecords) {
			ac.writeJSON(w, http.StatusConflict, map[string]string{"error": "nothing to export for the current filters"})
			return
		}
		ac.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func filterLabel(params aggregation.Params) string {
	label := ""
	switch params.TimeFilter {
	case aggregation.TimeFilter7Days:
		label = "last 7 days"
	case aggregation.TimeFilter30Days:
		label = "last 30 days"
	case aggregation.TimeFilterCustom:
		label = fmt.Sprintf("%s to %s", params.From.Format("2006-01-02"), params.To.Format("2006-01-02"))
	default:
		label = "all time"
	}
	if params.Search != "" {
		label += fmt.Sprintf(", search %q", params.Search)
	}
	if params.ShowArchived {
		label += ", incl. archived"
	}
	return label
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ac *ApiController) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		ac.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	token, expiresAt, err := ac.auth.Login(payload.Username, payload.Password)
	if err != nil {
		ac.logger.Warnf(providers.TypePost, "Failed admin login for %q", payload.Username)
		ac.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
		return
	}

	ac.writeJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"expiresAt": expiresAt.UnixMilli(),
	})
}

func (ac *ApiController) GetTheme(w http.ResponseWriter, r *http.Request) {
	ac.writeJSON(w, http.StatusOK, map[string]string{"theme": ac.service.Theme()})
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func (ac *ApiController) PutTheme(w http.ResponseWriter, r *http.Request) {
	if !ac.authorized(w, r) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload themeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		ac.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	if err := ac.service.SetTheme(payload.Theme); err != nil {
		ac.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StreamEvents feeds the admin dashboard over SSE so open views refresh
// after every successful mutation instead of polling.
func (ac *ApiController) StreamEvents(w http.ResponseWriter, r *http.Request) {
	if !ac.authorized(w, r) {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Long-lived connection: lift the server write deadline for this
	// response only.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	events, cancel := ac.service.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			gson, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", gson)
			flusher.Flush()
		}
	}
}
