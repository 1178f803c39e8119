// internal/app/features/historyapi/handler.go

// Package historyapi is the JSON API over the per-user history records:
// time-range listing, create, key-addressed update and delete, and the
// in-memory criteria search.
package historyapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/histkeep/internal/app/store/history"
	"github.com/dalemusser/histkeep/internal/app/system/apiutil"
	"github.com/dalemusser/histkeep/internal/app/system/auth"
	"github.com/dalemusser/histkeep/internal/app/system/htmlsanitize"
	"github.com/dalemusser/histkeep/internal/app/system/timeouts"
	"github.com/dalemusser/histkeep/internal/app/system/timeparse"
	"github.com/dalemusser/histkeep/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// defaultListWindow is how far back the list endpoint reaches when the
// caller supplies no explicit range.
const defaultListWindow = 14 * 24 * time.Hour

// RecordStore is the history collection the handler reads and writes.
type RecordStore interface {
	Create(ctx context.Context, rec models.HistoryRecord) (models.HistoryRecord, error)
	Update(ctx context.Context, userID, id string, createdAt int64, name, description string) (models.HistoryRecord, error)
	Delete(ctx context.Context, userID, id string, createdAt int64) error
	ListRange(ctx context.Context, userID string, start, end int64) ([]models.HistoryRecord, error)
	AllForUser(ctx context.Context, userID string) ([]models.HistoryRecord, error)
}

// Handler serves the /api/history and /api/search endpoints.
type Handler struct {
	records RecordStore
	log     *zap.Logger
	now     func() time.Time
}

func NewHandler(records RecordStore, logger *zap.Logger) *Handler {
	return &Handler{
		records: records,
		log:     logger,
		now:     time.Now,
	}
}

// ServeList returns the caller's records with createdAt inside
// [startDate, endDate]. With either bound absent the range defaults to the
// last fourteen days.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	startRaw := r.URL.Query().Get("startDate")
	endRaw := r.URL.Query().Get("endDate")

	var start, end int64
	if startRaw == "" || endRaw == "" {
		now := h.now().UTC()
		start = now.Add(-defaultListWindow).UnixMilli()
		end = now.UnixMilli()
	} else {
		var err error
		if start, err = timeparse.Millis(startRaw); err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "Invalid startDate")
			return
		}
		if end, err = timeparse.Millis(endRaw); err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "Invalid endDate")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	records, err := h.records.ListRange(ctx, auth.RequestUser(r).Email, start, end)
	if err != nil {
		h.log.Error("list history", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"items": records})
}

type createRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Text        string          `json:"text"`
	Date        json.RawMessage `json:"date"` // JSON string or number
}

// ServeCreate stores a new record owned by the caller. The creation
// timestamp comes from the `date` field: a JSON number is taken verbatim
// as epoch milliseconds, a string parses as ISO-8601 or a numeric literal,
// and anything else falls back to server time.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	createdAt := h.resolveDate(req.Date)

	rec := models.HistoryRecord{
		CreatedAt:   models.Number(createdAt),
		Name:        htmlsanitize.Strip(req.Name),
		Description: htmlsanitize.Sanitize(req.Description),
		Text:        htmlsanitize.Sanitize(req.Text),
		UserID:      auth.RequestUser(r).Email,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	stored, err := h.records.Create(ctx, rec)
	if err != nil {
		h.log.Error("create history record", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"item":    stored,
	})
}

type updateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   *models.Number `json:"createdAt"`
}

// ServeUpdate overwrites name and description of the record addressed by
// id+createdAt. createdAt is part of the key and must come in the body or
// as a query parameter.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	createdAt, ok := h.resolveCreatedAt(req.CreatedAt, r)
	if !ok {
		apiutil.WriteError(w, http.StatusBadRequest, "createdAt is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.records.Update(ctx, auth.RequestUser(r).Email, id, createdAt,
		htmlsanitize.Strip(req.Name),
		htmlsanitize.Sanitize(req.Description))
	if errors.Is(err, historystore.ErrNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "Record not found")
		return
	}
	if err != nil {
		h.log.Error("update history record", zap.String("id", id), zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"item":    updated,
	})
}

// ServeDelete removes the record addressed by id+createdAt. Deleting an
// absent key still reports success.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	createdAt, ok := h.resolveCreatedAt(nil, r)
	if !ok {
		apiutil.WriteError(w, http.StatusBadRequest, "createdAt is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.records.Delete(ctx, auth.RequestUser(r).Email, id, createdAt); err != nil {
		h.log.Error("delete history record", zap.String("id", id), zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ServeSearch filters the caller's full record set by the supplied
// criteria. Criteria left blank do not constrain the result.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	crit := Criteria{
		Name:          q.Get("name"),
		Text:          q.Get("searchText"),
		MatchAny:      q.Get("matchMode") == "any",
		CaseSensitive: q.Get("caseSensitive") == "true",
	}
	if raw := q.Get("startDate"); raw != "" {
		ms, err := timeparse.Millis(raw)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "Invalid startDate")
			return
		}
		crit.StartMillis = &ms
	}
	if raw := q.Get("endDate"); raw != "" {
		ms, err := timeparse.Millis(raw)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "Invalid endDate")
			return
		}
		crit.EndMillis = &ms
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	candidates, err := h.records.AllForUser(ctx, auth.RequestUser(r).Email)
	if err != nil {
		h.log.Error("search history", zap.Error(err))
		apiutil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"items": Filter(candidates, crit)})
}

// resolveDate turns the raw `date` field of a create request into epoch
// milliseconds, defaulting to server time when the field is absent or
// unparseable.
func (h *Handler) resolveDate(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return h.now().UTC().UnixMilli()
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return h.now().UTC().UnixMilli()
		}
		if ms, err := timeparse.Millis(s); err == nil {
			return ms
		}
		if ms, ok := timeparse.Numeric(s); ok {
			return ms
		}
		return h.now().UTC().UnixMilli()
	}
	var n models.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return int64(n)
	}
	return h.now().UTC().UnixMilli()
}

// resolveCreatedAt takes the key timestamp from the body field when
// present, falling back to the createdAt query parameter.
func (h *Handler) resolveCreatedAt(body *models.Number, r *http.Request) (int64, bool) {
	if body != nil {
		return int64(*body), true
	}
	raw := r.URL.Query().Get("createdAt")
	if raw == "" {
		return 0, false
	}
	ms, ok := timeparse.Numeric(raw)
	return ms, ok
}
