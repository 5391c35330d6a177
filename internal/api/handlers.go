package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roach88/cardsearch/internal/carddb"
	"github.com/roach88/cardsearch/internal/query"
	"github.com/roach88/cardsearch/internal/render"
	"github.com/roach88/cardsearch/internal/store"
)

// MaxLimit caps the limit parameter.
const MaxLimit = 1000

// Recorder stores searches. *store.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e store.Entry) (store.Entry, error)
}

// Handler serves the search routes.
type Handler struct {
	db           *carddb.Database
	history      Recorder
	defaultLimit int
	corpus       string
	subsets      *subsetCache
}

// NewHandler creates a handler over db. history may be nil.
func NewHandler(db *carddb.Database, history Recorder, defaultLimit int, corpus string) *Handler {
	return &Handler{
		db:           db,
		history:      history,
		defaultLimit: defaultLimit,
		corpus:       corpus,
		subsets:      newSubsetCache(db),
	}
}

// HealthCheck answers "ok".
func (h *Handler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Search runs the q parameter.
func (h *Handler) Search(c *gin.Context) {
	text := strings.TrimSpace(c.Query("q"))
	if text == "" {
		respondError(c, http.StatusBadRequest, CodeMissingQuery, "q parameter is required")
		return
	}
	limit, ok := h.limit(c)
	if !ok {
		return
	}

	db := h.db
	if sets := splitList(c.Query("sets")); len(sets) > 0 {
		db = h.subsets.get(sets)
	}

	res, err := db.Search(text)
	if err != nil {
		h.record(c.Request.Context(), store.Entry{Query: text, ErrorCode: string(query.ErrorCodeOf(err))})
		respondParseError(c, err)
		return
	}
	h.record(c.Request.Context(), store.Entry{Query: text, Scope: res.Scope.String(), ResultCount: res.Len()})

	view := render.Search(db.Catalog(), text, res, limit)
	if view.Total == 0 {
		// Suggestions come from the whole corpus so a subset never builds
		// a spelling index of its own.
		view.Suggestion, _ = h.db.SuggestQuery(text)
	}
	c.JSON(http.StatusOK, view)
}

// SuggestResponse is the body of a suggest response.
type SuggestResponse struct {
	Query      string `json:"query"`
	Suggestion string `json:"suggestion,omitempty"`
	Found      bool   `json:"found"`
}

// Suggest proposes the card name closest to q.
func (h *Handler) Suggest(c *gin.Context) {
	text := strings.TrimSpace(c.Query("q"))
	if text == "" {
		respondError(c, http.StatusBadRequest, CodeMissingQuery, "q parameter is required")
		return
	}
	name, found := h.db.SuggestSpelling(text)
	c.JSON(http.StatusOK, SuggestResponse{Query: text, Suggestion: name, Found: found})
}

// Stats reports database counts.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, render.Stats(h.db))
}

// Card shows one card with every printing.
func (h *Handler) Card(c *gin.Context) {
	name := c.Param("name")
	card, ok := h.db.Card(name)
	if !ok {
		respondError(c, http.StatusNotFound, CodeCardNotFound, "no card named "+strconv.Quote(name))
		return
	}
	c.JSON(http.StatusOK, render.Card(h.db.Catalog(), card, card.Printings))
}

func (h *Handler) limit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return h.defaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > MaxLimit {
		respondError(c, http.StatusBadRequest, CodeInvalidLimit,
			"limit must be an integer between 1 and "+strconv.Itoa(MaxLimit))
		return 0, false
	}
	return n, true
}

// record logs a search to history. Failures are logged, never returned to
// the client.
func (h *Handler) record(ctx context.Context, e store.Entry) {
	if h.history == nil {
		return
	}
	e.Corpus = h.corpus
	if _, err := h.history.Record(ctx, e); err != nil {
		slog.Warn("record search", "query", e.Query, "error", err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
