package sync

import (
	"net/http"
	"strings"

	"gamerecs/internal/httpx"
)

// CacheInvalidator clears the IGDB search cache.
type CacheInvalidator interface {
	InvalidateAll()
	Len() int
}

type HTTPHandler struct {
	svc   *Service
	cache CacheInvalidator
}

func NewHTTPHandler(svc *Service, cache CacheInvalidator) *HTTPHandler {
	return &HTTPHandler{svc: svc, cache: cache}
}

// Update handles POST /v1/igdb/update
// @Summary Sync games from IGDB
// @Description Search IGDB for the given query and upsert the results
// @Tags igdb
// @Produce json
// @Param query query string true "Search query"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Security BearerAuth
// @Router /v1/igdb/update [post]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "query parameter is required", nil)
		return
	}

	res, err := h.svc.SyncFromQuery(r.Context(), query)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadGateway, "SYNC_FAILED", "Failed to sync games from IGDB", nil)
		return
	}

	httpx.JSONSuccess(w, r, res, nil)
}

// ClearCache handles POST /v1/igdb/clear-cache
// @Summary Clear the IGDB search cache
// @Tags igdb
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Security BearerAuth
// @Router /v1/igdb/clear-cache [post]
func (h *HTTPHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	cleared := h.cache.Len()
	h.cache.InvalidateAll()

	httpx.JSONSuccess(w, r, map[string]any{"cleared_entries": cleared}, nil)
}
