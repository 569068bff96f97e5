package game

import (
	"errors"
	"net/http"
	"strconv"

	"gamerecs/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// List handles GET /v1/games
// @Summary List stored games
// @Description List games synchronized from IGDB, with optional filters
// @Tags games
// @Produce json
// @Param q query string false "Title substring filter"
// @Param genre query string false "Filter by genre name"
// @Param sortBy query string false "Sort order: title or releasedate" default(title)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/games [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	sortBy := query.Get("sortBy")
	if sortBy != "releasedate" {
		sortBy = "title"
	}

	q := Query{
		Q:      query.Get("q"),
		Genre:  query.Get("genre"),
		SortBy: sortBy,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	games, err := h.svc.List(r.Context(), q)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if games == nil {
		games = []Game{}
	}

	httpx.JSONSuccess(w, r, games, map[string]any{
		"page":      page,
		"page_size": pageSize,
		"count":     len(games),
	})
}

// GetByID handles GET /v1/games/{id}
// @Summary Get a stored game
// @Tags games
// @Produce json
// @Param id path int true "Game ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/games/{id} [get]
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid game id", nil)
		return
	}

	g, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Game not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, g, nil)
}
