package library

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

// List handles GET /v1/library
// @Summary List the authenticated user's game library
// @Tags library
// @Produce json
// @Param sortBy query string false "Sort order: title or releasedate" default(title)
// @Param filterByGenre query string false "Only games with this genre"
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/library [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	entries, err := h.svc.ListGames(r.Context(), userID, Query{
		SortBy: r.URL.Query().Get("sortBy"),
		Genre:  r.URL.Query().Get("filterByGenre"),
	})
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	httpx.JSONSuccess(w, r, entries, map[string]any{"count": len(entries)})
}

// AddGame handles POST /v1/library/games/{id}
// @Summary Add a game to the library
// @Tags library
// @Produce json
// @Param id path int true "Game ID"
// @Security BearerAuth
// @Success 201 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /v1/library/games/{id} [post]
func (h *HTTPHandler) AddGame(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	gameID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || gameID < 1 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid game id", nil)
		return
	}

	if err := h.svc.AddGame(r.Context(), userID, gameID); err != nil {
		switch {
		case errors.Is(err, ErrGameNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Game not found", nil)
		case errors.Is(err, ErrAlreadyInLibrary):
			httpx.JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", "Game already in library", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccessCreated(w, r, map[string]any{"game_id": gameID})
}

// RemoveGame handles DELETE /v1/library/games/{id}
// @Summary Remove a game from the library
// @Tags library
// @Param id path int true "Game ID"
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/library/games/{id} [delete]
func (h *HTTPHandler) RemoveGame(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	gameID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || gameID < 1 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid game id", nil)
		return
	}

	if err := h.svc.RemoveGame(r.Context(), userID, gameID); err != nil {
		if errors.Is(err, ErrNotInLibrary) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Game not in library", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessNoContent(w)
}
