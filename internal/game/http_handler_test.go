package game

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo embeds Repository so only the methods the handler exercises
// need real implementations.
type fakeRepo struct {
	Repository
	games   []Game
	lastQ   Query
	listErr error
}

func (f *fakeRepo) List(ctx context.Context, q Query) ([]Game, error) {
	f.lastQ = q
	return f.games, f.listErr
}

func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*Game, error) {
	for i := range f.games {
		if f.games[i].ID == id {
			return &f.games[i], nil
		}
	}
	return nil, nil
}

func newGameServer(repo Repository) *httptest.Server {
	h := NewHTTPHandler(NewService(repo))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/games", h.List)
	mux.HandleFunc("GET /v1/games/{id}", h.GetByID)
	return httptest.NewServer(mux)
}

func TestHTTPHandler_List(t *testing.T) {
	repo := &fakeRepo{games: []Game{
		{ID: 1, IGDBID: 1, Title: "The Legend of Zelda"},
		{ID: 2, IGDBID: 2, Title: "Breath of the Wild"},
	}}
	srv := newGameServer(repo)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/games?q=zelda&genre=Adventure&sortBy=releasedate&page=2&page_size=10")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Data    []Game `json:"data"`
		Meta    struct {
			Page     int `json:"page"`
			PageSize int `json:"page_size"`
			Count    int `json:"count"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.Meta.Page)

	assert.Equal(t, "zelda", repo.lastQ.Q)
	assert.Equal(t, "Adventure", repo.lastQ.Genre)
	assert.Equal(t, "releasedate", repo.lastQ.SortBy)
	assert.Equal(t, 10, repo.lastQ.Limit)
	assert.Equal(t, 10, repo.lastQ.Offset)
}

func TestHTTPHandler_List_DefaultsSort(t *testing.T) {
	repo := &fakeRepo{}
	srv := newGameServer(repo)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/games?sortBy=bogus")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "title", repo.lastQ.SortBy)
}

func TestHTTPHandler_GetByID(t *testing.T) {
	repo := &fakeRepo{games: []Game{{ID: 7, IGDBID: 1029, Title: "Breath of the Wild"}}}
	srv := newGameServer(repo)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/games/7")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data Game `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Breath of the Wild", body.Data.Title)
}

func TestHTTPHandler_GetByID_NotFound(t *testing.T) {
	srv := newGameServer(&fakeRepo{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/games/123")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHTTPHandler_GetByID_BadID(t *testing.T) {
	srv := newGameServer(&fakeRepo{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/games/abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
