package user

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gamerecs/internal/auth"
)

const testSecret = "test-secret"

func newUserServer(repo Repository) *httptest.Server {
	h := NewHTTPHandler(NewService(repo), testSecret, 15*time.Minute)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/users/register", h.Register)
	mux.HandleFunc("POST /v1/users/login", h.Login)
	return httptest.NewServer(mux)
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func TestHTTPHandler_Register(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "gamer@example.com").Return(User{}, ErrNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*User).ID = "u1"
	}).Return(nil)

	srv := newUserServer(repo)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/users/register", map[string]string{
		"email":    "gamer@example.com",
		"username": "gamer",
		"password": "Sup3r$ecret",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u1", body.Data["id"])
	assert.Equal(t, "USER", body.Data["role"])
}

func TestHTTPHandler_Register_WeakPassword(t *testing.T) {
	srv := newUserServer(new(mockUserRepo))
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/users/register", map[string]string{
		"email":    "gamer@example.com",
		"username": "gamer",
		"password": "weak",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details []struct {
				Field string `json:"field"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	require.NotEmpty(t, body.Error.Details)
	assert.Equal(t, "password", body.Error.Details[0].Field)
}

func TestHTTPHandler_Register_Duplicate(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "gamer@example.com").Return(User{ID: "u1"}, nil)

	srv := newUserServer(repo)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/users/register", map[string]string{
		"email":    "gamer@example.com",
		"username": "gamer",
		"password": "Sup3r$ecret",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHTTPHandler_Login(t *testing.T) {
	hash, err := auth.HashPassword("Sup3r$ecret")
	require.NoError(t, err)

	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "gamer@example.com").
		Return(User{ID: "u1", Role: "USER", Password: hash}, nil)

	srv := newUserServer(repo)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/users/login", map[string]string{
		"email":    "gamer@example.com",
		"password": "Sup3r$ecret",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
			ExpiresIn   int    `json:"expires_in"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Bearer", body.Data.TokenType)
	assert.Equal(t, 900, body.Data.ExpiresIn)

	claims, err := auth.ParseToken(testSecret, body.Data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Sub)
	assert.Equal(t, "USER", claims.Role)
}

func TestHTTPHandler_Login_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("Sup3r$ecret")
	require.NoError(t, err)

	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "gamer@example.com").
		Return(User{ID: "u1", Password: hash}, nil)

	srv := newUserServer(repo)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/users/login", map[string]string{
		"email":    "gamer@example.com",
		"password": "nope",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
