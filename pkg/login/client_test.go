package login

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/classroom-idm/pkg/account"
	"github.com/campushq/classroom-idm/pkg/sessiontoken"
)

const testSecret = "test-jwt-secret"

func newSessionRouter(repo account.Repository) http.Handler {
	tokenAuth := jwtauth.New("HS256", []byte(testSecret), nil)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(Verifier(tokenAuth), AccountMiddleware(repo))
		r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
			authAccount, _ := AuthAccountFromContext(r.Context())
			render.JSON(w, r, authAccount)
		})
	})
	return r
}

func doRequest(t *testing.T, handler http.Handler, tokenStr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "/whoami", nil)
	if tokenStr != "" {
		req.AddCookie(&http.Cookie{Name: sessiontoken.TokenCookieName, Value: tokenStr})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestAccountMiddlewareMissingToken(t *testing.T) {
	handler := newSessionRouter(account.NewInMemoryRepository())

	rec := doRequest(t, handler, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "You need to be logged in to do that.", decodeMessage(t, rec))
}

func TestAccountMiddlewareInvalidToken(t *testing.T) {
	handler := newSessionRouter(account.NewInMemoryRepository())

	rec := doRequest(t, handler, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decodeMessage(t, rec))
}

func TestAccountMiddlewareExpiredToken(t *testing.T) {
	repo := account.NewInMemoryRepository()
	seedAccount(t, repo, "alovelace", "Analyt1cal!")
	handler := newSessionRouter(repo)

	tokens := sessiontoken.NewService(testSecret, sessiontoken.WithExpiry(-time.Minute))
	tokenStr, _, err := tokens.Issue("alovelace")
	require.NoError(t, err)

	rec := doRequest(t, handler, tokenStr)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decodeMessage(t, rec),
		"expired is indistinguishable from tampered at the API boundary")
}

func TestAccountMiddlewareAccountDeleted(t *testing.T) {
	repo := account.NewInMemoryRepository()
	seedAccount(t, repo, "alovelace", "Analyt1cal!")
	handler := newSessionRouter(repo)

	tokenStr, _, err := sessiontoken.NewService(testSecret).Issue("alovelace")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), "alovelace"))

	rec := doRequest(t, handler, tokenStr)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Could not find your session.", decodeMessage(t, rec))
}

func TestAccountMiddlewareResolvesIdentity(t *testing.T) {
	repo := account.NewInMemoryRepository()
	seedAccount(t, repo, "alovelace", "Analyt1cal!")
	handler := newSessionRouter(repo)

	tokenStr, _, err := sessiontoken.NewService(testSecret).Issue("alovelace")
	require.NoError(t, err)

	rec := doRequest(t, handler, tokenStr)
	require.Equal(t, http.StatusOK, rec.Code)

	var identity AuthAccount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
	assert.Equal(t, "alovelace", identity.Username)
	assert.Equal(t, account.RoleStudent, identity.Role)
	assert.Equal(t, "Ada", identity.FirstName)
	assert.Equal(t, "Lovelace", identity.LastName)
}

func TestAccountMiddlewareIdempotent(t *testing.T) {
	repo := account.NewInMemoryRepository()
	seedAccount(t, repo, "alovelace", "Analyt1cal!")
	handler := newSessionRouter(repo)

	tokenStr, _, err := sessiontoken.NewService(testSecret).Issue("alovelace")
	require.NoError(t, err)

	first := doRequest(t, handler, tokenStr)
	second := doRequest(t, handler, tokenStr)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	// Resolution performs no writes: the stored account is untouched.
	acct, err := repo.FindByUsername(context.Background(), "alovelace")
	require.NoError(t, err)
	assert.Equal(t, "Analyt1cal!", acct.Password)
}
