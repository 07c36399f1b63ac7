package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	repo "Meyerhof/internal/repo"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv() *Authenv {
	return &Authenv{JWTkey: []byte("test-key"), Repo: repo.NewMemory()}
}

func post(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b)))
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	env := newEnv()

	rec := post(t, env.RegisterHandler, RegisterRequest{Login: "ana", Email: "ana@example.com", Password: "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var reg TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reg))
	assert.Equal(t, 1, reg.UserID)
	assert.NotEmpty(t, reg.Token)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, "session_token", rec.Result().Cookies()[0].Name)

	rec = post(t, env.RegisterHandler, RegisterRequest{Login: "ana", Email: "x@example.com", Password: "secret1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = post(t, env.AuthHandler, LoginRequest{Login: "ana", Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&login))
	id, err := env.Parse(login.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	rec = post(t, env.AuthHandler, LoginRequest{Login: "ana", Password: "wrong!"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = post(t, env.AuthHandler, LoginRequest{Login: "bob", Password: "secret1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newEnv()
	for _, req := range []RegisterRequest{
		{Login: "", Email: "a@b", Password: "secret1"},
		{Login: "ana", Email: "", Password: "secret1"},
		{Login: "ana", Email: "a@b", Password: "short"},
	} {
		rec := post(t, env.RegisterHandler, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%+v", req)
	}
}

func TestAuthMiddleware(t *testing.T) {
	env := newEnv()
	var seen int
	h := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserID(r.Context())
	}))

	tok, _, err := env.Issue(7, "ana", time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user/projects", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, seen)

	seen = 0
	req = httptest.NewRequest(http.MethodGet, "/api/user/projects", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: tok})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, seen)

	expired, _, err := env.Issue(7, "ana", time.Now().Add(-2*tokenTTL))
	require.NoError(t, err)
	other := &Authenv{JWTkey: []byte("other-key")}
	foreign, _, err := other.Issue(7, "ana", time.Now())
	require.NoError(t, err)
	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 7, "login": "ana"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, tok := range map[string]string{"missing": "", "expired": expired, "foreign key": foreign, "unsigned": unsigned} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user/projects", nil)
			if tok != "" {
				req.Header.Set("Authorization", "Bearer "+tok)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestUserIDMissing(t *testing.T) {
	_, ok := UserID(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestLimitMiddleware(t *testing.T) {
	l := NewIPRateLimiter(0.001, 2)
	h := l.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 4)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/tools/loads/calc", nil)
		req.RemoteAddr = "10.0.0.1:" + []string{"1000", "1001", "1002"}[i]
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/tools/loads/calc", nil)
	req.RemoteAddr = "10.0.0.2:1000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	codes = append(codes, rec.Code)

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusOK}, codes)
}

func TestLimiterPrune(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	assert.True(t, l.allow("10.0.0.1"))
	clock = clock.Add(10 * time.Minute)
	assert.True(t, l.allow("10.0.0.2"))

	assert.Equal(t, 1, l.Prune(5*time.Minute))
	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "10.0.0.2")
	assert.Zero(t, l.Prune(5*time.Minute))
}
