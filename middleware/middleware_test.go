package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chefotw/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		ID:    "64f0e4f2a1b2c3d4e5f60718",
		Email: "a@gmail.com",
		Name:  "Alice",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	globals.JwtSecret = []byte("test-secret")

	var gotUserID string
	next := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	}
	handler := Authenticate(next)

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		handler(rec, req, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad format", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Token abc")
		handler(rec, req, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, -time.Minute))
		handler(rec, req, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, time.Hour))
		handler(rec, req, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "64f0e4f2a1b2c3d4e5f60718", gotUserID)
	})
}

func TestGetClaims(t *testing.T) {
	globals.JwtSecret = []byte("test-secret")

	var claims *Claims
	var ok bool
	next := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		claims, ok = GetClaims(r)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, time.Hour))
	Authenticate(next)(rec, req, nil)

	require.True(t, ok)
	assert.Equal(t, "a@gmail.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
}
