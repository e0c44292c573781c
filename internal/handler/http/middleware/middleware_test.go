package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuth = jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)

func tokenWithClaims(t *testing.T, claims map[string]interface{}) jwt.Token {
	t.Helper()
	_, tokenString, err := testAuth.Encode(claims)
	require.NoError(t, err)
	token, err := testAuth.Decode(tokenString)
	require.NoError(t, err)
	return token
}

func requestWithToken(t *testing.T, token jwt.Token) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRequired(t *testing.T) {
	handler := AuthRequired(testAuth)(okHandler())

	t.Run("access token passes", func(t *testing.T) {
		token := tokenWithClaims(t, map[string]interface{}{"employee_id": "e1", "type": "access"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, token))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		token := tokenWithClaims(t, map[string]interface{}{"employee_id": "e1", "type": "refresh"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, token))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(jwtauth.NewContext(req.Context(), nil, jwtauth.ErrNoTokenFound))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(okHandler())

	t.Run("admin passes", func(t *testing.T) {
		token := tokenWithClaims(t, map[string]interface{}{"employee_id": "e1", "role": "admin", "type": "access"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, token))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("hr rejected", func(t *testing.T) {
		token := tokenWithClaims(t, map[string]interface{}{"employee_id": "e1", "role": "hr", "type": "access"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, token))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("employee rejected", func(t *testing.T) {
		token := tokenWithClaims(t, map[string]interface{}{"employee_id": "e1", "role": "employee", "type": "access"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, token))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequireHR(t *testing.T) {
	handler := RequireHR(okHandler())

	t.Run("admin passes", func(t *testing.T) {
		token := tokenWithClaims(t, map[string]interface{}{"employee_id": "e1", "role": "admin", "type": "access"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, token))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("hr passes", func(t *testing.T) {
		token := tokenWithClaims(t, map[string]interface{}{"employee_id": "e1", "role": "hr", "type": "access"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, token))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("employee rejected", func(t *testing.T) {
		token := tokenWithClaims(t, map[string]interface{}{"employee_id": "e1", "role": "employee", "type": "access"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, token))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing role rejected", func(t *testing.T) {
		token := tokenWithClaims(t, map[string]interface{}{"employee_id": "e1", "type": "access"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithToken(t, token))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
