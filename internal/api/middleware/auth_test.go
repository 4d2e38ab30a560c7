package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FavasCherukunnu/ecomm-api/internal/api/middleware"
	"github.com/FavasCherukunnu/ecomm-api/internal/api/shared"
	"github.com/FavasCherukunnu/ecomm-api/internal/mocks"
	"github.com/FavasCherukunnu/ecomm-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// guardedProbe records whether the guard let the request through and what
// user id it attached.
type guardedProbe struct {
	called bool
	userID primitive.ObjectID
	found  bool
}

func (p *guardedProbe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.userID, p.found = middleware.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestAuthenticate(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("valid token reaches the handler", func(t *testing.T) {
		jwtService := &mocks.MockJWTService{Claims: &auth.Claims{UserID: userID}}
		probe := &guardedProbe{}
		guard := middleware.NewAuthMiddleware(jwtService).Authenticate(probe.handler())

		rec := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/api/product/add", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		guard.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, probe.called)
		assert.True(t, probe.found)
		assert.Equal(t, userID, probe.userID)
	})

	t.Run("missing credential", func(t *testing.T) {
		testCases := []struct {
			name   string
			header string
		}{
			{name: "no header", header: ""},
			{name: "scheme only", header: "Bearer"},
			{name: "wrong scheme", header: "Basic dXNlcjpwdw=="},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				jwtService := &mocks.MockJWTService{Claims: &auth.Claims{UserID: userID}}
				probe := &guardedProbe{}
				guard := middleware.NewAuthMiddleware(jwtService).Authenticate(probe.handler())

				rec := httptest.NewRecorder()
				r := httptest.NewRequest("POST", "/api/product/add", nil)
				if tc.header != "" {
					r.Header.Set("Authorization", tc.header)
				}
				guard.ServeHTTP(rec, r)

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.Equal(t, "No token provided", errorMessage(t, rec))
				assert.False(t, probe.called, "the handler must not run")
			})
		}
	})

	t.Run("rejected credential", func(t *testing.T) {
		for _, validateErr := range []error{auth.ErrInvalidToken, auth.ErrExpiredToken} {
			jwtService := &mocks.MockJWTService{ValidateErr: validateErr}
			probe := &guardedProbe{}
			guard := middleware.NewAuthMiddleware(jwtService).Authenticate(probe.handler())

			rec := httptest.NewRecorder()
			r := httptest.NewRequest("DELETE", "/api/product/abc", nil)
			r.Header.Set("Authorization", "Bearer bad-token")
			guard.ServeHTTP(rec, r)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Invalid or expired token", errorMessage(t, rec))
			assert.False(t, probe.called)
		}
	})
}

func TestGetUserIDWithoutGuard(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products", nil)
	_, found := middleware.GetUserID(r)
	assert.False(t, found)
}
