package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mandilink/mandilink/internal/api/middleware"
	"github.com/mandilink/mandilink/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTKey = "test-signing-key"

func signToken(t *testing.T, userID int64, role models.Role, ttl time.Duration, key string) string {
	t.Helper()

	claims := &models.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)

	return token
}

func TestAuthenticate(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware([]byte(testJWTKey))

	t.Run("Success - Valid Token Puts Claims In Context", func(t *testing.T) {
		// Arrange
		var gotClaims *models.Claims

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotClaims, _ = middleware.ClaimsFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/vendor/cart", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 7, models.RoleVendor, time.Hour, testJWTKey))
		recorder := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(next)(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, gotClaims)
		assert.Equal(t, int64(7), gotClaims.UserID)
		assert.Equal(t, models.RoleVendor, gotClaims.Role)
	})

	t.Run("Failure - Missing Header", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("next handler should not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/vendor/cart", nil)
		recorder := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(next)(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Failure - Malformed Header", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("next handler should not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/vendor/cart", nil)
		req.Header.Set("Authorization", "Token abc")
		recorder := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(next)(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Failure - Expired Token", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("next handler should not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/vendor/cart", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 7, models.RoleVendor, -time.Hour, testJWTKey))
		recorder := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(next)(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Failure - Wrong Signing Key", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("next handler should not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/vendor/cart", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 7, models.RoleVendor, time.Hour, "other-key"))
		recorder := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(next)(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireRole(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware([]byte(testJWTKey))

	t.Run("Success - Matching Role", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/wholesaler/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 3, models.RoleWholesaler, time.Hour, testJWTKey))
		recorder := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleWholesaler, next))(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Vendor Cannot Reach Wholesaler Routes", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("next handler should not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/wholesaler/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 7, models.RoleVendor, time.Hour, testJWTKey))
		recorder := httptest.NewRecorder()

		// Act
		authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleWholesaler, next))(recorder, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("Failure - No Claims In Context", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("next handler should not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/wholesaler/orders", nil)
		recorder := httptest.NewRecorder()

		// Act
		authMiddleware.RequireRole(models.RoleWholesaler, next)(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
