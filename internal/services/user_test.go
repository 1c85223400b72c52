package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mandilink/mandilink/internal/config"
	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	"github.com/mandilink/mandilink/internal/repositories/mocks"
	service "github.com/mandilink/mandilink/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func setupUserService() (*mocks.VendorRepository, *mocks.WholesalerRepository, *mocks.RateLimitRepository, *service.UserService) {
	vendorRepo := new(mocks.VendorRepository)
	wholesalerRepo := new(mocks.WholesalerRepository)
	rateLimitRepo := new(mocks.RateLimitRepository)

	security := &config.Security{
		JWTKey:        "test-signing-key",
		TokenTTL:      time.Hour,
		AdminUsername: "operator",
		AdminPassword: "operator-secret",
	}

	userService := service.NewUserService(vendorRepo, wholesalerRepo, rateLimitRepo, security)

	return vendorRepo, wholesalerRepo, rateLimitRepo, userService
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	return string(hashed)
}

func TestRegisterVendor(t *testing.T) {
	ctx := context.Background()

	req := &models.RegisterVendorRequest{
		Name:     "Raju Chaat",
		Phone:    "9876543210",
		Password: "secret123",
		City:     "Delhi",
	}

	t.Run("Success - Vendor Is Auto-Approved", func(t *testing.T) {
		// Arrange
		vendorRepo, _, _, userService := setupUserService()
		vendorRepo.On("GetVendorByPhone", ctx, req.Phone).Return(nil, sql.ErrNoRows).Once()
		vendorRepo.On("CreateVendor", ctx, mock.AnythingOfType("*models.Vendor")).Return(nil).Once()

		// Act
		vendor, err := userService.RegisterVendor(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.True(t, vendor.IsApproved)
		assert.NotEqual(t, req.Password, vendor.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(vendor.Password), []byte(req.Password)))
		vendorRepo.AssertExpectations(t)
	})

	t.Run("Failure - Duplicate Phone", func(t *testing.T) {
		// Arrange
		vendorRepo, _, _, userService := setupUserService()
		vendorRepo.On("GetVendorByPhone", ctx, req.Phone).Return(&models.Vendor{ID: 1}, nil).Once()

		// Act
		vendor, err := userService.RegisterVendor(ctx, req)

		// Assert
		assert.Nil(t, vendor)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		vendorRepo.AssertNotCalled(t, "CreateVendor", mock.Anything, mock.Anything)
	})
}

func TestLoginVendor(t *testing.T) {
	ctx := context.Background()

	req := &models.LoginRequest{Phone: "9876543210", Password: "secret123"}

	t.Run("Success - Issues Signed Token", func(t *testing.T) {
		// Arrange
		vendorRepo, _, rateLimitRepo, userService := setupUserService()
		rateLimitRepo.On("CheckLoginRateLimit", ctx, req.Phone).Return(true, 4, 0, nil).Once()
		vendorRepo.On("GetVendorByPhone", ctx, req.Phone).Return(
			&models.Vendor{ID: 7, Phone: req.Phone, Password: hashPassword(t, req.Password)}, nil).Once()

		// Act
		result, err := userService.LoginVendor(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Token)
		assert.Positive(t, result.ExpiresIn)

		claims := &models.Claims{}
		_, err = jwt.ParseWithClaims(result.Token, claims, func(t *jwt.Token) (any, error) {
			return []byte("test-signing-key"), nil
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, models.RoleVendor, claims.Role)
	})

	t.Run("Failure - Wrong Password Reports Remaining Tries", func(t *testing.T) {
		// Arrange
		vendorRepo, _, rateLimitRepo, userService := setupUserService()
		rateLimitRepo.On("CheckLoginRateLimit", ctx, req.Phone).Return(true, 2, 0, nil).Once()
		vendorRepo.On("GetVendorByPhone", ctx, req.Phone).Return(
			&models.Vendor{ID: 7, Phone: req.Phone, Password: hashPassword(t, "different")}, nil).Once()

		// Act
		result, err := userService.LoginVendor(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Empty(t, result.Token)
		assert.Equal(t, 2, result.RemainingTries)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		vendorRepo, _, rateLimitRepo, userService := setupUserService()
		rateLimitRepo.On("CheckLoginRateLimit", ctx, req.Phone).Return(false, 0, 42, nil).Once()

		// Act
		result, err := userService.LoginVendor(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, 42, result.RetryAfter)
		vendorRepo.AssertNotCalled(t, "GetVendorByPhone", mock.Anything, mock.Anything)
	})
}

func TestLoginWholesaler(t *testing.T) {
	ctx := context.Background()

	req := &models.LoginRequest{Phone: "9123456780", Password: "secret123"}

	t.Run("Success - Approved Wholesaler", func(t *testing.T) {
		// Arrange
		_, wholesalerRepo, rateLimitRepo, userService := setupUserService()
		rateLimitRepo.On("CheckLoginRateLimit", ctx, req.Phone).Return(true, 4, 0, nil).Once()
		wholesalerRepo.On("GetWholesalerByPhone", ctx, req.Phone).Return(
			&models.Wholesaler{ID: 3, Password: hashPassword(t, req.Password), IsApproved: true}, nil).Once()

		// Act
		result, err := userService.LoginWholesaler(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("Failure - Pending Approval", func(t *testing.T) {
		// Arrange
		_, wholesalerRepo, rateLimitRepo, userService := setupUserService()
		rateLimitRepo.On("CheckLoginRateLimit", ctx, req.Phone).Return(true, 4, 0, nil).Once()
		wholesalerRepo.On("GetWholesalerByPhone", ctx, req.Phone).Return(
			&models.Wholesaler{ID: 3, Password: hashPassword(t, req.Password), IsApproved: false}, nil).Once()

		// Act
		result, err := userService.LoginWholesaler(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Empty(t, result.Token)
		assert.Equal(t, "Account pending admin approval", result.Message)
	})
}

func TestLoginAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Config Credentials", func(t *testing.T) {
		// Arrange
		_, _, rateLimitRepo, userService := setupUserService()
		rateLimitRepo.On("CheckLoginRateLimit", ctx, "operator").Return(true, 4, 0, nil).Once()

		// Act
		result, err := userService.LoginAdmin(ctx, &models.AdminLoginRequest{
			Username: "operator", Password: "operator-secret",
		})

		// Assert
		assert.NoError(t, err)
		assert.True(t, result.Success)

		claims := &models.Claims{}
		_, err = jwt.ParseWithClaims(result.Token, claims, func(t *jwt.Token) (any, error) {
			return []byte("test-signing-key"), nil
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), claims.UserID)
		assert.Equal(t, models.RoleAdmin, claims.Role)
	})

	t.Run("Failure - Wrong Credentials", func(t *testing.T) {
		// Arrange
		_, _, rateLimitRepo, userService := setupUserService()
		rateLimitRepo.On("CheckLoginRateLimit", ctx, "operator").Return(true, 3, 0, nil).Once()

		// Act
		result, err := userService.LoginAdmin(ctx, &models.AdminLoginRequest{
			Username: "operator", Password: "guess",
		})

		// Assert
		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, 3, result.RemainingTries)
	})
}

func TestChangeWholesalerPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		_, wholesalerRepo, _, userService := setupUserService()
		wholesalerRepo.On("GetWholesalerByID", ctx, int64(3)).Return(
			&models.Wholesaler{ID: 3, Password: hashPassword(t, "old-secret")}, nil).Once()
		wholesalerRepo.On("UpdatePassword", ctx, int64(3), mock.AnythingOfType("string")).Return(nil).Once()

		// Act
		err := userService.ChangeWholesalerPassword(ctx, 3, &models.ChangePasswordRequest{
			CurrentPassword: "old-secret", NewPassword: "new-secret",
		})

		// Assert
		assert.NoError(t, err)
		wholesalerRepo.AssertExpectations(t)
	})

	t.Run("Failure - Wrong Current Password", func(t *testing.T) {
		// Arrange
		_, wholesalerRepo, _, userService := setupUserService()
		wholesalerRepo.On("GetWholesalerByID", ctx, int64(3)).Return(
			&models.Wholesaler{ID: 3, Password: hashPassword(t, "old-secret")}, nil).Once()

		// Act
		err := userService.ChangeWholesalerPassword(ctx, 3, &models.ChangePasswordRequest{
			CurrentPassword: "not-it", NewPassword: "new-secret",
		})

		// Assert
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		wholesalerRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}
