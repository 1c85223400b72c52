package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mandilink/mandilink/internal/api/handlers"
	"github.com/mandilink/mandilink/internal/config"
	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	"github.com/mandilink/mandilink/internal/repositories/mocks"
	service "github.com/mandilink/mandilink/internal/services"
	"github.com/mandilink/mandilink/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type userHandlerDeps struct {
	vendorRepo     *mocks.VendorRepository
	wholesalerRepo *mocks.WholesalerRepository
	rateLimitRepo  *mocks.RateLimitRepository
	handler        *handlers.UserHandler
}

func setupUserHandlerTest() userHandlerDeps {
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

	return userHandlerDeps{
		vendorRepo:     vendorRepo,
		wholesalerRepo: wholesalerRepo,
		rateLimitRepo:  rateLimitRepo,
		handler:        handlers.NewUserHandler(userService),
	}
}

func TestLoginVendorHandler(t *testing.T) {
	loginBody, _ := json.Marshal(models.LoginRequest{Phone: "9876543210", Password: "secret123"})

	t.Run("Success - Returns Token", func(t *testing.T) {
		// Arrange
		deps := setupUserHandlerTest()
		hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)

		deps.rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, "9876543210").Return(true, 4, 0, nil).Once()
		deps.vendorRepo.On("GetVendorByPhone", mock.Anything, "9876543210").Return(
			&models.Vendor{ID: 7, Phone: "9876543210", Password: string(hashed)}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/vendor/login", bytes.NewReader(loginBody), nil)
		recorder := httptest.NewRecorder()

		// Act
		deps.handler.LoginVendor()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Success bool                 `json:"success"`
			Data    models.LoginResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)
		assert.NotEmpty(t, envelope.Data.Token)
	})

	t.Run("Failure - Bad Credentials Map To 401", func(t *testing.T) {
		// Arrange
		deps := setupUserHandlerTest()
		hashed, _ := bcrypt.GenerateFromPassword([]byte("other-password"), bcrypt.MinCost)

		deps.rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, "9876543210").Return(true, 2, 0, nil).Once()
		deps.vendorRepo.On("GetVendorByPhone", mock.Anything, "9876543210").Return(
			&models.Vendor{ID: 7, Phone: "9876543210", Password: string(hashed)}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/vendor/login", bytes.NewReader(loginBody), nil)
		recorder := httptest.NewRecorder()

		// Act
		deps.handler.LoginVendor()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, resp.Error.Code)
	})

	t.Run("Failure - Rate Limit Maps To 429 With Retry Detail", func(t *testing.T) {
		// Arrange
		deps := setupUserHandlerTest()
		deps.rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, "9876543210").Return(false, 0, 42, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/vendor/login", bytes.NewReader(loginBody), nil)
		recorder := httptest.NewRecorder()

		// Act
		deps.handler.LoginVendor()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, appErrors.ErrCodeTooManyRequests, resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "Retry after 42 seconds")
		deps.vendorRepo.AssertNotCalled(t, "GetVendorByPhone", mock.Anything, mock.Anything)
	})
}

func TestLoginWholesalerHandler(t *testing.T) {
	loginBody, _ := json.Marshal(models.LoginRequest{Phone: "9123456780", Password: "secret123"})

	t.Run("Failure - Unapproved Account Maps To 401", func(t *testing.T) {
		// Arrange
		deps := setupUserHandlerTest()
		hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)

		deps.rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, "9123456780").Return(true, 4, 0, nil).Once()
		deps.wholesalerRepo.On("GetWholesalerByPhone", mock.Anything, "9123456780").Return(
			&models.Wholesaler{ID: 3, Password: string(hashed), IsApproved: false}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/wholesaler/login", bytes.NewReader(loginBody), nil)
		recorder := httptest.NewRecorder()

		// Act
		deps.handler.LoginWholesaler()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRegisterVendorHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		deps := setupUserHandlerTest()
		deps.vendorRepo.On("GetVendorByPhone", mock.Anything, "9876543210").Return(nil, nil).Once()
		deps.vendorRepo.On("CreateVendor", mock.Anything, mock.AnythingOfType("*models.Vendor")).Return(nil).Once()

		body, _ := json.Marshal(models.RegisterVendorRequest{
			Name: "Raju Chaat", Phone: "9876543210", Password: "secret123", City: "Delhi",
		})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/vendor/register", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		deps.handler.RegisterVendor()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("Failure - Short Phone Fails Validation", func(t *testing.T) {
		// Arrange
		deps := setupUserHandlerTest()

		body, _ := json.Marshal(models.RegisterVendorRequest{
			Name: "Raju Chaat", Phone: "12345", Password: "secret123",
		})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/vendor/register", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		deps.handler.RegisterVendor()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "Field Phone must be at least 10")
		deps.vendorRepo.AssertNotCalled(t, "CreateVendor", mock.Anything, mock.Anything)
	})
}
