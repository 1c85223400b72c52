package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mandilink/mandilink/internal/api/middleware"
	"github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	service "github.com/mandilink/mandilink/internal/services"
	"github.com/mandilink/mandilink/internal/utils"
	"github.com/mandilink/mandilink/internal/utils/response"
)

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

func (h *UserHandler) RegisterVendor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterVendorRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		vendor, err := h.userService.RegisterVendor(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Vendor registered", slog.Int64("vendorId", vendor.ID))

		response.Success(w, http.StatusCreated, vendor)
	}
}

func (h *UserHandler) RegisterWholesaler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterWholesalerRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		wholesaler, err := h.userService.RegisterWholesaler(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Wholesaler registered, pending approval",
			slog.Int64("wholesalerId", wholesaler.ID))

		response.Success(w, http.StatusCreated, wholesaler)
	}
}

func (h *UserHandler) LoginVendor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.userService.LoginVendor(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		if !result.Success {
			response.Error(w, loginFailureError(result))
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *UserHandler) LoginWholesaler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.userService.LoginWholesaler(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		if !result.Success {
			response.Error(w, loginFailureError(result))
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *UserHandler) LoginAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AdminLoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.userService.LoginAdmin(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		if !result.Success {
			response.Error(w, loginFailureError(result))
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *UserHandler) VendorProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		vendor, err := h.userService.GetVendor(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, vendor)
	}
}

func (h *UserHandler) UpdateVendorProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateVendorProfileRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		vendor, err := h.userService.UpdateVendorProfile(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, vendor)
	}
}

func (h *UserHandler) UpdateWholesalerProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateWholesalerProfileRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		wholesaler, err := h.userService.UpdateWholesalerProfile(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, wholesaler)
	}
}

func (h *UserHandler) ChangeWholesalerPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.ChangePasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.userService.ChangeWholesalerPassword(r.Context(), claims.UserID, &req); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"changed": true})
	}
}

// loginFailureError maps a failed login outcome onto the error taxonomy:
// lockouts are 429 with the wait time, everything else is a plain 401.
func loginFailureError(result *models.LoginResponse) *errors.AppError {
	if result.RetryAfter > 0 {
		return errors.TooManyRequestsError(result.Message).
			WithDetail(fmt.Sprintf("Retry after %d seconds", result.RetryAfter))
	}

	return errors.UnauthorizedError(result.Message)
}
