package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mandilink/mandilink/internal/api/middleware"
	"github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	service "github.com/mandilink/mandilink/internal/services"
	"github.com/mandilink/mandilink/internal/utils"
	"github.com/mandilink/mandilink/internal/utils/response"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: validator.New()}
}

func (h *PaymentHandler) AddMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddPaymentMethodRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		method, err := h.paymentService.AddMethod(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, method)
	}
}

func (h *PaymentHandler) ListMethods() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		methods, err := h.paymentService.ListMethods(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, methods)
	}
}

func (h *PaymentHandler) SetDefault() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.PaymentMethodIDRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.paymentService.SetDefault(r.Context(), claims.UserID, &req); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"updated": true})
	}
}

func (h *PaymentHandler) DeleteMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.PaymentMethodIDRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.paymentService.DeleteMethod(r.Context(), claims.UserID, &req); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}
