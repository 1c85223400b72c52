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

type DonationHandler struct {
	donationService *service.DonationService
	validator       *validator.Validate
}

func NewDonationHandler(donationService *service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService, validator: validator.New()}
}

func (h *DonationHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.SubmitDonationRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		donation, err := h.donationService.Submit(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, donation)
	}
}

func (h *DonationHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		donations, err := h.donationService.ListByVendor(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, donations)
	}
}
