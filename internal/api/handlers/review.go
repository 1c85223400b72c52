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

type ReviewHandler struct {
	reviewService *service.ReviewService
	validator     *validator.Validate
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, validator: validator.New()}
}

func (h *ReviewHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.CreateReview(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, review)
	}
}

func (h *ReviewHandler) ListForWholesaler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wholesalerID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		reviews, err := h.reviewService.ListByWholesaler(r.Context(), wholesalerID)
		if err != nil {
			response.Error(w, err)
			return
		}

		avg, count, err := h.reviewService.AverageRating(r.Context(), wholesalerID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"reviews":        reviews,
			"average_rating": avg,
			"review_count":   count,
		})
	}
}

func (h *ReviewHandler) Reply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.ReplyReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.Reply(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, review)
	}
}
