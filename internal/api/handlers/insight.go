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

type InsightHandler struct {
	insightService *service.InsightService
	validator      *validator.Validate
}

func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService, validator: validator.New()}
}

func (h *InsightHandler) Ask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AskAIRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		answer, err := h.insightService.Ask(r.Context(), req.Question)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.AskAIResponse{Answer: answer})
	}
}
