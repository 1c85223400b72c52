package handlers

import (
	"net/http"

	"github.com/mandilink/mandilink/internal/api/middleware"
	"github.com/mandilink/mandilink/internal/errors"
	service "github.com/mandilink/mandilink/internal/services"
	"github.com/mandilink/mandilink/internal/utils"
	"github.com/mandilink/mandilink/internal/utils/response"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) PendingWholesalers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		pending, err := h.adminService.PendingWholesalers(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, pending)
	}
}

func (h *AdminHandler) Approve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.adminService.ApproveWholesaler(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"approved": true})
	}
}

func (h *AdminHandler) Reject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.adminService.RejectWholesaler(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"rejected": true})
	}
}
