package handlers

import (
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

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		snapshot, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to add cart item",
				slog.Int64("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, snapshot)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		snapshot, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, snapshot)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.RemoveItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		snapshot, err := h.cartService.RemoveItem(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, snapshot)
	}
}

func (h *CartHandler) Clear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.cartService.Clear(r.Context(), claims.UserID); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"cleared": true})
	}
}

// View serves both the cart page and the checkout preview.
func (h *CartHandler) View() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		view, err := h.cartService.View(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) Count() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		count, err := h.cartService.Count(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, count)
	}
}

// Snapshot returns the raw quantity map for client-side persistence.
func (h *CartHandler) Snapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		snapshot, err := h.cartService.Snapshot(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, snapshot)
	}
}

// Sync overwrites the server cart with the client's local copy.
func (h *CartHandler) Sync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.SyncCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		snapshot, err := h.cartService.Sync(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, snapshot)
	}
}
