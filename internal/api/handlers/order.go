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

type OrderHandler struct {
	orderService        *service.OrderService
	cartService         *service.CartService
	notificationService *service.NotificationService
	validator           *validator.Validate
}

func NewOrderHandler(orderService *service.OrderService, cartService *service.CartService, notificationService *service.NotificationService) *OrderHandler {
	return &OrderHandler{
		orderService:        orderService,
		cartService:         cartService,
		notificationService: notificationService,
		validator:           validator.New(),
	}
}

// Checkout materializes the cart into orders, one per wholesaler.
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		// Total is captured before materialization clears the cart.
		view, err := h.cartService.View(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		result, err := h.orderService.Checkout(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Checkout failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		h.notificationService.NotifyCheckout(r.Context(), claims.UserID, result.OrderIDs, view.GrandTotal)

		response.Success(w, http.StatusCreated, result)
	}
}

func (h *OrderHandler) VendorOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orders, err := h.orderService.ListVendorOrders(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		stats, err := h.orderService.VendorStats(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"orders": orders,
			"stats":  stats,
		})
	}
}

func (h *OrderHandler) WholesalerOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orders, err := h.orderService.ListWholesalerOrders(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Order status updated",
			slog.Int64("orderId", order.ID), slog.String("status", string(order.Status)))

		response.Success(w, http.StatusOK, order)
	}
}

type reorderRequest struct {
	OrderID int64 `json:"order_id" validate:"required,min=1"`
}

// Reorder copies a past order's items back into the cart.
func (h *OrderHandler) Reorder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req reorderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		snapshot, err := h.orderService.Reorder(r.Context(), claims.UserID, req.OrderID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, snapshot)
	}
}
