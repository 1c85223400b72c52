package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/mandilink/mandilink/internal/api/middleware"
	"github.com/mandilink/mandilink/internal/errors"
	service "github.com/mandilink/mandilink/internal/services"
	"github.com/mandilink/mandilink/internal/utils"
	"github.com/mandilink/mandilink/internal/utils/response"
)

// DashboardHandler serves the landing pages for both sides: the vendor's
// browse view and the wholesaler's stats view.
type DashboardHandler struct {
	analyticsService *service.AnalyticsService
	productService   *service.ProductService
	userService      *service.UserService
	validator        *validator.Validate
}

func NewDashboardHandler(analyticsService *service.AnalyticsService, productService *service.ProductService, userService *service.UserService) *DashboardHandler {
	return &DashboardHandler{
		analyticsService: analyticsService,
		productService:   productService,
		userService:      userService,
		validator:        validator.New(),
	}
}

// VendorDashboard combines featured products with the top wholesaler cards.
func (h *DashboardHandler) VendorDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		sortBy := r.URL.Query().Get("sort")

		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil {
			limit = 10
		}

		wholesalers, err := h.analyticsService.TopWholesalers(r.Context(), sortBy, limit)
		if err != nil {
			response.Error(w, err)
			return
		}

		featured, err := h.productService.Featured(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"wholesalers": wholesalers,
			"featured":    featured,
		})
	}
}

func (h *DashboardHandler) WholesalerDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		stats, err := h.analyticsService.Dashboard(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}

func (h *DashboardHandler) WholesalerAnalytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		history, err := h.analyticsService.History(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, history)
	}
}

// WholesalerStorefront is the vendor-facing page for one wholesaler: profile
// plus in-stock catalog.
func (h *DashboardHandler) WholesalerStorefront() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wholesalerID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		wholesaler, err := h.userService.GetWholesaler(r.Context(), wholesalerID)
		if err != nil {
			response.Error(w, err)
			return
		}

		products, err := h.productService.Storefront(r.Context(), wholesalerID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"wholesaler": wholesaler,
			"products":   products,
		})
	}
}
