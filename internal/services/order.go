package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sort"

	"github.com/mandilink/mandilink/internal/api/middleware"
	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/metrics"
	"github.com/mandilink/mandilink/internal/models"
	repository "github.com/mandilink/mandilink/internal/repositories"
)

// OrderService materializes carts into orders and manages the forward-only
// order lifecycle.
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, cartRepo: cartRepo, productRepo: productRepo}
}

// Checkout turns the vendor's cart into one order per wholesaler, all within
// a single database transaction. Prices are snapshotted from the catalog at
// this moment; stock is not decremented. The cart is cleared only after the
// transaction commits, so a failed checkout leaves it intact.
func (s *OrderService) Checkout(ctx context.Context, vendorID int64) (*models.CheckoutResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	items, err := s.cartRepo.Get(ctx, vendorID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	if len(items) == 0 {
		metrics.ObserveCheckout("empty_cart", 0)
		return nil, appErrors.EmptyCartError()
	}

	orders, err := s.buildOrders(ctx, vendorID, items)
	if err != nil {
		metrics.ObserveCheckout("error", 0)
		return nil, err
	}

	if len(orders) == 0 {
		// Every cart entry pointed at a product that no longer exists.
		metrics.ObserveCheckout("empty_cart", 0)
		return nil, appErrors.EmptyCartError()
	}

	if err := s.orderRepo.CreateOrders(ctx, orders); err != nil {
		metrics.ObserveCheckout("error", 0)
		return nil, appErrors.DatabaseError("Failed to place orders").WithError(err)
	}

	metrics.ObserveCheckout("success", len(orders))

	if err := s.cartRepo.Clear(ctx, vendorID); err != nil {
		// The orders are committed; a leftover cart is an annoyance, not a
		// reason to fail the checkout.
		logger.Warn("Failed to clear cart after checkout", slog.Int64("vendorId", vendorID), slog.Any("error", err))
	}

	orderIDs := make([]int64, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}

	logger.Info("Checkout complete", slog.Int64("vendorId", vendorID), slog.Int("orders", len(orderIDs)))

	return &models.CheckoutResponse{OrderIDs: orderIDs}, nil
}

// buildOrders partitions the cart per wholesaler, resolving each line against
// the live catalog. Entries for vanished products are skipped. Product ids are
// walked in ascending order so the wholesaler partitioning is deterministic.
func (s *OrderService) buildOrders(ctx context.Context, vendorID int64, items map[int64]int) ([]*models.Order, error) {
	productIDs := make([]int64, 0, len(items))
	for id := range items {
		productIDs = append(productIDs, id)
	}

	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	var orders []*models.Order

	orderIndex := map[int64]int{}

	for _, productID := range productIDs {
		quantity := items[productID]

		product, err := s.productRepo.GetProductByID(ctx, productID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}

			return nil, appErrors.DatabaseError("Failed to load product").WithError(err)
		}

		item := models.OrderItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
			Total:     product.Price * float64(quantity),
		}

		idx, ok := orderIndex[product.WholesalerID]
		if !ok {
			orders = append(orders, &models.Order{
				WholesalerID: product.WholesalerID,
				VendorID:     vendorID,
				Status:       models.OrderStatusPending,
			})
			idx = len(orders) - 1
			orderIndex[product.WholesalerID] = idx
		}

		orders[idx].Items = append(orders[idx].Items, item)
		orders[idx].TotalAmount += item.Total
	}

	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to load order").WithError(err)
	}

	return order, nil
}

func (s *OrderService) ListVendorOrders(ctx context.Context, vendorID int64) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, nil
}

func (s *OrderService) ListWholesalerOrders(ctx context.Context, wholesalerID int64) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByWholesaler(ctx, wholesalerID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, nil
}

// UpdateStatus moves an order ahead in its lifecycle. Backward moves and
// repeats are rejected; there is no cancellation.
func (s *OrderService) UpdateStatus(ctx context.Context, wholesalerID int64, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to load order").WithError(err)
	}

	if order.WholesalerID != wholesalerID {
		return nil, appErrors.ForbiddenError("Order belongs to another wholesaler")
	}

	if !order.Status.CanTransitionTo(req.Status) {
		return nil, appErrors.BadRequestError("Order status can only move forward")
	}

	if err := s.orderRepo.UpdateStatus(ctx, req.OrderID, wholesalerID, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	order.Status = req.Status

	return order, nil
}

// Reorder copies a past order's items back into the cart, capped at current
// stock. Items whose products have since disappeared are skipped.
func (s *OrderService) Reorder(ctx context.Context, vendorID, orderID int64) (*models.Snapshot, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to load order").WithError(err)
	}

	if order.VendorID != vendorID {
		return nil, appErrors.ForbiddenError("Order belongs to another vendor")
	}

	items, err := s.cartRepo.Get(ctx, vendorID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	for _, item := range order.Items {
		product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}

			return nil, appErrors.DatabaseError("Failed to load product").WithError(err)
		}

		quantity := items[item.ProductID] + item.Quantity
		if quantity > product.Stock {
			quantity = product.Stock
		}

		if quantity > 0 {
			items[item.ProductID] = quantity
		}
	}

	if err := s.cartRepo.Save(ctx, vendorID, items); err != nil {
		return nil, appErrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	return snapshot(items), nil
}

func (s *OrderService) VendorStats(ctx context.Context, vendorID int64) (*models.VendorOrderStats, error) {
	stats, err := s.orderRepo.VendorStats(ctx, vendorID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load order stats").WithError(err)
	}

	return stats, nil
}
