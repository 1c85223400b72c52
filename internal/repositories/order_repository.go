package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mandilink/mandilink/internal/models"
	"github.com/mandilink/mandilink/internal/utils"
)

type OrderRepository interface {
	// CreateOrders persists the whole checkout batch in one transaction.
	// Either every order and order item lands, or none do.
	CreateOrders(ctx context.Context, orders []*models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListByVendor(ctx context.Context, vendorID int64) ([]models.Order, error)
	ListByWholesaler(ctx context.Context, wholesalerID int64) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID, wholesalerID int64, status models.OrderStatus) error
	VendorStats(ctx context.Context, vendorID int64) (*models.VendorOrderStats, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrders(ctx context.Context, orders []*models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (wholesaler_id, vendor_id, total_amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	for _, order := range orders {

		err := tx.QueryRowContext(dbCtx, orderQuery,
			order.WholesalerID, order.VendorID, order.TotalAmount, order.Status,
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			err := tx.QueryRowContext(dbCtx, itemQuery,
				item.OrderID, item.ProductID, item.Quantity, item.Price, item.Total,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit orders: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	query := `
		SELECT id, wholesaler_id, vendor_id, total_amount, status, created_at
		FROM orders
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&order.ID, &order.WholesalerID, &order.VendorID,
		&order.TotalAmount, &order.Status, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(dbCtx, order.ID)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID int64) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT o.id, o.wholesaler_id, o.total_amount, o.status, o.created_at, w.name
		FROM orders o
		JOIN wholesalers w ON o.wholesaler_id = w.id
		WHERE o.vendor_id = $1
		ORDER BY o.created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		order := models.Order{VendorID: vendorID}

		err := rows.Scan(&order.ID, &order.WholesalerID, &order.TotalAmount,
			&order.Status, &order.CreatedAt, &order.WholesalerName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.loadItems(dbCtx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *orderRepository) ListByWholesaler(ctx context.Context, wholesalerID int64) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT o.id, o.vendor_id, o.total_amount, o.status, o.created_at, v.name
		FROM orders o
		JOIN vendors v ON o.vendor_id = v.id
		WHERE o.wholesaler_id = $1
		ORDER BY o.created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, wholesalerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		order := models.Order{WholesalerID: wholesalerID}

		err := rows.Scan(&order.ID, &order.VendorID, &order.TotalAmount,
			&order.Status, &order.CreatedAt, &order.VendorName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID, wholesalerID int64, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET status = $1 WHERE id = $2 AND wholesaler_id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, status, orderID, wholesalerID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return requireRowsAffected(result)
}

func (r *orderRepository) VendorStats(ctx context.Context, vendorID int64) (*models.VendorOrderStats, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	stats := &models.VendorOrderStats{}

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'processing'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE vendor_id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, vendorID).Scan(
		&stats.PendingCount, &stats.ProcessingCount, &stats.CompletedCount, &stats.TotalSpent)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor order stats: %w", err)
	}

	return stats, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {

	query := `
		SELECT oi.id, oi.product_id, oi.quantity, oi.price, oi.total,
		       COALESCE(p.name, ''), COALESCE(p.image_path, '')
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
	`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		item := models.OrderItem{OrderID: orderID}

		err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.Price,
			&item.Total, &item.ProductName, &item.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		items = append(items, item)
	}

	return items, rows.Err()
}
