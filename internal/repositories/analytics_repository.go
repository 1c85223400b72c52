package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mandilink/mandilink/internal/models"
	"github.com/mandilink/mandilink/internal/utils"
)

type AnalyticsRepository interface {
	DashboardStats(ctx context.Context, wholesalerID int64) (*models.DashboardStats, error)
	History(ctx context.Context, wholesalerID int64, days int) ([]models.AnalyticsRow, error)
}

type analyticsRepository struct {
	DB *sql.DB
}

func NewAnalyticsRepo(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{DB: db}
}

func (r *analyticsRepository) DashboardStats(ctx context.Context, wholesalerID int64) (*models.DashboardStats, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	stats := &models.DashboardStats{}

	query := `
		SELECT
			(SELECT COUNT(*) FROM products WHERE wholesaler_id = $1),
			(SELECT COUNT(*) FROM orders WHERE wholesaler_id = $1 AND status = 'pending'),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders
			 WHERE wholesaler_id = $1 AND created_at >= date_trunc('month', NOW())),
			(SELECT COUNT(DISTINCT vendor_id) FROM orders
			 WHERE wholesaler_id = $1 AND created_at >= NOW() - INTERVAL '30 days'),
			w.trust_score, w.response_rate, w.delivery_rate
		FROM wholesalers w
		WHERE w.id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, wholesalerID).Scan(
		&stats.TotalProducts, &stats.PendingOrders, &stats.MonthRevenue,
		&stats.ActiveCustomers, &stats.TrustScore, &stats.ResponseRate, &stats.DeliveryRate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}

	return stats, nil
}

func (r *analyticsRepository) History(ctx context.Context, wholesalerID int64, days int) ([]models.AnalyticsRow, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT TO_CHAR(created_at::date, 'YYYY-MM-DD'),
		       COUNT(*),
		       COALESCE(SUM(total_amount), 0),
		       COUNT(DISTINCT vendor_id)
		FROM orders
		WHERE wholesaler_id = $1 AND created_at >= NOW() - ($2 || ' days')::interval
		GROUP BY created_at::date
		ORDER BY created_at::date
	`

	rows, err := r.DB.QueryContext(dbCtx, query, wholesalerID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get analytics history: %w", err)
	}

	defer rows.Close()

	var history []models.AnalyticsRow

	for rows.Next() {
		var row models.AnalyticsRow

		err := rows.Scan(&row.Date, &row.TotalOrders, &row.TotalRevenue, &row.ActiveCustomers)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analytics row: %w", err)
		}

		history = append(history, row)
	}

	return history, rows.Err()
}
