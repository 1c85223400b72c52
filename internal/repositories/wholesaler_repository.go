package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mandilink/mandilink/internal/models"
	"github.com/mandilink/mandilink/internal/utils"
)

type WholesalerRepository interface {
	CreateWholesaler(ctx context.Context, wholesaler *models.Wholesaler) error
	GetWholesalerByPhone(ctx context.Context, phone string) (*models.Wholesaler, error)
	GetWholesalerByID(ctx context.Context, id int64) (*models.Wholesaler, error)
	UpdateProfile(ctx context.Context, wholesaler *models.Wholesaler) error
	UpdatePassword(ctx context.Context, id int64, password string) error
	ListPending(ctx context.Context) ([]models.Wholesaler, error)
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ListTop(ctx context.Context, sortBy string, limit int) ([]models.WholesalerSummary, error)
}

type wholesalerRepository struct {
	DB *sql.DB
}

func NewWholesalerRepo(db *sql.DB) WholesalerRepository {
	return &wholesalerRepository{DB: db}
}

func (r *wholesalerRepository) CreateWholesaler(ctx context.Context, wholesaler *models.Wholesaler) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO wholesalers (name, phone, password, shop_name, id_doc_path,
		                         license_doc_path, sourcing_info, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, trust_score, response_rate, delivery_rate, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		wholesaler.Name, wholesaler.Phone, wholesaler.Password, wholesaler.ShopName,
		wholesaler.IDDocPath, wholesaler.LicenseDocPath, wholesaler.SourcingInfo, wholesaler.Location,
	).Scan(&wholesaler.ID, &wholesaler.TrustScore, &wholesaler.ResponseRate,
		&wholesaler.DeliveryRate, &wholesaler.CreatedAt)
}

func (r *wholesalerRepository) GetWholesalerByPhone(ctx context.Context, phone string) (*models.Wholesaler, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	wholesaler := &models.Wholesaler{}

	query := `
		SELECT id, name, phone, password, shop_name, is_approved, trust_score,
		       response_rate, delivery_rate, created_at
		FROM wholesalers
		WHERE phone = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, phone).Scan(
		&wholesaler.ID, &wholesaler.Name, &wholesaler.Phone, &wholesaler.Password,
		&wholesaler.ShopName, &wholesaler.IsApproved, &wholesaler.TrustScore,
		&wholesaler.ResponseRate, &wholesaler.DeliveryRate, &wholesaler.CreatedAt)
	if err != nil {
		return nil, err
	}

	return wholesaler, nil
}

func (r *wholesalerRepository) GetWholesalerByID(ctx context.Context, id int64) (*models.Wholesaler, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	wholesaler := &models.Wholesaler{}

	query := `
		SELECT id, name, phone, password, shop_name, COALESCE(id_doc_path, ''),
		       COALESCE(license_doc_path, ''), COALESCE(sourcing_info, ''),
		       COALESCE(location, ''), COALESCE(profile_photo, ''), is_approved,
		       trust_score, response_rate, delivery_rate, created_at
		FROM wholesalers
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&wholesaler.ID, &wholesaler.Name, &wholesaler.Phone, &wholesaler.Password,
		&wholesaler.ShopName, &wholesaler.IDDocPath, &wholesaler.LicenseDocPath,
		&wholesaler.SourcingInfo, &wholesaler.Location, &wholesaler.ProfilePhoto,
		&wholesaler.IsApproved, &wholesaler.TrustScore, &wholesaler.ResponseRate,
		&wholesaler.DeliveryRate, &wholesaler.CreatedAt)
	if err != nil {
		return nil, err
	}

	return wholesaler, nil
}

func (r *wholesalerRepository) UpdateProfile(ctx context.Context, wholesaler *models.Wholesaler) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE wholesalers SET name = $1, shop_name = $2, location = $3, sourcing_info = $4
		WHERE id = $5
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		wholesaler.Name, wholesaler.ShopName, wholesaler.Location,
		wholesaler.SourcingInfo, wholesaler.ID)
	if err != nil {
		return fmt.Errorf("failed to update wholesaler profile: %w", err)
	}

	return requireRowsAffected(result)
}

func (r *wholesalerRepository) UpdatePassword(ctx context.Context, id int64, password string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE wholesalers SET password = $1 WHERE id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, password, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return requireRowsAffected(result)
}

func (r *wholesalerRepository) ListPending(ctx context.Context) ([]models.Wholesaler, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, phone, shop_name, COALESCE(id_doc_path, ''),
		       COALESCE(license_doc_path, ''), COALESCE(sourcing_info, ''),
		       COALESCE(location, ''), created_at
		FROM wholesalers
		WHERE is_approved = FALSE
		ORDER BY created_at
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending wholesalers: %w", err)
	}

	defer rows.Close()

	var pending []models.Wholesaler

	for rows.Next() {
		var w models.Wholesaler

		err := rows.Scan(&w.ID, &w.Name, &w.Phone, &w.ShopName, &w.IDDocPath,
			&w.LicenseDocPath, &w.SourcingInfo, &w.Location, &w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wholesaler: %w", err)
		}

		pending = append(pending, w)
	}

	return pending, rows.Err()
}

func (r *wholesalerRepository) Approve(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE wholesalers SET is_approved = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to approve wholesaler: %w", err)
	}

	return requireRowsAffected(result)
}

func (r *wholesalerRepository) Delete(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM wholesalers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wholesaler: %w", err)
	}

	return requireRowsAffected(result)
}

func (r *wholesalerRepository) ListTop(ctx context.Context, sortBy string, limit int) ([]models.WholesalerSummary, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	orderClause := "ORDER BY w.trust_score DESC"
	if sortBy == "price" {
		orderClause = "ORDER BY avg_price ASC NULLS LAST"
	}

	query := fmt.Sprintf(`
		SELECT w.id, w.name, COALESCE(w.location, ''), w.phone, w.trust_score,
		       COALESCE(w.profile_photo, ''),
		       COALESCE((SELECT STRING_AGG(DISTINCT p.category, ',') FROM products p WHERE p.wholesaler_id = w.id), ''),
		       (SELECT COUNT(r.id) FROM reviews r WHERE r.wholesaler_id = w.id),
		       COALESCE((SELECT AVG(p.price) FROM products p WHERE p.wholesaler_id = w.id), 0) AS avg_price
		FROM wholesalers w
		WHERE w.is_approved = TRUE
		%s
		LIMIT $1
	`, orderClause)

	rows, err := r.DB.QueryContext(dbCtx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top wholesalers: %w", err)
	}

	defer rows.Close()

	var summaries []models.WholesalerSummary

	for rows.Next() {
		var s models.WholesalerSummary

		err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Phone, &s.TrustScore,
			&s.ProfilePhoto, &s.Specialties, &s.ReviewCount, &s.AvgPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wholesaler summary: %w", err)
		}

		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}
