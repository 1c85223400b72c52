package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mandilink/mandilink/internal/models"
	"github.com/mandilink/mandilink/internal/utils"
)

type PaymentMethodRepository interface {
	Add(ctx context.Context, method *models.PaymentMethod) error
	ListByVendor(ctx context.Context, vendorID int64) ([]models.PaymentMethod, error)
	SetDefault(ctx context.Context, methodID, vendorID int64) error
	Delete(ctx context.Context, methodID, vendorID int64) error
}

type paymentMethodRepository struct {
	DB *sql.DB
}

func NewPaymentMethodRepo(db *sql.DB) PaymentMethodRepository {
	return &paymentMethodRepository{DB: db}
}

func (r *paymentMethodRepository) Add(ctx context.Context, method *models.PaymentMethod) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payment_methods (vendor_id, method_type, details, is_default)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		method.VendorID, method.MethodType, method.Details, method.IsDefault,
	).Scan(&method.ID, &method.CreatedAt)
}

func (r *paymentMethodRepository) ListByVendor(ctx context.Context, vendorID int64) ([]models.PaymentMethod, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, method_type, details, is_default, created_at
		FROM payment_methods
		WHERE vendor_id = $1
		ORDER BY is_default DESC, created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	defer rows.Close()

	var methods []models.PaymentMethod

	for rows.Next() {
		method := models.PaymentMethod{VendorID: vendorID}

		err := rows.Scan(&method.ID, &method.MethodType, &method.Details,
			&method.IsDefault, &method.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}

		methods = append(methods, method)
	}

	return methods, rows.Err()
}

// SetDefault clears the previous default and promotes the given method in one
// transaction so the vendor never ends up with two defaults.
func (r *paymentMethodRepository) SetDefault(ctx context.Context, methodID, vendorID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(dbCtx,
		`UPDATE payment_methods SET is_default = FALSE WHERE vendor_id = $1`, vendorID); err != nil {
		return fmt.Errorf("failed to clear default payment method: %w", err)
	}

	result, err := tx.ExecContext(dbCtx,
		`UPDATE payment_methods SET is_default = TRUE WHERE id = $1 AND vendor_id = $2`, methodID, vendorID)
	if err != nil {
		return fmt.Errorf("failed to set default payment method: %w", err)
	}

	if err := requireRowsAffected(result); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *paymentMethodRepository) Delete(ctx context.Context, methodID, vendorID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`DELETE FROM payment_methods WHERE id = $1 AND vendor_id = $2`, methodID, vendorID)
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	return requireRowsAffected(result)
}
