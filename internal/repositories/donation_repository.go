package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mandilink/mandilink/internal/models"
	"github.com/mandilink/mandilink/internal/utils"
)

type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	ListByVendor(ctx context.Context, vendorID int64) ([]models.Donation, error)
}

type donationRepository struct {
	DB *sql.DB
}

func NewDonationRepo(db *sql.DB) DonationRepository {
	return &donationRepository{DB: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *models.Donation) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO donations (vendor_id, food_description, quantity, pickup_address, pickup_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		donation.VendorID, donation.FoodDescription, donation.Quantity,
		donation.PickupAddress, donation.PickupTime, donation.Status,
	).Scan(&donation.ID, &donation.CreatedAt)
}

func (r *donationRepository) ListByVendor(ctx context.Context, vendorID int64) ([]models.Donation, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, food_description, quantity, pickup_address, pickup_time, status, created_at
		FROM donations
		WHERE vendor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	defer rows.Close()

	var donations []models.Donation

	for rows.Next() {
		donation := models.Donation{VendorID: vendorID}

		err := rows.Scan(&donation.ID, &donation.FoodDescription, &donation.Quantity,
			&donation.PickupAddress, &donation.PickupTime, &donation.Status, &donation.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}

		donations = append(donations, donation)
	}

	return donations, rows.Err()
}
