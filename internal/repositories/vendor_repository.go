package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mandilink/mandilink/internal/models"
	"github.com/mandilink/mandilink/internal/utils"
)

type VendorRepository interface {
	CreateVendor(ctx context.Context, vendor *models.Vendor) error
	GetVendorByPhone(ctx context.Context, phone string) (*models.Vendor, error)
	GetVendorByID(ctx context.Context, id int64) (*models.Vendor, error)
	UpdateProfile(ctx context.Context, vendor *models.Vendor) error
}

type vendorRepository struct {
	DB *sql.DB
}

func NewVendorRepo(db *sql.DB) VendorRepository {
	return &vendorRepository{DB: db}
}

func (r *vendorRepository) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO vendors (name, phone, password, email, alternate_contact, shop_name,
		                     goods_type, working_hours, street_area, photo_path, pincode,
		                     city, location, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		vendor.Name, vendor.Phone, vendor.Password, vendor.Email, vendor.AlternateContact,
		vendor.ShopName, vendor.GoodsType, vendor.WorkingHours, vendor.StreetArea,
		vendor.PhotoPath, vendor.Pincode, vendor.City, vendor.Location, vendor.IsApproved,
	).Scan(&vendor.ID, &vendor.CreatedAt)
}

func (r *vendorRepository) GetVendorByPhone(ctx context.Context, phone string) (*models.Vendor, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	vendor := &models.Vendor{}

	query := `
		SELECT id, name, phone, password, COALESCE(email, ''), COALESCE(location, ''),
		       credits, is_approved, created_at
		FROM vendors
		WHERE phone = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, phone).Scan(
		&vendor.ID, &vendor.Name, &vendor.Phone, &vendor.Password, &vendor.Email,
		&vendor.Location, &vendor.Credits, &vendor.IsApproved, &vendor.CreatedAt)
	if err != nil {
		return nil, err
	}

	return vendor, nil
}

func (r *vendorRepository) GetVendorByID(ctx context.Context, id int64) (*models.Vendor, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	vendor := &models.Vendor{}

	query := `
		SELECT id, name, phone, COALESCE(email, ''), COALESCE(alternate_contact, ''),
		       COALESCE(shop_name, ''), COALESCE(goods_type, ''), COALESCE(working_hours, ''),
		       COALESCE(street_area, ''), COALESCE(photo_path, ''), COALESCE(pincode, ''),
		       COALESCE(city, ''), COALESCE(location, ''), credits, is_approved, created_at
		FROM vendors
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&vendor.ID, &vendor.Name, &vendor.Phone, &vendor.Email, &vendor.AlternateContact,
		&vendor.ShopName, &vendor.GoodsType, &vendor.WorkingHours, &vendor.StreetArea,
		&vendor.PhotoPath, &vendor.Pincode, &vendor.City, &vendor.Location,
		&vendor.Credits, &vendor.IsApproved, &vendor.CreatedAt)
	if err != nil {
		return nil, err
	}

	return vendor, nil
}

func (r *vendorRepository) UpdateProfile(ctx context.Context, vendor *models.Vendor) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE vendors SET name = $1, phone = $2, email = $3, location = $4
		WHERE id = $5
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		vendor.Name, vendor.Phone, vendor.Email, vendor.Location, vendor.ID)
	if err != nil {
		return fmt.Errorf("failed to update vendor profile: %w", err)
	}

	return requireRowsAffected(result)
}
