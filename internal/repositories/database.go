package repository

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/mandilink/mandilink/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	_ "github.com/lib/pq"
)

// Repositories bundles everything that hangs off the shared *sql.DB.
type Repositories struct {
	DB *sql.DB

	Vendor        VendorRepository
	Wholesaler    WholesalerRepository
	Product       ProductRepository
	Order         OrderRepository
	Review        ReviewRepository
	Analytics     AnalyticsRepository
	PaymentMethod PaymentMethodRepository
	Donation      DonationRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		DB:            db,
		Vendor:        NewVendorRepo(db),
		Wholesaler:    NewWholesalerRepo(db),
		Product:       NewProductRepo(db),
		Order:         NewOrderRepo(db),
		Review:        NewReviewRepo(db),
		Analytics:     NewAnalyticsRepo(db),
		PaymentMethod: NewPaymentMethodRepo(db),
		Donation:      NewDonationRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
