package service

import (
	"context"
	"database/sql"
	"errors"

	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	repository "github.com/mandilink/mandilink/internal/repositories"
)

// PaymentService stores the vendor's payment methods for display. Nothing
// here moves money; checkout never touches these records.
type PaymentService struct {
	repo repository.PaymentMethodRepository
}

func NewPaymentService(repo repository.PaymentMethodRepository) *PaymentService {
	return &PaymentService{repo: repo}
}

func (s *PaymentService) AddMethod(ctx context.Context, vendorID int64, req *models.AddPaymentMethodRequest) (*models.PaymentMethod, error) {
	existing, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list payment methods").WithError(err)
	}

	method := &models.PaymentMethod{
		VendorID:   vendorID,
		MethodType: req.MethodType,
		Details:    req.Details,
		IsDefault:  len(existing) == 0,
	}

	if err := s.repo.Add(ctx, method); err != nil {
		return nil, appErrors.DatabaseError("Failed to add payment method").WithError(err)
	}

	return method, nil
}

func (s *PaymentService) ListMethods(ctx context.Context, vendorID int64) ([]models.PaymentMethod, error) {
	methods, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list payment methods").WithError(err)
	}

	return methods, nil
}

func (s *PaymentService) SetDefault(ctx context.Context, vendorID int64, req *models.PaymentMethodIDRequest) error {
	if err := s.repo.SetDefault(ctx, req.MethodID, vendorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Payment method not found")
		}

		return appErrors.DatabaseError("Failed to set default payment method").WithError(err)
	}

	return nil
}

func (s *PaymentService) DeleteMethod(ctx context.Context, vendorID int64, req *models.PaymentMethodIDRequest) error {
	if err := s.repo.Delete(ctx, req.MethodID, vendorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Payment method not found")
		}

		return appErrors.DatabaseError("Failed to delete payment method").WithError(err)
	}

	return nil
}
