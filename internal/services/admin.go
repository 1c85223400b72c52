package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/mandilink/mandilink/internal/api/middleware"
	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	repository "github.com/mandilink/mandilink/internal/repositories"
)

// AdminService covers the wholesaler approval queue.
type AdminService struct {
	wholesalerRepo repository.WholesalerRepository
}

func NewAdminService(wholesalerRepo repository.WholesalerRepository) *AdminService {
	return &AdminService{wholesalerRepo: wholesalerRepo}
}

func (s *AdminService) PendingWholesalers(ctx context.Context) ([]models.Wholesaler, error) {
	pending, err := s.wholesalerRepo.ListPending(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list pending wholesalers").WithError(err)
	}

	return pending, nil
}

func (s *AdminService) ApproveWholesaler(ctx context.Context, id int64) error {
	if err := s.wholesalerRepo.Approve(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Wholesaler not found")
		}

		return appErrors.DatabaseError("Failed to approve wholesaler").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Wholesaler approved", slog.Int64("wholesalerId", id))

	return nil
}

// RejectWholesaler removes the application outright.
func (s *AdminService) RejectWholesaler(ctx context.Context, id int64) error {
	if err := s.wholesalerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Wholesaler not found")
		}

		return appErrors.DatabaseError("Failed to reject wholesaler").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Wholesaler rejected", slog.Int64("wholesalerId", id))

	return nil
}
