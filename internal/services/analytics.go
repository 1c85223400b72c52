package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mandilink/mandilink/internal/cache"
	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	repository "github.com/mandilink/mandilink/internal/repositories"
)

const analyticsHistoryDays = 30

// AnalyticsService aggregates wholesaler activity for the dashboard and the
// vendor-facing top-sellers list. Dashboard stats are cached briefly since
// they sit on the most-hit page.
type AnalyticsService struct {
	analyticsRepo  repository.AnalyticsRepository
	wholesalerRepo repository.WholesalerRepository
	cache          cache.Cache
}

func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, wholesalerRepo repository.WholesalerRepository, cache cache.Cache) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo:  analyticsRepo,
		wholesalerRepo: wholesalerRepo,
		cache:          cache,
	}
}

func (s *AnalyticsService) Dashboard(ctx context.Context, wholesalerID int64) (*models.DashboardStats, error) {
	key := cache.Key(cache.DashboardKeyPrefix, wholesalerID)

	var cached models.DashboardStats
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	stats, err := s.analyticsRepo.DashboardStats(ctx, wholesalerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Wholesaler not found")
		}

		return nil, appErrors.DatabaseError("Failed to load dashboard stats").WithError(err)
	}

	_ = s.cache.Set(ctx, key, stats, 0)

	return stats, nil
}

func (s *AnalyticsService) History(ctx context.Context, wholesalerID int64) ([]models.AnalyticsRow, error) {
	history, err := s.analyticsRepo.History(ctx, wholesalerID, analyticsHistoryDays)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load analytics history").WithError(err)
	}

	return history, nil
}

// TopWholesalers backs the vendor dashboard cards, sortable by rating or
// average price.
func (s *AnalyticsService) TopWholesalers(ctx context.Context, sortBy string, limit int) ([]models.WholesalerSummary, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	summaries, err := s.wholesalerRepo.ListTop(ctx, sortBy, limit)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list top wholesalers").WithError(err)
	}

	return summaries, nil
}
