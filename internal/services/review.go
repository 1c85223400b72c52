package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/microcosm-cc/bluemonday"

	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	repository "github.com/mandilink/mandilink/internal/repositories"
)

// ReviewService handles vendor reviews of wholesalers and the wholesaler's
// replies. Free-text fields are sanitized before they hit storage.
type ReviewService struct {
	reviewRepo     repository.ReviewRepository
	wholesalerRepo repository.WholesalerRepository
	sanitizer      *bluemonday.Policy
}

func NewReviewService(reviewRepo repository.ReviewRepository, wholesalerRepo repository.WholesalerRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:     reviewRepo,
		wholesalerRepo: wholesalerRepo,
		sanitizer:      bluemonday.StrictPolicy(),
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, vendorID int64, req *models.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.wholesalerRepo.GetWholesalerByID(ctx, req.WholesalerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Wholesaler not found")
		}

		return nil, appErrors.DatabaseError("Failed to load wholesaler").WithError(err)
	}

	review := &models.Review{
		WholesalerID: req.WholesalerID,
		VendorID:     vendorID,
		Rating:       req.Rating,
		Comment:      s.sanitizer.Sanitize(req.Comment),
	}

	if err := s.reviewRepo.CreateReview(ctx, review); err != nil {
		return nil, appErrors.DatabaseError("Failed to create review").WithError(err)
	}

	return review, nil
}

func (s *ReviewService) ListByWholesaler(ctx context.Context, wholesalerID int64) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByWholesaler(ctx, wholesalerID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list reviews").WithError(err)
	}

	return reviews, nil
}

// Reply lets a wholesaler answer a review left on their own profile.
func (s *ReviewService) Reply(ctx context.Context, wholesalerID int64, req *models.ReplyReviewRequest) (*models.Review, error) {
	review, err := s.reviewRepo.GetReviewByID(ctx, req.ReviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Review not found")
		}

		return nil, appErrors.DatabaseError("Failed to load review").WithError(err)
	}

	if review.WholesalerID != wholesalerID {
		return nil, appErrors.ForbiddenError("Review belongs to another wholesaler")
	}

	reply := s.sanitizer.Sanitize(req.Reply)

	if err := s.reviewRepo.SaveReply(ctx, req.ReviewID, wholesalerID, reply); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Review not found")
		}

		return nil, appErrors.DatabaseError("Failed to save reply").WithError(err)
	}

	review.Reply = reply

	return review, nil
}

func (s *ReviewService) AverageRating(ctx context.Context, wholesalerID int64) (float64, int, error) {
	avg, count, err := s.reviewRepo.AverageRating(ctx, wholesalerID)
	if err != nil {
		return 0, 0, appErrors.DatabaseError("Failed to load rating").WithError(err)
	}

	return avg, count, nil
}
