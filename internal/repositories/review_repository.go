package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mandilink/mandilink/internal/models"
	"github.com/mandilink/mandilink/internal/utils"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReviewByID(ctx context.Context, id int64) (*models.Review, error)
	ListByWholesaler(ctx context.Context, wholesalerID int64) ([]models.Review, error)
	SaveReply(ctx context.Context, reviewID, wholesalerID int64, reply string) error
	AverageRating(ctx context.Context, wholesalerID int64) (float64, int, error)
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (wholesaler_id, vendor_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		review.WholesalerID, review.VendorID, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	review := &models.Review{}

	query := `
		SELECT id, wholesaler_id, vendor_id, rating, comment, COALESCE(reply, ''), created_at
		FROM reviews
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&review.ID, &review.WholesalerID, &review.VendorID, &review.Rating,
		&review.Comment, &review.Reply, &review.CreatedAt)
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (r *reviewRepository) ListByWholesaler(ctx context.Context, wholesalerID int64) ([]models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT r.id, r.vendor_id, r.rating, r.comment, COALESCE(r.reply, ''), r.created_at, v.name
		FROM reviews r
		JOIN vendors v ON r.vendor_id = v.id
		WHERE r.wholesaler_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, wholesalerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	defer rows.Close()

	var reviews []models.Review

	for rows.Next() {
		review := models.Review{WholesalerID: wholesalerID}

		err := rows.Scan(&review.ID, &review.VendorID, &review.Rating, &review.Comment,
			&review.Reply, &review.CreatedAt, &review.VendorName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) SaveReply(ctx context.Context, reviewID, wholesalerID int64, reply string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE reviews SET reply = $1 WHERE id = $2 AND wholesaler_id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, reply, reviewID, wholesalerID)
	if err != nil {
		return fmt.Errorf("failed to save review reply: %w", err)
	}

	return requireRowsAffected(result)
}

func (r *reviewRepository) AverageRating(ctx context.Context, wholesalerID int64) (float64, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var (
		avg   float64
		count int
	)

	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE wholesaler_id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, wholesalerID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get average rating: %w", err)
	}

	return avg, count, nil
}
