package service

import (
	"context"

	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	repository "github.com/mandilink/mandilink/internal/repositories"
)

const donationStatusPending = "pending"

// DonationService records end-of-day surplus food pickups offered by vendors.
type DonationService struct {
	repo repository.DonationRepository
}

func NewDonationService(repo repository.DonationRepository) *DonationService {
	return &DonationService{repo: repo}
}

func (s *DonationService) Submit(ctx context.Context, vendorID int64, req *models.SubmitDonationRequest) (*models.Donation, error) {
	donation := &models.Donation{
		VendorID:        vendorID,
		FoodDescription: req.FoodDescription,
		Quantity:        req.Quantity,
		PickupAddress:   req.PickupAddress,
		PickupTime:      req.PickupTime,
		Status:          donationStatusPending,
	}

	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, appErrors.DatabaseError("Failed to submit donation").WithError(err)
	}

	return donation, nil
}

func (s *DonationService) ListByVendor(ctx context.Context, vendorID int64) ([]models.Donation, error) {
	donations, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list donations").WithError(err)
	}

	return donations, nil
}
