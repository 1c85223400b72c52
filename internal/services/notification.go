package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mandilink/mandilink/internal/api/middleware"
	"github.com/mandilink/mandilink/internal/models"
	repository "github.com/mandilink/mandilink/internal/repositories"
	"github.com/mandilink/mandilink/pkg/sendgrid"
)

// NotificationService sends transactional email. Vendors register with an
// optional email address, so every send is best effort.
type NotificationService struct {
	emailService sendgrid.EmailService
	vendorRepo   repository.VendorRepository
}

func NewNotificationService(emailService sendgrid.EmailService, vendorRepo repository.VendorRepository) *NotificationService {
	return &NotificationService{emailService: emailService, vendorRepo: vendorRepo}
}

// NotifyCheckout emails the vendor a confirmation of the orders just placed.
// Vendors without an email address are skipped silently.
func (s *NotificationService) NotifyCheckout(ctx context.Context, vendorID int64, orderIDs []int64, totalAmount float64) {
	logger := middleware.LoggerFromContext(ctx)

	vendor, err := s.vendorRepo.GetVendorByID(ctx, vendorID)
	if err != nil {
		logger.Warn("Failed to load vendor for checkout email", slog.Int64("vendorId", vendorID), slog.Any("error", err))
		return
	}

	if vendor.Email == "" {
		return
	}

	req := &models.EmailNotificationRequest{
		To:      vendor.Email,
		Subject: "Your order has been placed",
		Content: fmt.Sprintf("Hi %s,\n\nYour checkout created %d order(s) totalling ₹%.2f. The wholesalers will confirm shortly.\n\nThank you!",
			vendor.Name, len(orderIDs), totalAmount),
	}

	if err := s.emailService.Send(ctx, req); err != nil {
		logger.Warn("Failed to send checkout email", slog.Int64("vendorId", vendorID), slog.Any("error", err))
		return
	}

	logger.Info("Checkout email sent", slog.Int64("vendorId", vendorID))
}
