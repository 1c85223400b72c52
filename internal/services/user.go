package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mandilink/mandilink/internal/config"
	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/models"
	repository "github.com/mandilink/mandilink/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, login and profiles for both sides of the
// marketplace, plus the config-backed admin login.
type UserService struct {
	vendorRepo     repository.VendorRepository
	wholesalerRepo repository.WholesalerRepository
	rateLimitRepo  repository.RateLimitRepository
	security       *config.Security
}

func NewUserService(vendorRepo repository.VendorRepository, wholesalerRepo repository.WholesalerRepository, rateLimitRepo repository.RateLimitRepository, security *config.Security) *UserService {
	return &UserService{
		vendorRepo:     vendorRepo,
		wholesalerRepo: wholesalerRepo,
		rateLimitRepo:  rateLimitRepo,
		security:       security,
	}
}

func (s *UserService) RegisterVendor(ctx context.Context, req *models.RegisterVendorRequest) (*models.Vendor, error) {
	existing, _ := s.vendorRepo.GetVendorByPhone(ctx, req.Phone)
	if existing != nil {
		return nil, appErrors.DuplicateEntryError("Phone number already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.InternalError("Failed to secure password").WithError(err)
	}

	vendor := &models.Vendor{
		Name:             req.Name,
		Phone:            req.Phone,
		Password:         string(hashedPassword),
		Email:            req.Email,
		AlternateContact: req.AlternateContact,
		ShopName:         req.ShopName,
		GoodsType:        req.GoodsType,
		WorkingHours:     req.WorkingHours,
		StreetArea:       req.StreetArea,
		Pincode:          req.Pincode,
		City:             req.City,
		Location:         req.Location,
		IsApproved:       true,
	}

	if err := s.vendorRepo.CreateVendor(ctx, vendor); err != nil {
		return nil, appErrors.DatabaseError("Failed to create vendor").WithError(err)
	}

	return vendor, nil
}

func (s *UserService) RegisterWholesaler(ctx context.Context, req *models.RegisterWholesalerRequest) (*models.Wholesaler, error) {
	existing, _ := s.wholesalerRepo.GetWholesalerByPhone(ctx, req.Phone)
	if existing != nil {
		return nil, appErrors.DuplicateEntryError("Phone number already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.InternalError("Failed to secure password").WithError(err)
	}

	// New wholesalers wait for admin approval before they can log in.
	wholesaler := &models.Wholesaler{
		Name:         req.Name,
		Phone:        req.Phone,
		Password:     string(hashedPassword),
		ShopName:     req.ShopName,
		SourcingInfo: req.SourcingInfo,
		Location:     req.Location,
	}

	if err := s.wholesalerRepo.CreateWholesaler(ctx, wholesaler); err != nil {
		return nil, appErrors.DatabaseError("Failed to create wholesaler").WithError(err)
	}

	return wholesaler, nil
}

func (s *UserService) LoginVendor(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	allowed, remaining, retryAfter, err := s.rateLimitRepo.CheckLoginRateLimit(ctx, req.Phone)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	vendor, err := s.vendorRepo.GetVendorByPhone(ctx, req.Phone)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(vendor.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid phone or password",
			RemainingTries: remaining,
		}, nil
	}

	return s.issueToken(vendor.ID, models.RoleVendor)
}

func (s *UserService) LoginWholesaler(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	allowed, remaining, retryAfter, err := s.rateLimitRepo.CheckLoginRateLimit(ctx, req.Phone)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	wholesaler, err := s.wholesalerRepo.GetWholesalerByPhone(ctx, req.Phone)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(wholesaler.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid phone or password",
			RemainingTries: remaining,
		}, nil
	}

	if !wholesaler.IsApproved {
		return &models.LoginResponse{
			Success: false,
			Message: "Account pending admin approval",
		}, nil
	}

	return s.issueToken(wholesaler.ID, models.RoleWholesaler)
}

// LoginAdmin checks against the operator credentials from config; there is no
// admin table.
func (s *UserService) LoginAdmin(ctx context.Context, req *models.AdminLoginRequest) (*models.LoginResponse, error) {
	allowed, remaining, retryAfter, err := s.rateLimitRepo.CheckLoginRateLimit(ctx, req.Username)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.security.AdminUsername)) == 1
	passwordMatch := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.security.AdminPassword)) == 1

	if !usernameMatch || !passwordMatch {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid admin credentials",
			RemainingTries: remaining,
		}, nil
	}

	return s.issueToken(0, models.RoleAdmin)
}

func (s *UserService) issueToken(userID int64, role models.Role) (*models.LoginResponse, error) {
	claims := &models.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.security.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.security.JWTKey))
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(time.Until(claims.ExpiresAt.Time).Seconds()),
	}, nil
}

func (s *UserService) GetVendor(ctx context.Context, id int64) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetVendorByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("Vendor not found").WithError(err)
	}

	return vendor, nil
}

func (s *UserService) GetWholesaler(ctx context.Context, id int64) (*models.Wholesaler, error) {
	wholesaler, err := s.wholesalerRepo.GetWholesalerByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("Wholesaler not found").WithError(err)
	}

	return wholesaler, nil
}

func (s *UserService) UpdateVendorProfile(ctx context.Context, id int64, req *models.UpdateVendorProfileRequest) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetVendorByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("Vendor not found").WithError(err)
	}

	vendor.Name = req.Name
	vendor.Phone = req.Phone
	vendor.Email = req.Email
	vendor.Location = req.Location

	if err := s.vendorRepo.UpdateProfile(ctx, vendor); err != nil {
		return nil, appErrors.DatabaseError("Failed to update profile").WithError(err)
	}

	return vendor, nil
}

func (s *UserService) UpdateWholesalerProfile(ctx context.Context, id int64, req *models.UpdateWholesalerProfileRequest) (*models.Wholesaler, error) {
	wholesaler, err := s.wholesalerRepo.GetWholesalerByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("Wholesaler not found").WithError(err)
	}

	wholesaler.Name = req.Name
	wholesaler.ShopName = req.ShopName
	wholesaler.Location = req.Location
	wholesaler.SourcingInfo = req.SourcingInfo

	if err := s.wholesalerRepo.UpdateProfile(ctx, wholesaler); err != nil {
		return nil, appErrors.DatabaseError("Failed to update profile").WithError(err)
	}

	return wholesaler, nil
}

func (s *UserService) ChangeWholesalerPassword(ctx context.Context, id int64, req *models.ChangePasswordRequest) error {
	wholesaler, err := s.wholesalerRepo.GetWholesalerByID(ctx, id)
	if err != nil {
		return appErrors.NotFoundError("Wholesaler not found").WithError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(wholesaler.Password), []byte(req.CurrentPassword)) != nil {
		return appErrors.UnauthorizedError("Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.InternalError("Failed to secure password").WithError(err)
	}

	if err := s.wholesalerRepo.UpdatePassword(ctx, id, string(hashedPassword)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Wholesaler not found")
		}

		return appErrors.DatabaseError("Failed to update password").WithError(err)
	}

	return nil
}
