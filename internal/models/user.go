package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleVendor     Role = "vendor"
	RoleWholesaler Role = "wholesaler"
	RoleAdmin      Role = "admin"
)

// Vendor is a buyer: a street-food seller who browses the catalog and places
// orders.
type Vendor struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email,omitempty"`
	Password         string    `json:"-"`
	AlternateContact string    `json:"alternate_contact,omitempty"`
	ShopName         string    `json:"shop_name,omitempty"`
	GoodsType        string    `json:"goods_type,omitempty"`
	WorkingHours     string    `json:"working_hours,omitempty"`
	StreetArea       string    `json:"street_area,omitempty"`
	PhotoPath        string    `json:"photo_path,omitempty"`
	Pincode          string    `json:"pincode,omitempty"`
	City             string    `json:"city,omitempty"`
	Location         string    `json:"location,omitempty"`
	Credits          float64   `json:"credits"`
	IsApproved       bool      `json:"is_approved"`
	CreatedAt        time.Time `json:"created_at"`
}

// Wholesaler is a seller who lists products and fulfils orders. New accounts
// stay unapproved until an admin signs off.
type Wholesaler struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Password       string    `json:"-"`
	ShopName       string    `json:"shop_name"`
	IDDocPath      string    `json:"id_doc_path,omitempty"`
	LicenseDocPath string    `json:"license_doc_path,omitempty"`
	SourcingInfo   string    `json:"sourcing_info,omitempty"`
	Location       string    `json:"location,omitempty"`
	ProfilePhoto   string    `json:"profile_photo,omitempty"`
	TrustScore     float64   `json:"trust_score"`
	ResponseRate   float64   `json:"response_rate"`
	DeliveryRate   float64   `json:"delivery_rate"`
	IsApproved     bool      `json:"is_approved"`
	CreatedAt      time.Time `json:"created_at"`
}

type RegisterVendorRequest struct {
	Name             string `json:"name" validate:"required"`
	Phone            string `json:"phone" validate:"required,min=10,max=15"`
	Password         string `json:"password" validate:"required,min=6"`
	Email            string `json:"email" validate:"omitempty,email"`
	AlternateContact string `json:"alternate_contact"`
	ShopName         string `json:"shop_name"`
	GoodsType        string `json:"goods_type"`
	WorkingHours     string `json:"working_hours"`
	StreetArea       string `json:"street_area"`
	Pincode          string `json:"pincode"`
	City             string `json:"city"`
	Location         string `json:"location"`
}

type RegisterWholesalerRequest struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required,min=10,max=15"`
	Password     string `json:"password" validate:"required,min=6"`
	ShopName     string `json:"shop_name" validate:"required"`
	SourcingInfo string `json:"sourcing_info"`
	Location     string `json:"location"`
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success        bool   `json:"success"`
	Token          string `json:"token,omitempty"`
	ExpiresIn      int    `json:"expires_in,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
	Message        string `json:"message,omitempty"`
}

type UpdateVendorProfileRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,min=10,max=15"`
	Email    string `json:"email" validate:"omitempty,email"`
	Location string `json:"location"`
}

type UpdateWholesalerProfileRequest struct {
	Name         string `json:"name" validate:"required"`
	ShopName     string `json:"shop_name" validate:"required"`
	Location     string `json:"location"`
	SourcingInfo string `json:"sourcing_info"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type Claims struct {
	UserID int64 `json:"user_id"`
	Role   Role  `json:"role"`
	jwt.RegisteredClaims
}
