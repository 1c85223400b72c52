package models

import "time"

type Donation struct {
	ID              int64     `json:"id"`
	VendorID        int64     `json:"vendor_id"`
	FoodDescription string    `json:"food_description"`
	Quantity        string    `json:"quantity"`
	PickupAddress   string    `json:"pickup_address"`
	PickupTime      string    `json:"pickup_time"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type SubmitDonationRequest struct {
	FoodDescription string `json:"food_description" validate:"required"`
	Quantity        string `json:"quantity" validate:"required"`
	PickupAddress   string `json:"pickup_address" validate:"required"`
	PickupTime      string `json:"pickup_time" validate:"required"`
}
