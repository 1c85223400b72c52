package models

import "time"

type Review struct {
	ID           int64     `json:"id"`
	WholesalerID int64     `json:"wholesaler_id"`
	VendorID     int64     `json:"vendor_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Reply        string    `json:"reply,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	VendorName string `json:"vendor_name,omitempty"`
}

type CreateReviewRequest struct {
	WholesalerID int64  `json:"wholesaler_id" validate:"required,min=1"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment" validate:"required,max=2000"`
}

type ReplyReviewRequest struct {
	ReviewID int64  `json:"review_id" validate:"required,min=1"`
	Reply    string `json:"reply" validate:"required,max=2000"`
}
