package models

import (
	"encoding/json"
	"time"
)

// PaymentMethod is stored for display only; nothing in the platform ever
// charges it.
type PaymentMethod struct {
	ID         int64           `json:"id"`
	VendorID   int64           `json:"vendor_id"`
	MethodType string          `json:"method_type"`
	Details    json.RawMessage `json:"details"`
	IsDefault  bool            `json:"is_default"`
	CreatedAt  time.Time       `json:"created_at"`
}

type AddPaymentMethodRequest struct {
	MethodType string          `json:"method_type" validate:"required,oneof=upi card"`
	Details    json.RawMessage `json:"details" validate:"required"`
}

type PaymentMethodIDRequest struct {
	MethodID int64 `json:"method_id" validate:"required,min=1"`
}
