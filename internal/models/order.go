package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
)

// statusRank orders the forward-only lifecycle. There is no cancelled state;
// the lifecycle only ever moves ahead.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusCompleted:  2,
}

// CanTransitionTo reports whether moving from s to next is a forward step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}

	to, ok := statusRank[next]
	if !ok {
		return false
	}

	return to > from
}

type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`

	// Populated by listing joins.
	ProductName string `json:"product_name,omitempty"`
	ImagePath   string `json:"image_path,omitempty"`
}

type Order struct {
	ID           int64       `json:"id"`
	WholesalerID int64       `json:"wholesaler_id"`
	VendorID     int64       `json:"vendor_id"`
	TotalAmount  float64     `json:"total_amount"`
	Status       OrderStatus `json:"status"`
	Items        []OrderItem `json:"items,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`

	// Populated by listing joins.
	WholesalerName string `json:"wholesaler_name,omitempty"`
	VendorName     string `json:"vendor_name,omitempty"`
}

type UpdateOrderStatusRequest struct {
	OrderID int64       `json:"order_id" validate:"required,min=1"`
	Status  OrderStatus `json:"status" validate:"required,oneof=pending processing completed"`
}

type CheckoutResponse struct {
	OrderIDs []int64 `json:"order_ids"`
}

// VendorOrderStats powers the order-history header counts.
type VendorOrderStats struct {
	PendingCount    int     `json:"pending_count"`
	ProcessingCount int     `json:"processing_count"`
	CompletedCount  int     `json:"completed_count"`
	TotalSpent      float64 `json:"total_spent"`
}
