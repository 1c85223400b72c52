package models

// Snapshot is an immutable copy of the cart used for badge display and as the
// checkout input.
type Snapshot struct {
	Items      map[int64]int `json:"items"`
	TotalItems int           `json:"total_items"`
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  int   `json:"quantity"`
}

type RemoveItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
}

type SyncCartRequest struct {
	Cart []SyncCartItem `json:"cart" validate:"dive"`
}

type SyncCartItem struct {
	ID       int64 `json:"id" validate:"required,min=1"`
	Quantity int   `json:"quantity" validate:"required,min=1"`
}

// CartLine is one resolved cart entry with live catalog data attached.
type CartLine struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImagePath string  `json:"image_path,omitempty"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"item_total"`
}

// WholesalerGroup is the cart partition for one wholesaler.
type WholesalerGroup struct {
	WholesalerID   int64      `json:"wholesaler_id"`
	WholesalerName string     `json:"wholesaler_name"`
	Items          []CartLine `json:"items"`
	Subtotal       float64    `json:"subtotal"`
}

// CartView is the projector output: lines grouped by wholesaler plus a grand
// total. Groups appear in order of first encounter.
type CartView struct {
	Groups     []WholesalerGroup `json:"wholesalers"`
	GrandTotal float64           `json:"total_amount"`
	TotalItems int               `json:"count"`
}

// CartCount backs the UI badge endpoints.
type CartCount struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}
