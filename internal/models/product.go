package models

import "time"

const (
	ProductStatusInStock    = "In Stock"
	ProductStatusLowStock   = "Low Stock"
	ProductStatusOutOfStock = "Out of Stock"
)

type Product struct {
	ID               int64     `json:"id"`
	WholesalerID     int64     `json:"wholesaler_id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Price            float64   `json:"price"`
	Stock            int       `json:"stock"`
	GroupBuyEligible bool      `json:"group_buy_eligible"`
	ImagePath        string    `json:"image_path,omitempty"`
	Views            int       `json:"views"`
	Likes            int       `json:"likes"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`

	// Populated by catalog joins for vendor-facing listings.
	WholesalerName string  `json:"wholesaler_name,omitempty"`
	TrustScore     float64 `json:"trust_score,omitempty"`
}

type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=200"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock    *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

type UpdateStockRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Stock     int   `json:"stock" validate:"gte=0"`
}

type DeleteProductRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
}

type FilterProductsRequest struct {
	MaxBudget float64 `json:"maxBudget" validate:"omitempty,gt=0"`
	Category  string  `json:"category"`
	SortBy    string  `json:"sortBy" validate:"omitempty,oneof='Highest Discount' 'Price Low to High' 'Price High to Low'"`
	Limit     int     `json:"limit" validate:"omitempty,min=1,max=100"`
}

// StatusForStock derives the listing badge the same way stock edits always
// have: >50 in stock, 1..50 low, 0 out.
func StatusForStock(stock int) string {
	switch {
	case stock > 50:
		return ProductStatusInStock
	case stock > 0:
		return ProductStatusLowStock
	default:
		return ProductStatusOutOfStock
	}
}
