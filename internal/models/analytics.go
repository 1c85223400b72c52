package models

// DashboardStats is the wholesaler landing-page summary.
type DashboardStats struct {
	TotalProducts   int     `json:"total_products"`
	PendingOrders   int     `json:"pending_orders"`
	MonthRevenue    float64 `json:"month_revenue"`
	ActiveCustomers int     `json:"active_customers"`
	TrustScore      float64 `json:"trust_score"`
	ResponseRate    float64 `json:"response_rate"`
	DeliveryRate    float64 `json:"delivery_rate"`
}

// AnalyticsRow is one day of aggregated wholesaler activity.
type AnalyticsRow struct {
	Date            string  `json:"date"`
	TotalOrders     int     `json:"total_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	ActiveCustomers int     `json:"active_customers"`
}

// WholesalerSummary backs the vendor dashboard "top wholesalers" cards.
type WholesalerSummary struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location,omitempty"`
	Phone        string  `json:"phone"`
	TrustScore   float64 `json:"trust_score"`
	ProfilePhoto string  `json:"profile_photo,omitempty"`
	Specialties  string  `json:"specialties,omitempty"`
	ReviewCount  int     `json:"review_count"`
	AvgPrice     float64 `json:"avg_price,omitempty"`
}

type SortWholesalersRequest struct {
	SortBy string `json:"sort_by" validate:"omitempty,oneof=rating price"`
}
