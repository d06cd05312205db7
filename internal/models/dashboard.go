package models

// SellerDashboard holds the per-seller aggregate counts shown on the admin
// landing page: order details delivered or still in preparation, plus the
// seller's total and currently displayed products.
type SellerDashboard struct {
	SellerID        int64 `json:"seller_id"`
	DeliveredCount  int64 `json:"delivered_count"`
	PreparingCount  int64 `json:"preparing_count"`
	TotalProducts   int64 `json:"total_products"`
	VisibleProducts int64 `json:"visible_products"`
}
