package models

import (
	"time"
)

// Order represents a customer purchase event. Every order owns at least one
// order detail; the detail is the unit of status transition.
type Order struct {
	ID                  int64     `json:"id" db:"id"`
	OrderNumber         string    `json:"order_number" db:"order_number"`
	UserID              int64     `json:"user_id" db:"user_id"`
	OrderUsername       string    `json:"order_username" db:"order_username"`
	DeliveryMemoID      *int64    `json:"delivery_memo_id" db:"delivery_memo_id"`
	DeliveryMemoRequest *string   `json:"delivery_memo_request" db:"delivery_memo_request"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// OrderDetail is one product-option line within an order.
type OrderDetail struct {
	ID                int64  `json:"id" db:"id"`
	OrderID           int64  `json:"order_id" db:"order_id"`
	DetailOrderNumber string `json:"detail_order_number" db:"detail_order_number"`
	ProductID         int64  `json:"product_id" db:"product_id"`
	OptionID          int64  `json:"option_id" db:"option_id"`
	Quantity          int    `json:"quantity" db:"quantity"`
	Price             int64  `json:"price" db:"price"`
	OrderStatusTypeID int64  `json:"order_status_type_id" db:"order_status_type_id"`
	AddressID         int64  `json:"address_id" db:"address_id"`
}

// OrderSearchFilter holds the search criteria for the admin order list.
// StatusID scopes the list to one workflow stage and is always required;
// every other field is optional and contributes one predicate when set.
type OrderSearchFilter struct {
	StatusID          int64      `json:"status_id"`
	SellerID          *int64     `json:"seller_id,omitempty"`
	OrderNumber       *string    `json:"order_number,omitempty"`
	DetailOrderNumber *string    `json:"detail_order_number,omitempty"`
	OrdererUsername   *string    `json:"orderer_username,omitempty"`
	OrdererPhone      *string    `json:"orderer_phone,omitempty"`
	ProductTitle      *string    `json:"product_title,omitempty"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"` // exclusive after normalization
	Page              int        `json:"page,omitempty"`
	Limit             int        `json:"limit,omitempty"`
}

// OrderRow is one raw row of the admin list query before price derivation.
type OrderRow struct {
	CreatedAt         time.Time `db:"created_at"`
	OrderNumber       string    `db:"order_number"`
	DetailOrderNumber string    `db:"detail_order_number"`
	BrandName         string    `db:"brand_name"`
	ProductTitle      string    `db:"title"`
	DiscountRate      float64   `db:"discount_rate"`
	SizeName          string    `db:"size_name"`
	ColorName         string    `db:"color_name"`
	Quantity          int       `db:"quantity"`
	OrderUsername     string    `db:"order_username"`
	OrdererPhone      string    `db:"orderer_phone"`
	Price             int64     `db:"price"`
	StatusName        string    `db:"order_status_type"`
}

// OrderListItem is one presentation row of the order list response.
type OrderListItem struct {
	OrderCreatedAt    string `json:"order_created_at"`
	OrderNumber       string `json:"order_number"`
	OrderDetailNumber string `json:"order_detail_number"`
	BrandName         string `json:"brand_name"`
	ProductName       string `json:"product_name"`
	Color             string `json:"color"`
	Size              string `json:"size"`
	Quantity          int    `json:"quantity"`
	OrderUsername     string `json:"order_username"`
	OrdererPhone      string `json:"orderer_phone"`
	OrderStatusType   string `json:"order_status_type"`
	TotalPrice        int64  `json:"total_price"`
}

// OrderListResult pairs the shaped page with the unpaginated total so the
// admin UI can render page controls.
type OrderListResult struct {
	OrderList  []OrderListItem `json:"order_list"`
	TotalCount int64           `json:"total_count"`
}

// OrderDetailRow is the raw single-order detail row joined across the
// reference tables.
type OrderDetailRow struct {
	OrderNumber         string
	CreatedAt           time.Time
	DetailOrderNumber   string
	StatusName          string
	OrdererPhone        string
	OrderUsername       string
	ProductID           int64
	OptionID            int64
	Price               int64
	DiscountRate        float64
	ProductTitle        string
	BrandName           string
	Color               string
	Size                string
	Quantity            int
	UserID              int64
	Recipient           string
	ZipCode             string
	Address             string
	DetailAddress       string
	RecipientPhone      string
	DeliveryMemo        *string
	DeliveryMemoRequest *string
}

// OrderDetailView is the shaped single-order response body.
type OrderDetailView struct {
	OrderNumber       string  `json:"order_number"`
	OrderDetailNumber string  `json:"order_detail_number"`
	OrderCreatedAt    string  `json:"order_created_at"`
	OrderStatusType   string  `json:"order_status_type"`
	OrdererPhone      string  `json:"orderer_phone"`
	OrdererName       string  `json:"orderer_name"`
	ProductID         int64   `json:"product_id"`
	Price             int64   `json:"price"`
	DiscountRate      int     `json:"discount_rate"` // integer percent
	DiscountedPrice   int64   `json:"discounted_price"`
	TotalPrice        int64   `json:"total_price"`
	ProductName       string  `json:"product_name"`
	BrandName         string  `json:"brand_name"`
	Color             string  `json:"color"`
	Size              string  `json:"size"`
	Quantity          int     `json:"quantity"`
	UserID            int64   `json:"user_id"`
	Recipient         string  `json:"recipient"`
	ZipCode           string  `json:"zip_code"`
	Address           string  `json:"address"`
	RecipientPhone    string  `json:"recipient_phone"`
	DeliveryMemo      *string `json:"delivery_memo"`
}

// OrderDetailResult is the GET /order response body.
type OrderDetailResult struct {
	OrderDetail  OrderDetailView `json:"order_detail"`
	OrderHistory []HistoryEntry  `json:"order_history"`
}

// StatusChangeRequest is one element of the PATCH /orders body.
type StatusChangeRequest struct {
	OrdersDetailID    int64 `json:"orders_detail_id"`
	OrderStatusTypeID int64 `json:"order_status_type_id"`
}

// Rejection reasons for status changes the validator refused. Rejected items
// are data, not errors: the rest of the batch still applies.
const (
	ReasonNotFound          = "not found"
	ReasonUnknownStatus     = "unknown status"
	ReasonIllegalTransition = "illegal transition"
)

// RejectedChange is a requested status change the validator refused,
// annotated with why.
type RejectedChange struct {
	StatusChangeRequest
	Reason string `json:"reason"`
}
