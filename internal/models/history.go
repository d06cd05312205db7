package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderDetailHistory is one append-only audit record of a status change.
// Rows are inserted exactly once per admitted transition and are never
// updated or deleted; the trace for a detail, ordered by UpdatedAt, always
// ends at the detail's current status.
type OrderDetailHistory struct {
	ID                uuid.UUID `json:"id" db:"id"`
	OrderDetailID     int64     `json:"order_detail_id" db:"order_detail_id"`
	OrderStatusTypeID int64     `json:"order_status_type_id" db:"order_status_type_id"`
	AddressID         int64     `json:"address_id" db:"address_id"`
	ModifyAccountID   int64     `json:"modify_account_id" db:"modify_account_id"`
	Price             int64     `json:"price" db:"price"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// HistoryRow is one raw trace row joined with the status-type name.
type HistoryRow struct {
	UpdatedAt  time.Time `db:"updated_at"`
	StatusName string    `db:"order_status_type"`
}

// HistoryEntry is one presentation row of an order's status trace.
type HistoryEntry struct {
	UpdateTime      string `json:"update_time"`
	OrderStatusType string `json:"order_status_type"`
}
