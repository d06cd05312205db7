package models

// OrderStatusType is one entry of the immutable fulfillment-stage catalog.
// The table is reference data loaded once at startup; rows are never written
// by this service.
type OrderStatusType struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Fulfillment stage ids as seeded in the order_status_type table.
const (
	StatusPaymentComplete int64 = 1
	StatusPreparing       int64 = 2
	StatusShipping        int64 = 3
	StatusDelivered       int64 = 4
	StatusConfirmed       int64 = 5
	StatusCancelled       int64 = 6
)

// StatusCatalog indexes the immutable status universe by id.
type StatusCatalog map[int64]OrderStatusType

// NewStatusCatalog builds the id index from the loaded reference rows.
func NewStatusCatalog(types []OrderStatusType) StatusCatalog {
	catalog := make(StatusCatalog, len(types))
	for _, t := range types {
		catalog[t.ID] = t
	}
	return catalog
}

// Contains reports whether id is a member of the status universe.
func (c StatusCatalog) Contains(id int64) bool {
	_, ok := c[id]
	return ok
}
