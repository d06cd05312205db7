package repositories

import (
	"context"

	"modamart/internal/models"
)

// StatusTypeRepository reads the immutable fulfillment-stage catalog.
type StatusTypeRepository interface {
	List(ctx context.Context) ([]models.OrderStatusType, error)
}

type statusTypeRepo struct {
	db DB
}

func NewStatusTypeRepo(db DB) StatusTypeRepository {
	return &statusTypeRepo{db: db}
}

func (r *statusTypeRepo) List(ctx context.Context) ([]models.OrderStatusType, error) {
	query := `SELECT id, name FROM order_status_type ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []models.OrderStatusType
	for rows.Next() {
		var t models.OrderStatusType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}
