package repositories

import (
	"context"
	"fmt"

	"modamart/internal/models"
)

// DashboardRepository computes the per-seller aggregate counts.
type DashboardRepository interface {
	SellerCounts(ctx context.Context, sellerID int64) (*models.SellerDashboard, error)
	ListSellerIDs(ctx context.Context) ([]int64, error)
}

type dashboardRepo struct {
	db DB
}

func NewDashboardRepo(db DB) DashboardRepository {
	return &dashboardRepo{db: db}
}

func (r *dashboardRepo) SellerCounts(ctx context.Context, sellerID int64) (*models.SellerDashboard, error) {
	dashboard := &models.SellerDashboard{SellerID: sellerID}

	detailQuery := `
		SELECT
			COUNT(*) FILTER (WHERE d.order_status_type_id = $2) AS delivered_count,
			COUNT(*) FILTER (WHERE d.order_status_type_id = $3) AS preparing_count
		FROM orders_detail d
		INNER JOIN products p ON p.id = d.product_id
		WHERE p.seller_id = $1
	`
	err := r.db.QueryRow(ctx, detailQuery, sellerID, models.StatusDelivered, models.StatusPreparing).
		Scan(&dashboard.DeliveredCount, &dashboard.PreparingCount)
	if err != nil {
		return nil, fmt.Errorf("count seller order details: %w", err)
	}

	productQuery := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_displayed)
		FROM products
		WHERE seller_id = $1
	`
	err = r.db.QueryRow(ctx, productQuery, sellerID).
		Scan(&dashboard.TotalProducts, &dashboard.VisibleProducts)
	if err != nil {
		return nil, fmt.Errorf("count seller products: %w", err)
	}

	return dashboard, nil
}

func (r *dashboardRepo) ListSellerIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM sellers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
