package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"tapto-backend/internal/domain"
)

// lowStockThreshold marks products the dashboard flags for restocking.
const lowStockThreshold = 10

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard

	const countsQ = `
SELECT
    (SELECT COUNT(*) FROM orders),
    (SELECT COUNT(*) FROM users),
    (SELECT COUNT(*) FROM products),
    (SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = 'delivered'),
    (SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = 'delivered' AND delivered_at >= date_trunc('day', now())),
    (SELECT COUNT(*) FROM orders WHERE status IN ('pending', 'confirmed', 'processing')),
    (SELECT COUNT(*) FROM products WHERE stock <= $1)
`
	if err := r.pool.QueryRow(ctx, countsQ, lowStockThreshold).Scan(
		&d.TotalOrders,
		&d.TotalUsers,
		&d.TotalProducts,
		&d.TotalRevenue,
		&d.TodayRevenue,
		&d.PendingOrders,
		&d.LowStockCount,
	); err != nil {
		return nil, err
	}

	const recentQ = `
SELECT id::text, user_id::text, subtotal, shipping_fee, tax, total, status, tracking_number, created_at
FROM orders
ORDER BY created_at DESC
LIMIT 10
`
	rows, err := r.pool.Query(ctx, recentQ)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d.RecentOrders = []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Subtotal, &o.ShippingFee, &o.Tax, &o.Total, &o.Status, &o.TrackingNumber, &o.CreatedAt); err != nil {
			return nil, err
		}
		d.RecentOrders = append(d.RecentOrders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const salesQ = `
SELECT EXTRACT(YEAR FROM created_at)::int, EXTRACT(MONTH FROM created_at)::int, SUM(total)
FROM orders
WHERE status = 'delivered' AND created_at >= now() - INTERVAL '6 months'
GROUP BY 1, 2
ORDER BY 1, 2
`
	salesRows, err := r.pool.Query(ctx, salesQ)
	if err != nil {
		return nil, err
	}
	defer salesRows.Close()

	d.MonthlySales = []MonthlySales{}
	for salesRows.Next() {
		var m MonthlySales
		if err := salesRows.Scan(&m.Year, &m.Month, &m.Total); err != nil {
			return nil, err
		}
		d.MonthlySales = append(d.MonthlySales, m)
	}
	if err := salesRows.Err(); err != nil {
		return nil, err
	}

	return &d, nil
}
