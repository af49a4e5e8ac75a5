package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tapto-backend/internal/domain"
)

const orderColumns = `id::text, user_id::text, items, shipping_address, payment_method, subtotal, shipping_fee, tax, total, status, tracking_number, tracking, COALESCE(cancellation_reason, ''), delivery_person, live_location, created_at, updated_at, delivered_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	const q = `
INSERT INTO orders (user_id, items, shipping_address, payment_method, subtotal, shipping_fee, tax, total, status, tracking_number, tracking)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id::text, created_at, updated_at
`
	res := o
	err := r.pool.QueryRow(ctx, q,
		o.UserID, o.Items, o.ShippingAddress, o.PaymentMethod,
		o.Subtotal, o.ShippingFee, o.Tax, o.Total,
		o.Status, o.TrackingNumber, o.Tracking,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("order repo: create user_id=%s error=%v", o.UserID, err)
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *postgresRepo) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at DESC`, string(status))
}

func (r *postgresRepo) Update(ctx context.Context, o domain.Order) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $2,
    tracking = $3,
    cancellation_reason = NULLIF($4, ''),
    delivery_person = $5,
    live_location = $6,
    delivered_at = $7,
    updated_at = now()
WHERE id = $1
RETURNING updated_at
`
	res := o
	err := r.pool.QueryRow(ctx, q,
		o.ID, o.Status, o.Tracking, o.CancellationReason,
		o.DeliveryPerson, o.LiveLocation, o.DeliveredAt,
	).Scan(&res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update id=%s error=%v", o.ID, err)
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Items, &o.ShippingAddress, &o.PaymentMethod,
		&o.Subtotal, &o.ShippingFee, &o.Tax, &o.Total,
		&o.Status, &o.TrackingNumber, &o.Tracking, &o.CancellationReason,
		&o.DeliveryPerson, &o.LiveLocation,
		&o.CreatedAt, &o.UpdatedAt, &o.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	if o.Tracking == nil {
		o.Tracking = []domain.TrackingEvent{}
	}
	return &o, nil
}
