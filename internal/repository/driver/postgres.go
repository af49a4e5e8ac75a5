package driver

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tapto-backend/internal/domain"
)

const driverColumns = `id::text, name, phone, email, vehicle_number, is_active, COALESCE(avatar_url, ''), created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, d domain.DeliveryDriver) (*domain.DeliveryDriver, error) {
	const q = `
INSERT INTO delivery_drivers (name, phone, email, vehicle_number, is_active, avatar_url)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
RETURNING ` + driverColumns + `
`
	row := r.pool.QueryRow(ctx, q, d.Name, d.Phone, d.Email, d.VehicleNumber, d.IsActive, d.AvatarURL)
	res, err := scanDriver(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return res, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.DeliveryDriver, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+driverColumns+` FROM delivery_drivers WHERE id = $1`, id)
	res, err := scanDriver(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.DeliveryDriver, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+driverColumns+` FROM delivery_drivers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DeliveryDriver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, d domain.DeliveryDriver) (*domain.DeliveryDriver, error) {
	const q = `
UPDATE delivery_drivers
SET name = $2,
    phone = $3,
    email = $4,
    vehicle_number = $5,
    is_active = $6,
    avatar_url = NULLIF($7, '')
WHERE id = $1
RETURNING ` + driverColumns + `
`
	row := r.pool.QueryRow(ctx, q, d.ID, d.Name, d.Phone, d.Email, d.VehicleNumber, d.IsActive, d.AvatarURL)
	res, err := scanDriver(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return res, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM delivery_drivers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDriver(row pgx.Row) (*domain.DeliveryDriver, error) {
	var d domain.DeliveryDriver
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.Email, &d.VehicleNumber, &d.IsActive, &d.AvatarURL, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
