package job

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tapto-backend/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, orderID, kind string, runAt time.Time) (*Job, error) {
	const q = `
INSERT INTO order_jobs (order_id, kind, run_at)
VALUES ($1, $2, $3)
RETURNING id::text, order_id::text, kind, run_at, created_at
`
	var j Job
	if err := r.pool.QueryRow(ctx, q, orderID, kind, runAt).Scan(&j.ID, &j.OrderID, &j.Kind, &j.RunAt, &j.CreatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *postgresRepo) Due(ctx context.Context, now time.Time, limit int) ([]Job, error) {
	const q = `
SELECT id::text, order_id::text, kind, run_at, executed_at, created_at
FROM order_jobs
WHERE executed_at IS NULL AND run_at <= $1
ORDER BY run_at ASC
LIMIT $2
`
	rows, err := r.pool.Query(ctx, q, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.OrderID, &j.Kind, &j.RunAt, &j.ExecutedAt, &j.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, j)
	}
	return result, rows.Err()
}

func (r *postgresRepo) MarkExecuted(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE order_jobs
SET executed_at = $2
WHERE id = $1 AND executed_at IS NULL
`, id, at)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
