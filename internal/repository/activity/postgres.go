package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tapto-backend/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Append(ctx context.Context, a domain.UserActivity) (*domain.UserActivity, error) {
	const q = `
INSERT INTO user_activities (user_id, action, details, ip_address, user_agent)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
RETURNING id::text, created_at
`
	res := a
	err := r.pool.QueryRow(ctx, q, a.UserID, a.Action, a.Details, a.IPAddress, a.UserAgent).Scan(&res.ID, &res.Timestamp)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]domain.UserActivity, int, error) {
	where := []string{"TRUE"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.UserID != "" {
		where = append(where, "user_id = "+arg(f.UserID))
	}
	if f.Action != "" {
		where = append(where, "action = "+arg(f.Action))
	}
	if f.StartDate != nil {
		where = append(where, "created_at >= "+arg(*f.StartDate))
	}
	if f.EndDate != nil {
		where = append(where, "created_at <= "+arg(*f.EndDate))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM user_activities WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	q := fmt.Sprintf(`
SELECT id::text, user_id::text, action, COALESCE(details, ''), COALESCE(ip_address, ''), COALESCE(user_agent, ''), created_at
FROM user_activities
WHERE %s
ORDER BY created_at DESC
LIMIT %s OFFSET %s
`, cond, arg(limit), arg((page-1)*limit))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.UserActivity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByAction: map[string]int{}}

	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_activities`).Scan(&stats.TotalActivities); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT action, COUNT(*)
FROM user_activities
GROUP BY action
ORDER BY COUNT(*) DESC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var action string
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, err
		}
		stats.ByAction[action] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const recentQ = `
SELECT id::text, user_id::text, action, COALESCE(details, ''), COALESCE(ip_address, ''), COALESCE(user_agent, ''), created_at
FROM user_activities
ORDER BY created_at DESC
LIMIT 10
`
	recentRows, err := r.pool.Query(ctx, recentQ)
	if err != nil {
		return nil, err
	}
	defer recentRows.Close()

	stats.RecentActivities = []domain.UserActivity{}
	for recentRows.Next() {
		a, err := scanActivity(recentRows)
		if err != nil {
			return nil, err
		}
		stats.RecentActivities = append(stats.RecentActivities, a)
	}
	if err := recentRows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func scanActivity(row pgx.Row) (domain.UserActivity, error) {
	var a domain.UserActivity
	err := row.Scan(&a.ID, &a.UserID, &a.Action, &a.Details, &a.IPAddress, &a.UserAgent, &a.Timestamp)
	return a, err
}
