package activity

import (
	"context"
	"time"

	"tapto-backend/internal/domain"
)

// Filter narrows the admin-wide activity listing. Zero values are ignored.
type Filter struct {
	UserID    string
	Action    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// Stats summarizes the audit log for the admin panel.
type Stats struct {
	TotalActivities  int                   `json:"totalActivities"`
	ByAction         map[string]int        `json:"activitiesByAction"`
	RecentActivities []domain.UserActivity `json:"recentActivities"`
}

// Repository is the append-only audit log store. Entries are never edited
// or removed.
type Repository interface {
	Append(ctx context.Context, a domain.UserActivity) (*domain.UserActivity, error)
	List(ctx context.Context, f Filter) ([]domain.UserActivity, int, error)
	Stats(ctx context.Context) (*Stats, error)
}
