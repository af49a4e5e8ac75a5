package admin

import (
	"context"

	statsrepo "tapto-backend/internal/repository/stats"
)

// Service serves the back-office dashboard.
type Service struct {
	stats statsrepo.Repository
}

func New(stats statsrepo.Repository) *Service {
	return &Service{stats: stats}
}

// Dashboard returns the aggregate numbers for the admin landing page.
func (s *Service) Dashboard(ctx context.Context) (*statsrepo.Dashboard, error) {
	return s.stats.Dashboard(ctx)
}
