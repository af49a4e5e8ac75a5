package activity

import (
	"context"

	"tapto-backend/internal/domain"
	activityrepo "tapto-backend/internal/repository/activity"
)

const defaultPageSize = 50

// Service reads the append-only audit log. Writes happen where the audited
// action happens, not here.
type Service struct {
	repo activityrepo.Repository
}

func New(repo activityrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Page is one page of audit entries.
type Page struct {
	Activities []domain.UserActivity `json:"activities"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
}

// List returns a filtered page of the admin-wide log.
func (s *Service) List(ctx context.Context, f activityrepo.Filter) (*Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 200 {
		f.Limit = defaultPageSize
	}
	entries, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &Page{Activities: entries, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// ListForUser returns one user's recent entries.
func (s *Service) ListForUser(ctx context.Context, userID string, page, limit int) (*Page, error) {
	return s.List(ctx, activityrepo.Filter{UserID: userID, Page: page, Limit: limit})
}

// Stats returns total and per-action counts plus the most recent entries.
func (s *Service) Stats(ctx context.Context) (*activityrepo.Stats, error) {
	return s.repo.Stats(ctx)
}
