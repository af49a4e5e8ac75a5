package stats

import (
	"context"

	"tapto-backend/internal/domain"
)

// MonthlySales is one month of delivered revenue.
type MonthlySales struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// Dashboard aggregates the numbers the admin landing page shows.
type Dashboard struct {
	TotalOrders   int            `json:"totalOrders"`
	TotalUsers    int            `json:"totalUsers"`
	TotalProducts int            `json:"totalProducts"`
	TotalRevenue  float64        `json:"totalRevenue"`
	TodayRevenue  float64        `json:"todayRevenue"`
	PendingOrders int            `json:"pendingOrders"`
	LowStockCount int            `json:"lowStockProducts"`
	RecentOrders  []domain.Order `json:"recentOrders"`
	MonthlySales  []MonthlySales `json:"monthlySales"`
}

type Repository interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}
