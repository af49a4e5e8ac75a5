package cart

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"tapto-backend/internal/domain"
	"tapto-backend/internal/migrate"
)

func TestPostgres_CreateReplaceGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	var userID string
	err := pool.QueryRow(ctx, `
INSERT INTO users (email, password_hash, full_name)
VALUES ('cart@example.com', 'x', 'Cart Tester')
RETURNING id::text
`).Scan(&userID)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}

	repo := NewPostgres(pool)
	if _, err := repo.GetByUser(ctx, userID); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound before create, got %v", err)
	}

	created, err := repo.Create(ctx, userID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.UserID != userID || len(created.Items) != 0 {
		t.Fatalf("unexpected cart %+v", created)
	}

	items := []domain.CartItem{
		{ProductID: "p1", ProductName: "Tee", ProductImage: "tee.jpg", Quantity: 2, UnitPrice: 19.99, Size: "M"},
		{ProductID: "p2", ProductName: "Mug", Quantity: 1, UnitPrice: 12.5},
	}
	if err := repo.ReplaceItems(ctx, created.ID, items); err != nil {
		t.Fatalf("ReplaceItems: %v", err)
	}

	fetched, err := repo.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(fetched.Items) != 2 || fetched.Items[0].ProductID != "p1" || fetched.Items[0].Quantity != 2 {
		t.Fatalf("fetched mismatch %+v", fetched.Items)
	}

	if err := repo.ReplaceItems(ctx, created.ID, nil); err != nil {
		t.Fatalf("ReplaceItems clear: %v", err)
	}
	fetched, err = repo.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUser after clear: %v", err)
	}
	if len(fetched.Items) != 0 {
		t.Fatalf("expected empty items, got %+v", fetched.Items)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping repository integration test")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE order_jobs, orders, cart_items, carts, addresses, user_activities, delivery_drivers, products, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
