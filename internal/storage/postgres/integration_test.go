package postgres

import (
	"context"
	"os"
	"testing"
	"time"
)

// Интеграционные тесты требуют живой PostgreSQL. DSN берётся из
// ORDERS_POSTGRES_TEST_DSN (или ORDERS_POSTGRES_DSN); без него тесты
// пропускаются.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("ORDERS_POSTGRES_TEST_DSN")
	if dsn == "" {
		dsn = os.Getenv("ORDERS_POSTGRES_DSN")
	}
	if dsn == "" {
		t.Skip("ORDERS_POSTGRES_TEST_DSN is not set, skipping postgres integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := Open(ctx, dsn)
	if err != nil {
		t.Skipf("postgres is not reachable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	truncateAll(t, store)
	return store
}

func truncateAll(t *testing.T, store *Store) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, table := range []string{"order_items", "orders", "users", "outbox_messages"} {
		if _, err := store.DB().ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
}
