package postgres

import (
	"strings"
	"testing"
	"testing/fstest"
)

func migrationsFSWith(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys["sql/migrations/"+name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestLoadMigrationsFromFS(t *testing.T) {
	fsys := migrationsFSWith(map[string]string{
		"0002_add_users.up.sql":       "CREATE TABLE users ()",
		"0002_add_users.down.sql":     "DROP TABLE users",
		"0001_create_orders.up.sql":   "CREATE TABLE orders ()",
		"0001_create_orders.down.sql": "DROP TABLE orders",
	})

	migrations, err := loadMigrationsFromFS(fsys)
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}

	// Сортировка по версии независимо от порядка обхода файлов.
	if migrations[0].Version != 1 || migrations[1].Version != 2 {
		t.Fatalf("unexpected order: %d, %d", migrations[0].Version, migrations[1].Version)
	}
	if migrations[0].Name != "create_orders" {
		t.Fatalf("unexpected name: %s", migrations[0].Name)
	}
	if migrations[0].UpSQL != "CREATE TABLE orders ()" {
		t.Fatalf("unexpected up sql: %s", migrations[0].UpSQL)
	}
	if migrations[1].DownSQL != "DROP TABLE users" {
		t.Fatalf("unexpected down sql: %s", migrations[1].DownSQL)
	}
}

func TestLoadMigrationsFromFS_MissingDown(t *testing.T) {
	fsys := migrationsFSWith(map[string]string{
		"0001_create_orders.up.sql": "CREATE TABLE orders ()",
	})

	if _, err := loadMigrationsFromFS(fsys); err == nil || !strings.Contains(err.Error(), "no down file") {
		t.Fatalf("expected missing down error, got %v", err)
	}
}

func TestLoadMigrationsFromFS_BadFileName(t *testing.T) {
	fsys := migrationsFSWith(map[string]string{
		"orders.sql": "CREATE TABLE orders ()",
	})

	if _, err := loadMigrationsFromFS(fsys); err == nil {
		t.Fatal("expected invalid file name error")
	}
}

func TestLoadMigrationsFromFS_Empty(t *testing.T) {
	if _, err := loadMigrationsFromFS(fstest.MapFS{}); err == nil {
		t.Fatal("expected error for empty migrations dir")
	}
}

func TestLoadMigrationsFromFS_ConflictingNames(t *testing.T) {
	fsys := migrationsFSWith(map[string]string{
		"0001_create_orders.up.sql": "CREATE TABLE orders ()",
		"0001_drop_orders.down.sql": "DROP TABLE orders",
	})

	if _, err := loadMigrationsFromFS(fsys); err == nil || !strings.Contains(err.Error(), "conflicting names") {
		t.Fatalf("expected conflicting names error, got %v", err)
	}
}

// Встроенные миграции сервиса должны быть согласованы сами по себе.
func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := loadMigrationsFromFS(migrationsFS)
	if err != nil {
		t.Fatalf("load embedded migrations: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected embedded migrations")
	}
	for i, m := range migrations {
		if int64(i+1) != m.Version {
			t.Fatalf("expected contiguous versions, got %d at index %d", m.Version, i)
		}
	}
}
