package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/shopcart-backend/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	if err := ValidateEmbedded(); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestSnapshotsMigrationContainsSchema(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_snapshots_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no snapshots migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS snapshots",
		"snapshot_key VARCHAR(255) PRIMARY KEY",
		"DROP TABLE IF EXISTS snapshots",
	} {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRunUpAndDownOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrate.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	if err := Run(ctx, sqlDB, config.SnapshotBackendSQLite, "up"); err != nil {
		t.Fatalf("goose up: %v", err)
	}
	if !conn.Migrator().HasTable("snapshots") {
		t.Fatal("expected snapshots table after up")
	}

	if err := MigrateToVersion(ctx, sqlDB, config.SnapshotBackendSQLite, "0"); err != nil {
		t.Fatalf("migrate to 0: %v", err)
	}
	if conn.Migrator().HasTable("snapshots") {
		t.Fatal("expected snapshots table dropped after down")
	}
}

func TestDialect(t *testing.T) {
	if d, err := Dialect(config.SnapshotBackendPostgres); err != nil || d != "postgres" {
		t.Fatalf("unexpected postgres dialect %q err=%v", d, err)
	}
	if d, err := Dialect(config.SnapshotBackendSQLite); err != nil || d != "sqlite3" {
		t.Fatalf("unexpected sqlite dialect %q err=%v", d, err)
	}
	if _, err := Dialect(config.SnapshotBackendRedis); err == nil {
		t.Fatal("expected error for redis")
	}
}

func TestCreateAndValidateDir(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Coupon Audit")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(path, "_add_coupon_audit.sql") {
		t.Fatalf("unexpected file name %s", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.sql"), []byte("-- nothing"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename error")
	}
}

func TestCreateSQLMigrationRejectsEmptyNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"", "   ", "!!!"} {
		if _, err := CreateSQLMigration(dir, name); err == nil {
			t.Fatalf("expected error for name %q", name)
		}
	}
	if _, err := CreateSQLMigration("", "ok"); err == nil {
		t.Fatal("expected error for empty dir")
	}
	if got := migrationSlug("  Snapshot--TTL index "); got != "snapshot_ttl_index" {
		t.Fatalf("unexpected slug %q", got)
	}
}

func TestValidateDirReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"20260101000000_no_down.sql":    "-- +goose Up\nSELECT 1;\n",
		"20260101000001_reversed.sql":   "-- +goose Down\nSELECT 1;\n-- +goose Up\nSELECT 1;\n",
		"20260101000002_unbalanced.sql": "-- +goose Up\n-- +goose StatementBegin\nSELECT 1;\n-- +goose Down\nSELECT 1;\n",
		"notes.txt":                     "ignored",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	err := ValidateDir(dir)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"no_down", "reversed", "unbalanced"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s to be reported, got %v", want, err)
		}
	}
	if strings.Contains(err.Error(), "notes.txt") {
		t.Fatalf("non sql files must be ignored, got %v", err)
	}
}
