package infra

import (
	"fmt"

	"saborpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates the schema. Safe to re-run: AutoMigrate only adds
// missing tables/columns and every patch statement is guarded.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Product{},
		&model.User{},
		&model.CashSession{},
		&model.CashEntry{},
		&model.Sale{},
		&model.SaleItem{},
		&model.SaleTender{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Ticket numbers come from a dedicated sequence so they stay atomic
		// across terminals sharing the database.
		{"create sales ticket sequence",
			`CREATE SEQUENCE IF NOT EXISTS sales_ticket_number_seq START 1`},
		// Only one open session per store; enforced at the DB level in case
		// two terminals race past the service-layer check.
		{"unique open session per store", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_cash_sessions_open_store') THEN
    CREATE UNIQUE INDEX idx_cash_sessions_open_store
        ON cash_sessions (store_id)
        WHERE status = 'open';
  END IF;
END $$`},
		// The drawer report sums entries per session constantly.
		{"index cash entries by session", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_cash_entries_session') THEN
    CREATE INDEX idx_cash_entries_session ON cash_entries (cash_session_id);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
