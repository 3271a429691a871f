package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const migrationsDir = "db/migrations"

var (
	pingAttempts = 30
	pingInterval = 2 * time.Second
)

// Migrator applies the versioned SQL schema under db/migrations to the
// ledger database. Schema changes to accounts, transactions and holdings go
// through numbered migration files rather than GORM AutoMigrate, so deployed
// and local databases run identical DDL.
type Migrator struct {
	db  *sql.DB
	dir string
}

// NewMigrator creates a migrator reading from the default migrations directory
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db, dir: migrationsDir}
}

// WaitReady pings until the database accepts connections. Container
// orchestration starts the server and postgres together, so the first pings
// commonly fail.
func (m *Migrator) WaitReady() error {
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		err := m.db.Ping()
		if err == nil {
			return nil
		}
		log.Printf("Database not ready (attempt %d/%d): %v", attempt, pingAttempts, err)
		time.Sleep(pingInterval)
	}
	return fmt.Errorf("database not ready after %d attempts", pingAttempts)
}

// instance builds a migrate instance over the migrations directory. Returns
// nil without error when the directory does not exist.
func (m *Migrator) instance() (*migrate.Migrate, error) {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		return nil, nil
	}

	absDir, err := filepath.Abs(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations directory: %w", err)
	}

	driver, err := postgres.WithInstance(m.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	inst, err := migrate.NewWithDatabaseInstance("file://"+absDir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return inst, nil
}

// Apply runs all pending migrations. A dirty version left behind by an
// interrupted run is forced back to its recorded version first.
func (m *Migrator) Apply() error {
	inst, err := m.instance()
	if err != nil {
		return err
	}
	if inst == nil {
		log.Printf("Migrations directory %s not found, skipping", m.dir)
		return nil
	}

	version, dirty, err := inst.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	if dirty {
		log.Printf("Database dirty at version %d, forcing version before applying", version)
		if err := inst.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version %d: %w", version, err)
		}
	}

	err = inst.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Println("Schema up to date, no migrations applied")
	case err != nil:
		return fmt.Errorf("migration failed: %w", err)
	default:
		applied, _, err := inst.Version()
		if err != nil {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		log.Printf("Applied migrations, schema now at version %d", applied)
	}
	return nil
}

// Version reports the schema version currently recorded in the database
func (m *Migrator) Version() (version uint, dirty bool, err error) {
	inst, err := m.instance()
	if err != nil {
		return 0, false, err
	}
	if inst == nil {
		return 0, false, fmt.Errorf("migrations directory %s not found", m.dir)
	}
	return inst.Version()
}

// RunMigrationsIfEnabled applies the SQL migrations when AUTO_MIGRATE=true.
// Deployments that manage the schema out of band leave the flag unset and
// the server starts against whatever schema is already in place.
func RunMigrationsIfEnabled(db *sql.DB) error {
	if os.Getenv("AUTO_MIGRATE") != "true" {
		log.Println("Auto-migration disabled (AUTO_MIGRATE != true)")
		return nil
	}

	m := NewMigrator(db)

	if err := m.WaitReady(); err != nil {
		return fmt.Errorf("database readiness check failed: %w", err)
	}
	if err := m.Apply(); err != nil {
		return fmt.Errorf("migration execution failed: %w", err)
	}

	if version, dirty, err := m.Version(); err != nil {
		log.Printf("Warning: failed to read migration status: %v", err)
	} else {
		log.Printf("Migration status: version=%d dirty=%v", version, dirty)
	}
	return nil
}
