package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/dbx"
	"github.com/dmitrijs2005/vaxscheduler/internal/filex"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/migrations"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/accounts"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/appointments"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/availabilities"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/vaccines"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// sqlitePragmas make every SQLite transaction take the write lock up front
// and wait for it instead of failing with SQLITE_BUSY.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

// SQLRepositoryManager vends sqlx-backed repositories that work on both
// PostgreSQL and SQLite.
type SQLRepositoryManager struct{}

func NewSQLRepositoryManager() *SQLRepositoryManager {
	return &SQLRepositoryManager{}
}

func (m *SQLRepositoryManager) Accounts(db dbx.DBTX, role models.Role) accounts.Repository {
	return accounts.NewSQLRepository(db, role)
}

func (m *SQLRepositoryManager) Vaccines(db dbx.DBTX) vaccines.Repository {
	return vaccines.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Availabilities(db dbx.DBTX) availabilities.Repository {
	return availabilities.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Appointments(db dbx.DBTX) appointments.Repository {
	return appointments.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and the dialect
// matching db's driver, then applies every pending migration.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	dialect := "sqlite3"
	if db.DriverName() == DriverPostgres {
		dialect = "postgres"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	if err := gooseUpContext(ctx, db.DB, "."); err != nil {
		return err
	}
	return nil
}

// Open connects to the store and verifies it is reachable. A SQLite store is
// limited to a single connection, which serialises all transactions.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch driver {
	case DriverPostgres:
		db, err = sqlx.Open(DriverPostgres, dsn)
	case DriverSQLite:
		if path, ok := sqliteFilePath(dsn); ok {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
			}
		}
		db, err = sqlx.Open(DriverSQLite, sqliteDSN(dsn))
		if err == nil {
			db.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported database driver %q", common.ErrInvalidArgument, driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", common.ErrStorageUnavailable, driver, err)
	}
	return db, nil
}

// sqliteFilePath returns the file behind a plain path DSN. URI and
// in-memory DSNs are left alone.
func sqliteFilePath(dsn string) (string, bool) {
	if dsn == "" || strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return "", false
	}
	path, _, _ := strings.Cut(dsn, "?")
	return path, true
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}
