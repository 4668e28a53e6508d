package repositories

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophrecipes/internal/dbx"
	"github.com/dmitrijs2005/gophrecipes/internal/filex"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// InitDatabase opens the database for driver ("sqlite" or "pgx"), applies
// migrations and returns the handle with a matching Manager. SQLite is
// limited to one open connection once the schema is in place, which
// serializes writers.
func InitDatabase(ctx context.Context, driver, dsn string) (*sql.DB, Manager, error) {
	if dbx.DialectForDriver(driver) == dbx.DialectSQLite {
		if path := filex.SQLiteFilePath(dsn); path != "" {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, nil, err
			}
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, err
	}

	m := NewManager(dbx.DialectForDriver(driver))

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	if m.Dialect() == dbx.DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	return db, m, nil
}
