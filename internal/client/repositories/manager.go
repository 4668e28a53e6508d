// Package repositories wires the SQL repositories of the client together and
// owns database bootstrap: driver selection and embedded goose migrations.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/gophrecipes/internal/client/migrations"
	"github.com/dmitrijs2005/gophrecipes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophrecipes/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/gophrecipes/internal/client/repositories/users"
	"github.com/dmitrijs2005/gophrecipes/internal/dbx"
	"github.com/pressly/goose/v3"
)

// Manager vends repositories bound to a DBTX, so services can run several of
// them inside one dbx.WithTx call.
type Manager interface {
	Dialect() dbx.Dialect
	RunMigrations(ctx context.Context, db *sql.DB) error
	Metadata(db dbx.DBTX) metadata.Repository
	Preferences(db dbx.DBTX) preferences.Repository
	Users(db dbx.DBTX) users.Repository
}

// SQLManager serves both dialects; the query text is shared and rebound.
type SQLManager struct {
	dialect dbx.Dialect
}

func NewManager(dialect dbx.Dialect) *SQLManager {
	return &SQLManager{dialect: dialect}
}

func (m *SQLManager) Dialect() dbx.Dialect { return m.dialect }

func (m *SQLManager) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLRepository(db, m.dialect)
}

func (m *SQLManager) Preferences(db dbx.DBTX) preferences.Repository {
	return preferences.NewSQLRepository(db, m.dialect)
}

func (m *SQLManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// gooseUp is a seam for testing the goose provider.
var gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	dir, dialect := "sqlite", goose.DialectSQLite3
	if m.dialect == dbx.DialectPostgres {
		dir, dialect = "postgres", goose.DialectPostgres
	}

	fsys, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return err
	}

	if err := gooseUp(ctx, dialect, db, fsys); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}
