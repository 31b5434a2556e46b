package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/yatube/post-service/internal/repository"
)

//go:embed schema.sql
var schema string

// Open opens (or creates) the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=1"
	} else {
		dsn += "?_foreign_keys=1"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite database failed, path=%s", path)
	}

	// a single connection keeps an in-memory database alive.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "pinging sqlite database failed")
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "applying schema failed")
	}

	return db, nil
}

func New(db *sql.DB) *repository.Storage {
	return &repository.Storage{
		Post:   newPostRepo(db),
		Group:  newGroupRepo(db),
		Author: newAuthorRepo(db),
	}
}

func wrapErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return repository.ErrAlreadyExists
	}

	return errors.Wrap(err, msg)
}
