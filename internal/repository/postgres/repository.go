package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/yatube/post-service/internal/config"
	"github.com/yatube/post-service/internal/repository"
)

//go:embed schema.sql
var schema string

func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, errors.Wrapf(err, "creating connection pool failed, host=%s db=%s", cfg.Host, cfg.DBName)
	}

	return pool, nil
}

// InitSchema creates the tables when they are missing.
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return errors.Wrap(err, "applying schema failed")
	}
	return nil
}

func New(db *pgxpool.Pool) *repository.Storage {
	return &repository.Storage{
		Post:   newPostRepo(db),
		Group:  newGroupRepo(db),
		Author: newAuthorRepo(db),
	}
}
