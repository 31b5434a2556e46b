package postgres

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/yatube/post-service/internal/repository"
)

const uniqueViolation = "23505"

// wrapErr maps driver errors onto the repository sentinels and adds context
// to everything else.
func wrapErr(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrAlreadyExists
	}

	return errors.Wrap(err, msg)
}
