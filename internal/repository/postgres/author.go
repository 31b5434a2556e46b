package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yatube/post-service/internal/model"
)

type authorRepo struct {
	db *pgxpool.Pool
}

func newAuthorRepo(db *pgxpool.Pool) *authorRepo {
	return &authorRepo{
		db: db,
	}
}

func (r *authorRepo) Create(ctx context.Context, author model.Author) (*model.Author, error) {
	if author.ID == uuid.Nil {
		author.ID = uuid.New()
	}
	author.CreatedAt = time.Now().UTC()

	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO authors(id, username, password_hash, role, created_at) VALUES($1, $2, $3, $4, $5)",
		author.ID,
		author.Username,
		author.PasswordHash,
		author.Role,
		author.CreatedAt,
	); err != nil {
		return nil, wrapErr(err, "inserting author failed")
	}

	return &author, nil
}

func (r *authorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	return r.findOne(ctx, "SELECT id, username, password_hash, role, created_at FROM authors WHERE id = $1", id)
}

func (r *authorRepo) FindByUsername(ctx context.Context, username string) (*model.Author, error) {
	return r.findOne(ctx, "SELECT id, username, password_hash, role, created_at FROM authors WHERE username = $1", username)
}

func (r *authorRepo) findOne(ctx context.Context, query string, arg interface{}) (*model.Author, error) {
	var author model.Author
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&author.ID,
		&author.Username,
		&author.PasswordHash,
		&author.Role,
		&author.CreatedAt,
	); err != nil {
		return nil, wrapErr(err, "selecting author failed")
	}

	return &author, nil
}
