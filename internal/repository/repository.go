package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yatube/post-service/internal/model"
	"github.com/yatube/post-service/internal/repository/redisrepo"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	Update(ctx context.Context, post model.Post) error
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	Count(ctx context.Context, filter model.PostFilter) (int, error)
	Find(ctx context.Context, filter model.PostFilter, limit int, offset int) ([]*model.FullPost, error)
}

type Group interface {
	Create(ctx context.Context, group model.Group) (*model.Group, error)
	FindByID(ctx context.Context, id int64) (*model.Group, error)
	FindBySlug(ctx context.Context, slug string) (*model.Group, error)
	FindAll(ctx context.Context) ([]*model.Group, error)
}

type Author interface {
	Create(ctx context.Context, author model.Author) (*model.Author, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	FindByUsername(ctx context.Context, username string) (*model.Author, error)
}

// Storage is the persistent store. Both the postgres and the sqlite
// packages build one.
type Storage struct {
	Post
	Group
	Author
}

type Repository struct {
	Storage *Storage
	Redis   *redisrepo.RedisRepository
}

func New(storage *Storage, redis *redisrepo.RedisRepository) *Repository {
	return &Repository{
		Storage: storage,
		Redis:   redis,
	}
}
