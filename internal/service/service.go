package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/yatube/post-service/internal/dto"
	"github.com/yatube/post-service/internal/model"
	"github.com/yatube/post-service/internal/repository"
	"github.com/yatube/post-service/pkg/paginator"
	"go.uber.org/zap"
)

const POSTS_PER_PAGE = 10

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.PostRequest) (*model.Post, error)
	Update(ctx context.Context, postID int64, editorID uuid.UUID, input dto.PostRequest) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	FindEditable(ctx context.Context, postID int64, editorID uuid.UUID) (*model.FullPost, error)
	FindAll(ctx context.Context, page string) (*paginator.Page[*model.FullPost], error)
	FindGroupPosts(ctx context.Context, slug string, page string) (*model.Group, *paginator.Page[*model.FullPost], error)
	FindAuthorPosts(ctx context.Context, username string, page string) (*model.Author, *paginator.Page[*model.FullPost], error)
}

type Group interface {
	Create(ctx context.Context, input dto.CreateGroupRequest) (*model.Group, error)
	FindByID(ctx context.Context, id int64) (*model.Group, error)
	FindBySlug(ctx context.Context, slug string) (*model.Group, error)
	FindAll(ctx context.Context) ([]*model.Group, error)
}

type Author interface {
	SignUp(ctx context.Context, input dto.SignUpRequest) (*model.Author, error)
	CreateAdmin(ctx context.Context, input dto.SignUpRequest) (*model.Author, error)
	Authenticate(ctx context.Context, username string, password string) (*model.Author, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	FindByUsername(ctx context.Context, username string) (*model.Author, error)
}

// Publisher delivers domain events to a message broker.
type Publisher interface {
	PublishJSON(ctx context.Context, queue string, v interface{}) error
}

type Service struct {
	Post
	Group
	Author
}

// New wires the services. publisher may be nil, in which case no events
// are sent.
func New(logger *zap.Logger, repo *repository.Repository, publisher Publisher) *Service {
	groups := newGroupService(logger, repo)
	authors := newAuthorService(logger, repo)
	return &Service{
		Post:   newPostService(logger, repo, groups, authors, publisher),
		Group:  groups,
		Author: authors,
	}
}
