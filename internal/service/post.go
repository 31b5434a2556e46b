package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/yatube/post-service/internal/dto"
	"github.com/yatube/post-service/internal/model"
	"github.com/yatube/post-service/internal/rabbitmq"
	"github.com/yatube/post-service/internal/repository"
	"github.com/yatube/post-service/internal/repository/redisrepo"
	"github.com/yatube/post-service/pkg/paginator"
	"go.uber.org/zap"
)

type postService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	groups    Group
	authors   Author
	publisher Publisher
}

func newPostService(logger *zap.Logger, repo *repository.Repository, groups Group, authors Author, publisher Publisher) *postService {
	return &postService{
		logger:    logger,
		repo:      repo,
		groups:    groups,
		authors:   authors,
		publisher: publisher,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input dto.PostRequest) (*model.Post, error) {
	text, groupID, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	createdPost, err := s.repo.Storage.Post.Create(ctx, model.Post{
		AuthorID: authorID,
		GroupID:  groupID,
		Text:     text,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	s.publishCreated(ctx, createdPost)

	return createdPost, nil
}

func (s *postService) publishCreated(ctx context.Context, post *model.Post) {
	if s.publisher == nil {
		return
	}

	msg := dto.MQPostCreatedMsg{
		PostID:    post.ID,
		UserID:    post.AuthorID,
		GroupID:   post.GroupID,
		Text:      post.Text,
		CreatedAt: post.CreatedAt,
	}
	if err := s.publisher.PublishJSON(ctx, rabbitmq.POST_CREATED_QUEUE, msg); err != nil {
		s.logger.Sugar().Errorf("failed to publish post(%d) created event: %s", post.ID, err.Error())
	}
}

func (s *postService) Update(ctx context.Context, postID int64, editorID uuid.UUID, input dto.PostRequest) (*model.Post, error) {
	current, err := s.FindEditable(ctx, postID, editorID)
	if err != nil {
		return nil, err
	}

	text, groupID, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	post := current.Post
	post.Text = text
	post.GroupID = groupID
	if err := s.repo.Storage.Post.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to update post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(postID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) from redis: %s", postID, err.Error())
	}

	return &post, nil
}

// validate normalises the form input. A non-empty group must reference an
// existing group.
func (s *postService) validate(ctx context.Context, input dto.PostRequest) (string, *int64, error) {
	var verr ValidationError

	text := strings.TrimSpace(input.Text)
	if text == "" {
		verr.add("text", ErrEmptyText)
	}

	var groupID *int64
	if raw := strings.TrimSpace(input.Group); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			verr.add("group", ErrUnknownGroup)
		} else if _, err := s.groups.FindByID(ctx, id); err != nil {
			if !errors.Is(err, ErrGroupNotFound) {
				return "", nil, err
			}
			verr.add("group", ErrUnknownGroup)
		} else {
			groupID = &id
		}
	}

	if err := verr.orNil(); err != nil {
		return "", nil, err
	}

	return text, groupID, nil
}

func (s *postService) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	cachedPost, err := redisrepo.Get[model.FullPost](s.repo.Redis.Default, ctx, redisrepo.PostKey(id))
	if err == nil {
		return cachedPost, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%d) from redis: %s", id, err.Error())
	}

	post, err := s.repo.Storage.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id), post, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) in redis: %s", id, err.Error())
	}

	return post, nil
}

// FindEditable returns the post only when editorID is its author.
func (s *postService) FindEditable(ctx context.Context, postID int64, editorID uuid.UUID) (*model.FullPost, error) {
	post, err := s.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.Post.AuthorID != editorID {
		return nil, ErrNotPostAuthor
	}

	return post, nil
}

func (s *postService) FindAll(ctx context.Context, page string) (*paginator.Page[*model.FullPost], error) {
	return s.findPage(ctx, model.PostFilter{}, page)
}

func (s *postService) FindGroupPosts(ctx context.Context, slug string, page string) (*model.Group, *paginator.Page[*model.FullPost], error) {
	group, err := s.groups.FindBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.findPage(ctx, model.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, nil, err
	}

	return group, posts, nil
}

func (s *postService) FindAuthorPosts(ctx context.Context, username string, page string) (*model.Author, *paginator.Page[*model.FullPost], error) {
	author, err := s.authors.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.findPage(ctx, model.PostFilter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, nil, err
	}

	return author, posts, nil
}

func (s *postService) findPage(ctx context.Context, filter model.PostFilter, page string) (*paginator.Page[*model.FullPost], error) {
	count, err := s.repo.Storage.Post.Count(ctx, filter)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count posts: %s", err.Error())
		return nil, ErrInternal
	}

	p := paginator.New(count, POSTS_PER_PAGE)
	number := p.Number(page)

	posts, err := s.repo.Storage.Post.Find(ctx, filter, p.PerPage, p.Offset(number))
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts page(%d): %s", number, err.Error())
		return nil, ErrInternal
	}

	return paginator.NewPage(posts, number, p), nil
}
