package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yatube/post-service/internal/dto"
	"github.com/yatube/post-service/internal/model"
	"github.com/yatube/post-service/internal/repository"
	"github.com/yatube/post-service/internal/repository/redisrepo"
	"go.uber.org/zap"
)

var slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type groupService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newGroupService(logger *zap.Logger, repo *repository.Repository) *groupService {
	return &groupService{
		logger: logger,
		repo:   repo,
	}
}

func (s *groupService) Create(ctx context.Context, input dto.CreateGroupRequest) (*model.Group, error) {
	group := model.Group{
		Title:       strings.TrimSpace(input.Title),
		Slug:        strings.TrimSpace(input.Slug),
		Description: strings.TrimSpace(input.Description),
	}
	if !slugRe.MatchString(group.Slug) {
		return nil, ErrInvalidSlug
	}

	created, err := s.repo.Storage.Group.Create(ctx, group)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrGroupSlugTaken
		}
		s.logger.Sugar().Errorf("failed to create group(%s): %s", group.Slug, err.Error())
		return nil, ErrInternal
	}

	s.logger.Sugar().Infof("group(%s) created", created.Slug)

	return created, nil
}

func (s *groupService) FindByID(ctx context.Context, id int64) (*model.Group, error) {
	group, err := s.repo.Storage.Group.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Sugar().Errorf("failed to find group(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	return group, nil
}

func (s *groupService) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	cachedGroup, err := redisrepo.Get[model.Group](s.repo.Redis.Default, ctx, redisrepo.GroupKey(slug))
	if err == nil {
		return cachedGroup, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get group(%s) from redis: %s", slug, err.Error())
	}

	group, err := s.repo.Storage.Group.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Sugar().Errorf("failed to find group(%s): %s", slug, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.GroupKey(slug), group, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set group(%s) in redis: %s", slug, err.Error())
	}

	return group, nil
}

func (s *groupService) FindAll(ctx context.Context) ([]*model.Group, error) {
	groups, err := s.repo.Storage.Group.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find groups: %s", err.Error())
		return nil, ErrInternal
	}

	return groups, nil
}
