package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/yatube/post-service/internal/dto"
	"github.com/yatube/post-service/internal/model"
	"github.com/yatube/post-service/internal/repository"
	"github.com/yatube/post-service/internal/repository/redisrepo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const MIN_PASSWORD_LENGTH = 8

var usernameRe = regexp.MustCompile(`^[\w.@+-]{1,150}$`)

type authorService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newAuthorService(logger *zap.Logger, repo *repository.Repository) *authorService {
	return &authorService{
		logger: logger,
		repo:   repo,
	}
}

func (s *authorService) SignUp(ctx context.Context, input dto.SignUpRequest) (*model.Author, error) {
	return s.create(ctx, input, model.RoleUser)
}

// CreateAdmin registers a staff account with the admin role.
func (s *authorService) CreateAdmin(ctx context.Context, input dto.SignUpRequest) (*model.Author, error) {
	return s.create(ctx, input, model.RoleAdmin)
}

func (s *authorService) create(ctx context.Context, input dto.SignUpRequest, role string) (*model.Author, error) {
	username := strings.TrimSpace(input.Username)

	var verr ValidationError
	if !usernameRe.MatchString(username) {
		verr.add("username", ErrInvalidUsername)
	}
	if len(input.Password) < MIN_PASSWORD_LENGTH {
		verr.add("password", ErrPasswordTooShort)
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password for user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	author, err := s.repo.Storage.Author.Create(ctx, model.Author{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			verr.add("username", ErrUsernameTaken)
			return nil, &verr
		}
		s.logger.Sugar().Errorf("failed to create user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	s.logger.Sugar().Infof("user(%s) signed up with role %s", author.Username, author.Role)

	return author, nil
}

func (s *authorService) Authenticate(ctx context.Context, username string, password string) (*model.Author, error) {
	author, err := s.repo.Storage.Author.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(author.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return author, nil
}

func (s *authorService) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cachedAuthor, err := redisrepo.Get[model.Author](s.repo.Redis.Default, ctx, redisrepo.AuthorKey(id.String()))
	if err == nil {
		return cachedAuthor, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", id.String(), err.Error())
	}

	author, err := s.repo.Storage.Author.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthorNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.AuthorKey(id.String()), author, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", id.String(), err.Error())
	}

	return author, nil
}

func (s *authorService) FindByUsername(ctx context.Context, username string) (*model.Author, error) {
	author, err := s.repo.Storage.Author.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthorNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	return author, nil
}
