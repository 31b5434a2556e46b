package service_test

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/yatube/post-service/internal/dto"
	"github.com/yatube/post-service/internal/model"
	"github.com/yatube/post-service/internal/rabbitmq"
	"github.com/yatube/post-service/internal/repository"
	"github.com/yatube/post-service/internal/repository/redisrepo"
	"github.com/yatube/post-service/internal/repository/sqlite"
	"github.com/yatube/post-service/internal/service"
	"go.uber.org/zap"
)

type publishedMsg struct {
	queue string
	value interface{}
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []publishedMsg
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, queue string, v interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, publishedMsg{queue: queue, value: v})
	return nil
}

type testEnv struct {
	services  *service.Service
	storage   *repository.Storage
	redis     *miniredis.Miniredis
	publisher *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	storage := sqlite.New(db)
	repo := repository.New(storage, redisrepo.New(redis.NewClient(&redis.Options{Addr: mr.Addr()})))
	publisher := &recordingPublisher{}

	return &testEnv{
		services:  service.New(zap.NewNop(), repo, publisher),
		storage:   storage,
		redis:     mr,
		publisher: publisher,
	}
}

func (e *testEnv) signUp(t *testing.T) *model.Author {
	author, err := e.services.Author.SignUp(context.Background(), dto.SignUpRequest{
		Username: gofakeit.Username(),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	})
	require.NoError(t, err)
	return author
}

func (e *testEnv) createGroup(t *testing.T, slug string) *model.Group {
	group, err := e.services.Group.Create(context.Background(), dto.CreateGroupRequest{
		Title:       gofakeit.Word(),
		Slug:        slug,
		Description: gofakeit.Sentence(5),
	})
	require.NoError(t, err)
	return group
}

func groupValue(group *model.Group) string {
	return strconv.FormatInt(group.ID, 10)
}

func TestSignUpAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author, err := env.services.Author.SignUp(ctx, dto.SignUpRequest{Username: "leo", Password: "long-password"})
	require.NoError(t, err)
	require.Equal(t, model.RoleUser, author.Role)
	require.NotEqual(t, "long-password", author.PasswordHash)

	authenticated, err := env.services.Author.Authenticate(ctx, "leo", "long-password")
	require.NoError(t, err)
	require.Equal(t, author.ID, authenticated.ID)

	_, err = env.services.Author.Authenticate(ctx, "leo", "wrong-password")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = env.services.Author.Authenticate(ctx, "nobody", "long-password")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = env.services.Author.SignUp(ctx, dto.SignUpRequest{Username: "leo", Password: "long-password"})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	require.ErrorIs(t, verr.Fields["username"], service.ErrUsernameTaken)

	_, err = env.services.Author.SignUp(ctx, dto.SignUpRequest{Username: "bad name", Password: "short"})
	require.ErrorAs(t, err, &verr)
	require.ErrorIs(t, verr.Fields["username"], service.ErrInvalidUsername)
	require.ErrorIs(t, verr.Fields["password"], service.ErrPasswordTooShort)
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	admin, err := env.services.Author.CreateAdmin(ctx, dto.SignUpRequest{Username: "root", Password: "long-password"})
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, admin.Role)
	require.True(t, admin.IsStaff())

	authenticated, err := env.services.Author.Authenticate(ctx, "root", "long-password")
	require.NoError(t, err)
	require.True(t, authenticated.IsStaff())
}

func TestAuthorFindByIDIsCached(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.signUp(t)

	found, err := env.services.Author.FindByID(ctx, author.ID)
	require.NoError(t, err)
	require.Equal(t, author.Username, found.Username)
	require.True(t, env.redis.Exists(redisrepo.AuthorKey(author.ID.String())))

	cached, err := env.services.Author.FindByID(ctx, author.ID)
	require.NoError(t, err)
	require.Equal(t, author.ID, cached.ID)
	require.Empty(t, cached.PasswordHash)
}

func TestGroupCreate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	group := env.createGroup(t, "cats")

	found, err := env.services.Group.FindBySlug(ctx, "cats")
	require.NoError(t, err)
	require.Equal(t, group.ID, found.ID)

	_, err = env.services.Group.Create(ctx, dto.CreateGroupRequest{Title: "Cats", Slug: "cats"})
	require.ErrorIs(t, err, service.ErrGroupSlugTaken)

	_, err = env.services.Group.Create(ctx, dto.CreateGroupRequest{Title: "Bad", Slug: "bad slug"})
	require.ErrorIs(t, err, service.ErrInvalidSlug)

	_, err = env.services.Group.FindBySlug(ctx, "dogs")
	require.ErrorIs(t, err, service.ErrGroupNotFound)
}

func TestPostCreate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.signUp(t)
	group := env.createGroup(t, "cats")

	post, err := env.services.Post.Create(ctx, author.ID, dto.PostRequest{Text: "  hello  ", Group: groupValue(group)})
	require.NoError(t, err)
	require.Equal(t, "hello", post.Text)
	require.Equal(t, group.ID, *post.GroupID)

	require.Len(t, env.publisher.msgs, 1)
	require.Equal(t, rabbitmq.POST_CREATED_QUEUE, env.publisher.msgs[0].queue)
	msg := env.publisher.msgs[0].value.(dto.MQPostCreatedMsg)
	require.Equal(t, post.ID, msg.PostID)
	require.Equal(t, author.ID, msg.UserID)

	ungrouped, err := env.services.Post.Create(ctx, author.ID, dto.PostRequest{Text: "no group"})
	require.NoError(t, err)
	require.Nil(t, ungrouped.GroupID)
}

func TestPostCreateValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.signUp(t)

	tests := []struct {
		name   string
		input  dto.PostRequest
		fields map[string]error
	}{
		{
			name:   "blank text",
			input:  dto.PostRequest{Text: "   "},
			fields: map[string]error{"text": service.ErrEmptyText},
		},
		{
			name:   "unknown group",
			input:  dto.PostRequest{Text: "hi", Group: "100500"},
			fields: map[string]error{"group": service.ErrUnknownGroup},
		},
		{
			name:   "malformed group",
			input:  dto.PostRequest{Text: "", Group: "abc"},
			fields: map[string]error{"text": service.ErrEmptyText, "group": service.ErrUnknownGroup},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.services.Post.Create(ctx, author.ID, tt.input)
			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, len(tt.fields))
			for field, want := range tt.fields {
				require.ErrorIs(t, verr.Fields[field], want)
			}
		})
	}
	require.Empty(t, env.publisher.msgs)
}

func TestPostUpdate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.signUp(t)
	stranger := env.signUp(t)
	group := env.createGroup(t, "cats")

	post, err := env.services.Post.Create(ctx, author.ID, dto.PostRequest{Text: "before"})
	require.NoError(t, err)

	// warm the cache so the update has to invalidate it
	_, err = env.services.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.True(t, env.redis.Exists(redisrepo.PostKey(post.ID)))

	_, err = env.services.Post.Update(ctx, post.ID, stranger.ID, dto.PostRequest{Text: "hijack"})
	require.ErrorIs(t, err, service.ErrNotPostAuthor)

	_, err = env.services.Post.Update(ctx, 100500, author.ID, dto.PostRequest{Text: "x"})
	require.ErrorIs(t, err, service.ErrPostNotFound)

	updated, err := env.services.Post.Update(ctx, post.ID, author.ID, dto.PostRequest{Text: "after", Group: groupValue(group)})
	require.NoError(t, err)
	require.Equal(t, "after", updated.Text)
	require.False(t, env.redis.Exists(redisrepo.PostKey(post.ID)))

	full, err := env.services.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "after", full.Post.Text)
	require.Equal(t, "cats", full.Group.Slug)
	require.Equal(t, author.Username, full.Author.Username)
}

func TestPostPagination(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.signUp(t)
	group := env.createGroup(t, "slug")

	for i := 0; i < 13; i++ {
		_, err := env.services.Post.Create(ctx, author.ID, dto.PostRequest{Text: gofakeit.Sentence(6), Group: groupValue(group)})
		require.NoError(t, err)
	}

	tests := []struct {
		page string
		want int
	}{
		{"", 10},
		{"1", 10},
		{"2", 3},
		{"3", 10},
		{"nope", 10},
	}
	for _, tt := range tests {
		t.Run("page="+tt.page, func(t *testing.T) {
			all, err := env.services.Post.FindAll(ctx, tt.page)
			require.NoError(t, err)
			require.Equal(t, tt.want, all.Len())

			_, byGroup, err := env.services.Post.FindGroupPosts(ctx, group.Slug, tt.page)
			require.NoError(t, err)
			require.Equal(t, tt.want, byGroup.Len())

			_, byAuthor, err := env.services.Post.FindAuthorPosts(ctx, author.Username, tt.page)
			require.NoError(t, err)
			require.Equal(t, tt.want, byAuthor.Len())
		})
	}

	first, err := env.services.Post.FindAll(ctx, "1")
	require.NoError(t, err)
	second, err := env.services.Post.FindAll(ctx, "2")
	require.NoError(t, err)
	require.Greater(t, first.Items[0].Post.ID, first.Items[9].Post.ID)
	require.Greater(t, first.Items[9].Post.ID, second.Items[0].Post.ID)
	require.Equal(t, 13, first.Count)
	require.Equal(t, 2, first.NumPages)
}

func TestFindGroupPostsSeparatesGroups(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.signUp(t)
	first := env.createGroup(t, "first")
	second := env.createGroup(t, "second")

	inFirst, err := env.services.Post.Create(ctx, author.ID, dto.PostRequest{Text: "first post", Group: groupValue(first)})
	require.NoError(t, err)
	inSecond, err := env.services.Post.Create(ctx, author.ID, dto.PostRequest{Text: "second post", Group: groupValue(second)})
	require.NoError(t, err)

	group, page, err := env.services.Post.FindGroupPosts(ctx, "first", "")
	require.NoError(t, err)
	require.Equal(t, first.ID, group.ID)
	require.Len(t, page.Items, 1)
	require.Equal(t, inFirst.ID, page.Items[0].Post.ID)
	require.NotEqual(t, inSecond.ID, page.Items[0].Post.ID)

	_, _, err = env.services.Post.FindGroupPosts(ctx, "missing", "")
	require.ErrorIs(t, err, service.ErrGroupNotFound)

	_, _, err = env.services.Post.FindAuthorPosts(ctx, "missing", "")
	require.ErrorIs(t, err, service.ErrAuthorNotFound)
}

func TestServiceWithoutCacheOrBroker(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	services := service.New(zap.NewNop(), repository.New(sqlite.New(db), redisrepo.NewNoop()), nil)

	author, err := services.Author.SignUp(ctx, dto.SignUpRequest{Username: "solo", Password: "long-password"})
	require.NoError(t, err)

	post, err := services.Post.Create(ctx, author.ID, dto.PostRequest{Text: "hello"})
	require.NoError(t, err)

	found, err := services.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", found.Post.Text)
}
