package sqlite_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yatube/post-service/internal/model"
	"github.com/yatube/post-service/internal/repository"
	"github.com/yatube/post-service/internal/repository/sqlite"
)

func newTestStorage(t *testing.T) *repository.Storage {
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlite.New(db)
}

func createAuthor(t *testing.T, storage *repository.Storage) *model.Author {
	author, err := storage.Author.Create(context.Background(), model.Author{
		Username:     gofakeit.Username(),
		PasswordHash: "hash",
		Role:         model.RoleUser,
	})
	require.NoError(t, err)
	return author
}

func TestAuthor(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	author := createAuthor(t, storage)
	require.NotEqual(t, uuid.Nil, author.ID)

	byID, err := storage.Author.FindByID(ctx, author.ID)
	require.NoError(t, err)
	require.Equal(t, author.Username, byID.Username)
	require.Equal(t, "hash", byID.PasswordHash)

	byName, err := storage.Author.FindByUsername(ctx, author.Username)
	require.NoError(t, err)
	require.Equal(t, author.ID, byName.ID)

	_, err = storage.Author.Create(ctx, model.Author{Username: author.Username, PasswordHash: "x", Role: model.RoleUser})
	require.ErrorIs(t, err, repository.ErrAlreadyExists)

	_, err = storage.Author.FindByUsername(ctx, "nobody")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGroup(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	second, err := storage.Group.Create(ctx, model.Group{Title: "Second", Slug: "second", Description: "two"})
	require.NoError(t, err)
	first, err := storage.Group.Create(ctx, model.Group{Title: "First", Slug: "first", Description: "one"})
	require.NoError(t, err)

	_, err = storage.Group.Create(ctx, model.Group{Title: "Dup", Slug: "first"})
	require.ErrorIs(t, err, repository.ErrAlreadyExists)

	bySlug, err := storage.Group.FindBySlug(ctx, "second")
	require.NoError(t, err)
	require.Equal(t, *second, *bySlug)

	byID, err := storage.Group.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "one", byID.Description)

	all, err := storage.Group.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "first", all[0].Slug)

	_, err = storage.Group.FindBySlug(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostFindFilters(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	author := createAuthor(t, storage)
	other := createAuthor(t, storage)
	group, err := storage.Group.Create(ctx, model.Group{Title: "Group", Slug: "group"})
	require.NoError(t, err)

	var ids []int64
	for i := 0; i < 13; i++ {
		post, err := storage.Post.Create(ctx, model.Post{AuthorID: author.ID, GroupID: &group.ID, Text: gofakeit.Sentence(4)})
		require.NoError(t, err)
		ids = append(ids, post.ID)
	}
	_, err = storage.Post.Create(ctx, model.Post{AuthorID: other.ID, Text: "no group"})
	require.NoError(t, err)

	count, err := storage.Post.Count(ctx, model.PostFilter{})
	require.NoError(t, err)
	require.Equal(t, 14, count)

	count, err = storage.Post.Count(ctx, model.PostFilter{GroupID: &group.ID})
	require.NoError(t, err)
	require.Equal(t, 13, count)

	count, err = storage.Post.Count(ctx, model.PostFilter{AuthorID: &other.ID})
	require.NoError(t, err)
	require.Equal(t, 1, count)

	firstPage, err := storage.Post.Find(ctx, model.PostFilter{GroupID: &group.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, firstPage, 10)
	require.Equal(t, ids[12], firstPage[0].Post.ID)
	require.Equal(t, author.Username, firstPage[0].Author.Username)
	require.Equal(t, "group", firstPage[0].Group.Slug)

	secondPage, err := storage.Post.Find(ctx, model.PostFilter{AuthorID: &author.ID}, 10, 10)
	require.NoError(t, err)
	require.Len(t, secondPage, 3)
	require.Equal(t, ids[0], secondPage[2].Post.ID)

	ungrouped, err := storage.Post.Find(ctx, model.PostFilter{AuthorID: &other.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, ungrouped, 1)
	require.Nil(t, ungrouped[0].Group)
	require.Nil(t, ungrouped[0].Post.GroupID)
}

func TestPostUpdate(t *testing.T) {
	ctx := context.Background()
	storage := newTestStorage(t)

	author := createAuthor(t, storage)
	group, err := storage.Group.Create(ctx, model.Group{Title: "Group", Slug: "group"})
	require.NoError(t, err)

	post, err := storage.Post.Create(ctx, model.Post{AuthorID: author.ID, Text: "before"})
	require.NoError(t, err)

	post.Text = "after"
	post.GroupID = &group.ID
	require.NoError(t, storage.Post.Update(ctx, *post))

	full, err := storage.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "after", full.Post.Text)
	require.Equal(t, group.ID, full.Group.ID)
	require.Equal(t, author.ID, full.Author.ID)

	post.ID = 100500
	require.ErrorIs(t, storage.Post.Update(ctx, *post), repository.ErrNotFound)

	_, err = storage.Post.FindByID(ctx, 100500)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
