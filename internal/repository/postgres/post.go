package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yatube/post-service/internal/model"
	"github.com/yatube/post-service/internal/repository"
)

const selectFullPost = `SELECT
	p.id, p.author_id, p.group_id, p.text, p.created_at, a.username, g.title, g.slug, g.description
	FROM posts p
	JOIN authors a ON p.author_id = a.id
	LEFT JOIN post_groups g ON p.group_id = g.id`

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) *postRepo {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.CreatedAt = time.Now().UTC()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(author_id, group_id, text, created_at) VALUES($1, $2, $3, $4) RETURNING id",
		post.AuthorID,
		post.GroupID,
		post.Text,
		post.CreatedAt,
	).Scan(&post.ID); err != nil {
		return nil, wrapErr(err, "inserting post failed")
	}

	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post) error {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE posts SET text = $1, group_id = $2 WHERE id = $3",
		post.Text,
		post.GroupID,
		post.ID,
	)
	if err != nil {
		return wrapErr(err, "updating post failed")
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	post, err := scanFullPost(r.db.QueryRow(ctx, selectFullPost+" WHERE p.id = $1", id))
	if err != nil {
		return nil, wrapErr(err, "selecting post failed")
	}

	return post, nil
}

func (r *postRepo) Count(ctx context.Context, filter model.PostFilter) (int, error) {
	where, args := whereClause(filter)

	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts p"+where, args...).Scan(&count); err != nil {
		return 0, wrapErr(err, "counting posts failed")
	}

	return count, nil
}

func (r *postRepo) Find(ctx context.Context, filter model.PostFilter, limit int, offset int) ([]*model.FullPost, error) {
	where, args := whereClause(filter)
	n := len(args)
	args = append(args, limit, offset)

	rows, err := r.db.Query(
		ctx,
		selectFullPost+where+
			" ORDER BY p.created_at DESC, p.id DESC"+
			" LIMIT $"+strconv.Itoa(n+1)+" OFFSET $"+strconv.Itoa(n+2),
		args...,
	)
	if err != nil {
		return nil, wrapErr(err, "selecting posts failed")
	}
	defer rows.Close()

	var posts []*model.FullPost
	for rows.Next() {
		post, err := scanFullPost(rows)
		if err != nil {
			return nil, wrapErr(err, "scanning post failed")
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "iterating posts failed")
	}

	return posts, nil
}

func whereClause(filter model.PostFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		conds = append(conds, "p.group_id = $"+strconv.Itoa(len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conds = append(conds, "p.author_id = $"+strconv.Itoa(len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanFullPost(row pgx.Row) (*model.FullPost, error) {
	var (
		post        model.FullPost
		title       *string
		slug        *string
		description *string
	)
	if err := row.Scan(
		&post.Post.ID,
		&post.Post.AuthorID,
		&post.Post.GroupID,
		&post.Post.Text,
		&post.Post.CreatedAt,
		&post.Author.Username,
		&title,
		&slug,
		&description,
	); err != nil {
		return nil, err
	}

	post.Author.ID = post.Post.AuthorID
	if post.Post.GroupID != nil && slug != nil {
		post.Group = &model.Group{
			ID:          *post.Post.GroupID,
			Title:       *title,
			Slug:        *slug,
			Description: *description,
		}
	}

	return &post, nil
}
