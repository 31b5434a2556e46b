package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/yatube/post-service/internal/model"
	"github.com/yatube/post-service/internal/repository"
)

const selectFullPost = `SELECT
	p.id, p.author_id, p.group_id, p.text, p.created_at, a.username, g.title, g.slug, g.description
	FROM posts p
	JOIN authors a ON p.author_id = a.id
	LEFT JOIN post_groups g ON p.group_id = g.id`

type postRepo struct {
	db *sql.DB
}

func newPostRepo(db *sql.DB) *postRepo {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(
		ctx,
		"INSERT INTO posts(author_id, group_id, text, created_at) VALUES(?, ?, ?, ?)",
		post.AuthorID.String(),
		post.GroupID,
		post.Text,
		post.CreatedAt,
	)
	if err != nil {
		return nil, wrapErr(err, "inserting post failed")
	}

	post.ID, err = res.LastInsertId()
	if err != nil {
		return nil, wrapErr(err, "reading post id failed")
	}

	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post) error {
	res, err := r.db.ExecContext(
		ctx,
		"UPDATE posts SET text = ?, group_id = ? WHERE id = ?",
		post.Text,
		post.GroupID,
		post.ID,
	)
	if err != nil {
		return wrapErr(err, "updating post failed")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return wrapErr(err, "reading affected rows failed")
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	post, err := scanFullPost(r.db.QueryRowContext(ctx, selectFullPost+" WHERE p.id = ?", id))
	if err != nil {
		return nil, wrapErr(err, "selecting post failed")
	}

	return post, nil
}

func (r *postRepo) Count(ctx context.Context, filter model.PostFilter) (int, error) {
	where, args := whereClause(filter)

	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts p"+where, args...).Scan(&count); err != nil {
		return 0, wrapErr(err, "counting posts failed")
	}

	return count, nil
}

func (r *postRepo) Find(ctx context.Context, filter model.PostFilter, limit int, offset int) ([]*model.FullPost, error) {
	where, args := whereClause(filter)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(
		ctx,
		selectFullPost+where+" ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?",
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
		conds = append(conds, "p.group_id = ?")
		args = append(args, *filter.GroupID)
	}
	if filter.AuthorID != nil {
		conds = append(conds, "p.author_id = ?")
		args = append(args, filter.AuthorID.String())
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanFullPost(row scanner) (*model.FullPost, error) {
	var (
		post        model.FullPost
		title       sql.NullString
		slug        sql.NullString
		description sql.NullString
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
	if post.Post.GroupID != nil && slug.Valid {
		post.Group = &model.Group{
			ID:          *post.Post.GroupID,
			Title:       title.String,
			Slug:        slug.String,
			Description: description.String,
		}
	}

	return &post, nil
}
