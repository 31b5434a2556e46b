package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yatube/post-service/internal/model"
)

type groupRepo struct {
	db *pgxpool.Pool
}

func newGroupRepo(db *pgxpool.Pool) *groupRepo {
	return &groupRepo{
		db: db,
	}
}

func (r *groupRepo) Create(ctx context.Context, group model.Group) (*model.Group, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO post_groups(title, slug, description) VALUES($1, $2, $3) RETURNING id",
		group.Title,
		group.Slug,
		group.Description,
	).Scan(&group.ID); err != nil {
		return nil, wrapErr(err, "inserting group failed")
	}

	return &group, nil
}

func (r *groupRepo) FindByID(ctx context.Context, id int64) (*model.Group, error) {
	var group model.Group
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, title, slug, description FROM post_groups WHERE id = $1",
		id,
	).Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
		return nil, wrapErr(err, "selecting group by id failed")
	}

	return &group, nil
}

func (r *groupRepo) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var group model.Group
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, title, slug, description FROM post_groups WHERE slug = $1",
		slug,
	).Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
		return nil, wrapErr(err, "selecting group by slug failed")
	}

	return &group, nil
}

func (r *groupRepo) FindAll(ctx context.Context) ([]*model.Group, error) {
	rows, err := r.db.Query(ctx, "SELECT id, title, slug, description FROM post_groups ORDER BY title, id")
	if err != nil {
		return nil, wrapErr(err, "selecting groups failed")
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		var group model.Group
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
			return nil, wrapErr(err, "scanning group failed")
		}

		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "iterating groups failed")
	}

	return groups, nil
}
