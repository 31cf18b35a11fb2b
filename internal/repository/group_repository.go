package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorline/car-catalog/internal/domain"
)

// GroupRepository defines persistence access for groups.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	DeleteByName(ctx context.Context, name string) error
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	GetByName(ctx context.Context, name string) (*domain.Group, error)
	List(ctx context.Context) ([]domain.Group, error)
}

type groupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository returns a Postgres-backed implementation.
func NewGroupRepository(pool *pgxpool.Pool) GroupRepository {
	return &groupRepository{pool: pool}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	const query = `INSERT INTO groups (name) VALUES ($1) RETURNING id`
	return r.pool.QueryRow(ctx, query, group.Name).Scan(&group.ID)
}

func (r *groupRepository) DeleteByName(ctx context.Context, name string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM groups WHERE name=$1`, name)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	var group domain.Group
	if err := r.pool.QueryRow(ctx, `SELECT id, name FROM groups WHERE id=$1`, id).
		Scan(&group.ID, &group.Name); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	var group domain.Group
	if err := r.pool.QueryRow(ctx, `SELECT id, name FROM groups WHERE name=$1`, name).
		Scan(&group.ID, &group.Name); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM groups ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var group domain.Group
		if err := rows.Scan(&group.ID, &group.Name); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}
