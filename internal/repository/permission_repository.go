package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorline/car-catalog/internal/domain"
)

// PermissionRepository defines persistence access for permissions.
type PermissionRepository interface {
	Create(ctx context.Context, permission *domain.Permission) error
	DeleteByName(ctx context.Context, name string) error
	GetByID(ctx context.Context, id int64) (*domain.Permission, error)
	GetByName(ctx context.Context, name string) (*domain.Permission, error)
	List(ctx context.Context) ([]domain.Permission, error)
}

type permissionRepository struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository returns a Postgres-backed implementation.
func NewPermissionRepository(pool *pgxpool.Pool) PermissionRepository {
	return &permissionRepository{pool: pool}
}

func (r *permissionRepository) Create(ctx context.Context, permission *domain.Permission) error {
	const query = `INSERT INTO permissions (name) VALUES ($1) RETURNING id`
	return r.pool.QueryRow(ctx, query, permission.Name).Scan(&permission.ID)
}

func (r *permissionRepository) DeleteByName(ctx context.Context, name string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM permissions WHERE name=$1`, name)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *permissionRepository) GetByID(ctx context.Context, id int64) (*domain.Permission, error) {
	var permission domain.Permission
	if err := r.pool.QueryRow(ctx, `SELECT id, name FROM permissions WHERE id=$1`, id).
		Scan(&permission.ID, &permission.Name); err != nil {
		return nil, err
	}
	return &permission, nil
}

func (r *permissionRepository) GetByName(ctx context.Context, name string) (*domain.Permission, error) {
	var permission domain.Permission
	if err := r.pool.QueryRow(ctx, `SELECT id, name FROM permissions WHERE name=$1`, name).
		Scan(&permission.ID, &permission.Name); err != nil {
		return nil, err
	}
	return &permission, nil
}

func (r *permissionRepository) List(ctx context.Context) ([]domain.Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM permissions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []domain.Permission
	for rows.Next() {
		var permission domain.Permission
		if err := rows.Scan(&permission.ID, &permission.Name); err != nil {
			return nil, err
		}
		permissions = append(permissions, permission)
	}
	return permissions, rows.Err()
}
