package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorline/car-catalog/internal/domain"
)

// BrandRepository defines persistence access for brands.
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Brand, error)
	GetByName(ctx context.Context, name string) (*domain.Brand, error)
	List(ctx context.Context) ([]domain.Brand, error)
}

type brandRepository struct {
	pool *pgxpool.Pool
}

// NewBrandRepository returns a Postgres-backed implementation.
func NewBrandRepository(pool *pgxpool.Pool) BrandRepository {
	return &brandRepository{pool: pool}
}

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	const query = `
        INSERT INTO brands (name)
        VALUES ($1)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query, brand.Name).
		Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)
}

func (r *brandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	const query = `UPDATE brands SET name=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, brand.Name, brand.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *brandRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *brandRepository) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	return r.fetchSingle(ctx, `SELECT id, name, created_at, updated_at FROM brands WHERE id=$1`, id)
}

func (r *brandRepository) GetByName(ctx context.Context, name string) (*domain.Brand, error) {
	return r.fetchSingle(ctx, `SELECT id, name, created_at, updated_at FROM brands WHERE name=$1`, name)
}

func (r *brandRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Brand, error) {
	var brand domain.Brand
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&brand.ID,
		&brand.Name,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at, updated_at FROM brands ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []domain.Brand
	for rows.Next() {
		var brand domain.Brand
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.CreatedAt, &brand.UpdatedAt); err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	return brands, rows.Err()
}
