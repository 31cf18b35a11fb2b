package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorline/car-catalog/internal/domain"
)

// ImageRepository defines persistence access for uploaded images.
type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) error
	Update(ctx context.Context, image *domain.Image) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Image, error)
	GetByFullPath(ctx context.Context, fullPath string) (*domain.Image, error)
	List(ctx context.Context) ([]domain.Image, error)
}

type imageRepository struct {
	pool *pgxpool.Pool
}

// NewImageRepository returns a Postgres-backed implementation.
func NewImageRepository(pool *pgxpool.Pool) ImageRepository {
	return &imageRepository{pool: pool}
}

func (r *imageRepository) Create(ctx context.Context, image *domain.Image) error {
	const query = `
        INSERT INTO images (filename, full_path)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, image.Filename, image.FullPath).
		Scan(&image.ID, &image.CreatedAt)
}

func (r *imageRepository) Update(ctx context.Context, image *domain.Image) error {
	const query = `UPDATE images SET filename=$1, full_path=$2 WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, image.Filename, image.FullPath, image.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *imageRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM images WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *imageRepository) GetByID(ctx context.Context, id int64) (*domain.Image, error) {
	return r.fetchSingle(ctx, `SELECT id, filename, full_path, created_at FROM images WHERE id=$1`, id)
}

func (r *imageRepository) GetByFullPath(ctx context.Context, fullPath string) (*domain.Image, error) {
	return r.fetchSingle(ctx, `SELECT id, filename, full_path, created_at FROM images WHERE full_path=$1`, fullPath)
}

func (r *imageRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Image, error) {
	var image domain.Image
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&image.ID,
		&image.Filename,
		&image.FullPath,
		&image.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) List(ctx context.Context) ([]domain.Image, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, filename, full_path, created_at FROM images ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.Image
	for rows.Next() {
		var image domain.Image
		if err := rows.Scan(&image.ID, &image.Filename, &image.FullPath, &image.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}
