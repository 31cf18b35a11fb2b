package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorline/car-catalog/internal/domain"
)

// CarFilter captures catalog search parameters.
type CarFilter struct {
	Brand         *string
	Specification *string
	EngineLiter   *float64
	IsNew         *bool
	MinPrice      *float64
	MaxPrice      *float64
	MinDate       *time.Time
	MaxDate       *time.Time
	SearchTerm    *string
	SortBy        string
	SortDir       string
	Page          int
	PageSize      int
}

// Columns accepted for sorting; anything else falls back to id.
var carSortColumns = map[string]string{
	"id":            "c.id",
	"brand":         "b.name",
	"price":         "c.price",
	"engineLiter":   "c.engine_liter",
	"releaseDate":   "c.release_date",
	"isNew":         "c.is_new",
	"createdAt":     "c.created_at",
	"updatedAt":     "c.updated_at",
	"specification": "c.specification",
}

// CarRepository encapsulates car persistence.
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
	ListPage(ctx context.Context, filter CarFilter) ([]domain.Car, int64, error)
}

type carRepository struct {
	pool *pgxpool.Pool
}

// NewCarRepository instantiates repository.
func NewCarRepository(pool *pgxpool.Pool) CarRepository {
	return &carRepository{pool: pool}
}

const carSelect = `
        SELECT c.id, c.brand_id, c.specification, c.engine_liter, c.is_new, c.price,
               c.release_date, c.image_id, c.created_at, c.updated_at,
               b.name, b.created_at, b.updated_at,
               i.id, i.filename, i.full_path, i.created_at
        FROM cars c
        JOIN brands b ON b.id = c.brand_id
        LEFT JOIN images i ON i.id = c.image_id`

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	const query = `
        INSERT INTO cars (brand_id, specification, engine_liter, is_new, price, release_date, image_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		car.BrandID,
		car.Specification,
		car.EngineLiter,
		car.IsNew,
		car.Price,
		car.ReleaseDate,
		car.ImageID,
	).Scan(&car.ID, &car.CreatedAt, &car.UpdatedAt)
}

func (r *carRepository) Update(ctx context.Context, car *domain.Car) error {
	const query = `
        UPDATE cars SET brand_id=$1, specification=$2, engine_liter=$3, is_new=$4,
            price=$5, release_date=$6, image_id=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		car.BrandID,
		car.Specification,
		car.EngineLiter,
		car.IsNew,
		car.Price,
		car.ReleaseDate,
		car.ImageID,
		car.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *carRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cars WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	rows, err := r.pool.Query(ctx, carSelect+` WHERE c.id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars, err := scanCars(rows)
	if err != nil {
		return nil, err
	}
	if len(cars) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &cars[0], nil
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	rows, err := r.pool.Query(ctx, carSelect+` ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCars(rows)
}

func (r *carRepository) ListPage(ctx context.Context, filter CarFilter) ([]domain.Car, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Brand != nil {
		args = append(args, *filter.Brand)
		clauses = append(clauses, fmt.Sprintf("b.name=$%d", len(args)))
	}
	if filter.Specification != nil {
		args = append(args, "%"+*filter.Specification+"%")
		clauses = append(clauses, fmt.Sprintf("c.specification ILIKE $%d", len(args)))
	}
	if filter.EngineLiter != nil {
		args = append(args, *filter.EngineLiter)
		clauses = append(clauses, fmt.Sprintf("c.engine_liter=$%d", len(args)))
	}
	if filter.IsNew != nil {
		args = append(args, *filter.IsNew)
		clauses = append(clauses, fmt.Sprintf("c.is_new=$%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		clauses = append(clauses, fmt.Sprintf("c.price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		clauses = append(clauses, fmt.Sprintf("c.price <= $%d", len(args)))
	}
	if filter.MinDate != nil {
		args = append(args, *filter.MinDate)
		clauses = append(clauses, fmt.Sprintf("c.release_date >= $%d", len(args)))
	}
	if filter.MaxDate != nil {
		args = append(args, *filter.MaxDate)
		clauses = append(clauses, fmt.Sprintf("c.release_date <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.TrimSpace(*filter.SearchTerm) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(c.specification ILIKE %s OR b.name ILIKE %s)", placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM cars c JOIN brands b ON b.id = c.brand_id WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := carSortColumns[filter.SortBy]
	if !ok {
		sortCol = "c.id"
	}
	sortDir := "ASC"
	if strings.EqualFold(filter.SortDir, "desc") {
		sortDir = "DESC"
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		carSelect, where, sortCol, sortDir, pageSize, pageOffset(filter.Page, pageSize))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	cars, err := scanCars(rows)
	if err != nil {
		return nil, 0, err
	}
	return cars, total, nil
}

// pageOffset translates a 1-based page number into a row offset. Page
// values below 1 read the first page.
func pageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

func scanCars(rows pgx.Rows) ([]domain.Car, error) {
	var result []domain.Car
	for rows.Next() {
		var (
			car        domain.Car
			brand      domain.Brand
			imageID    *int64
			imageName  *string
			imagePath  *string
			imageStamp *time.Time
		)
		if err := rows.Scan(
			&car.ID,
			&car.BrandID,
			&car.Specification,
			&car.EngineLiter,
			&car.IsNew,
			&car.Price,
			&car.ReleaseDate,
			&car.ImageID,
			&car.CreatedAt,
			&car.UpdatedAt,
			&brand.Name,
			&brand.CreatedAt,
			&brand.UpdatedAt,
			&imageID,
			&imageName,
			&imagePath,
			&imageStamp,
		); err != nil {
			return nil, err
		}
		brand.ID = car.BrandID
		car.Brand = &brand
		if imageID != nil {
			car.Image = &domain.Image{
				ID:       *imageID,
				Filename: *imageName,
				FullPath: *imagePath,
			}
			if imageStamp != nil {
				car.Image.CreatedAt = *imageStamp
			}
		}
		result = append(result, car)
	}
	return result, rows.Err()
}
