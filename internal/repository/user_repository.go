package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorline/car-catalog/internal/domain"
)

// UserRepository defines persistence access for users. Reads hydrate
// role, permission and group memberships so callers always see the full
// identity.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	DeleteByUsername(ctx context.Context, username string) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	AddRole(ctx context.Context, userID, roleID int64) error
	RemoveRole(ctx context.Context, userID, roleID int64) error
	AddGroup(ctx context.Context, userID, groupID int64) error
	RemoveGroup(ctx context.Context, userID, groupID int64) error
}

type userRepository struct {
	pool  *pgxpool.Pool
	roles RoleRepository
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool, roles: NewRoleRepository(pool)}
}

const userColumns = `id, username, password_hash, email, name, surname, phone_number,
        password_expires_at, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, password_hash, email, name, surname, phone_number, password_expires_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.Name,
		user.Surname,
		user.PhoneNumber,
		user.PasswordExpiresAt,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) DeleteByUsername(ctx context.Context, username string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username=$1`, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.Name,
		&user.Surname,
		&user.PhoneNumber,
		&user.PasswordExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.Email,
			&user.Name,
			&user.Surname,
			&user.PhoneNumber,
			&user.PasswordExpiresAt,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		if err := r.hydrate(ctx, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (r *userRepository) AddRole(ctx context.Context, userID, roleID int64) error {
	const query = `
        INSERT INTO user_roles (user_id, role_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING`
	_, err := r.pool.Exec(ctx, query, userID, roleID)
	return err
}

func (r *userRepository) RemoveRole(ctx context.Context, userID, roleID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_roles WHERE user_id=$1 AND role_id=$2`, userID, roleID)
	return err
}

func (r *userRepository) AddGroup(ctx context.Context, userID, groupID int64) error {
	const query = `
        INSERT INTO user_groups (user_id, group_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING`
	_, err := r.pool.Exec(ctx, query, userID, groupID)
	return err
}

func (r *userRepository) RemoveGroup(ctx context.Context, userID, groupID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_groups WHERE user_id=$1 AND group_id=$2`, userID, groupID)
	return err
}

func (r *userRepository) hydrate(ctx context.Context, user *domain.User) error {
	roleRows, err := r.pool.Query(ctx, `
        SELECT ro.id, ro.name
        FROM roles ro
        JOIN user_roles ur ON ur.role_id = ro.id
        WHERE ur.user_id=$1
        ORDER BY ro.name`, user.ID)
	if err != nil {
		return err
	}
	defer roleRows.Close()

	var roles []domain.Role
	for roleRows.Next() {
		var role domain.Role
		if err := roleRows.Scan(&role.ID, &role.Name); err != nil {
			return err
		}
		roles = append(roles, role)
	}
	if err := roleRows.Err(); err != nil {
		return err
	}
	roleRows.Close()

	for i := range roles {
		full, err := r.roles.GetByID(ctx, roles[i].ID)
		if err != nil {
			return err
		}
		roles[i].Permissions = full.Permissions
	}
	user.Roles = roles

	groupRows, err := r.pool.Query(ctx, `
        SELECT g.id, g.name
        FROM groups g
        JOIN user_groups ug ON ug.group_id = g.id
        WHERE ug.user_id=$1
        ORDER BY g.name`, user.ID)
	if err != nil {
		return err
	}
	defer groupRows.Close()

	var groups []domain.Group
	for groupRows.Next() {
		var group domain.Group
		if err := groupRows.Scan(&group.ID, &group.Name); err != nil {
			return err
		}
		groups = append(groups, group)
	}
	user.Groups = groups
	return groupRows.Err()
}
