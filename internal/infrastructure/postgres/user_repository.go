package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-suministros/internal/domain"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
	"github.com/jhoicas/Inventario-suministros/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userSelect = `
		SELECT id, username, password_hash, role, full_name, active, created_at, updated_at
		FROM users`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.FullName, &u.Active,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, role, full_name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.Role, u.FullName, u.Active, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameExists
		}
		return mapStoreError(fmt.Errorf("insert user: %w", err))
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, userSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapStoreError(fmt.Errorf("get user by id: %w", err))
	}
	return u, nil
}

// GetByUsername obtiene un usuario por nombre de usuario (sin distinguir mayúsculas).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, userSelect+` WHERE lower(username) = lower($1)`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapStoreError(fmt.Errorf("get user by username: %w", err))
	}
	return u, nil
}

// Upsert crea el usuario o, si el username existe, actualiza password, rol y nombre y lo reactiva.
// Deja en u.ID el id persistido.
func (r *UserRepo) Upsert(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, role, full_name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role, full_name = EXCLUDED.full_name,
		    active = TRUE, updated_at = EXCLUDED.updated_at
		RETURNING id`
	if err := r.q.QueryRow(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.Role, u.FullName, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID); err != nil {
		return mapStoreError(fmt.Errorf("upsert user: %w", err))
	}
	u.Active = true
	return nil
}

// List lista usuarios con paginación.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, userSelect+` ORDER BY username LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, mapStoreError(fmt.Errorf("list users: %w", err))
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapStoreError(fmt.Errorf("scan user: %w", err))
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
