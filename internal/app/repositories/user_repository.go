package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/apperrors"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/dberrors"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Crear inserts a new user.
func (r *UserRepository) Crear(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO usuarios (email, password, nombre, apellido, rol, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, created_at, updated_at
	`, user.Email, user.Password, user.Nombre, user.Apellido, user.Rol, true, time.Now()).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "usuarios_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	user.IsActive = true
	return nil
}

// ObtenerPorEmail retrieves a user by email.
func (r *UserRepository) ObtenerPorEmail(ctx context.Context, email string) (*models.User, error) {
	return r.obtener(ctx, `WHERE email = $1`, email)
}

// ObtenerPorID retrieves a user by id.
func (r *UserRepository) ObtenerPorID(ctx context.Context, id int64) (*models.User, error) {
	return r.obtener(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) obtener(ctx context.Context, where string, arg any) (*models.User, error) {
	sql := `
		SELECT id, email, password, nombre, apellido, rol, is_active, created_at, updated_at, last_login_at
		FROM usuarios ` + where

	var user models.User
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Nombre,
		&user.Apellido,
		&user.Rol,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// RegistrarLogin stamps the user's last login time.
func (r *UserRepository) RegistrarLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE usuarios SET last_login_at = $1, updated_at = $1 WHERE id = $2
	`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error recording login: %w", err)
	}
	return nil
}
