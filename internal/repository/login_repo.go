package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
)

type LoginRepository struct {
	pool *pgxpool.Pool
}

func NewLoginRepository(pool *pgxpool.Pool) *LoginRepository {
	return &LoginRepository{pool: pool}
}

// Create stores an operator account and returns the stored row.
func (r *LoginRepository) Create(ctx context.Context, login *models.NewLogin) (*models.Login, error) {
	query := `
		INSERT INTO sshmgmt.logins (username, password_hash, admin, register_date)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, username, password_hash, admin, register_date
	`

	return r.scanLogin(r.pool.QueryRow(ctx, query, login.Username, login.PasswordHash, login.Admin))
}

// GetByUsername retrieves an operator account by username.
func (r *LoginRepository) GetByUsername(ctx context.Context, username string) (*models.Login, error) {
	query := `SELECT id, username, password_hash, admin, register_date FROM sshmgmt.logins WHERE username = $1`

	return r.scanLogin(r.pool.QueryRow(ctx, query, username))
}

// Exists reports whether an operator account with the given username exists.
func (r *LoginRepository) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM sshmgmt.logins WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check login exists: %w", err)
	}
	return exists, nil
}

func (r *LoginRepository) scanLogin(row pgx.Row) (*models.Login, error) {
	login := &models.Login{}
	err := row.Scan(&login.ID, &login.Username, &login.PasswordHash, &login.Admin, &login.RegisterDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan login: %w", err)
	}
	return login, nil
}
