package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create records a customer and returns the stored row. Customer IDs come
// from the reseller platform, so the caller supplies them.
func (r *UserRepository) Create(ctx context.Context, user *models.NewUser) (*models.User, error) {
	query := `
		INSERT INTO sshmgmt.users (id, ref_id, register_date)
		VALUES ($1, $2, NOW())
		RETURNING id, ref_id, register_date
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, user.ID, user.RefID))
}

// GetByID retrieves a customer by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, ref_id, register_date FROM sshmgmt.users WHERE id = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// Exists reports whether a customer row with the given ID exists.
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM sshmgmt.users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// List retrieves every customer.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, ref_id, register_date FROM sshmgmt.users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// Refs retrieves the customers referred by the given customer.
func (r *UserRepository) Refs(ctx context.Context, refID int64) ([]*models.User, error) {
	query := `SELECT id, ref_id, register_date FROM sshmgmt.users WHERE ref_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, refID)
	if err != nil {
		return nil, fmt.Errorf("query user refs: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *UserRepository) collect(rows pgx.Rows) ([]*models.User, error) {
	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.RefID, &user.RegisterDate); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.RefID, &user.RegisterDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}
