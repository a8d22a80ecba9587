package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

// Create adds a plan to the catalog and returns the stored row.
func (r *ServiceRepository) Create(ctx context.Context, svc *models.NewService) (*models.Service, error) {
	query := `
		INSERT INTO sshmgmt.services (max_logins, max_traffic, price, available)
		VALUES ($1, $2, $3, COALESCE($4, TRUE))
		RETURNING id, max_logins, max_traffic, price, available
	`

	return r.scanService(r.pool.QueryRow(ctx, query, svc.MaxLogins, svc.MaxTraffic, svc.Price, svc.Available))
}

// GetByID retrieves a plan by ID.
func (r *ServiceRepository) GetByID(ctx context.Context, id int32) (*models.Service, error) {
	query := `SELECT id, max_logins, max_traffic, price, available FROM sshmgmt.services WHERE id = $1`

	return r.scanService(r.pool.QueryRow(ctx, query, id))
}

// Update merges the patch into the stored plan and writes the full row back.
func (r *ServiceRepository) Update(ctx context.Context, id int32, patch *models.UpdateService) (*models.Service, error) {
	svc, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(svc)

	query := `
		UPDATE sshmgmt.services SET max_logins = $1, max_traffic = $2, price = $3, available = $4
		WHERE id = $5
		RETURNING id, max_logins, max_traffic, price, available
	`

	return r.scanService(r.pool.QueryRow(ctx, query, svc.MaxLogins, svc.MaxTraffic, svc.Price, svc.Available, id))
}

// Delete removes a plan; reports whether a row existed.
func (r *ServiceRepository) Delete(ctx context.Context, id int32) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sshmgmt.services WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete service: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List retrieves the whole catalog.
func (r *ServiceRepository) List(ctx context.Context) ([]*models.Service, error) {
	query := `SELECT id, max_logins, max_traffic, price, available FROM sshmgmt.services ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		svc := &models.Service{}
		if err := rows.Scan(&svc.ID, &svc.MaxLogins, &svc.MaxTraffic, &svc.Price, &svc.Available); err != nil {
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) scanService(row pgx.Row) (*models.Service, error) {
	svc := &models.Service{}
	err := row.Scan(&svc.ID, &svc.MaxLogins, &svc.MaxTraffic, &svc.Price, &svc.Available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan service: %w", err)
	}
	return svc, nil
}
