package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
)

const sellColumns = `id, user_id, ref_id, service_id, node_id, firstbuy_date, invoice_date,
	username, password, password_hash, status`

type SellRepository struct {
	pool *pgxpool.Pool
}

func NewSellRepository(pool *pgxpool.Pool) *SellRepository {
	return &SellRepository{pool: pool}
}

// Create records a sell and returns the stored row. Verification fields
// (firstbuy date, invoice date, credentials) stay null until the sell is
// verified.
func (r *SellRepository) Create(ctx context.Context, sell *models.NewSell) (*models.Sell, error) {
	query := `
		INSERT INTO sshmgmt.sells (user_id, ref_id, service_id, node_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + sellColumns

	row := r.pool.QueryRow(ctx, query,
		sell.UserID, sell.RefID, sell.ServiceID, sell.NodeID, sell.Status)
	return r.scanSell(row)
}

// GetByID retrieves a sell by ID.
func (r *SellRepository) GetByID(ctx context.Context, id int32) (*models.Sell, error) {
	query := `SELECT ` + sellColumns + ` FROM sshmgmt.sells WHERE id = $1`

	return r.scanSell(r.pool.QueryRow(ctx, query, id))
}

// Update merges the patch into the stored sell and writes the full row back.
func (r *SellRepository) Update(ctx context.Context, id int32, patch *models.UpdateSell) (*models.Sell, error) {
	sell, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(sell)

	query := `
		UPDATE sshmgmt.sells SET
			user_id = $1, ref_id = $2, service_id = $3, node_id = $4,
			firstbuy_date = $5, invoice_date = $6,
			username = $7, password = $8, password_hash = $9, status = $10
		WHERE id = $11
		RETURNING ` + sellColumns

	row := r.pool.QueryRow(ctx, query,
		sell.UserID, sell.RefID, sell.ServiceID, sell.NodeID,
		sell.FirstbuyDate, sell.InvoiceDate,
		sell.Username, sell.Password, sell.PasswordHash, sell.Status, id)
	return r.scanSell(row)
}

// List retrieves every sell record.
func (r *SellRepository) List(ctx context.Context) ([]*models.Sell, error) {
	query := `SELECT ` + sellColumns + ` FROM sshmgmt.sells ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query sells: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListByRef retrieves the sells carrying the given referrer ID.
func (r *SellRepository) ListByRef(ctx context.Context, refID int64) ([]*models.Sell, error) {
	query := `SELECT ` + sellColumns + ` FROM sshmgmt.sells WHERE ref_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, refID)
	if err != nil {
		return nil, fmt.Errorf("query sells by ref: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListByUser retrieves the sells belonging to the given customer.
func (r *SellRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Sell, error) {
	query := `SELECT ` + sellColumns + ` FROM sshmgmt.sells WHERE user_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query sells by user: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *SellRepository) collect(rows pgx.Rows) ([]*models.Sell, error) {
	var sells []*models.Sell
	for rows.Next() {
		sell := &models.Sell{}
		err := rows.Scan(&sell.ID, &sell.UserID, &sell.RefID, &sell.ServiceID, &sell.NodeID,
			&sell.FirstbuyDate, &sell.InvoiceDate,
			&sell.Username, &sell.Password, &sell.PasswordHash, &sell.Status)
		if err != nil {
			return nil, fmt.Errorf("scan sell row: %w", err)
		}
		sells = append(sells, sell)
	}
	return sells, rows.Err()
}

func (r *SellRepository) scanSell(row pgx.Row) (*models.Sell, error) {
	sell := &models.Sell{}
	err := row.Scan(&sell.ID, &sell.UserID, &sell.RefID, &sell.ServiceID, &sell.NodeID,
		&sell.FirstbuyDate, &sell.InvoiceDate,
		&sell.Username, &sell.Password, &sell.PasswordHash, &sell.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan sell: %w", err)
	}
	return sell, nil
}
