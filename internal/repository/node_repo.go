package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
)

// ErrNotFound is the store-level not-found sentinel; callers classify it
// once at the HTTP boundary.
var ErrNotFound = errors.New("not found")

type NodeRepository struct {
	pool *pgxpool.Pool
}

func NewNodeRepository(pool *pgxpool.Pool) *NodeRepository {
	return &NodeRepository{pool: pool}
}

// Create registers a node and returns the stored row.
func (r *NodeRepository) Create(ctx context.Context, node *models.NewNode) (*models.Node, error) {
	query := `
		INSERT INTO sshmgmt.nodes (address, token, status)
		VALUES ($1, $2, $3)
		RETURNING id, address, token, status
	`

	return r.scanNode(r.pool.QueryRow(ctx, query, node.Address, node.Token, node.Status))
}

// GetByID retrieves a node by ID.
func (r *NodeRepository) GetByID(ctx context.Context, id int32) (*models.Node, error) {
	query := `SELECT id, address, token, status FROM sshmgmt.nodes WHERE id = $1`

	return r.scanNode(r.pool.QueryRow(ctx, query, id))
}

// Update loads the node, merges the patch into it and writes the full row
// back.
func (r *NodeRepository) Update(ctx context.Context, id int32, patch *models.UpdateNode) (*models.Node, error) {
	node, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(node)

	query := `
		UPDATE sshmgmt.nodes SET address = $1, token = $2, status = $3
		WHERE id = $4
		RETURNING id, address, token, status
	`

	return r.scanNode(r.pool.QueryRow(ctx, query, node.Address, node.Token, node.Status, id))
}

// Delete removes a node; reports whether a row existed.
func (r *NodeRepository) Delete(ctx context.Context, id int32) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sshmgmt.nodes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete node: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List retrieves every registered node.
func (r *NodeRepository) List(ctx context.Context) ([]*models.Node, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, address, token, status FROM sshmgmt.nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	var nodes []*models.Node
	for rows.Next() {
		node := &models.Node{}
		if err := rows.Scan(&node.ID, &node.Address, &node.Token, &node.Status); err != nil {
			return nil, fmt.Errorf("scan node row: %w", err)
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}

func (r *NodeRepository) scanNode(row pgx.Row) (*models.Node, error) {
	node := &models.Node{}
	err := row.Scan(&node.ID, &node.Address, &node.Token, &node.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan node: %w", err)
	}
	return node, nil
}
