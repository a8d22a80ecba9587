package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/zolagonano/ssh-mgmt-toolkit/internal/client"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/repository"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/workers"
)

// NodeService manages the node catalog and proxies stat queries to the
// agents.
type NodeService struct {
	nodes  *repository.NodeRepository
	client *client.NodeClient
	pool   *workers.Pool
}

func NewNodeService(nodes *repository.NodeRepository, nodeClient *client.NodeClient, pool *workers.Pool) *NodeService {
	return &NodeService{
		nodes:  nodes,
		client: nodeClient,
		pool:   pool,
	}
}

// Create validates and normalizes the node address before storing it.
func (s *NodeService) Create(ctx context.Context, node *models.NewNode) (*models.Node, error) {
	addr, err := client.NormalizeAddr(node.Address)
	if err != nil {
		return nil, err
	}
	node.Address = addr

	created, err := s.nodes.Create(ctx, node)
	if err != nil {
		return nil, err
	}

	log.Printf("[NodeService] Node %d registered at %s", created.ID, created.Address)
	return created, nil
}

func (s *NodeService) Get(ctx context.Context, id int32) (*models.Node, error) {
	return s.nodes.GetByID(ctx, id)
}

// Update applies a patch; a new address is normalized first.
func (s *NodeService) Update(ctx context.Context, id int32, patch *models.UpdateNode) (*models.Node, error) {
	if patch.Address != nil {
		addr, err := client.NormalizeAddr(*patch.Address)
		if err != nil {
			return nil, err
		}
		patch.Address = &addr
	}

	return s.nodes.Update(ctx, id, patch)
}

func (s *NodeService) Delete(ctx context.Context, id int32) (bool, error) {
	return s.nodes.Delete(ctx, id)
}

func (s *NodeService) List(ctx context.Context) ([]*models.Node, error) {
	return s.nodes.List(ctx)
}

// Info relays the agent's identity block.
func (s *NodeService) Info(ctx context.Context, id int32) (json.RawMessage, error) {
	return s.relay(ctx, id, s.client.Info)
}

// HwStats relays the agent's hardware statistics.
func (s *NodeService) HwStats(ctx context.Context, id int32) (json.RawMessage, error) {
	return s.relay(ctx, id, s.client.HwStats)
}

// NetStats relays the agent's network statistics.
func (s *NodeService) NetStats(ctx context.Context, id int32) (json.RawMessage, error) {
	return s.relay(ctx, id, s.client.NetStats)
}

// relay looks the node up and runs the agent call through the worker pool so
// slow nodes cannot soak up every handler goroutine.
func (s *NodeService) relay(ctx context.Context, id int32, call func(context.Context, *models.Node) (json.RawMessage, error)) (json.RawMessage, error) {
	node, err := s.nodes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var result json.RawMessage
	err = s.pool.Do(ctx, func() error {
		var callErr error
		result, callErr = call(ctx, node)
		return callErr
	})
	return result, err
}
