package service

import (
	"context"
	"log"
	"time"

	"github.com/zolagonano/ssh-mgmt-toolkit/internal/client"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/repository"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/workers"
)

// SellService records purchases and turns verified ones into shell accounts
// on the target node.
type SellService struct {
	sells    *repository.SellRepository
	users    *repository.UserRepository
	services *repository.ServiceRepository
	nodes    *repository.NodeRepository
	client   *client.NodeClient
	pool     *workers.Pool
}

func NewSellService(
	sells *repository.SellRepository,
	users *repository.UserRepository,
	services *repository.ServiceRepository,
	nodes *repository.NodeRepository,
	nodeClient *client.NodeClient,
	pool *workers.Pool,
) *SellService {
	return &SellService{
		sells:    sells,
		users:    users,
		services: services,
		nodes:    nodes,
		client:   nodeClient,
		pool:     pool,
	}
}

// Create records an unverified sell. The customer must be on the roster,
// and the sell's referrer is taken from the customer record rather than the
// request. Service and node references are checked so a later verify cannot
// fail on a dangling ID.
func (s *SellService) Create(ctx context.Context, sell *models.NewSell) (*models.Sell, error) {
	user, err := s.users.GetByID(ctx, sell.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.services.GetByID(ctx, sell.ServiceID); err != nil {
		return nil, err
	}
	if _, err := s.nodes.GetByID(ctx, sell.NodeID); err != nil {
		return nil, err
	}

	return s.sells.Create(ctx, models.NewUnverifiedSell(user, sell))
}

// Verify provisions the shell account for a sell and stamps the record with
// the resulting credentials, the first-buy date and an invoice date 30 days
// out. Verifying an already-verified sell re-runs the provisioning with the
// same username, which the node rejects as an existing account.
func (s *SellService) Verify(ctx context.Context, id int32, account *models.AccountInfo) (*models.Sell, error) {
	sell, err := s.sells.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	svc, err := s.services.GetByID(ctx, sell.ServiceID)
	if err != nil {
		return nil, err
	}

	node, err := s.nodes.GetByID(ctx, sell.NodeID)
	if err != nil {
		return nil, err
	}

	var sshuser *models.SSHUser
	err = s.pool.Do(ctx, func() error {
		var callErr error
		sshuser, callErr = s.client.UserAdd(ctx, node, svc, sell.ID, account.Days)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[SellService] Sell %d verified, account %s on node %d", id, sshuser.Username, node.ID)

	return s.sells.Update(ctx, id, models.VerifySellPatch(sshuser, time.Now()))
}

func (s *SellService) Get(ctx context.Context, id int32) (*models.Sell, error) {
	return s.sells.GetByID(ctx, id)
}

func (s *SellService) List(ctx context.Context) ([]*models.Sell, error) {
	return s.sells.List(ctx)
}

func (s *SellService) ListByRef(ctx context.Context, refID int64) ([]*models.Sell, error) {
	return s.sells.ListByRef(ctx, refID)
}

func (s *SellService) ListByUser(ctx context.Context, userID int64) ([]*models.Sell, error) {
	return s.sells.ListByUser(ctx, userID)
}
