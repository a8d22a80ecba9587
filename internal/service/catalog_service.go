package service

import (
	"context"
	"errors"

	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/repository"
)

// ErrRefNotFound rejects a customer registration whose referrer does not
// exist.
var ErrRefNotFound = errors.New("referrer does not exist")

// CatalogService manages service tiers and the customer roster.
type CatalogService struct {
	services *repository.ServiceRepository
	users    *repository.UserRepository
}

func NewCatalogService(services *repository.ServiceRepository, users *repository.UserRepository) *CatalogService {
	return &CatalogService{
		services: services,
		users:    users,
	}
}

func (s *CatalogService) CreateService(ctx context.Context, svc *models.NewService) (*models.Service, error) {
	return s.services.Create(ctx, svc)
}

func (s *CatalogService) GetService(ctx context.Context, id int32) (*models.Service, error) {
	return s.services.GetByID(ctx, id)
}

func (s *CatalogService) UpdateService(ctx context.Context, id int32, patch *models.UpdateService) (*models.Service, error) {
	return s.services.Update(ctx, id, patch)
}

func (s *CatalogService) DeleteService(ctx context.Context, id int32) (bool, error) {
	return s.services.Delete(ctx, id)
}

func (s *CatalogService) ListServices(ctx context.Context) ([]*models.Service, error) {
	return s.services.List(ctx)
}

// CreateUser registers a customer. A referrer, when given, must already be on
// the roster.
func (s *CatalogService) CreateUser(ctx context.Context, user *models.NewUser) (*models.User, error) {
	if user.RefID != nil {
		exists, err := s.users.Exists(ctx, *user.RefID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrRefNotFound
		}
	}

	return s.users.Create(ctx, user)
}

func (s *CatalogService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// UserRefs lists the customers referred by the given customer.
func (s *CatalogService) UserRefs(ctx context.Context, id int64) ([]*models.User, error) {
	return s.users.Refs(ctx, id)
}
