package application

import (
	"context"
	"errors"

	"github.com/secondchance/marketplace/internal/domain/entity"
	"github.com/secondchance/marketplace/internal/domain/repository"
)

var ErrOrderNotFound = errors.New("order not found")

// AdminService backs the management dashboard. Callers are already
// role-gated by middleware; no checks are repeated here.
type AdminService struct {
	Users    repository.UserRepository
	Products repository.ProductRepository
	Orders   repository.OrderRepository
}

// DashboardStats is the counts card on the admin landing page.
type DashboardStats struct {
	Users    int64 `json:"users"`
	Products int64 `json:"products"`
	Orders   int64 `json:"orders"`
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	users, err := s.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.Products.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.Orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{Users: users, Products: products, Orders: orders}, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.Users.List(ctx)
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *AdminService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.Products.List(ctx, repository.ProductFilter{})
}

func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *AdminService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	return s.Orders.List(ctx)
}

func (s *AdminService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.Orders.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}
