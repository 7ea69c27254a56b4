package service

import (
	"context"
	"errors"

	"slicesite/internal/catalog/repository"
	"slicesite/internal/domain"
)

type MenuServiceInterface interface {
	GetMenuItem(ctx context.Context, id string) (domain.MenuItem, error)
	ListMenuItems(ctx context.Context, category string, offset, limit int) ([]domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, patch domain.MenuItemUpdate) (domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) (domain.MenuItem, error)
}

type MenuService struct {
	repo repository.MenuRepositoryInterface
}

func NewMenuService(repo repository.MenuRepositoryInterface) *MenuService {
	return &MenuService{repo: repo}
}

func (ms *MenuService) GetMenuItem(ctx context.Context, id string) (domain.MenuItem, error) {
	return ms.repo.Lookup(ctx, id)
}

func (ms *MenuService) ListMenuItems(ctx context.Context, category string, offset, limit int) ([]domain.MenuItem, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return ms.repo.List(ctx, category, offset, limit)
}

func (ms *MenuService) CreateMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	if item.ID == "" {
		return domain.MenuItem{}, errors.New("id is required")
	}
	if item.Name == "" {
		return domain.MenuItem{}, errors.New("name is required")
	}
	if item.Price.IsNegative() {
		return domain.MenuItem{}, errors.New("price must be >= 0")
	}

	// ids are client-assigned, so existence is checked up front
	if _, err := ms.repo.Lookup(ctx, item.ID); err == nil {
		return domain.MenuItem{}, domain.ErrMenuItemExists
	} else if !errors.Is(err, domain.ErrMenuItemNotFound) {
		return domain.MenuItem{}, err
	}

	if err := ms.repo.Create(ctx, item); err != nil {
		return domain.MenuItem{}, err
	}
	return item, nil
}

func (ms *MenuService) UpdateMenuItem(ctx context.Context, id string, patch domain.MenuItemUpdate) (domain.MenuItem, error) {
	item, err := ms.repo.Lookup(ctx, id)
	if err != nil {
		return domain.MenuItem{}, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return domain.MenuItem{}, errors.New("price must be >= 0")
		}
		item.Price = *patch.Price
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		item.ImageURL = *patch.ImageURL
	}
	if item.Name == "" {
		return domain.MenuItem{}, errors.New("name is required")
	}

	if err := ms.repo.Update(ctx, item); err != nil {
		return domain.MenuItem{}, err
	}
	return item, nil
}

func (ms *MenuService) DeleteMenuItem(ctx context.Context, id string) (domain.MenuItem, error) {
	item, err := ms.repo.Lookup(ctx, id)
	if err != nil {
		return domain.MenuItem{}, err
	}
	if err := ms.repo.Delete(ctx, id); err != nil {
		return domain.MenuItem{}, err
	}
	return item, nil
}
