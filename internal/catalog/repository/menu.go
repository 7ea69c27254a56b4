package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slicesite/internal/domain"
)

type MenuRepositoryInterface interface {
	Lookup(ctx context.Context, id string) (domain.MenuItem, error)
	List(ctx context.Context, category string, offset, limit int) ([]domain.MenuItem, error)
	Create(ctx context.Context, item domain.MenuItem) error
	Update(ctx context.Context, item domain.MenuItem) error
	Delete(ctx context.Context, id string) error
}

type MenuRepository struct {
	db *pgxpool.Pool
}

func NewMenuRepository(db *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{db: db}
}

// Lookup is the single-key read the pricing resolver depends on.
func (mr *MenuRepository) Lookup(ctx context.Context, id string) (domain.MenuItem, error) {
	var m domain.MenuItem
	err := mr.db.QueryRow(ctx, `
		SELECT id, name, COALESCE(description, ''), price, COALESCE(category, ''), COALESCE(image_url, '')
		FROM menu_items
		WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.ImageURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MenuItem{}, domain.ErrMenuItemNotFound
	}
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("failed to get menu item %s: %w", id, err)
	}
	return m, nil
}

func (mr *MenuRepository) List(ctx context.Context, category string, offset, limit int) ([]domain.MenuItem, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if category != "" {
		rows, err = mr.db.Query(ctx, `
			SELECT id, name, COALESCE(description, ''), price, COALESCE(category, ''), COALESCE(image_url, '')
			FROM menu_items
			WHERE category = $1
			ORDER BY id
			OFFSET $2 LIMIT $3`, category, offset, limit)
	} else {
		rows, err = mr.db.Query(ctx, `
			SELECT id, name, COALESCE(description, ''), price, COALESCE(category, ''), COALESCE(image_url, '')
			FROM menu_items
			ORDER BY id
			OFFSET $1 LIMIT $2`, offset, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (mr *MenuRepository) Create(ctx context.Context, item domain.MenuItem) error {
	_, err := mr.db.Exec(ctx, `
		INSERT INTO menu_items (id, name, description, price, category, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.Name, item.Description, item.Price, item.Category, item.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to insert menu item %s: %w", item.ID, err)
	}
	return nil
}

func (mr *MenuRepository) Update(ctx context.Context, item domain.MenuItem) error {
	tag, err := mr.db.Exec(ctx, `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, category = $5, image_url = $6
		WHERE id = $1`,
		item.ID, item.Name, item.Description, item.Price, item.Category, item.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to update menu item %s: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (mr *MenuRepository) Delete(ctx context.Context, id string) error {
	tag, err := mr.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}
