package menu

import (
	"context"
	"fmt"

	"bellavista/internal/database"
	"bellavista/internal/models"
)

// Repository loads the catalog from PostgreSQL
type Repository struct {
	db *database.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// LoadCatalog reads categories and items in their seeded order and builds
// the in-memory catalog
func (r *Repository) LoadCatalog(ctx context.Context) (*Catalog, error) {
	categories, err := r.loadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	items, err := r.loadItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	return NewCatalog(categories, items)
}

func (r *Repository) loadCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, database.GetCategoriesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *Repository) loadItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, database.GetMenuItemsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var m models.MenuItem
		err := rows.Scan(
			&m.ID, &m.CategoryID, &m.Name, &m.Price, &m.ShortDescription, &m.ImageURL,
			&m.IsVegetarian, &m.IsVegan, &m.IsGlutenFree, &m.IsNew, &m.IsSignature,
			&m.IsChefSpecial, &m.SpicyLevel, &m.WinePairing,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
