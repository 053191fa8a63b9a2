package menu

import (
	"fmt"

	"bellavista/internal/models"
)

// FilterPredicate names an attribute filter applied after the category filter
type FilterPredicate string

const (
	FilterVegetarian  FilterPredicate = "vegetarian"
	FilterSpicy       FilterPredicate = "spicy"
	FilterChefSpecial FilterPredicate = "chef"
	FilterWinePairing FilterPredicate = "pairing"
)

// SpicyThreshold is the minimum exclusive spicy level for the spicy filter
const SpicyThreshold = 2

// Catalog is the static, read-only menu lookup table. It is built once at
// startup and never mutated, so lookups need no locking.
type Catalog struct {
	categories []models.Category
	items      []models.MenuItem
	byID       map[string]models.MenuItem
}

// NewCatalog builds a catalog preserving the given insertion order
func NewCatalog(categories []models.Category, items []models.MenuItem) (*Catalog, error) {
	byID := make(map[string]models.MenuItem, len(items))
	for _, item := range items {
		if _, dup := byID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate menu item id: %s", item.ID)
		}
		byID[item.ID] = item
	}
	return &Catalog{
		categories: categories,
		items:      items,
		byID:       byID,
	}, nil
}

// ListCategories returns all categories in catalog order
func (c *Catalog) ListCategories() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// ListByCategory returns all items in the category, in catalog order
func (c *Catalog) ListByCategory(categoryID string) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range c.items {
		if item.CategoryID == categoryID {
			out = append(out, item)
		}
	}
	return out
}

// ItemByID looks up a single item
func (c *Catalog) ItemByID(id string) (models.MenuItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Filter returns the subset of items satisfying the predicate, preserving
// order. An unrecognized predicate filters nothing.
func Filter(items []models.MenuItem, predicate FilterPredicate) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range items {
		if matches(item, predicate) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item models.MenuItem, predicate FilterPredicate) bool {
	switch predicate {
	case FilterVegetarian:
		return item.IsVegetarian
	case FilterSpicy:
		return item.SpicyLevel > SpicyThreshold
	case FilterChefSpecial:
		return item.IsChefSpecial
	case FilterWinePairing:
		return item.WinePairing
	default:
		return true
	}
}
