package menu

import (
	"testing"

	"bellavista/internal/models"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()

	categories := []models.Category{
		{ID: "vegetarian", Name: "Vegetarian"},
		{ID: "spicy", Name: "Spicy"},
		{ID: "chef", Name: "Chef Special"},
	}
	items := []models.MenuItem{
		{ID: "item1", CategoryID: "vegetarian", Name: "Truffle Arancini", Price: 14.95, IsVegetarian: true},
		{ID: "item2", CategoryID: "spicy", Name: "Mild Curry", Price: 12.00, SpicyLevel: 0},
		{ID: "item3", CategoryID: "spicy", Name: "Lamb Vindaloo", Price: 38.95, SpicyLevel: 3},
		{ID: "item4", CategoryID: "spicy", Name: "Dragon Noodles", Price: 24.50, SpicyLevel: 4},
		{ID: "item5", CategoryID: "chef", Name: "Chocolate Fondant", Price: 12.95, IsChefSpecial: true, IsVegetarian: true},
	}

	catalog, err := NewCatalog(categories, items)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return catalog
}

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	_, err := NewCatalog(nil, []models.MenuItem{
		{ID: "item1"},
		{ID: "item1"},
	})
	if err == nil {
		t.Fatal("duplicate item ids should be rejected")
	}
}

func TestListByCategoryPreservesOrder(t *testing.T) {
	catalog := testCatalog(t)

	items := catalog.ListByCategory("spicy")
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	want := []string{"item2", "item3", "item4"}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, id)
		}
	}
}

func TestListByCategoryUnknownIsEmpty(t *testing.T) {
	catalog := testCatalog(t)
	if items := catalog.ListByCategory("desserts"); len(items) != 0 {
		t.Errorf("unknown category returned %d items", len(items))
	}
}

// Spicy filtering keeps exactly the items above the threshold, in catalog
// order: levels {0, 3, 4} with threshold >2 yields the 3 and 4.
func TestSpicyFilterThreshold(t *testing.T) {
	catalog := testCatalog(t)

	items := Filter(catalog.ListByCategory("spicy"), FilterSpicy)
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID != "item3" || items[1].ID != "item4" {
		t.Errorf("filtered ids = %q, %q; want item3, item4", items[0].ID, items[1].ID)
	}
}

func TestFilterPredicates(t *testing.T) {
	catalog := testCatalog(t)
	all := append(catalog.ListByCategory("vegetarian"),
		append(catalog.ListByCategory("spicy"), catalog.ListByCategory("chef")...)...)

	tests := []struct {
		name      string
		predicate FilterPredicate
		wantIDs   []string
	}{
		{"vegetarian", FilterVegetarian, []string{"item1", "item5"}},
		{"chef special", FilterChefSpecial, []string{"item5"}},
		{"wine pairing", FilterWinePairing, nil},
		{"unknown predicate filters nothing", FilterPredicate("seasonal"), []string{"item1", "item2", "item3", "item4", "item5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(all, tt.predicate)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestItemByID(t *testing.T) {
	catalog := testCatalog(t)

	item, ok := catalog.ItemByID("item1")
	if !ok || item.Name != "Truffle Arancini" {
		t.Errorf("ItemByID(item1) = %+v, %v", item, ok)
	}
	if _, ok := catalog.ItemByID("nope"); ok {
		t.Error("unknown id should not resolve")
	}
}
