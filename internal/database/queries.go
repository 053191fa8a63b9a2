package database

// Catalog queries
const (
	GetCategoriesSQL = `
		SELECT id, name, description
		FROM menu_categories
		ORDER BY position ASC`

	GetMenuItemsSQL = `
		SELECT id, category_id, name, price, short_description, image_url,
			   is_vegetarian, is_vegan, is_gluten_free, is_new, is_signature,
			   is_chef_special, spicy_level, wine_pairing
		FROM menu_items
		ORDER BY position ASC`
)
