package models

// Category represents a menu category, defined at seed time and never mutated
type Category struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// MenuItem represents an immutable catalog entry
type MenuItem struct {
	ID               string  `json:"id" db:"id"`
	CategoryID       string  `json:"category_id" db:"category_id"`
	Name             string  `json:"name" db:"name"`
	Price            float64 `json:"price" db:"price"`
	ShortDescription string  `json:"short_description" db:"short_description"`
	ImageURL         string  `json:"image_url,omitempty" db:"image_url"`
	IsVegetarian     bool    `json:"is_vegetarian" db:"is_vegetarian"`
	IsVegan          bool    `json:"is_vegan" db:"is_vegan"`
	IsGlutenFree     bool    `json:"is_gluten_free" db:"is_gluten_free"`
	IsNew            bool    `json:"is_new" db:"is_new"`
	IsSignature      bool    `json:"is_signature" db:"is_signature"`
	IsChefSpecial    bool    `json:"is_chef_special" db:"is_chef_special"`
	SpicyLevel       int     `json:"spicy_level" db:"spicy_level"`
	WinePairing      bool    `json:"wine_pairing" db:"wine_pairing"`
}
