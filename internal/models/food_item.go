package models

type FoodItem struct {
	ID              string   `json:"id"`
	RestaurantID    string   `json:"restaurant_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	ImageURL        string   `json:"image_url"`
	IsVeg           bool     `json:"is_veg"`
	IsSpicy         bool     `json:"is_spicy"`
	IsAvailable     bool     `json:"is_available"`
	PreparationTime string   `json:"preparation_time"`
	Ingredients     []string `json:"ingredients,omitempty"`
}
