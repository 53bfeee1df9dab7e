package models

type CartItem struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	FoodItemID string `json:"food_item_id"`
	Quantity   int    `json:"quantity"`
}

// CartLine est un CartItem enrichi avec le plat référencé (réponse GET /cart).
type CartLine struct {
	CartItem
	FoodItem *FoodItem `json:"food_item,omitempty"`
}
