package models

import "time"

// Statuts de cycle de vie d'une commande.
const (
	OrderPending        = "pending"
	OrderConfirmed      = "confirmed"
	OrderPreparing      = "preparing"
	OrderOutForDelivery = "out_for_delivery"
	OrderDelivered      = "delivered"
	OrderCancelled      = "cancelled"
)

// Statuts de paiement d'une commande.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// OrderItem est un instantané (plat, quantité, prix unitaire) figé à la création.
type OrderItem struct {
	FoodItemID string  `json:"food_item_id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type Order struct {
	ID                    string      `json:"id"`
	UserID                string      `json:"user_id"`
	RestaurantID          string      `json:"restaurant_id"`
	Items                 []OrderItem `json:"items"`
	TotalAmount           float64     `json:"total_amount"`
	DeliveryAddress       string      `json:"delivery_address"`
	DeliveryFee           float64     `json:"delivery_fee"`
	Status                string      `json:"status"`
	PaymentStatus         string      `json:"payment_status"`
	PaymentIntentID       string      `json:"payment_intent_id,omitempty"`
	EstimatedDeliveryTime string      `json:"estimated_delivery_time,omitempty"`
	SpecialInstructions   string      `json:"special_instructions,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}
