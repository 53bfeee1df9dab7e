package models

type Restaurant struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Cuisine      string  `json:"cuisine"`
	ImageURL     string  `json:"image_url"`
	Rating       float64 `json:"rating"`
	DeliveryTime string  `json:"delivery_time"`
	DeliveryFee  float64 `json:"delivery_fee"`
	MinimumOrder float64 `json:"minimum_order"`
	IsVeg        bool    `json:"is_veg"`
	IsOpen       bool    `json:"is_open"`
}
