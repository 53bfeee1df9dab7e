package seed

import (
	"context"
	"log"

	"fastfeast_back_end/internal/models"
	"fastfeast_back_end/internal/search"
	"fastfeast_back_end/internal/store"
)

// Catalog alimente le catalogue de démo au premier démarrage. Idempotent :
// si des restaurants existent déjà, on ne touche à rien.
func Catalog(ctx context.Context, catalog store.CatalogStore, index *search.FoodIndex) error {
	count, err := catalog.CountRestaurants(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("🪣 Catalogue déjà alimenté, seed ignoré")
		return nil
	}

	for _, entry := range demoCatalog() {
		restaurant := entry.restaurant
		if err := catalog.CreateRestaurant(ctx, &restaurant); err != nil {
			return err
		}
		for _, item := range entry.items {
			item.RestaurantID = restaurant.ID
			if err := catalog.CreateFoodItem(ctx, &item); err != nil {
				return err
			}
			if index != nil && index.Enabled() {
				index.IndexFoodItem(ctx, item)
			}
		}
		log.Printf("✅ Restaurant seedé : %s (%d plats)", restaurant.Name, len(entry.items))
	}
	return nil
}

type restaurantSeed struct {
	restaurant models.Restaurant
	items      []models.FoodItem
}

func demoCatalog() []restaurantSeed {
	return []restaurantSeed{
		{
			restaurant: models.Restaurant{
				Name:         "Punjabi Tadka",
				Description:  "Cuisine du nord de l'Inde, tandoor au charbon",
				Cuisine:      "North Indian",
				Rating:       4.5,
				DeliveryTime: "30-40 min",
				DeliveryFee:  0,
				MinimumOrder: 150,
				IsOpen:       true,
			},
			items: []models.FoodItem{
				{
					Name:            "Butter Chicken",
					Description:     "Poulet tandoori mijoté dans une sauce tomate-beurre",
					Price:           120,
					Category:        "Main Course",
					IsSpicy:         false,
					IsAvailable:     true,
					PreparationTime: "20 min",
					Ingredients:     []string{"chicken", "butter", "tomato", "cream", "garam masala"},
				},
				{
					Name:            "Dal Makhani",
					Description:     "Lentilles noires mijotées toute la nuit",
					Price:           90,
					Category:        "Main Course",
					IsVeg:           true,
					IsAvailable:     true,
					PreparationTime: "15 min",
					Ingredients:     []string{"black lentils", "kidney beans", "butter", "cream"},
				},
				{
					Name:            "Garlic Naan",
					Description:     "Pain au levain cuit au tandoor, ail frais",
					Price:           45,
					Category:        "Breads",
					IsVeg:           true,
					IsAvailable:     true,
					PreparationTime: "10 min",
					Ingredients:     []string{"flour", "garlic", "butter"},
				},
			},
		},
		{
			restaurant: models.Restaurant{
				Name:         "Dosa Junction",
				Description:  "Spécialités du sud, dosas croustillants à toute heure",
				Cuisine:      "South Indian",
				Rating:       4.3,
				DeliveryTime: "25-35 min",
				DeliveryFee:  30,
				MinimumOrder: 100,
				IsVeg:        true,
				IsOpen:       true,
			},
			items: []models.FoodItem{
				{
					Name:            "Masala Dosa",
					Description:     "Crêpe de riz croustillante, pommes de terre épicées",
					Price:           80,
					Category:        "Main Course",
					IsVeg:           true,
					IsSpicy:         true,
					IsAvailable:     true,
					PreparationTime: "15 min",
					Ingredients:     []string{"rice", "lentils", "potato", "mustard seeds"},
				},
				{
					Name:            "Idli Sambar",
					Description:     "Idlis vapeur, sambar et chutney coco",
					Price:           60,
					Category:        "Breakfast",
					IsVeg:           true,
					IsAvailable:     true,
					PreparationTime: "10 min",
					Ingredients:     []string{"rice", "lentils", "coconut"},
				},
				{
					Name:            "Filter Coffee",
					Description:     "Café filtre du sud, servi mousseux",
					Price:           40,
					Category:        "Beverages",
					IsVeg:           true,
					IsAvailable:     true,
					PreparationTime: "5 min",
					Ingredients:     []string{"coffee", "milk", "sugar"},
				},
			},
		},
		{
			restaurant: models.Restaurant{
				Name:         "Biryani Mahal",
				Description:  "Biryanis dum au feu de bois, recettes d'Hyderabad",
				Cuisine:      "Hyderabadi",
				Rating:       4.7,
				DeliveryTime: "40-50 min",
				DeliveryFee:  40,
				MinimumOrder: 200,
				IsOpen:       true,
			},
			items: []models.FoodItem{
				{
					Name:            "Chicken Dum Biryani",
					Description:     "Riz basmati et poulet cuits ensemble à l'étouffée",
					Price:           220,
					Category:        "Main Course",
					IsSpicy:         true,
					IsAvailable:     true,
					PreparationTime: "35 min",
					Ingredients:     []string{"basmati rice", "chicken", "saffron", "fried onions"},
				},
				{
					Name:            "Veg Biryani",
					Description:     "Biryani de légumes, raïta inclus",
					Price:           160,
					Category:        "Main Course",
					IsVeg:           true,
					IsAvailable:     true,
					PreparationTime: "30 min",
					Ingredients:     []string{"basmati rice", "vegetables", "mint", "yogurt"},
				},
				{
					Name:            "Gulab Jamun",
					Description:     "Beignets au lait, sirop de cardamome",
					Price:           70,
					Category:        "Desserts",
					IsVeg:           true,
					IsAvailable:     true,
					PreparationTime: "5 min",
					Ingredients:     []string{"milk solids", "sugar", "cardamom"},
				},
			},
		},
	}
}
