package store

import (
	"context"
	"strings"

	"fastfeast_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaCatalog stocke restaurants et plats dans le keyspace catalogue.
// Le catalogue est petit et read-mostly : les listes font un scan complet
// filtré côté Go plutôt que des index secondaires.
type ScyllaCatalog struct {
	session *gocql.Session
}

func NewScyllaCatalog(session *gocql.Session) *ScyllaCatalog {
	return &ScyllaCatalog{session: session}
}

func (s *ScyllaCatalog) CreateRestaurant(ctx context.Context, r *models.Restaurant) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return s.session.Query(`INSERT INTO restaurants
		(restaurant_id, name, description, cuisine, image_url, rating, delivery_time, delivery_fee, minimum_order, is_veg, is_open)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Description, r.Cuisine, r.ImageURL, r.Rating,
		r.DeliveryTime, r.DeliveryFee, r.MinimumOrder, r.IsVeg, r.IsOpen).
		WithContext(ctx).Exec()
}

func (s *ScyllaCatalog) ListRestaurants(ctx context.Context, cuisine string) ([]models.Restaurant, error) {
	iter := s.session.Query(`SELECT restaurant_id, name, description, cuisine, image_url, rating, delivery_time, delivery_fee, minimum_order, is_veg, is_open
		FROM restaurants`).WithContext(ctx).Iter()

	out := []models.Restaurant{}
	var r models.Restaurant
	for iter.Scan(&r.ID, &r.Name, &r.Description, &r.Cuisine, &r.ImageURL, &r.Rating,
		&r.DeliveryTime, &r.DeliveryFee, &r.MinimumOrder, &r.IsVeg, &r.IsOpen) {
		if cuisine == "" || strings.EqualFold(r.Cuisine, cuisine) {
			out = append(out, r)
		}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ScyllaCatalog) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	r := models.Restaurant{ID: id}
	err := s.session.Query(`SELECT name, description, cuisine, image_url, rating, delivery_time, delivery_fee, minimum_order, is_veg, is_open
		FROM restaurants WHERE restaurant_id = ?`, id).
		WithContext(ctx).Scan(&r.Name, &r.Description, &r.Cuisine, &r.ImageURL, &r.Rating,
		&r.DeliveryTime, &r.DeliveryFee, &r.MinimumOrder, &r.IsVeg, &r.IsOpen)
	if err == gocql.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ScyllaCatalog) CountRestaurants(ctx context.Context) (int, error) {
	var count int
	err := s.session.Query("SELECT COUNT(*) FROM restaurants").WithContext(ctx).Scan(&count)
	return count, err
}

func (s *ScyllaCatalog) CreateFoodItem(ctx context.Context, f *models.FoodItem) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return s.session.Query(`INSERT INTO food_items
		(item_id, restaurant_id, name, description, price, category, image_url, is_veg, is_spicy, is_available, preparation_time, ingredients)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.RestaurantID, f.Name, f.Description, f.Price, f.Category, f.ImageURL,
		f.IsVeg, f.IsSpicy, f.IsAvailable, f.PreparationTime, f.Ingredients).
		WithContext(ctx).Exec()
}

func (s *ScyllaCatalog) GetFoodItem(ctx context.Context, id string) (*models.FoodItem, error) {
	f := models.FoodItem{ID: id}
	err := s.session.Query(`SELECT restaurant_id, name, description, price, category, image_url, is_veg, is_spicy, is_available, preparation_time, ingredients
		FROM food_items WHERE item_id = ?`, id).
		WithContext(ctx).Scan(&f.RestaurantID, &f.Name, &f.Description, &f.Price, &f.Category,
		&f.ImageURL, &f.IsVeg, &f.IsSpicy, &f.IsAvailable, &f.PreparationTime, &f.Ingredients)
	if err == gocql.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *ScyllaCatalog) ListMenu(ctx context.Context, restaurantID string) ([]models.FoodItem, error) {
	return s.scanFoodItems(ctx, func(f models.FoodItem) bool {
		return f.RestaurantID == restaurantID
	})
}

func (s *ScyllaCatalog) ListByCategory(ctx context.Context, category string) ([]models.FoodItem, error) {
	return s.scanFoodItems(ctx, func(f models.FoodItem) bool {
		return strings.EqualFold(f.Category, category)
	})
}

// SearchFoodItems est le repli sans Elasticsearch : sous-chaîne sur le nom et
// la description.
func (s *ScyllaCatalog) SearchFoodItems(ctx context.Context, query string) ([]models.FoodItem, error) {
	q := strings.ToLower(query)
	return s.scanFoodItems(ctx, func(f models.FoodItem) bool {
		return strings.Contains(strings.ToLower(f.Name), q) ||
			strings.Contains(strings.ToLower(f.Description), q)
	})
}

func (s *ScyllaCatalog) scanFoodItems(ctx context.Context, keep func(models.FoodItem) bool) ([]models.FoodItem, error) {
	iter := s.session.Query(`SELECT item_id, restaurant_id, name, description, price, category, image_url, is_veg, is_spicy, is_available, preparation_time, ingredients
		FROM food_items`).WithContext(ctx).Iter()

	out := []models.FoodItem{}
	var f models.FoodItem
	for iter.Scan(&f.ID, &f.RestaurantID, &f.Name, &f.Description, &f.Price, &f.Category,
		&f.ImageURL, &f.IsVeg, &f.IsSpicy, &f.IsAvailable, &f.PreparationTime, &f.Ingredients) {
		if keep(f) {
			out = append(out, f)
		}
		f.Ingredients = nil
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return out, nil
}
