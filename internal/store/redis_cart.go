package store

import (
	"context"
	"encoding/json"
	"time"

	"fastfeast_back_end/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Durée de vie d'un panier abandonné.
const cartTTL = 30 * 24 * time.Hour

// RedisCarts stocke le panier de chaque utilisateur en JSON sous "cart:<user>"
// et une clé inverse "cart_item:<id>" → user pour les opérations par ligne.
type RedisCarts struct {
	client *redis.Client
}

func NewRedisCarts(client *redis.Client) *RedisCarts {
	return &RedisCarts{client: client}
}

func (r *RedisCarts) load(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := r.client.Get(ctx, "cart:"+userID).Result()
	if err == redis.Nil || data == "" {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RedisCarts) save(ctx context.Context, userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "cart:"+userID, data, cartTTL).Err()
}

func (r *RedisCarts) Add(ctx context.Context, userID, foodItemID string, quantity int) (*models.CartItem, error) {
	items, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Fusionne avec la ligne existante pour le même plat
	for i := range items {
		if items[i].FoodItemID == foodItemID {
			items[i].Quantity += quantity
			if err := r.save(ctx, userID, items); err != nil {
				return nil, err
			}
			return &items[i], nil
		}
	}

	item := models.CartItem{
		ID:         uuid.NewString(),
		UserID:     userID,
		FoodItemID: foodItemID,
		Quantity:   quantity,
	}
	items = append(items, item)
	if err := r.save(ctx, userID, items); err != nil {
		return nil, err
	}
	if err := r.client.Set(ctx, "cart_item:"+item.ID, userID, cartTTL).Err(); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *RedisCarts) List(ctx context.Context, userID string) ([]models.CartItem, error) {
	return r.load(ctx, userID)
}

func (r *RedisCarts) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*models.CartItem, error) {
	userID, err := r.client.Get(ctx, "cart_item:"+itemID).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			if err := r.save(ctx, userID, items); err != nil {
				return nil, err
			}
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

// Remove est idempotent : supprimer une ligne absente n'est pas une erreur.
func (r *RedisCarts) Remove(ctx context.Context, itemID string) error {
	userID, err := r.client.Get(ctx, "cart_item:"+itemID).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	items, err := r.load(ctx, userID)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	if err := r.save(ctx, userID, kept); err != nil {
		return err
	}
	return r.client.Del(ctx, "cart_item:"+itemID).Err()
}

func (r *RedisCarts) Clear(ctx context.Context, userID string) error {
	items, err := r.load(ctx, userID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := r.client.Del(ctx, "cart_item:"+it.ID).Err(); err != nil {
			return err
		}
	}
	return r.client.Del(ctx, "cart:"+userID).Err()
}
