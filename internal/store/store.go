package store

import (
	"context"
	"errors"

	"fastfeast_back_end/internal/models"
)

// Erreurs sentinelles remontées par les stores et mappées en HTTP aux handlers.
var (
	ErrNotFound          = errors.New("ressource introuvable")
	ErrEmailTaken        = errors.New("email déjà utilisé")
	ErrInvalidTransition = errors.New("transition de statut interdite")
)

// UserStore gère les comptes (local et OAuth).
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
}

// CatalogStore gère restaurants et plats. Alimenté au seed, lecture ensuite.
type CatalogStore interface {
	CreateRestaurant(ctx context.Context, r *models.Restaurant) error
	ListRestaurants(ctx context.Context, cuisine string) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
	CountRestaurants(ctx context.Context) (int, error)
	CreateFoodItem(ctx context.Context, f *models.FoodItem) error
	GetFoodItem(ctx context.Context, id string) (*models.FoodItem, error)
	ListMenu(ctx context.Context, restaurantID string) ([]models.FoodItem, error)
	ListByCategory(ctx context.Context, category string) ([]models.FoodItem, error)
	SearchFoodItems(ctx context.Context, query string) ([]models.FoodItem, error)
}

// CartStore gère le panier par utilisateur.
// Invariant : au plus un CartItem par (user, plat) — Add fusionne les quantités.
// UpdateQuantity n'impose aucune borne : la validation (> 0) se fait à la frontière HTTP.
type CartStore interface {
	Add(ctx context.Context, userID, foodItemID string, quantity int) (*models.CartItem, error)
	List(ctx context.Context, userID string) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) (*models.CartItem, error)
	Remove(ctx context.Context, itemID string) error
	Clear(ctx context.Context, userID string) error
}

// OrderStore gère les commandes. Create assigne l'identifiant, les statuts
// initiaux (pending/pending) et des timestamps création = mise à jour.
// Les mutations de statut passent par la table de transitions.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdatePaymentStatus(ctx context.Context, id, paymentStatus, intentID string) error
}
