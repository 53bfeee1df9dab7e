package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"fastfeast_back_end/internal/models"

	"github.com/google/uuid"
)

// Implémentations en mémoire des quatre stores, sur de simples maps.
// Utilisées en mode dev (sans ScyllaDB/Redis configurés) et par les tests.

// --- Utilisateurs ---

type MemoryUsers struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (m *MemoryUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, exists := m.byEmail[email]; exists {
		return ErrEmailTaken
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	m.byID[u.ID] = *u
	m.byEmail[email] = u.ID
	return nil
}

func (m *MemoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := m.byID[id]
	return &u, nil
}

func (m *MemoryUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemoryUsers) Update(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[u.ID]; !ok {
		return ErrNotFound
	}
	m.byID[u.ID] = *u
	return nil
}

// --- Catalogue ---

type MemoryCatalog struct {
	mu          sync.RWMutex
	restaurants map[string]models.Restaurant
	foodItems   map[string]models.FoodItem
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		restaurants: make(map[string]models.Restaurant),
		foodItems:   make(map[string]models.FoodItem),
	}
}

func (m *MemoryCatalog) CreateRestaurant(_ context.Context, r *models.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	m.restaurants[r.ID] = *r
	return nil
}

func (m *MemoryCatalog) ListRestaurants(_ context.Context, cuisine string) ([]models.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Restaurant{}
	for _, r := range m.restaurants {
		if cuisine != "" && !strings.EqualFold(r.Cuisine, cuisine) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *MemoryCatalog) GetRestaurant(_ context.Context, id string) (*models.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.restaurants[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *MemoryCatalog) CountRestaurants(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.restaurants), nil
}

func (m *MemoryCatalog) CreateFoodItem(_ context.Context, f *models.FoodItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	m.foodItems[f.ID] = *f
	return nil
}

func (m *MemoryCatalog) GetFoodItem(_ context.Context, id string) (*models.FoodItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.foodItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (m *MemoryCatalog) ListMenu(_ context.Context, restaurantID string) ([]models.FoodItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.FoodItem{}
	for _, f := range m.foodItems {
		if f.RestaurantID == restaurantID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *MemoryCatalog) ListByCategory(_ context.Context, category string) ([]models.FoodItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.FoodItem{}
	for _, f := range m.foodItems {
		if strings.EqualFold(f.Category, category) {
			out = append(out, f)
		}
	}
	return out, nil
}

// SearchFoodItems fait une recherche naïve (sous-chaîne) sur nom, description
// et ingrédients. La vraie recherche passe par Elasticsearch ; ceci est le
// repli quand l'index n'est pas disponible.
func (m *MemoryCatalog) SearchFoodItems(_ context.Context, query string) ([]models.FoodItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(query)
	out := []models.FoodItem{}
	for _, f := range m.foodItems {
		if strings.Contains(strings.ToLower(f.Name), q) ||
			strings.Contains(strings.ToLower(f.Description), q) ||
			containsFold(f.Ingredients, q) {
			out = append(out, f)
		}
	}
	return out, nil
}

func containsFold(list []string, q string) bool {
	for _, s := range list {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// --- Panier ---

type MemoryCarts struct {
	mu    sync.RWMutex
	items map[string]models.CartItem
}

func NewMemoryCarts() *MemoryCarts {
	return &MemoryCarts{items: make(map[string]models.CartItem)}
}

func (m *MemoryCarts) Add(_ context.Context, userID, foodItemID string, quantity int) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Fusionne avec la ligne existante pour le même plat
	for id, item := range m.items {
		if item.UserID == userID && item.FoodItemID == foodItemID {
			item.Quantity += quantity
			m.items[id] = item
			return &item, nil
		}
	}

	item := models.CartItem{
		ID:         uuid.NewString(),
		UserID:     userID,
		FoodItemID: foodItemID,
		Quantity:   quantity,
	}
	m.items[item.ID] = item
	return &item, nil
}

func (m *MemoryCarts) List(_ context.Context, userID string) ([]models.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.CartItem{}
	for _, item := range m.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *MemoryCarts) UpdateQuantity(_ context.Context, itemID string, quantity int) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[itemID]
	if !ok {
		return nil, ErrNotFound
	}
	item.Quantity = quantity
	m.items[itemID] = item
	return &item, nil
}

func (m *MemoryCarts) Remove(_ context.Context, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, itemID)
	return nil
}

func (m *MemoryCarts) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, item := range m.items {
		if item.UserID == userID {
			delete(m.items, id)
		}
	}
	return nil
}

// --- Commandes ---

type MemoryOrders struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{orders: make(map[string]models.Order)}
}

func (m *MemoryOrders) Create(_ context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o.ID = uuid.NewString()
	o.Status = models.OrderPending
	o.PaymentStatus = models.PaymentPending
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	m.orders[o.ID] = *o
	return nil
}

func (m *MemoryOrders) GetByID(_ context.Context, id string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (m *MemoryOrders) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MemoryOrders) UpdateStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	if !CanTransitionStatus(o.Status, status) {
		return ErrInvalidTransition
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	m.orders[id] = o
	return nil
}

func (m *MemoryOrders) UpdatePaymentStatus(_ context.Context, id, paymentStatus, intentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	if !CanTransitionPayment(o.PaymentStatus, paymentStatus) {
		return ErrInvalidTransition
	}
	o.PaymentStatus = paymentStatus
	if intentID != "" {
		o.PaymentIntentID = intentID
	}
	o.UpdatedAt = time.Now()
	m.orders[id] = o
	return nil
}
