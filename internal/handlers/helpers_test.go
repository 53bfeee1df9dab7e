package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fastfeast_back_end/internal/middleware"
	"fastfeast_back_end/internal/models"
	"fastfeast_back_end/internal/payment"
	"fastfeast_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

// stubIntents simule le processeur de paiement. New réussit toujours ;
// Get retourne l'intent préparé par le test.
type stubIntents struct {
	intent *stripe.PaymentIntent
}

func (s *stubIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	intent := &stripe.PaymentIntent{
		ID:           "pi_stub",
		ClientSecret: "pi_stub_secret",
		Amount:       *params.Amount,
		Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
		Metadata:     params.Metadata,
	}
	if s.intent == nil {
		s.intent = intent
	}
	return intent, nil
}

func (s *stubIntents) Get(id string, _ *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if s.intent == nil || s.intent.ID != id {
		return nil, fmt.Errorf("intent %s inconnu", id)
	}
	return s.intent, nil
}

// markSucceeded simule le paiement abouti côté processeur.
func (s *stubIntents) markSucceeded() {
	s.intent.Status = stripe.PaymentIntentStatusSucceeded
}

// testEnv câble les handlers sur les stores mémoire, comme le ferait le
// serveur en mode dev.
type testEnv struct {
	router  *gin.Engine
	users   *store.MemoryUsers
	catalog *store.MemoryCatalog
	carts   *store.MemoryCarts
	orders  *store.MemoryOrders

	// Plats seedés pour les tests (120₹ et 90₹)
	butterChicken models.FoodItem
	dalMakhani    models.FoodItem
	soldOut       models.FoodItem
}

func newTestEnv(t *testing.T, intents payment.IntentClient) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:   store.NewMemoryUsers(),
		catalog: store.NewMemoryCatalog(),
		carts:   store.NewMemoryCarts(),
		orders:  store.NewMemoryOrders(),
	}

	ctx := context.Background()
	resto := models.Restaurant{Name: "Punjabi Tadka", Cuisine: "North Indian", IsOpen: true}
	env.catalog.CreateRestaurant(ctx, &resto)

	env.butterChicken = models.FoodItem{
		RestaurantID: resto.ID, Name: "Butter Chicken", Price: 120,
		Category: "Main Course", IsAvailable: true,
	}
	env.dalMakhani = models.FoodItem{
		RestaurantID: resto.ID, Name: "Dal Makhani", Price: 90,
		Category: "Main Course", IsVeg: true, IsAvailable: true,
	}
	env.soldOut = models.FoodItem{
		RestaurantID: resto.ID, Name: "Garlic Naan", Price: 45,
		Category: "Breads", IsAvailable: false,
	}
	env.catalog.CreateFoodItem(ctx, &env.butterChicken)
	env.catalog.CreateFoodItem(ctx, &env.dalMakhani)
	env.catalog.CreateFoodItem(ctx, &env.soldOut)

	auth := &AuthHandler{Users: env.users}
	catalogH := &CatalogHandler{Catalog: env.catalog}
	cart := &CartHandler{Carts: env.carts, Catalog: env.catalog}
	orders := &OrderHandler{Orders: env.orders, Carts: env.carts, Locks: store.NewKeyedMutex()}
	pay := &PaymentHandler{
		Coordinator: payment.NewCoordinator(env.orders, intents),
		Users:       env.users,
		Orders:      env.orders,
	}

	r := gin.New()
	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)
	r.GET("/restaurants", catalogH.ListRestaurants)
	r.GET("/restaurants/:id", catalogH.GetRestaurant)
	r.GET("/restaurants/:id/menu", catalogH.GetMenu)
	r.GET("/food-items/search", catalogH.SearchFoodItems)
	r.GET("/food-items/category/:category", catalogH.ListByCategory)

	protected := r.Group("/")
	protected.Use(middleware.AuthRequired())
	{
		protected.POST("/cart", cart.Add)
		protected.GET("/cart", cart.List)
		protected.PUT("/cart/:id", cart.UpdateQuantity)
		protected.DELETE("/cart/:id", cart.Remove)
		protected.DELETE("/cart", cart.Clear)
		protected.POST("/orders", orders.Create)
		protected.GET("/orders", orders.List)
		protected.GET("/orders/:id", orders.Get)
		protected.PATCH("/orders/:id/status", orders.UpdateStatus)
		protected.POST("/create-payment-intent", pay.CreateIntent)
		protected.POST("/confirm-payment", pay.Confirm)
	}

	env.router = r
	return env
}

// do exécute une requête JSON, avec Bearer token si fourni.
func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// register crée un compte et retourne (token, user).
func (env *testEnv) register(t *testing.T, email string) (string, models.User) {
	t.Helper()

	w := env.do(t, http.MethodPost, "/register", "", gin.H{
		"name":     "Demo",
		"email":    email,
		"password": "s3cret-pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register: code %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("register sans token")
	}
	return resp.Token, resp.User
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v (%s)", err, w.Body.String())
	}
	return out
}
