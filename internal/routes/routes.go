package routes

import (
	"fastfeast_back_end/internal/handlers"
	"fastfeast_back_end/internal/middleware"
	"fastfeast_back_end/internal/payment"
	"fastfeast_back_end/internal/search"
	"fastfeast_back_end/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps regroupe les dépendances injectées dans les handlers : les stores sont
// des interfaces, les tests branchent les implémentations mémoire.
type Deps struct {
	Users       store.UserStore
	Catalog     store.CatalogStore
	Carts       store.CartStore
	Orders      store.OrderStore
	Coordinator *payment.Coordinator
	Index       *search.FoodIndex
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: false,
	}))

	auth := &handlers.AuthHandler{Users: deps.Users}
	oauth := &handlers.OAuthHandler{Users: deps.Users}
	catalog := &handlers.CatalogHandler{Catalog: deps.Catalog, Index: deps.Index}
	cart := &handlers.CartHandler{Carts: deps.Carts, Catalog: deps.Catalog}
	orders := &handlers.OrderHandler{Orders: deps.Orders, Carts: deps.Carts, Locks: store.NewKeyedMutex()}
	pay := &handlers.PaymentHandler{Coordinator: deps.Coordinator, Users: deps.Users, Orders: deps.Orders}
	track := &handlers.TrackHandler{Orders: deps.Orders}

	// Auth
	r.POST("/register", middleware.RegisterRateLimit(), auth.Register)
	r.POST("/login", middleware.LoginRateLimit(), auth.Login)
	r.GET("/auth/:provider", oauth.BeginAuth)
	r.GET("/auth/:provider/callback", oauth.CallbackAuth)
	r.POST("/auth/google/exchange", oauth.ExchangeGoogleCode)

	// Catalogue (public)
	r.GET("/restaurants", catalog.ListRestaurants)
	r.GET("/restaurants/:id", catalog.GetRestaurant)
	r.GET("/restaurants/:id/menu", catalog.GetMenu)
	r.GET("/food-items/search", catalog.SearchFoodItems)
	r.GET("/food-items/category/:category", catalog.ListByCategory)

	// Webhook processeur (signé, pas de JWT)
	r.POST("/webhook/stripe", pay.StripeWebhook)

	// Suivi websocket : token en query, vérifié dans le handler
	r.GET("/ws/orders/:id", track.Track)

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

		protected.POST("/images", handlers.UploadImage)
		protected.GET("/images/:object/url", handlers.GetSignedImageURL)
	}
}
