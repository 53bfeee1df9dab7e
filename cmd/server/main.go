package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"fastfeast_back_end/internal/config"
	"fastfeast_back_end/internal/database"
	"fastfeast_back_end/internal/payment"
	"fastfeast_back_end/internal/routes"
	"fastfeast_back_end/internal/search"
	"fastfeast_back_end/internal/seed"
	"fastfeast_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY manquante — les paiements échoueront")
	} else {
		log.Println("✅ Stripe initialisé")
	}

	database.ConnectDatabases()
	defer database.CloseScylla()

	deps := buildDeps()

	initOAuthProviders()

	ctx := context.Background()
	if err := seed.Catalog(ctx, deps.Catalog, deps.Index); err != nil {
		log.Println("⚠️ Seed du catalogue échoué:", err)
	}

	r := gin.Default()
	routes.RegisterRoutes(r, deps)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur FastFeast lancé sur le port", port)
	r.Run(":" + port)
}

// buildDeps choisit les implémentations de stores : ScyllaDB/Redis quand ils
// sont configurés, mémoire sinon (mode dev).
func buildDeps() routes.Deps {
	deps := routes.Deps{
		Users:   store.NewMemoryUsers(),
		Catalog: store.NewMemoryCatalog(),
		Carts:   store.NewMemoryCarts(),
		Orders:  store.NewMemoryOrders(),
	}

	if database.Scylla != nil {
		if session, err := database.GetUsersSession(); err == nil {
			deps.Users = store.NewScyllaUsers(session)
		} else {
			log.Fatal("❌ Session ScyllaDB utilisateurs:", err)
		}
		if session, err := database.GetCatalogSession(); err == nil {
			deps.Catalog = store.NewScyllaCatalog(session)
		} else {
			log.Fatal("❌ Session ScyllaDB catalogue:", err)
		}
		if session, err := database.GetOrdersSession(); err == nil {
			deps.Orders = store.NewScyllaOrders(session)
		} else {
			log.Fatal("❌ Session ScyllaDB commandes:", err)
		}
	}

	if database.Redis != nil {
		deps.Carts = store.NewRedisCarts(database.Redis)
	}

	deps.Index = search.NewFoodIndex(database.Elastic)
	deps.Coordinator = payment.NewCoordinator(deps.Orders, payment.StripeIntents{})

	return deps
}

func initOAuthProviders() {
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Println("⚠️ SESSION_SECRET manquant — login social désactivé")
		return
	}

	cookieStore := sessions.NewCookieStore([]byte(sessionSecret))
	cookieStore.MaxAge(86400 * 30)
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // false en dev, true en prod
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = cookieStore

	gothic.GetProviderName = func(req *http.Request) (string, error) {
		if provider := req.URL.Query().Get("provider"); provider != "" {
			return provider, nil
		}
		if provider := req.FormValue("provider"); provider != "" {
			return provider, nil
		}
		return "", errors.New("provider not found")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	var providers []goth.Provider

	if id, secret := os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"); id != "" && secret != "" {
		providers = append(providers, google.New(id, secret, baseURL+"/auth/google/callback"))
		log.Println("✅ Google OAuth activé")
	}
	if id, secret := os.Getenv("FACEBOOK_CLIENT_ID"), os.Getenv("FACEBOOK_CLIENT_SECRET"); id != "" && secret != "" {
		providers = append(providers, facebook.New(id, secret, baseURL+"/auth/facebook/callback"))
		log.Println("✅ Facebook OAuth activé")
	}

	if len(providers) == 0 {
		log.Println("⚠️ Aucun provider OAuth configuré")
		return
	}

	goth.UseProviders(providers...)
	log.Printf("✅ %d OAuth provider(s) initialisé(s)", len(providers))
}
