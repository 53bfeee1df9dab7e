package handlers

import (
	"net/http"
	"testing"

	"fastfeast_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

func (env *testEnv) createOrder(t *testing.T, token string) models.Order {
	t.Helper()

	w := env.do(t, http.MethodPost, "/orders", token, gin.H{
		"restaurantId": env.butterChicken.RestaurantID,
		"items": []gin.H{
			{"food_item_id": env.butterChicken.ID, "quantity": 2, "price": 120},
			{"food_item_id": env.dalMakhani.ID, "quantity": 1, "price": 90},
		},
		"totalAmount":     330,
		"deliveryAddress": "12 MG Road, Bengaluru",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create order: code %d (%s)", w.Code, w.Body.String())
	}
	return decode[models.Order](t, w)
}

func TestOrderCreateDefaultsAndClearsCart(t *testing.T) {
	env := newTestEnv(t, &stubIntents{})
	token, _ := env.register(t, "demo@fastfeast.com")

	env.do(t, http.MethodPost, "/cart", token, gin.H{
		"foodItemId": env.butterChicken.ID,
		"quantity":   2,
	})

	order := env.createOrder(t, token)
	if order.Status != models.OrderPending || order.PaymentStatus != models.PaymentPending {
		t.Fatalf("statuts %s/%s, attendu pending/pending", order.Status, order.PaymentStatus)
	}
	if order.TotalAmount != 330 {
		t.Fatalf("total %v, attendu 330 (persisté tel quel)", order.TotalAmount)
	}

	// Le panier est vidé après création
	w := env.do(t, http.MethodGet, "/cart", token, nil)
	lines := decode[[]models.CartLine](t, w)
	if len(lines) != 0 {
		t.Fatalf("panier non vidé: %d lignes", len(lines))
	}
}

func TestOrderCreateValidation(t *testing.T) {
	env := newTestEnv(t, &stubIntents{})
	token, _ := env.register(t, "demo@fastfeast.com")

	// Sans lignes
	w := env.do(t, http.MethodPost, "/orders", token, gin.H{
		"restaurantId":    env.butterChicken.RestaurantID,
		"items":           []gin.H{},
		"deliveryAddress": "12 MG Road",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("commande vide: code %d, attendu 400", w.Code)
	}

	// Quantité invalide dans une ligne
	w = env.do(t, http.MethodPost, "/orders", token, gin.H{
		"restaurantId": env.butterChicken.RestaurantID,
		"items": []gin.H{
			{"food_item_id": env.butterChicken.ID, "quantity": 0, "price": 120},
		},
		"deliveryAddress": "12 MG Road",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("quantité 0: code %d, attendu 400", w.Code)
	}

	// Sans adresse
	w = env.do(t, http.MethodPost, "/orders", token, gin.H{
		"restaurantId": env.butterChicken.RestaurantID,
		"items": []gin.H{
			{"food_item_id": env.butterChicken.ID, "quantity": 1, "price": 120},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("sans adresse: code %d, attendu 400", w.Code)
	}
}

func TestOrderGetOwnership(t *testing.T) {
	env := newTestEnv(t, &stubIntents{})
	token, _ := env.register(t, "demo@fastfeast.com")
	order := env.createOrder(t, token)

	w := env.do(t, http.MethodGet, "/orders/"+order.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: code %d", w.Code)
	}

	// Un autre utilisateur : 404, pas 403 — on ne révèle pas l'existence
	otherToken, _ := env.register(t, "autre@fastfeast.com")
	w = env.do(t, http.MethodGet, "/orders/"+order.ID, otherToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("commande d'autrui: code %d, attendu 404", w.Code)
	}

	w = env.do(t, http.MethodGet, "/orders/inexistante", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("commande inexistante: code %d, attendu 404", w.Code)
	}
}

func TestOrderListPerUser(t *testing.T) {
	env := newTestEnv(t, &stubIntents{})
	token, _ := env.register(t, "demo@fastfeast.com")
	otherToken, _ := env.register(t, "autre@fastfeast.com")

	env.createOrder(t, token)
	env.createOrder(t, token)

	w := env.do(t, http.MethodGet, "/orders", token, nil)
	mine := decode[[]models.Order](t, w)
	if len(mine) != 2 {
		t.Fatalf("%d commandes, attendu 2", len(mine))
	}

	w = env.do(t, http.MethodGet, "/orders", otherToken, nil)
	theirs := decode[[]models.Order](t, w)
	if len(theirs) != 0 {
		t.Fatalf("l'autre utilisateur voit %d commandes, attendu 0", len(theirs))
	}
}

func TestOrderUpdateStatusLifecycle(t *testing.T) {
	env := newTestEnv(t, &stubIntents{})
	token, _ := env.register(t, "demo@fastfeast.com")
	order := env.createOrder(t, token)

	// pending → preparing saute confirmed : interdit
	w := env.do(t, http.MethodPatch, "/orders/"+order.ID+"/status", token, gin.H{"status": "preparing"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("transition interdite: code %d, attendu 400", w.Code)
	}

	for _, status := range []string{"confirmed", "preparing", "out_for_delivery", "delivered"} {
		w = env.do(t, http.MethodPatch, "/orders/"+order.ID+"/status", token, gin.H{"status": status})
		if w.Code != http.StatusOK {
			t.Fatalf("→ %s: code %d (%s)", status, w.Code, w.Body.String())
		}
		got := decode[models.Order](t, w)
		if got.Status != status {
			t.Fatalf("statut %s, attendu %s", got.Status, status)
		}
	}

	// Statut inconnu
	w = env.do(t, http.MethodPatch, "/orders/"+order.ID+"/status", token, gin.H{"status": "shipped"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("statut inconnu: code %d, attendu 400", w.Code)
	}

	// Un autre utilisateur ne pilote pas la commande
	otherToken, _ := env.register(t, "autre@fastfeast.com")
	w = env.do(t, http.MethodPatch, "/orders/"+order.ID+"/status", otherToken, gin.H{"status": "cancelled"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("commande d'autrui: code %d, attendu 404", w.Code)
	}
}

func TestOrderCancelFromPending(t *testing.T) {
	env := newTestEnv(t, &stubIntents{})
	token, _ := env.register(t, "demo@fastfeast.com")
	order := env.createOrder(t, token)

	w := env.do(t, http.MethodPatch, "/orders/"+order.ID+"/status", token, gin.H{"status": "cancelled"})
	if w.Code != http.StatusOK {
		t.Fatalf("annulation: code %d (%s)", w.Code, w.Body.String())
	}

	// cancelled est terminal
	w = env.do(t, http.MethodPatch, "/orders/"+order.ID+"/status", token, gin.H{"status": "confirmed"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("reprise après annulation: code %d, attendu 400", w.Code)
	}
}
