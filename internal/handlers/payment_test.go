package handlers

import (
	"net/http"
	"testing"

	"fastfeast_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// Parcours complet : inscription → panier → commande → paiement → confirmation.
func TestCheckoutFlow(t *testing.T) {
	stub := &stubIntents{}
	env := newTestEnv(t, stub)
	token, _ := env.register(t, "demo@fastfeast.com")

	// 2× Butter Chicken (120) + 1× Dal Makhani (90)
	env.do(t, http.MethodPost, "/cart", token, gin.H{
		"foodItemId": env.butterChicken.ID, "quantity": 2,
	})
	env.do(t, http.MethodPost, "/cart", token, gin.H{
		"foodItemId": env.dalMakhani.ID, "quantity": 1,
	})

	order := env.createOrder(t, token)

	// Création de l'intent au bon montant
	w := env.do(t, http.MethodPost, "/create-payment-intent", token, gin.H{
		"amount":  330,
		"orderId": order.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create-payment-intent: code %d (%s)", w.Code, w.Body.String())
	}
	resp := decode[map[string]string](t, w)
	if resp["clientSecret"] == "" {
		t.Fatal("clientSecret absent")
	}

	// Confirmation avant que le processeur ait encaissé : pas de succès
	w = env.do(t, http.MethodPost, "/confirm-payment", token, gin.H{
		"paymentIntentId": stub.intent.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm-payment: code %d (%s)", w.Code, w.Body.String())
	}
	early := decode[map[string]any](t, w)
	if early["success"] == true {
		t.Fatal("succès annoncé alors que l'intent n'est pas abouti")
	}

	// Le processeur encaisse, la confirmation aboutit
	stub.markSucceeded()
	w = env.do(t, http.MethodPost, "/confirm-payment", token, gin.H{
		"paymentIntentId": stub.intent.ID,
	})
	confirmed := decode[map[string]any](t, w)
	if confirmed["success"] != true {
		t.Fatalf("confirmation échouée: %v", confirmed)
	}

	// La commande est paid + confirmed
	w = env.do(t, http.MethodGet, "/orders/"+order.ID, token, nil)
	final := decode[models.Order](t, w)
	if final.PaymentStatus != models.PaymentPaid || final.Status != models.OrderConfirmed {
		t.Fatalf("statuts %s/%s, attendu paid/confirmed", final.PaymentStatus, final.Status)
	}

	// Confirmation rejouée : idempotente
	w = env.do(t, http.MethodPost, "/confirm-payment", token, gin.H{
		"paymentIntentId": stub.intent.ID,
	})
	replayed := decode[map[string]any](t, w)
	if replayed["success"] != true {
		t.Fatalf("confirmation rejouée non idempotente: %v", replayed)
	}
}

func TestCreateIntentAmountMismatchHTTP(t *testing.T) {
	env := newTestEnv(t, &stubIntents{})
	token, _ := env.register(t, "demo@fastfeast.com")
	order := env.createOrder(t, token)

	w := env.do(t, http.MethodPost, "/create-payment-intent", token, gin.H{
		"amount":  500,
		"orderId": order.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("montant incohérent: code %d, attendu 400", w.Code)
	}
}

func TestCreateIntentOwnership(t *testing.T) {
	env := newTestEnv(t, &stubIntents{})
	token, _ := env.register(t, "demo@fastfeast.com")
	order := env.createOrder(t, token)

	otherToken, _ := env.register(t, "autre@fastfeast.com")
	w := env.do(t, http.MethodPost, "/create-payment-intent", otherToken, gin.H{
		"amount":  330,
		"orderId": order.ID,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("commande d'autrui: code %d, attendu 404", w.Code)
	}
}

func TestPaymentRequiresToken(t *testing.T) {
	env := newTestEnv(t, &stubIntents{})

	w := env.do(t, http.MethodPost, "/create-payment-intent", "", gin.H{
		"amount":  330,
		"orderId": "peu-importe",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("sans token: code %d, attendu 401", w.Code)
	}
}
