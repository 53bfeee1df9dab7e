package payment

import (
	"context"
	"errors"
	"testing"

	"fastfeast_back_end/internal/models"
	"fastfeast_back_end/internal/store"

	"github.com/stripe/stripe-go/v83"
)

// fakeIntents simule le processeur : New capture les paramètres, Get rejoue
// l'intent préparé par le test.
type fakeIntents struct {
	created *stripe.PaymentIntentParams
	newErr  error
	intent  *stripe.PaymentIntent
	getErr  error
}

func (f *fakeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if f.newErr != nil {
		return nil, f.newErr
	}
	f.created = params
	return &stripe.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Amount:       *params.Amount,
		Metadata:     params.Metadata,
	}, nil
}

func (f *fakeIntents) Get(id string, _ *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.intent, nil
}

func newOrder(t *testing.T, orders store.OrderStore) *models.Order {
	t.Helper()
	o := &models.Order{
		UserID:       "user-1",
		RestaurantID: "resto-1",
		Items: []models.OrderItem{
			{FoodItemID: "plat-1", Quantity: 2, Price: 120},
			{FoodItemID: "plat-2", Quantity: 1, Price: 90},
		},
		TotalAmount:     330,
		DeliveryAddress: "12 MG Road, Bengaluru",
	}
	if err := orders.Create(context.Background(), o); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return o
}

func TestCreateIntent(t *testing.T) {
	ctx := context.Background()
	orders := store.NewMemoryOrders()
	order := newOrder(t, orders)

	fake := &fakeIntents{}
	co := NewCoordinator(orders, fake)

	intent, err := co.CreateIntent(ctx, "user-1", order.ID, 330)
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if intent.ClientSecret == "" {
		t.Fatal("clientSecret vide")
	}

	// Montant converti en paise
	if got := *fake.created.Amount; got != 33000 {
		t.Fatalf("montant envoyé %d, attendu 33000 paise", got)
	}
	if fake.created.Metadata["order_id"] != order.ID {
		t.Fatal("metadata order_id absent")
	}

	got, _ := orders.GetByID(ctx, order.ID)
	if got.PaymentIntentID != "pi_test" {
		t.Fatalf("intent id non accroché à la commande: %q", got.PaymentIntentID)
	}
	if got.Status != models.OrderPending {
		t.Fatalf("la création d'intent ne doit pas toucher le statut, obtenu %s", got.Status)
	}
}

func TestCreateIntentAmountMismatch(t *testing.T) {
	ctx := context.Background()
	orders := store.NewMemoryOrders()
	order := newOrder(t, orders)

	co := NewCoordinator(orders, &fakeIntents{})

	if _, err := co.CreateIntent(ctx, "user-1", order.ID, 500); !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("attendu ErrAmountMismatch, obtenu %v", err)
	}

	got, _ := orders.GetByID(ctx, order.ID)
	if got.PaymentIntentID != "" {
		t.Fatal("aucun intent ne doit être accroché après un refus")
	}
}

func TestCreateIntentWrongOwner(t *testing.T) {
	ctx := context.Background()
	orders := store.NewMemoryOrders()
	order := newOrder(t, orders)

	co := NewCoordinator(orders, &fakeIntents{})

	// La commande d'un autre est introuvable, pas interdite
	if _, err := co.CreateIntent(ctx, "user-2", order.ID, 330); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("attendu ErrNotFound, obtenu %v", err)
	}
}

func TestCreateIntentProcessorFailure(t *testing.T) {
	ctx := context.Background()
	orders := store.NewMemoryOrders()
	order := newOrder(t, orders)

	co := NewCoordinator(orders, &fakeIntents{newErr: errors.New("api down")})

	if _, err := co.CreateIntent(ctx, "user-1", order.ID, 330); err == nil {
		t.Fatal("erreur processeur attendue")
	}

	// La commande reste dans son état antérieur
	got, _ := orders.GetByID(ctx, order.ID)
	if got.PaymentStatus != models.PaymentPending || got.PaymentIntentID != "" {
		t.Fatalf("commande mutée malgré l'échec: %s / %q", got.PaymentStatus, got.PaymentIntentID)
	}
}

func TestConfirmIntentSuccess(t *testing.T) {
	ctx := context.Background()
	orders := store.NewMemoryOrders()
	order := newOrder(t, orders)

	fake := &fakeIntents{intent: &stripe.PaymentIntent{
		ID:       "pi_test",
		Status:   stripe.PaymentIntentStatusSucceeded,
		Metadata: map[string]string{"order_id": order.ID},
	}}
	co := NewCoordinator(orders, fake)

	result, err := co.ConfirmIntent(ctx, "pi_test")
	if err != nil {
		t.Fatalf("ConfirmIntent: %v", err)
	}
	if !result.Success {
		t.Fatalf("échec inattendu: %s", result.Message)
	}
	if result.Order.PaymentStatus != models.PaymentPaid || result.Order.Status != models.OrderConfirmed {
		t.Fatalf("statuts %s/%s, attendu paid/confirmed", result.Order.PaymentStatus, result.Order.Status)
	}

	// Rejoué : idempotent, toujours un succès
	again, err := co.ConfirmIntent(ctx, "pi_test")
	if err != nil {
		t.Fatalf("ConfirmIntent rejoué: %v", err)
	}
	if !again.Success {
		t.Fatal("la confirmation rejouée doit rester un succès")
	}
}

func TestConfirmIntentNotSucceeded(t *testing.T) {
	ctx := context.Background()
	orders := store.NewMemoryOrders()
	order := newOrder(t, orders)

	fake := &fakeIntents{intent: &stripe.PaymentIntent{
		ID:       "pi_test",
		Status:   stripe.PaymentIntentStatusRequiresPaymentMethod,
		Metadata: map[string]string{"order_id": order.ID},
	}}
	co := NewCoordinator(orders, fake)

	result, err := co.ConfirmIntent(ctx, "pi_test")
	if err != nil {
		t.Fatalf("ConfirmIntent: %v", err)
	}
	if result.Success {
		t.Fatal("un intent non abouti ne doit pas être un succès")
	}

	// La commande n'est pas touchée
	got, _ := orders.GetByID(ctx, order.ID)
	if got.PaymentStatus != models.PaymentPending || got.Status != models.OrderPending {
		t.Fatalf("commande mutée: %s/%s", got.PaymentStatus, got.Status)
	}
}

func TestConfirmIntentMissingMetadata(t *testing.T) {
	orders := store.NewMemoryOrders()
	fake := &fakeIntents{intent: &stripe.PaymentIntent{
		ID:     "pi_test",
		Status: stripe.PaymentIntentStatusSucceeded,
	}}
	co := NewCoordinator(orders, fake)

	if _, err := co.ConfirmIntent(context.Background(), "pi_test"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("attendu ErrNotFound sans metadata order_id, obtenu %v", err)
	}
}

func TestMarkFailed(t *testing.T) {
	ctx := context.Background()
	orders := store.NewMemoryOrders()
	order := newOrder(t, orders)

	co := NewCoordinator(orders, &fakeIntents{})

	if err := co.MarkFailed(ctx, order.ID, "pi_test"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	got, _ := orders.GetByID(ctx, order.ID)
	if got.PaymentStatus != models.PaymentFailed {
		t.Fatalf("payment_status %s, attendu failed", got.PaymentStatus)
	}
	// La commande elle-même reste pending : l'utilisateur peut retenter
	if got.Status != models.OrderPending {
		t.Fatalf("status %s, attendu pending", got.Status)
	}
}

func TestOrderTotal(t *testing.T) {
	o := &models.Order{
		Items: []models.OrderItem{
			{Quantity: 2, Price: 120},
			{Quantity: 1, Price: 90},
		},
		DeliveryFee: 40,
	}
	if got := OrderTotal(o); got != 370 {
		t.Fatalf("OrderTotal = %v, attendu 370", got)
	}
}
