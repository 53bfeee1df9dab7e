package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"fastfeast_back_end/internal/models"
	"fastfeast_back_end/internal/store"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// ErrAmountMismatch : le montant demandé ne correspond pas au total recalculé
// depuis les lignes de la commande. On refuse de créer l'intent plutôt que de
// faire confiance au client.
var ErrAmountMismatch = errors.New("montant incohérent avec la commande")

// IntentClient abstrait l'API PaymentIntent de Stripe pour pouvoir injecter
// un faux processeur dans les tests.
type IntentClient interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeIntents est l'implémentation réelle, adossée à la clé globale stripe.Key.
type StripeIntents struct{}

func (StripeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

func (StripeIntents) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(id, params)
}

// ConfirmResult est l'issue d'une confirmation d'intent.
type ConfirmResult struct {
	Success bool
	Message string
	Order   *models.Order
}

// Coordinator fait le pont entre une commande et le processeur de paiement.
// Les deux écritures de la confirmation (payment_status puis status) ne sont
// pas atomiques ; le verrou par commande les sérialise.
type Coordinator struct {
	Orders  store.OrderStore
	Intents IntentClient
	locks   *store.KeyedMutex
}

func NewCoordinator(orders store.OrderStore, intents IntentClient) *Coordinator {
	return &Coordinator{
		Orders:  orders,
		Intents: intents,
		locks:   store.NewKeyedMutex(),
	}
}

// CreateIntent crée un PaymentIntent pour la commande et accroche son id à la
// commande. Aucune mutation n'a lieu avant que l'appel au processeur ait
// réussi. Le montant est vérifié contre le total recalculé (lignes + frais de
// livraison), puis converti en paise.
func (co *Coordinator) CreateIntent(ctx context.Context, userID, orderID string, amount float64) (*stripe.PaymentIntent, error) {
	order, err := co.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Propriété : une commande d'un autre utilisateur est introuvable
	if order.UserID != userID {
		return nil, store.ErrNotFound
	}

	expected := OrderTotal(order)
	if math.Abs(expected-amount) > 0.009 {
		log.Printf("⚠️ Montant refusé pour %s : demandé %.2f, recalculé %.2f", orderID, amount, expected)
		return nil, ErrAmountMismatch
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(string(stripe.CurrencyINR)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"order_id": orderID,
			"user_id":  userID,
		},
	}

	intent, err := co.Intents.New(params)
	if err != nil {
		// La commande reste dans son état antérieur
		return nil, fmt.Errorf("erreur création paiement: %w", err)
	}

	if err := co.Orders.UpdatePaymentStatus(ctx, orderID, models.PaymentPending, intent.ID); err != nil {
		return nil, err
	}

	log.Printf("💳 PaymentIntent créé : %s (%.2f₹) pour commande %s", intent.ID, amount, orderID)
	return intent, nil
}

// ConfirmIntent relit l'intent chez le processeur et, en cas de succès,
// passe la commande en paid + confirmed. Tout autre statut laisse la
// commande intacte.
func (co *Coordinator) ConfirmIntent(ctx context.Context, intentID string) (*ConfirmResult, error) {
	intent, err := co.Intents.Get(intentID, nil)
	if err != nil {
		return nil, fmt.Errorf("erreur lecture paiement: %w", err)
	}

	orderID := intent.Metadata["order_id"]
	if orderID == "" {
		return nil, store.ErrNotFound
	}

	unlock := co.locks.Lock("order:" + orderID)
	defer unlock()

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return &ConfirmResult{
			Success: false,
			Message: fmt.Sprintf("paiement non abouti (statut: %s)", intent.Status),
		}, nil
	}

	order, err := co.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Rejoué (webhook + confirmation explicite) : déjà payé, on ne retouche rien
	if order.PaymentStatus == models.PaymentPaid {
		return &ConfirmResult{Success: true, Message: "paiement déjà confirmé", Order: order}, nil
	}

	if err := co.Orders.UpdatePaymentStatus(ctx, orderID, models.PaymentPaid, intent.ID); err != nil {
		return nil, err
	}
	if err := co.Orders.UpdateStatus(ctx, orderID, models.OrderConfirmed); err != nil {
		return nil, err
	}

	order, err = co.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Paiement confirmé : commande %s payée", orderID)
	return &ConfirmResult{Success: true, Message: "paiement confirmé", Order: order}, nil
}

// MarkFailed enregistre un échec de paiement signalé par le processeur.
func (co *Coordinator) MarkFailed(ctx context.Context, orderID, intentID string) error {
	unlock := co.locks.Lock("order:" + orderID)
	defer unlock()
	return co.Orders.UpdatePaymentStatus(ctx, orderID, models.PaymentFailed, intentID)
}

// OrderTotal recalcule le total d'une commande : somme des lignes + frais de
// livraison.
func OrderTotal(o *models.Order) float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total + o.DeliveryFee
}
