package store

import "fastfeast_back_end/internal/models"

// Tables de transitions autorisées. La source observée n'imposait aucune
// table ; on la rend explicite ici, ce qui est un changement de comportement
// assumé : toute transition hors table est rejetée avec ErrInvalidTransition.
var orderTransitions = map[string][]string{
	models.OrderPending:        {models.OrderConfirmed, models.OrderCancelled},
	models.OrderConfirmed:      {models.OrderPreparing, models.OrderCancelled},
	models.OrderPreparing:      {models.OrderOutForDelivery, models.OrderCancelled},
	models.OrderOutForDelivery: {models.OrderDelivered, models.OrderCancelled},
	models.OrderDelivered:      {},
	models.OrderCancelled:      {},
}

var paymentTransitions = map[string][]string{
	models.PaymentPending: {models.PaymentPaid, models.PaymentFailed},
	models.PaymentPaid:    {},
	models.PaymentFailed:  {},
}

// CanTransitionStatus indique si le statut de commande peut passer de from à to.
// from == to est toléré (écriture idempotente).
func CanTransitionStatus(from, to string) bool {
	return canTransition(orderTransitions, from, to)
}

// CanTransitionPayment indique si le statut de paiement peut passer de from à to.
func CanTransitionPayment(from, to string) bool {
	return canTransition(paymentTransitions, from, to)
}

func canTransition(table map[string][]string, from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidStatus vérifie qu'un statut de commande est connu.
func IsValidStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}
