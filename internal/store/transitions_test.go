package store

import (
	"testing"

	"fastfeast_back_end/internal/models"
)

func TestCanTransitionStatus(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.OrderPending, models.OrderConfirmed, true},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderPending, models.OrderDelivered, false},
		{models.OrderConfirmed, models.OrderPreparing, true},
		{models.OrderPreparing, models.OrderOutForDelivery, true},
		{models.OrderOutForDelivery, models.OrderDelivered, true},
		{models.OrderOutForDelivery, models.OrderCancelled, true},
		{models.OrderDelivered, models.OrderCancelled, false},
		{models.OrderCancelled, models.OrderConfirmed, false},
		// from == to toléré (écriture idempotente)
		{models.OrderDelivered, models.OrderDelivered, true},
		{models.OrderPending, models.OrderPending, true},
	}
	for _, c := range cases {
		if got := CanTransitionStatus(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionStatus(%s, %s) = %v, attendu %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCanTransitionPayment(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.PaymentPending, models.PaymentPaid, true},
		{models.PaymentPending, models.PaymentFailed, true},
		{models.PaymentPaid, models.PaymentFailed, false},
		{models.PaymentFailed, models.PaymentPaid, false},
		{models.PaymentPaid, models.PaymentPaid, true},
	}
	for _, c := range cases {
		if got := CanTransitionPayment(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionPayment(%s, %s) = %v, attendu %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{
		models.OrderPending, models.OrderConfirmed, models.OrderPreparing,
		models.OrderOutForDelivery, models.OrderDelivered, models.OrderCancelled,
	} {
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%s) = false", s)
		}
	}
	if IsValidStatus("shipped") {
		t.Error("IsValidStatus(shipped) = true, statut inconnu")
	}
}
