package store

import (
	"context"
	"encoding/json"
	"time"

	"fastfeast_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaOrders stocke les commandes dans le keyspace commandes. Les lignes de
// commande sont figées en JSON dans la colonne items_json : instantané au
// moment de la création, jamais rejoué contre le catalogue.
type ScyllaOrders struct {
	session *gocql.Session
}

func NewScyllaOrders(session *gocql.Session) *ScyllaOrders {
	return &ScyllaOrders{session: session}
}

func (s *ScyllaOrders) Create(ctx context.Context, o *models.Order) error {
	o.ID = uuid.NewString()
	o.Status = models.OrderPending
	o.PaymentStatus = models.PaymentPending
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}

	return s.session.Query(`INSERT INTO orders
		(order_id, user_id, restaurant_id, items_json, total_amount, delivery_address, delivery_fee,
		 status, payment_status, payment_intent_id, estimated_delivery_time, special_instructions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.RestaurantID, string(itemsJSON), o.TotalAmount, o.DeliveryAddress, o.DeliveryFee,
		o.Status, o.PaymentStatus, o.PaymentIntentID, o.EstimatedDeliveryTime, o.SpecialInstructions,
		o.CreatedAt, o.UpdatedAt).
		WithContext(ctx).Exec()
}

func (s *ScyllaOrders) GetByID(ctx context.Context, id string) (*models.Order, error) {
	o := models.Order{ID: id}
	var itemsJSON string
	err := s.session.Query(`SELECT user_id, restaurant_id, items_json, total_amount, delivery_address, delivery_fee,
		status, payment_status, payment_intent_id, estimated_delivery_time, special_instructions, created_at, updated_at
		FROM orders WHERE order_id = ?`, id).
		WithContext(ctx).Scan(&o.UserID, &o.RestaurantID, &itemsJSON, &o.TotalAmount, &o.DeliveryAddress,
		&o.DeliveryFee, &o.Status, &o.PaymentStatus, &o.PaymentIntentID, &o.EstimatedDeliveryTime,
		&o.SpecialInstructions, &o.CreatedAt, &o.UpdatedAt)
	if err == gocql.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *ScyllaOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	iter := s.session.Query(`SELECT order_id, restaurant_id, items_json, total_amount, delivery_address, delivery_fee,
		status, payment_status, payment_intent_id, estimated_delivery_time, special_instructions, created_at, updated_at
		FROM orders WHERE user_id = ? ALLOW FILTERING`, userID).
		WithContext(ctx).Iter()

	out := []models.Order{}
	var itemsJSON string
	o := models.Order{UserID: userID}
	for iter.Scan(&o.ID, &o.RestaurantID, &itemsJSON, &o.TotalAmount, &o.DeliveryAddress, &o.DeliveryFee,
		&o.Status, &o.PaymentStatus, &o.PaymentIntentID, &o.EstimatedDeliveryTime,
		&o.SpecialInstructions, &o.CreatedAt, &o.UpdatedAt) {
		o.Items = nil
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ScyllaOrders) UpdateStatus(ctx context.Context, id, status string) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransitionStatus(current.Status, status) {
		return ErrInvalidTransition
	}
	return s.session.Query("UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?",
		status, time.Now(), id).WithContext(ctx).Exec()
}

func (s *ScyllaOrders) UpdatePaymentStatus(ctx context.Context, id, paymentStatus, intentID string) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransitionPayment(current.PaymentStatus, paymentStatus) {
		return ErrInvalidTransition
	}
	if intentID == "" {
		intentID = current.PaymentIntentID
	}
	return s.session.Query("UPDATE orders SET payment_status = ?, payment_intent_id = ?, updated_at = ? WHERE order_id = ?",
		paymentStatus, intentID, time.Now(), id).WithContext(ctx).Exec()
}
