package store

import (
	"context"
	"strings"
	"time"

	"fastfeast_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaUsers stocke les comptes dans le keyspace utilisateurs.
// Deux tables : users (par id) et users_by_email (index d'unicité et de login).
type ScyllaUsers struct {
	session *gocql.Session
}

func NewScyllaUsers(session *gocql.Session) *ScyllaUsers {
	return &ScyllaUsers{session: session}
}

func (s *ScyllaUsers) Create(ctx context.Context, u *models.User) error {
	email := strings.ToLower(u.Email)

	var existingID string
	err := s.session.Query("SELECT user_id FROM users_by_email WHERE email = ?", email).
		WithContext(ctx).Scan(&existingID)
	if err == nil {
		return ErrEmailTaken
	}
	if err != gocql.ErrNotFound {
		return err
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()

	if err := s.session.Query(`INSERT INTO users
		(user_id, email, password, name, phone, address, provider, provider_id, stripe_customer_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, email, u.Password, u.Name, u.Phone, u.Address,
		u.Provider, u.ProviderID, u.StripeCustomerID, u.CreatedAt).
		WithContext(ctx).Exec(); err != nil {
		return err
	}

	return s.session.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)", email, u.ID).
		WithContext(ctx).Exec()
}

func (s *ScyllaUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var id string
	err := s.session.Query("SELECT user_id FROM users_by_email WHERE email = ?", strings.ToLower(email)).
		WithContext(ctx).Scan(&id)
	if err == gocql.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *ScyllaUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	u := models.User{ID: id}
	err := s.session.Query(`SELECT email, password, name, phone, address, provider, provider_id, stripe_customer_id, created_at
		FROM users WHERE user_id = ?`, id).
		WithContext(ctx).Scan(&u.Email, &u.Password, &u.Name, &u.Phone, &u.Address,
		&u.Provider, &u.ProviderID, &u.StripeCustomerID, &u.CreatedAt)
	if err == gocql.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *ScyllaUsers) Update(ctx context.Context, u *models.User) error {
	return s.session.Query(`UPDATE users
		SET name = ?, phone = ?, address = ?, stripe_customer_id = ? WHERE user_id = ?`,
		u.Name, u.Phone, u.Address, u.StripeCustomerID, u.ID).
		WithContext(ctx).Exec()
}
