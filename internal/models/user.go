package models

import "time"

type User struct {
	ID               string    `json:"user_id"`
	Name             string    `json:"name,omitempty"`
	Email            string    `json:"email"`
	Password         string    `json:"-"`
	Phone            string    `json:"phone,omitempty"`
	Address          string    `json:"address,omitempty"`
	Provider         string    `json:"provider,omitempty"`
	ProviderID       string    `json:"-"`
	StripeCustomerID string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}
