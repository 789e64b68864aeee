package models

import (
	"time"
)

// Customer is a registered store customer, created from WhatsApp
type Customer struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"-" gorm:"uniqueIndex"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CustomerDraft holds the fields parsed from a free-text WhatsApp message
// before the customer is created. It is never persisted as-is.
type CustomerDraft struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}
