package storage

import (
	"github.com/ncortesv/tienda-backend/internal/models"
)

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for customer registry storage.
// GetCustomerByNormalizedName returns (nil, nil) when there is no match.
type Store interface {
	CreateCustomer(customer *models.Customer) error
	GetCustomerByNormalizedName(normalized string) (*models.Customer, error)
	ListCustomers() ([]*models.Customer, error)
	SearchCustomers(term string) ([]*models.Customer, error)
}
