package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ncortesv/tienda-backend/internal/models"
)

// MemoryStore holds all data in memory, for tests and local development
type MemoryStore struct {
	customerMu sync.RWMutex
	customers  map[string]*models.Customer // keyed by normalized name
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: make(map[string]*models.Customer),
	}
}

func (m *MemoryStore) CreateCustomer(customer *models.Customer) error {
	m.customerMu.Lock()
	defer m.customerMu.Unlock()

	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	m.customers[customer.NormalizedName] = customer
	return nil
}

func (m *MemoryStore) GetCustomerByNormalizedName(normalized string) (*models.Customer, error) {
	m.customerMu.RLock()
	defer m.customerMu.RUnlock()

	customer, exists := m.customers[normalized]
	if !exists {
		return nil, nil
	}
	return customer, nil
}

func (m *MemoryStore) ListCustomers() ([]*models.Customer, error) {
	m.customerMu.RLock()
	defer m.customerMu.RUnlock()

	customers := make([]*models.Customer, 0, len(m.customers))
	for _, customer := range m.customers {
		customers = append(customers, customer)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Name < customers[j].Name
	})
	return customers, nil
}

func (m *MemoryStore) SearchCustomers(term string) ([]*models.Customer, error) {
	m.customerMu.RLock()
	defer m.customerMu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil, nil
	}

	var results []*models.Customer
	for _, customer := range m.customers {
		if strings.Contains(customer.NormalizedName, needle) {
			results = append(results, customer)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}
