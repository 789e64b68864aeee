package services

import (
	"strings"

	"github.com/ncortesv/tienda-backend/internal/models"
	"github.com/ncortesv/tienda-backend/internal/storage"
)

// CustomerService is the customer registry. Uniqueness is defined by the
// trimmed, lower-cased name; this service owns that invariant, not its
// callers.
type CustomerService struct {
	store storage.Store
}

// NewCustomerService creates a customer service backed by the given store
func NewCustomerService(store storage.Store) *CustomerService {
	return &CustomerService{store: store}
}

// NormalizeName reduces a customer name to its canonical form
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Create registers a new customer from a draft. Returns ErrCustomerExists
// when the normalized name is already taken and a *ValidationError when
// the name is empty.
func (s *CustomerService) Create(draft *models.CustomerDraft) (*models.Customer, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return nil, &ValidationError{Message: "El nombre es obligatorio para crear el cliente."}
	}

	normalized := NormalizeName(name)
	existing, err := s.store.GetCustomerByNormalizedName(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCustomerExists
	}

	customer := &models.Customer{
		Name:           name,
		NormalizedName: normalized,
		Phone:          strings.TrimSpace(draft.Phone),
		Email:          strings.TrimSpace(draft.Email),
	}
	if err := s.store.CreateCustomer(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByNormalizedName finds a customer by its canonical name, or nil
func (s *CustomerService) GetByNormalizedName(name string) (*models.Customer, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, nil
	}
	return s.store.GetCustomerByNormalizedName(normalized)
}

// List returns all customers ordered by name
func (s *CustomerService) List() ([]*models.Customer, error) {
	return s.store.ListCustomers()
}

// Search returns customers whose name contains the term
func (s *CustomerService) Search(term string) ([]*models.Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	return s.store.SearchCustomers(term)
}

// ParseCustomerDraft builds a draft from up to 3 message lines: name
// (required), phone, email. Blank lines are dropped; if nothing survives
// the whole trimmed text is used as the single line.
func ParseCustomerDraft(text string) *models.CustomerDraft {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		lines = []string{strings.TrimSpace(text)}
	}

	draft := &models.CustomerDraft{Name: lines[0]}
	if len(lines) > 1 {
		draft.Phone = lines[1]
	}
	if len(lines) > 2 {
		draft.Email = lines[2]
	}
	return draft
}
