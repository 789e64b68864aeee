package storage

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ncortesv/tienda-backend/internal/models"
)

// DatabaseStore persists the customer registry in PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) CreateCustomer(customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	return d.db.Create(customer).Error
}

func (d *DatabaseStore) GetCustomerByNormalizedName(normalized string) (*models.Customer, error) {
	var customer models.Customer
	err := d.db.Where("normalized_name = ?", normalized).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (d *DatabaseStore) ListCustomers() ([]*models.Customer, error) {
	var customers []*models.Customer
	if err := d.db.Order("name asc").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (d *DatabaseStore) SearchCustomers(term string) ([]*models.Customer, error) {
	var customers []*models.Customer
	like := "%" + term + "%"
	err := d.db.Where("name ILIKE ? OR normalized_name ILIKE ?", like, like).
		Order("name asc").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
