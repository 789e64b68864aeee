package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncortesv/tienda-backend/internal/models"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	store := NewMemoryStore()

	customer := &models.Customer{Name: "Jane Doe", NormalizedName: "jane doe", Phone: "555-1111"}
	require.NoError(t, store.CreateCustomer(customer))
	assert.NotEmpty(t, customer.ID)
	assert.False(t, customer.CreatedAt.IsZero())

	found, err := store.GetCustomerByNormalizedName("jane doe")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Jane Doe", found.Name)

	missing, err := store.GetCustomerByNormalizedName("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStoreListIsSorted(t *testing.T) {
	store := NewMemoryStore()

	for _, name := range []string{"Pedro Perez", "Ana Gil", "Jane Doe"} {
		require.NoError(t, store.CreateCustomer(&models.Customer{Name: name, NormalizedName: name}))
	}

	customers, err := store.ListCustomers()
	require.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, "Ana Gil", customers[0].Name)
	assert.Equal(t, "Jane Doe", customers[1].Name)
	assert.Equal(t, "Pedro Perez", customers[2].Name)
}

func TestMemoryStoreSearch(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.CreateCustomer(&models.Customer{Name: "Jane Doe", NormalizedName: "jane doe"}))
	require.NoError(t, store.CreateCustomer(&models.Customer{Name: "Pedro Perez", NormalizedName: "pedro perez"}))

	results, err := store.SearchCustomers("DOE")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Jane Doe", results[0].Name)

	none, err := store.SearchCustomers("  ")
	require.NoError(t, err)
	assert.Empty(t, none)
}
