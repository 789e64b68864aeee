package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncortesv/tienda-backend/internal/models"
	"github.com/ncortesv/tienda-backend/internal/storage"
)

func TestParseCustomerDraft(t *testing.T) {
	draft := ParseCustomerDraft("Jane Doe\n555-1111\njane@x.com")

	assert.Equal(t, "Jane Doe", draft.Name)
	assert.Equal(t, "555-1111", draft.Phone)
	assert.Equal(t, "jane@x.com", draft.Email)
}

func TestParseCustomerDraftNameOnly(t *testing.T) {
	draft := ParseCustomerDraft("  Jane Doe  ")

	assert.Equal(t, "Jane Doe", draft.Name)
	assert.Empty(t, draft.Phone)
	assert.Empty(t, draft.Email)
}

func TestParseCustomerDraftSkipsBlankLines(t *testing.T) {
	draft := ParseCustomerDraft("\nJane Doe\n\n555-1111\n")

	assert.Equal(t, "Jane Doe", draft.Name)
	assert.Equal(t, "555-1111", draft.Phone)
	assert.Empty(t, draft.Email)
}

func TestParseCustomerDraftOnlyBlankLines(t *testing.T) {
	draft := ParseCustomerDraft("\n\n")

	assert.Empty(t, draft.Name)
}

func TestCustomerCreate(t *testing.T) {
	svc := NewCustomerService(storage.NewMemoryStore())

	customer, err := svc.Create(&models.CustomerDraft{Name: " Jane Doe ", Phone: "555-1111", Email: "jane@x.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, customer.ID)
	assert.Equal(t, "Jane Doe", customer.Name)
	assert.Equal(t, "jane doe", customer.NormalizedName)
	assert.Equal(t, "555-1111", customer.Phone)
	assert.Equal(t, "jane@x.com", customer.Email)
}

func TestCustomerCreateEmptyNameFails(t *testing.T) {
	svc := NewCustomerService(storage.NewMemoryStore())

	_, err := svc.Create(&models.CustomerDraft{Name: "   "})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "El nombre es obligatorio para crear el cliente.", vErr.Message)
}

func TestCustomerCreateDuplicateName(t *testing.T) {
	svc := NewCustomerService(storage.NewMemoryStore())

	_, err := svc.Create(&models.CustomerDraft{Name: "Jane Doe"})
	require.NoError(t, err)

	// Uniqueness is case-insensitive on the trimmed name
	_, err = svc.Create(&models.CustomerDraft{Name: "  JANE doe "})
	assert.ErrorIs(t, err, ErrCustomerExists)

	customers, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestCustomerGetByNormalizedName(t *testing.T) {
	svc := NewCustomerService(storage.NewMemoryStore())

	_, err := svc.Create(&models.CustomerDraft{Name: "Jane Doe"})
	require.NoError(t, err)

	customer, err := svc.GetByNormalizedName("  Jane DOE ")
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "Jane Doe", customer.Name)

	missing, err := svc.GetByNormalizedName("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCustomerSearch(t *testing.T) {
	svc := NewCustomerService(storage.NewMemoryStore())

	for _, name := range []string{"Jane Doe", "John Roe", "Pedro Perez"} {
		_, err := svc.Create(&models.CustomerDraft{Name: name})
		require.NoError(t, err)
	}

	results, err := svc.Search("oe")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	empty, err := svc.Search("   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
