package partner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	t.Run("creates supplier with valid input", func(t *testing.T) {
		supplier, err := NewSupplier("Acme Foods")
		require.NoError(t, err)
		require.NotNil(t, supplier)

		assert.Equal(t, "Acme Foods", supplier.Name)
		assert.Zero(t, supplier.ID)
		assert.Nil(t, supplier.TaxID)
		assert.Nil(t, supplier.Email)
		assert.False(t, supplier.CreatedAt.IsZero())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		supplier, err := NewSupplier("  Acme Foods  ")
		require.NoError(t, err)
		assert.Equal(t, "Acme Foods", supplier.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		supplier, err := NewSupplier("   ")
		assert.Nil(t, supplier)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		supplier, err := NewSupplier(strings.Repeat("a", 201))
		assert.Nil(t, supplier)
		assert.Error(t, err)
	})
}

func TestSupplier_Rename(t *testing.T) {
	supplier, err := NewSupplier("Acme Foods")
	require.NoError(t, err)

	t.Run("updates name and refreshes the update timestamp", func(t *testing.T) {
		before := supplier.UpdatedAt

		err := supplier.Rename("Acme Beverages")
		require.NoError(t, err)
		assert.Equal(t, "Acme Beverages", supplier.Name)
		assert.False(t, supplier.UpdatedAt.Before(before))
	})

	t.Run("fails with empty name", func(t *testing.T) {
		err := supplier.Rename("")
		assert.Error(t, err)
		assert.Equal(t, "Acme Beverages", supplier.Name)
	})
}

func TestSupplier_SetContact(t *testing.T) {
	supplier, err := NewSupplier("Acme Foods")
	require.NoError(t, err)

	t.Run("sets contact fields", func(t *testing.T) {
		contact := "Maria Silva"
		phone := "+55 11 99999-0000"
		email := "maria@acme.example"
		err := supplier.SetContact(&contact, &phone, &email)
		require.NoError(t, err)
		assert.Equal(t, "Maria Silva", *supplier.ContactName)
		assert.Equal(t, "maria@acme.example", *supplier.Email)
	})

	t.Run("clears contact fields with nil", func(t *testing.T) {
		err := supplier.SetContact(nil, nil, nil)
		require.NoError(t, err)
		assert.Nil(t, supplier.ContactName)
		assert.Nil(t, supplier.Email)
	})

	t.Run("fails with malformed email", func(t *testing.T) {
		email := "not-an-email"
		err := supplier.SetContact(nil, nil, &email)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})
}

func TestSupplier_SetTaxID(t *testing.T) {
	supplier, err := NewSupplier("Acme Foods")
	require.NoError(t, err)

	taxID := "12.345.678/0001-90"
	require.NoError(t, supplier.SetTaxID(&taxID))
	assert.Equal(t, taxID, *supplier.TaxID)

	tooLong := strings.Repeat("9", 51)
	assert.Error(t, supplier.SetTaxID(&tooLong))
}
