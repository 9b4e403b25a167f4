package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "asc passes through", input: "asc", expected: "ASC"},
		{name: "desc is normalized", input: "DeSc", expected: "DESC"},
		{name: "empty defaults to asc", input: "", expected: "ASC"},
		{name: "whitespace is trimmed", input: "  desc  ", expected: "DESC"},
		{name: "garbage defaults to asc", input: "name; DROP TABLE suppliers", expected: "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "whitelisted field passes through", input: "email", expected: "email"},
		{name: "empty falls back to default", input: "", expected: "name"},
		{name: "unknown column falls back to default", input: "balance", expected: "name"},
		{
			name:     "subquery falls back to default",
			input:    "(SELECT CASE WHEN (SELECT count(*) FROM products)>=0 THEN name ELSE name END)",
			expected: "name",
		},
		{
			name:     "stacked statement falls back to default",
			input:    "name; DELETE FROM suppliers --",
			expected: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, SupplierSortFields, "name"))
		})
	}
}

func TestSortFieldWhitelists(t *testing.T) {
	t.Run("supplier whitelist covers its sortable columns", func(t *testing.T) {
		for _, field := range []string{"id", "name", "tax_id", "email", "created_at"} {
			assert.True(t, SupplierSortFields[field], field)
		}
	})

	t.Run("product whitelist covers its sortable columns", func(t *testing.T) {
		for _, field := range []string{"id", "name", "barcode", "category", "expiration_date"} {
			assert.True(t, ProductSortFields[field], field)
		}
	})
}
