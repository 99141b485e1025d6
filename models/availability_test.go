package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableQuantity(t *testing.T) {
	tests := []struct {
		name        string
		inventories []ProductInventory
		want        int
	}{
		{"no rows", nil, 0},
		{"single branch", []ProductInventory{{Amount: 10, Sold: 3}}, 7},
		{"summed across branches", []ProductInventory{{Amount: 10, Sold: 3}, {Amount: 5, Sold: 0}}, 12},
		{"oversold branch does not subtract", []ProductInventory{{Amount: 2, Sold: 5}, {Amount: 4, Sold: 1}}, 3},
		{"fully sold", []ProductInventory{{Amount: 4, Sold: 4}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AvailableQuantity(tt.inventories))
			assert.Equal(t, tt.want, ProductSize{Inventories: tt.inventories}.Available())
		})
	}
}

func TestIsPlusSize(t *testing.T) {
	for _, code := range NotPlusSizes {
		assert.False(t, IsPlusSize(code), code)
	}
	assert.True(t, IsPlusSize("5XL"))
	assert.True(t, IsPlusSize("12XL"))
}
