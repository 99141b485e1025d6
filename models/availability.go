package models

// NotPlusSizes are the size codes considered regular. Anything else is a
// plus size.
var NotPlusSizes = []string{"S", "M", "L", "XL", "2xL", "3XL", "4XL", "free-size"}

// IsPlusSize reports whether code is outside NotPlusSizes.
func IsPlusSize(code string) bool {
	for _, s := range NotPlusSizes {
		if s == code {
			return false
		}
	}
	return true
}

// AvailableQuantity sums max(amount-sold, 0) over the inventory rows of a
// product size. Cart add, cart update, cart display and product
// availability all go through it.
func AvailableQuantity(inventories []ProductInventory) int {
	total := 0
	for _, inv := range inventories {
		total += inv.Available()
	}
	return total
}
