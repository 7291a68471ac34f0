package domain

import (
	"fmt"
	"math"
)

// FormatPrice renders a price in reais, e.g. 30.0 -> "R$ 30,00".
// The value is rounded to whole cents first so float noise never leaks
// into the formatted amount.
func FormatPrice(price float64) string {
	cents := int64(math.Round(price * 100))
	if cents < 0 {
		cents = 0
	}
	return fmt.Sprintf("R$ %d,%02d", cents/100, cents%100)
}
