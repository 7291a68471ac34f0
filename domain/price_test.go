package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price float64
		want  string
	}{
		{30, "R$ 30,00"},
		{25.5, "R$ 25,50"},
		{0.05, "R$ 0,05"},
		{0, "R$ 0,00"},
		{1234.56, "R$ 1234,56"},
		{19.999, "R$ 20,00"},
		{-5, "R$ 0,00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPrice(tc.price), "price %v", tc.price)
	}
}
