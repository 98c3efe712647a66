package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFavorite_Labels(t *testing.T) {
	f := Favorite{Quantity: 1, PriceCents: 3499, Currency: "USD"}
	assert.Equal(t, "US $34.99", f.FormatPrice())
	assert.Equal(t, "◎ 1 点", f.QuantityLabel())

	assert.Equal(t, "US $5.05", Favorite{PriceCents: 505}.FormatPrice())
	assert.Equal(t, "¥1200", Favorite{PriceCents: 1200, Currency: "JPY"}.FormatPrice())
	assert.Equal(t, "EUR 10.00", Favorite{PriceCents: 1000, Currency: "EUR"}.FormatPrice())
}

func TestFavorite_FormatNegativePrice(t *testing.T) {
	assert.Equal(t, "-US $0.50", Favorite{PriceCents: -50}.FormatPrice())
	assert.Equal(t, "-US $12.05", Favorite{PriceCents: -1205}.FormatPrice())
	assert.Equal(t, "-¥300", Favorite{PriceCents: -300, Currency: "JPY"}.FormatPrice())
	assert.Equal(t, "-EUR 1.99", Favorite{PriceCents: -199, Currency: "EUR"}.FormatPrice())
}

func TestItems_AllIsRestartable(t *testing.T) {
	items := DefaultFavorites()
	assert.Equal(t, 3, items.Len())

	for range 2 {
		n := 0
		for f := range items.All() {
			assert.Equal(t, "US $34.99", f.FormatPrice())
			n++
		}
		assert.Equal(t, 3, n)
	}
}

func TestItems_AllStopsEarly(t *testing.T) {
	n := 0
	for range DefaultFavorites().All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}
