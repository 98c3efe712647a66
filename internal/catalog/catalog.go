// Package catalog supplies the items a shopper has marked as favorites.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

var ErrNotFound = errors.New("favorite not found")

// Favorite is one saved item as shown on the account page.
type Favorite struct {
	ID           string
	Title        string
	Quantity     int
	PriceCents   int64
	Currency     string
	ThumbnailURL string
}

// FormatPrice renders the price the way the storefront lists it, e.g. "US $34.99".
func (f Favorite) FormatPrice() string {
	sign, cents := "", f.PriceCents
	if cents < 0 {
		sign, cents = "-", -cents
	}
	switch f.Currency {
	case "", "USD":
		return fmt.Sprintf("%sUS $%d.%02d", sign, cents/100, cents%100)
	case "JPY":
		return fmt.Sprintf("%s¥%d", sign, cents)
	}
	return fmt.Sprintf("%s%s %d.%02d", sign, f.Currency, cents/100, cents%100)
}

// QuantityLabel renders the quantity indicator, e.g. "◎ 1 点".
func (f Favorite) QuantityLabel() string {
	return fmt.Sprintf("◎ %d 点", f.Quantity)
}

// Items is a finite list of favorites. All can be ranged over any number of times.
type Items []Favorite

func (it Items) All() iter.Seq[Favorite] {
	return func(yield func(Favorite) bool) {
		for _, f := range it {
			if !yield(f) {
				return
			}
		}
	}
}

func (it Items) Len() int {
	return len(it)
}

// FavoritesProvider loads and edits a user's favorites.
type FavoritesProvider interface {
	Favorites(ctx context.Context, userID string) (Items, error)
	Remove(ctx context.Context, userID, itemID string) error
}
