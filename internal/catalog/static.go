package catalog

import (
	"context"
	"slices"
	"sync"
)

const placeholderThumb = "https://via.placeholder.com/72x72"

// DefaultFavorites are the cards every shopper starts with.
func DefaultFavorites() Items {
	return Items{
		{ID: "ss-lmb-1", Title: "2020 Lamelo Ball Sensational Auto #SS-LMB PSA 10 Rookie RC", Quantity: 1, PriceCents: 3499, Currency: "USD", ThumbnailURL: placeholderThumb},
		{ID: "ss-lmb-2", Title: "2020 Lamelo Ball Sensational Auto #SS-LMB PSA 10 Rookie RC", Quantity: 1, PriceCents: 3499, Currency: "USD", ThumbnailURL: placeholderThumb},
		{ID: "ss-lmb-3", Title: "2020 Lamelo Ball Sensational Auto #SS-LMB PSA 10 Rookie RC", Quantity: 1, PriceCents: 3499, Currency: "USD", ThumbnailURL: placeholderThumb},
	}
}

// StaticProvider serves a fixed list to every user and remembers removals in
// memory, per user.
type StaticProvider struct {
	items   Items
	mu      sync.RWMutex
	removed map[string]map[string]struct{}
}

func NewStaticProvider(items Items) *StaticProvider {
	return &StaticProvider{items: items, removed: make(map[string]map[string]struct{})}
}

func (p *StaticProvider) Favorites(_ context.Context, userID string) (Items, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	gone := p.removed[userID]
	out := make(Items, 0, len(p.items))
	for f := range p.items.All() {
		if _, ok := gone[f.ID]; !ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (p *StaticProvider) Remove(_ context.Context, userID, itemID string) error {
	if !slices.ContainsFunc(p.items, func(f Favorite) bool { return f.ID == itemID }) {
		return ErrNotFound
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	gone := p.removed[userID]
	if gone == nil {
		gone = make(map[string]struct{})
		p.removed[userID] = gone
	}
	if _, ok := gone[itemID]; ok {
		return ErrNotFound
	}
	gone[itemID] = struct{}{}
	return nil
}
