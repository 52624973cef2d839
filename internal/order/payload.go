package order

import (
	"github.com/YottademTech/ecommerce-mini-app/internal/cart"
	"github.com/YottademTech/ecommerce-mini-app/internal/catalog"
	"github.com/YottademTech/ecommerce-mini-app/internal/identity"
)

// Item is one order line on the wire: the catalog data is denormalized at
// submit time so the upstream service never needs the menu.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Payload is the full order snapshot at confirm time. It is built fresh
// per attempt and never persisted. User is null for anonymous buyers.
type Payload struct {
	Items []Item         `json:"items"`
	Total float64        `json:"total"`
	User  *identity.User `json:"user"`
}

// BuildPayload resolves every cart line against the catalog and attaches
// the external identity. An unresolvable line means the cart violated its
// invariant, so the whole build fails rather than submitting a partial
// order.
func BuildPayload(cat *catalog.Catalog, c cart.Cart, user *identity.User) (Payload, error) {
	items := make([]Item, 0, len(c.Lines))
	for _, l := range c.Lines {
		mi, ok := cat.Get(l.ItemID)
		if !ok {
			return Payload{}, cart.ErrUnknownItem
		}
		items = append(items, Item{
			ID:       mi.ID,
			Name:     mi.Name,
			Price:    mi.Price.InexactFloat64(),
			Quantity: l.Quantity,
		})
	}
	total := cart.GrandTotal(cat, c)
	return Payload{
		Items: items,
		Total: total.Round(2).InexactFloat64(),
		User:  user,
	}, nil
}
