package catalog

import "github.com/shopspring/decimal"

// Item is a single purchasable menu entry. The catalog is fixed at
// compile time and never changes after load.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Icon     string          `json:"icon"`
	Price    decimal.Decimal `json:"price"`
	IsNew    bool            `json:"is_new,omitempty"`
	Featured bool            `json:"featured,omitempty"`
}

type Catalog struct {
	items []Item
	byID  map[string]Item
}

func New(items []Item) *Catalog {
	c := &Catalog{
		items: items,
		byID:  make(map[string]Item, len(items)),
	}
	for _, item := range items {
		c.byID[item.ID] = item
	}
	return c
}

// Default returns the built-in menu.
func Default() *Catalog {
	return New([]Item{
		{ID: "cake", Name: "Cake", Icon: "🍰", Price: price("1"), IsNew: true, Featured: true},
		{ID: "burger", Name: "Burger", Icon: "🍔", Price: price("4.99")},
		{ID: "fries", Name: "Fries", Icon: "🍟", Price: price("1.49")},
		{ID: "hotdog", Name: "Hotdog", Icon: "🌭", Price: price("3.49")},
		{ID: "taco", Name: "Taco", Icon: "🌮", Price: price("3.99")},
		{ID: "pizza", Name: "Pizza", Icon: "🍕", Price: price("7.99")},
		{ID: "donut", Name: "Donut", Icon: "🍩", Price: price("1.49")},
		{ID: "popcorn", Name: "Popcorn", Icon: "🍿", Price: price("1.99")},
		{ID: "coke", Name: "Coke", Icon: "🥤", Price: price("1.49")},
		{ID: "icecream", Name: "Icecream", Icon: "🍦", Price: price("5.99")},
		{ID: "cookie", Name: "Cookie", Icon: "🍪", Price: price("3.99")},
		{ID: "flan", Name: "Flan", Icon: "🍮", Price: price("7.99")},
	})
}

// Get resolves an item by id.
func (c *Catalog) Get(id string) (Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Items returns all items in menu order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
