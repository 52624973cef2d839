package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/YottademTech/ecommerce-mini-app/internal/catalog"
)

var (
	// ErrUnknownItem means an item id did not resolve against the catalog.
	// Item ids originate from a catalog render, so hitting this is a caller
	// contract violation, not a user-facing condition.
	ErrUnknownItem = errors.New("item is not in the catalog")

	// ErrLineNotFound means an operation referenced an item the cart does
	// not hold. Same defensive treatment as ErrUnknownItem.
	ErrLineNotFound = errors.New("item is not in the cart")
)

// Line is one cart entry. Quantity is always >= 1; a line that would reach
// zero is removed instead of being kept at zero.
type Line struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Cart is an insertion-ordered sequence of lines, unique by item id.
// All operations are pure: they return a new Cart and never mutate the
// receiver's backing array in place.
type Cart struct {
	Lines []Line `json:"lines"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Quantity returns the quantity for an item, 0 if the cart has no line for it.
func (c Cart) Quantity(itemID string) int {
	for _, l := range c.Lines {
		if l.ItemID == itemID {
			return l.Quantity
		}
	}
	return 0
}

// Add puts one unit of an item into the cart: an existing line is bumped by
// one, otherwise a new line is appended with quantity 1. The item id must
// resolve against the catalog.
func Add(c Cart, cat *catalog.Catalog, itemID string) (Cart, error) {
	if _, ok := cat.Get(itemID); !ok {
		return c, ErrUnknownItem
	}
	for i, l := range c.Lines {
		if l.ItemID == itemID {
			return withQuantity(c, i, l.Quantity+1), nil
		}
	}
	lines := make([]Line, len(c.Lines), len(c.Lines)+1)
	copy(lines, c.Lines)
	lines = append(lines, Line{ItemID: itemID, Quantity: 1})
	return Cart{Lines: lines}, nil
}

// Increment bumps the quantity of an existing line by one.
func Increment(c Cart, itemID string) (Cart, error) {
	for i, l := range c.Lines {
		if l.ItemID == itemID {
			return withQuantity(c, i, l.Quantity+1), nil
		}
	}
	return c, ErrLineNotFound
}

// Decrement lowers the quantity of an existing line by one. A line that
// reaches zero is removed; quantity never stays at zero.
func Decrement(c Cart, itemID string) (Cart, error) {
	for i, l := range c.Lines {
		if l.ItemID == itemID {
			if l.Quantity <= 1 {
				return withoutLine(c, i), nil
			}
			return withQuantity(c, i, l.Quantity-1), nil
		}
	}
	return c, ErrLineNotFound
}

// Remove deletes a line regardless of its quantity. Removing an absent item
// is a no-op.
func Remove(c Cart, itemID string) Cart {
	for i, l := range c.Lines {
		if l.ItemID == itemID {
			return withoutLine(c, i)
		}
	}
	return c
}

// Clear returns an empty cart.
func Clear(Cart) Cart {
	return Cart{}
}

// LineTotal is unit price times quantity at full precision. Rounding to two
// decimal places happens only at the display boundary. An unresolvable line
// contributes zero.
func LineTotal(cat *catalog.Catalog, l Line) decimal.Decimal {
	item, ok := cat.Get(l.ItemID)
	if !ok {
		return decimal.Zero
	}
	return item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// GrandTotal sums LineTotal over all lines; zero for an empty cart.
func GrandTotal(cat *catalog.Catalog, c Cart) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(LineTotal(cat, l))
	}
	return total
}

func withQuantity(c Cart, i, quantity int) Cart {
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	lines[i].Quantity = quantity
	return Cart{Lines: lines}
}

func withoutLine(c Cart, i int) Cart {
	lines := make([]Line, 0, len(c.Lines)-1)
	lines = append(lines, c.Lines[:i]...)
	lines = append(lines, c.Lines[i+1:]...)
	return Cart{Lines: lines}
}
