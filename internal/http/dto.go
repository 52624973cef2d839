package http

import (
	"github.com/YottademTech/ecommerce-mini-app/internal/cart"
	"github.com/YottademTech/ecommerce-mini-app/internal/catalog"
	"github.com/YottademTech/ecommerce-mini-app/internal/checkout"
	"github.com/YottademTech/ecommerce-mini-app/internal/session"
)

// Prices cross the API as strings already rounded to two decimal places;
// full precision stays internal.

type MenuItemDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Price    string `json:"price"`
	IsNew    bool   `json:"is_new,omitempty"`
	Featured bool   `json:"featured,omitempty"`
	Quantity int    `json:"quantity"` // current cart quantity, 0 if not in cart
}

type MenuDTO struct {
	Items []MenuItemDTO `json:"items"`
}

type CartLineDTO struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type CartDTO struct {
	Lines []CartLineDTO `json:"lines"`
	Total string        `json:"total"`
}

type CheckoutDTO struct {
	OrderNumber      int                `json:"order_number"`
	Cart             CartDTO            `json:"cart"`
	Comment          string             `json:"comment,omitempty"`
	Shipping         *checkout.Shipping `json:"shipping,omitempty"`
	Payment          *checkout.Payment  `json:"payment,omitempty"`
	ShippingComplete bool               `json:"shipping_complete"`
	PaymentComplete  bool               `json:"payment_complete"`
	BuyerName        string             `json:"buyer_name,omitempty"`
	BuyerPhone       string             `json:"buyer_phone,omitempty"`
}

type SubmitResultDTO struct {
	Status   string            `json:"status"`
	Feedback *session.Feedback `json:"feedback,omitempty"`
	Cart     CartDTO           `json:"cart"`
}

type ScreenDTO struct {
	Screen session.Screen `json:"screen"`
}

func toMenuDTO(cat *catalog.Catalog, sess *session.Session) MenuDTO {
	items := cat.Items()
	dto := MenuDTO{Items: make([]MenuItemDTO, 0, len(items))}
	for _, item := range items {
		dto.Items = append(dto.Items, MenuItemDTO{
			ID:       item.ID,
			Name:     item.Name,
			Icon:     item.Icon,
			Price:    item.Price.StringFixed(2),
			IsNew:    item.IsNew,
			Featured: item.Featured,
			Quantity: sess.Cart.Quantity(item.ID),
		})
	}
	return dto
}

func toCartDTO(cat *catalog.Catalog, c cart.Cart) CartDTO {
	dto := CartDTO{
		Lines: make([]CartLineDTO, 0, len(c.Lines)),
		Total: cart.GrandTotal(cat, c).StringFixed(2),
	}
	for _, l := range c.Lines {
		item, ok := cat.Get(l.ItemID)
		if !ok {
			continue
		}
		dto.Lines = append(dto.Lines, CartLineDTO{
			ItemID:    l.ItemID,
			Name:      item.Name,
			Icon:      item.Icon,
			Quantity:  l.Quantity,
			UnitPrice: item.Price.StringFixed(2),
			LineTotal: cart.LineTotal(cat, l).StringFixed(2),
		})
	}
	return dto
}

func toCheckoutDTO(cat *catalog.Catalog, sess *session.Session) CheckoutDTO {
	return CheckoutDTO{
		OrderNumber:      checkout.OrderNumber(),
		Cart:             toCartDTO(cat, sess.Cart),
		Comment:          sess.Draft.Comment,
		Shipping:         sess.Draft.Shipping,
		Payment:          sess.Draft.Payment,
		ShippingComplete: checkout.IsShippingComplete(sess.Draft.Shipping),
		PaymentComplete:  checkout.IsPaymentComplete(sess.Draft.Payment),
		BuyerName:        sess.Draft.BuyerName,
		BuyerPhone:       sess.Draft.BuyerPhone,
	}
}
