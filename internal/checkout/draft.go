package checkout

import "math/rand"

// MomoNetwork is a supported mobile money provider.
type MomoNetwork string

const (
	MomoMTN     MomoNetwork = "mtn-momo"
	MomoAirtel  MomoNetwork = "airtel-cash"
	MomoTelecel MomoNetwork = "telecel-cash"
)

func (n MomoNetwork) Valid() bool {
	switch n {
	case MomoMTN, MomoAirtel, MomoTelecel:
		return true
	}
	return false
}

// PaymentMethod discriminates the two payment branches.
type PaymentMethod string

const (
	MethodCard PaymentMethod = "card"
	MethodMomo PaymentMethod = "momo"
)

// Payment is the payment sub-form. Method selects which branch of the
// union is active; the other branch's fields are carried along so the form
// keeps its last-entered values when the user switches tabs.
type Payment struct {
	Method      PaymentMethod `json:"method"`
	CardNumber  string        `json:"card_number,omitempty"`
	Cardholder  string        `json:"cardholder,omitempty"`
	Country     string        `json:"country,omitempty"`
	Zip         string        `json:"zip,omitempty"`
	SaveInfo    bool          `json:"save_info,omitempty"`
	MomoNetwork MomoNetwork   `json:"momo_network,omitempty"`
	MomoNumber  string        `json:"momo_number,omitempty"`
}

// Shipping is the shipping sub-form. Address2 is the only optional field.
type Shipping struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	SaveInfo bool   `json:"save_info,omitempty"`
}

// Draft accumulates everything gathered between order review and the final
// confirm. Sub-forms are edited independently and may be revisited any
// number of times; the last-saved value is the next edit's initial state.
// The draft is discarded on successful submission.
type Draft struct {
	Comment    string    `json:"comment,omitempty"`
	Shipping   *Shipping `json:"shipping,omitempty"`
	Payment    *Payment  `json:"payment,omitempty"`
	BuyerName  string    `json:"buyer_name,omitempty"`
	BuyerPhone string    `json:"buyer_phone,omitempty"`
}

func (d *Draft) SetComment(comment string) {
	d.Comment = comment
}

func (d *Draft) SetShipping(s Shipping) {
	d.Shipping = &s
}

func (d *Draft) SetPayment(p Payment) {
	d.Payment = &p
}

func (d *Draft) SetContact(name, phone string) {
	d.BuyerName = name
	d.BuyerPhone = phone
}

// IsPaymentComplete reports whether the payment sub-form is filled enough
// to confirm. Card needs number, holder, country and zip; mobile money
// needs a valid network and an exactly nine character number. Completeness
// checks emptiness and length only, never field formats.
func IsPaymentComplete(p *Payment) bool {
	if p == nil {
		return false
	}
	if p.Method == MethodCard {
		return p.CardNumber != "" && p.Cardholder != "" && p.Country != "" && p.Zip != ""
	}
	return p.MomoNetwork.Valid() && len(p.MomoNumber) == 9
}

// IsShippingComplete reports whether every required shipping field is
// non-empty. Address2 and SaveInfo never affect completeness.
func IsShippingComplete(s *Shipping) bool {
	if s == nil {
		return false
	}
	return s.Address1 != "" && s.City != "" && s.State != "" && s.Country != "" &&
		s.Postcode != "" && s.Name != "" && s.Phone != ""
}

// OrderNumber returns a random nine digit number shown on the checkout
// screen. It is cosmetic only: not unique, not persisted, and never used
// for idempotency or deduplication.
func OrderNumber() int {
	return 100000000 + rand.Intn(900000000)
}
