package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPaymentComplete_Absent(t *testing.T) {
	assert.False(t, IsPaymentComplete(nil))
}

func TestIsPaymentComplete_Card(t *testing.T) {
	p := &Payment{
		Method:     MethodCard,
		CardNumber: "4242424242424242",
		Cardholder: "Ama Mensah",
		Country:    "Ghana",
		Zip:        "GA-184",
	}
	assert.True(t, IsPaymentComplete(p))

	p.Zip = ""
	assert.False(t, IsPaymentComplete(p))
}

func TestIsPaymentComplete_Momo(t *testing.T) {
	p := &Payment{
		Method:      MethodMomo,
		MomoNetwork: MomoMTN,
		MomoNumber:  "244123456",
	}
	assert.True(t, IsPaymentComplete(p))

	// Eight digits is one short.
	p.MomoNumber = "24412345"
	assert.False(t, IsPaymentComplete(p))

	p.MomoNumber = "244123456"
	p.MomoNetwork = "vodafone-cash"
	assert.False(t, IsPaymentComplete(p))
}

func TestIsPaymentComplete_MomoIgnoresCardFields(t *testing.T) {
	// Switching tabs keeps the other branch's values around; they must not
	// count toward completeness.
	p := &Payment{
		Method:      MethodMomo,
		CardNumber:  "4242424242424242",
		Cardholder:  "Ama Mensah",
		Country:     "Ghana",
		Zip:         "GA-184",
		MomoNetwork: MomoTelecel,
	}
	assert.False(t, IsPaymentComplete(p))
}

func TestIsShippingComplete(t *testing.T) {
	full := Shipping{
		Address1: "12 Oxford Street",
		City:     "Accra",
		State:    "Greater Accra",
		Country:  "Ghana",
		Postcode: "GA-184",
		Name:     "Ama Mensah",
		Phone:    "0244123456",
	}

	assert.False(t, IsShippingComplete(nil))
	assert.True(t, IsShippingComplete(&full))

	// Address2 and SaveInfo never affect completeness.
	withExtras := full
	withExtras.Address2 = "Apt 4"
	withExtras.SaveInfo = true
	assert.True(t, IsShippingComplete(&withExtras))

	for _, mutate := range []func(*Shipping){
		func(s *Shipping) { s.Address1 = "" },
		func(s *Shipping) { s.City = "" },
		func(s *Shipping) { s.State = "" },
		func(s *Shipping) { s.Country = "" },
		func(s *Shipping) { s.Postcode = "" },
		func(s *Shipping) { s.Name = "" },
		func(s *Shipping) { s.Phone = "" },
	} {
		partial := full
		mutate(&partial)
		assert.False(t, IsShippingComplete(&partial))
	}
}

func TestDraft_SubFormsEditIndependently(t *testing.T) {
	d := Draft{}
	d.SetShipping(Shipping{Address1: "12 Oxford Street", City: "Accra"})
	d.SetPayment(Payment{Method: MethodMomo, MomoNetwork: MomoAirtel, MomoNumber: "266123456"})

	// Editing payment leaves shipping untouched and vice versa.
	d.SetPayment(Payment{Method: MethodCard, CardNumber: "4242"})
	assert.Equal(t, "12 Oxford Street", d.Shipping.Address1)

	d.SetShipping(Shipping{Address1: "Ring Road"})
	assert.Equal(t, MethodCard, d.Payment.Method)

	// The last-saved value is the next edit's initial state.
	assert.Equal(t, "Ring Road", d.Shipping.Address1)
	assert.Empty(t, d.Shipping.City)
}

func TestOrderNumber_NineDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := OrderNumber()
		assert.GreaterOrEqual(t, n, 100000000)
		assert.LessOrEqual(t, n, 999999999)
	}
}
