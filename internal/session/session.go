package session

import (
	"time"

	"github.com/YottademTech/ecommerce-mini-app/internal/cart"
	"github.com/YottademTech/ecommerce-mini-app/internal/checkout"
	"github.com/YottademTech/ecommerce-mini-app/internal/order"
)

// Screen names the views the mini app can show. Navigation is an explicit
// stack so "back" never depends on browser history.
type Screen string

const (
	ScreenMenu     Screen = "menu"
	ScreenOrder    Screen = "order"
	ScreenCheckout Screen = "checkout"
	ScreenShipping Screen = "shipping"
	ScreenPayment  Screen = "payment"
)

func (s Screen) Valid() bool {
	switch s {
	case ScreenMenu, ScreenOrder, ScreenCheckout, ScreenShipping, ScreenPayment:
		return true
	}
	return false
}

// Feedback is a transient user-visible notification, cleared after the
// display delay.
type Feedback struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

// Session is the whole per-browsing-session state: cart, checkout draft,
// screen stack and submission status. It lives only for the session and is
// never written to disk.
type Session struct {
	ID         string         `json:"id"`
	Cart       cart.Cart      `json:"cart"`
	Draft      checkout.Draft `json:"draft"`
	Screens    []Screen       `json:"screens"`
	Submission order.Status   `json:"submission"`
	Feedback   *Feedback      `json:"feedback,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// New creates a fresh session showing the menu with an empty cart.
func New(id string) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Screens:    []Screen{ScreenMenu},
		Submission: order.StatusIdle,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone returns a deep copy. Stores hand out clones so no two holders of
// a session ever share mutable state; RedisStore gets the same effect from
// its JSON round-trip.
func (s *Session) Clone() *Session {
	out := *s
	out.Cart = cart.Cart{Lines: append([]cart.Line(nil), s.Cart.Lines...)}
	out.Screens = append([]Screen(nil), s.Screens...)
	if s.Feedback != nil {
		f := *s.Feedback
		out.Feedback = &f
	}
	if s.Draft.Shipping != nil {
		shipping := *s.Draft.Shipping
		out.Draft.Shipping = &shipping
	}
	if s.Draft.Payment != nil {
		payment := *s.Draft.Payment
		out.Draft.Payment = &payment
	}
	return &out
}

func (s *Session) CurrentScreen() Screen {
	if len(s.Screens) == 0 {
		return ScreenMenu
	}
	return s.Screens[len(s.Screens)-1]
}

// PushScreen navigates forward to a screen.
func (s *Session) PushScreen(screen Screen) {
	s.Screens = append(s.Screens, screen)
}

// PopScreen navigates back one screen. The bottom of the stack (the menu)
// is never popped.
func (s *Session) PopScreen() Screen {
	if len(s.Screens) > 1 {
		s.Screens = s.Screens[:len(s.Screens)-1]
	}
	return s.CurrentScreen()
}

// ResetToMenu collapses the stack back to the initial screen.
func (s *Session) ResetToMenu() {
	s.Screens = []Screen{ScreenMenu}
}
