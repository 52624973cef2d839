package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/YottademTech/ecommerce-mini-app/internal/cart"
	"github.com/YottademTech/ecommerce-mini-app/internal/catalog"
	"github.com/YottademTech/ecommerce-mini-app/internal/checkout"
	"github.com/YottademTech/ecommerce-mini-app/internal/identity"
	"github.com/YottademTech/ecommerce-mini-app/internal/order"
	"github.com/YottademTech/ecommerce-mini-app/internal/session"
)

// Transient notification texts shown after a confirm attempt.
const (
	FeedbackSuccess = "Order sent successfully!"
	FeedbackFailure = "Failed to send order. Please try again."
)

// OrderSubmitter issues the one outbound order request.
// Consumers define this interface, not the HTTP client.
type OrderSubmitter interface {
	Submit(ctx context.Context, p order.Payload) error
}

// Storefront owns all mutable session state and is the single control
// point through which user events flow.
type Storefront struct {
	store        session.Store
	catalog      *catalog.Catalog
	submitter    OrderSubmitter
	identity     identity.Provider
	displayDelay time.Duration
	sfg          singleflight.Group // Collapses concurrent session loads for the same id

	mu       sync.Mutex
	inFlight map[string]struct{} // sessions with an active submission
}

func NewStorefront(
	store session.Store,
	cat *catalog.Catalog,
	submitter OrderSubmitter,
	provider identity.Provider,
	displayDelay time.Duration,
) *Storefront {
	return &Storefront{
		store:        store,
		catalog:      cat,
		submitter:    submitter,
		identity:     provider,
		displayDelay: displayDelay,
		inFlight:     make(map[string]struct{}),
	}
}

func (s *Storefront) Catalog() *catalog.Catalog {
	return s.catalog
}

// Session loads a session, creating a fresh one when the store has none.
// A missing session is never an error: the user simply starts over with an
// empty cart on the menu screen.
func (s *Storefront) Session(ctx context.Context, id string) (*session.Session, error) {
	v, err, _ := s.sfg.Do(id, func() (interface{}, error) {
		sess, errGet := s.store.Get(ctx, id)
		if errGet != nil && errors.Is(errGet, session.ErrSessionNotFound) {
			return session.New(id), nil
		}
		if errGet != nil {
			return nil, errGet
		}
		if sess.Submission == order.StatusSubmitting && !s.isInFlight(id) {
			// Persisted mid-submission by a process that never finished
			// (crash or failed final write). Nothing is actually in flight,
			// so unblock the session.
			log.Printf("resetting stale submitting status for session %s", id)
			sess.Submission = order.StatusIdle
			if perr := s.store.Put(ctx, sess); perr != nil {
				log.Printf("store put error: %v", perr)
			}
		}
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	// Clone so collapsed concurrent loads don't end up sharing one session.
	return v.(*session.Session).Clone(), nil
}

// update applies a mutation to the session and persists the result.
func (s *Storefront) update(ctx context.Context, id string, fn func(*session.Session) error) (*session.Session, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, sess); err != nil {
		log.Printf("store put error: %v", err)
		return nil, err
	}
	return sess, nil
}

func (s *Storefront) AddItem(ctx context.Context, sessionID, itemID string) (*session.Session, error) {
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		c, err := cart.Add(sess.Cart, s.catalog, itemID)
		if err != nil {
			return err
		}
		sess.Cart = c
		return nil
	})
}

func (s *Storefront) IncrementItem(ctx context.Context, sessionID, itemID string) (*session.Session, error) {
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		c, err := cart.Increment(sess.Cart, itemID)
		if errors.Is(err, cart.ErrLineNotFound) {
			// Caller contract violation; no-op rather than surfacing to the user.
			log.Printf("increment on absent line %q in session %s", itemID, sessionID)
			return nil
		}
		if err != nil {
			return err
		}
		sess.Cart = c
		return nil
	})
}

func (s *Storefront) DecrementItem(ctx context.Context, sessionID, itemID string) (*session.Session, error) {
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		c, err := cart.Decrement(sess.Cart, itemID)
		if errors.Is(err, cart.ErrLineNotFound) {
			log.Printf("decrement on absent line %q in session %s", itemID, sessionID)
			return nil
		}
		if err != nil {
			return err
		}
		sess.Cart = c
		return nil
	})
}

func (s *Storefront) RemoveItem(ctx context.Context, sessionID, itemID string) (*session.Session, error) {
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.Cart = cart.Remove(sess.Cart, itemID)
		return nil
	})
}

func (s *Storefront) ClearCart(ctx context.Context, sessionID string) (*session.Session, error) {
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.Cart = cart.Clear(sess.Cart)
		return nil
	})
}

func (s *Storefront) SetComment(ctx context.Context, sessionID, comment string) (*session.Session, error) {
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.Draft.SetComment(comment)
		return nil
	})
}

func (s *Storefront) SetShipping(ctx context.Context, sessionID string, info checkout.Shipping) (*session.Session, error) {
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.Draft.SetShipping(info)
		return nil
	})
}

func (s *Storefront) SetPayment(ctx context.Context, sessionID string, info checkout.Payment) (*session.Session, error) {
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.Draft.SetPayment(info)
		return nil
	})
}

func (s *Storefront) SetContact(ctx context.Context, sessionID, name, phone string) (*session.Session, error) {
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.Draft.SetContact(name, phone)
		return nil
	})
}

// Navigate pushes a screen onto the session's navigation stack.
func (s *Storefront) Navigate(ctx context.Context, sessionID string, screen session.Screen) (*session.Session, error) {
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.PushScreen(screen)
		return nil
	})
}

// Back pops the navigation stack one screen.
func (s *Storefront) Back(ctx context.Context, sessionID string) (*session.Session, error) {
	return s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.PopScreen()
		return nil
	})
}

// Confirm runs one submission attempt: exactly one outbound request, no
// retry, no deduplication. Success clears the cart and draft and schedules
// the return to the menu; failure preserves both so the next confirm
// starts from the same data.
func (s *Storefront) Confirm(ctx context.Context, sessionID, initData string) (*session.Session, error) {
	if !s.beginSubmit(sessionID) {
		return nil, ErrSubmitInFlight
	}
	defer s.endSubmit(sessionID)

	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if !order.CanTransitionTo(sess.Submission, order.StatusSubmitting) {
		return nil, ErrSubmitInFlight
	}

	sess.Submission = order.StatusSubmitting
	sess.Feedback = nil
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}

	// Identity is resolved once per submission, never cached across sessions.
	user := s.identity.Current(initData)

	payload, err := order.BuildPayload(s.catalog, sess.Cart, user)
	if err != nil {
		// Cart invariant violation; no request was issued.
		sess.Submission = order.StatusIdle
		if perr := s.store.Put(ctx, sess); perr != nil {
			log.Printf("store put error: %v", perr)
		}
		return nil, err
	}

	if err := s.submitter.Submit(ctx, payload); err != nil {
		log.Printf("order submission failed for session %s: %v", sessionID, err)
		sess.Submission = order.StatusFailed
		sess.Feedback = &session.Feedback{Kind: "error", Message: FeedbackFailure}
		if perr := s.store.Put(ctx, sess); perr != nil {
			return nil, perr
		}
		s.scheduleReset(sessionID, false)
		return sess, err
	}

	sess.Submission = order.StatusSucceeded
	sess.Cart = cart.Clear(sess.Cart)
	sess.Draft = checkout.Draft{}
	sess.Feedback = &session.Feedback{Kind: "success", Message: FeedbackSuccess}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	s.scheduleReset(sessionID, true)
	return sess, nil
}

// scheduleReset clears the transient feedback after the display delay and
// returns the state machine to Idle. After a success the view also goes
// back to the menu. This is the only timer in the system besides store
// cleanup.
func (s *Storefront) scheduleReset(sessionID string, backToMenu bool) {
	time.AfterFunc(s.displayDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		sess, err := s.store.Get(ctx, sessionID)
		if err != nil {
			return // session already gone
		}
		if !sess.Submission.IsTerminal() {
			return
		}
		sess.Feedback = nil
		sess.Submission = order.StatusIdle
		if backToMenu {
			sess.ResetToMenu()
		}
		if err := s.store.Put(ctx, sess); err != nil {
			log.Printf("store put error: %v", err)
		}
	})
}

func (s *Storefront) isInFlight(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inFlight[sessionID]
	return busy
}

func (s *Storefront) beginSubmit(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	return true
}

func (s *Storefront) endSubmit(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}
