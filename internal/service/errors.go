package service

import "errors"

var (
	ErrEmptyCart      = errors.New("cart is empty, nothing to submit")
	ErrSubmitInFlight = errors.New("a submission is already in flight for this session")
)
