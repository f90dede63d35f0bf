package store

import "errors"

var (
	// ErrServer means the backend answered with an error body or a non-2xx status.
	ErrServer = errors.New("backend returned an error")
	// ErrNoOrder means a payment intent was requested before any order was loaded.
	ErrNoOrder = errors.New("no order loaded")
)
