package domain

import "errors"

// ErrUnknownCounter is returned when an operation names a counter outside CounterNames.
var ErrUnknownCounter = errors.New("unknown counter")

// ErrUnsupportedStore is returned when a store DSN uses a scheme no backend handles.
// Callers can check for it using errors.Is.
var ErrUnsupportedStore = errors.New("unsupported store")
