package domain

import "errors"

var (
	// ErrTransport indicates a bus read or write failed
	ErrTransport = errors.New("transport failure")

	// ErrConfiguration indicates the sensor or servo hardware could not be initialised
	ErrConfiguration = errors.New("configuration failure")

	// ErrUnknownColor indicates a value that does not name a device color
	ErrUnknownColor = errors.New("unknown color")

	// ErrSequenceComplete indicates an append past the winning length
	ErrSequenceComplete = errors.New("sequence already complete")

	// ErrGameNotFound indicates requested game doesn't exist
	ErrGameNotFound = errors.New("game not found")
)
