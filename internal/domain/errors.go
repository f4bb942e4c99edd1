package domain

import "github.com/pkg/errors"

var (
	// ErrInvalidSeries reports a price series that is empty or whose
	// timestamps are not strictly ascending.
	ErrInvalidSeries = errors.New("invalid price series")

	// ErrInsufficientData reports a series shorter than the window an
	// indicator requires.
	ErrInsufficientData = errors.New("not enough data points")

	// ErrPriceUnavailable reports a symbol with no live quote.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrProviderFailure reports an advisory provider that could not be
	// reached or returned garbage.
	ErrProviderFailure = errors.New("advisory provider failure")
)
