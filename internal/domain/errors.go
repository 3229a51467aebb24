package domain

import "errors"

// Sentinel errors separating business failures from storage I/O failures.
// Handlers map these onto HTTP status codes with errors.Is.
var (
	// ErrUpstream means the market data feed could not be fetched
	// (network, non-success status, or malformed payload) and no cached
	// batch was available to fall back on.
	ErrUpstream = errors.New("upstream market data unavailable")

	// ErrDuplicateCode means the ticker is already on the user's watchlist
	ErrDuplicateCode = errors.New("ticker already on watchlist")

	// ErrNotFound means the requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken means the username is already registered
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials means the username/password pair did not match
	ErrInvalidCredentials = errors.New("invalid username or password")
)
