// README: Error categories shared by all modules; wrap with fmt.Errorf("%w: ...").
package types

import "errors"

var (
	// ErrConfiguration marks a missing or malformed pricing setting. Fatal to a pricing call.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks invalid domain input (route, dates, seat type, airline).
	ErrValidation = errors.New("validation error")
	// ErrLookup marks an external data provider that could not resolve a country.
	ErrLookup = errors.New("lookup error")

	ErrNotFound = errors.New("not found")
)
