// README: Delivery eligibility verdict and lookup errors.
package delivery

import "errors"

// DefaultMaxMeters is the delivery radius (10 km), inclusive.
const DefaultMaxMeters = 10000

var (
	ErrEmptyDestination  = errors.New("empty destination address")
	ErrMalformedResponse = errors.New("malformed distance response")
)

// Verdict is the outcome of a single distance lookup.
type Verdict struct {
	DistanceMeters int    `json:"distancia_metros"`
	DistanceLabel  string `json:"distancia"`
	WithinRange    bool   `json:"dentro_do_raio"`
}

// LookupError wraps any failure to resolve a travel distance.
type LookupError struct {
	Destination string
	Err         error
}

func (e *LookupError) Error() string {
	return "distance lookup failed: " + e.Err.Error()
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
