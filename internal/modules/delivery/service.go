// README: Delivery eligibility checker; one distance lookup from the storefront per order.
package delivery

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"pedidos/internal/metrics"
)

// Lookup resolves the driving distance between two free-form addresses.
type Lookup interface {
	Distance(ctx context.Context, origin, destination string) (meters int, label string, err error)
}

type Checker struct {
	lookup    Lookup
	origin    string
	maxMeters int
}

func NewChecker(lookup Lookup, origin string, maxMeters int) *Checker {
	if maxMeters <= 0 {
		maxMeters = DefaultMaxMeters
	}
	return &Checker{lookup: lookup, origin: origin, maxMeters: maxMeters}
}

// MaxMeters returns the configured delivery radius.
func (c *Checker) MaxMeters() int {
	return c.maxMeters
}

// Check looks up the distance to destination. Failures are never turned
// into a default verdict; they come back as *LookupError.
func (c *Checker) Check(ctx context.Context, destination string) (Verdict, error) {
	ctx, span := otel.Tracer("pedidos/delivery").Start(ctx, "delivery.Check")
	defer span.End()

	destination = strings.TrimSpace(destination)
	if destination == "" {
		metrics.DistanceLookups.WithLabelValues("error").Inc()
		return Verdict{}, &LookupError{Err: ErrEmptyDestination}
	}

	meters, label, err := c.lookup.Distance(ctx, c.origin, destination)
	if err == nil && (meters < 0 || strings.TrimSpace(label) == "") {
		err = ErrMalformedResponse
	}
	if err != nil {
		span.RecordError(err)
		metrics.DistanceLookups.WithLabelValues("error").Inc()
		return Verdict{}, &LookupError{Destination: destination, Err: err}
	}

	v := Verdict{
		DistanceMeters: meters,
		DistanceLabel:  label,
		WithinRange:    meters <= c.maxMeters,
	}
	span.SetAttributes(
		attribute.Int("delivery.distance_meters", meters),
		attribute.Bool("delivery.within_range", v.WithinRange),
	)
	metrics.DistanceLookups.WithLabelValues("ok").Inc()
	return v, nil
}
