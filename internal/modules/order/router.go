// README: Order router; turns a completion reply into exactly one routing decision.
package order

import (
	"context"
	"time"

	"pedidos/internal/modules/delivery"
)

// Eligibility checks whether an address is inside the delivery radius.
type Eligibility interface {
	Check(ctx context.Context, destination string) (delivery.Verdict, error)
	MaxMeters() int
}

type Router struct {
	classifier Classifier
	enricher   *Enricher
	hours      Hours
	checker    Eligibility
	messages   Messages
	now        func() time.Time
}

type RouterConfig struct {
	Classifier Classifier
	Hours      Hours
	StoreName  string
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewRouter(cfg RouterConfig, checker Eligibility) *Router {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Router{
		classifier: cfg.Classifier,
		enricher:   NewEnricher(cfg.Hours.Location, now),
		hours:      cfg.Hours,
		checker:    checker,
		messages: Messages{
			StoreName: cfg.StoreName,
			Hours:     cfg.Hours,
			MaxMeters: checker.MaxMeters(),
		},
		now: now,
	}
}

// RouteText classifies and parses raw completion text, then routes it.
// Free text and replies that fail to parse are passed through untouched.
func (r *Router) RouteText(ctx context.Context, raw string) (Decision, error) {
	c := r.classifier.Classify(raw)
	if c == ClassUnstructured {
		return passThrough(raw, false), nil
	}
	p, err := Parse(raw, c)
	if err != nil {
		return passThrough(raw, true), nil
	}
	if p.Address != nil {
		// no order commitment happens here, so no eligibility check
		return Decision{
			Kind:    DecisionForwarded,
			Address: p.Address,
			Message: r.messages.AddressReceived(*p.Address),
			Raw:     raw,
		}, nil
	}
	d, err := r.RouteOrder(ctx, *p.Order)
	d.Raw = raw
	return d, err
}

// RouteOrder enriches a parsed order and applies the hours and distance
// gates. A failed distance lookup is returned as an error and no decision
// is produced.
func (r *Router) RouteOrder(ctx context.Context, o Order) (Decision, error) {
	o = r.enricher.Enrich(o)

	open := r.hours.IsOpen(r.now())
	if !open && !IsScheduled(o, open) {
		return Decision{Kind: DecisionRejectedClosed, Order: &o, Message: r.messages.Closed()}, nil
	}

	v, err := r.checker.Check(ctx, o.Address)
	if err != nil {
		return Decision{}, err
	}
	if !v.WithinRange {
		return Decision{Kind: DecisionRejectedTooFar, Order: &o, Verdict: &v, Message: r.messages.TooFar(v)}, nil
	}
	return Decision{Kind: DecisionForwarded, Order: &o, Verdict: &v, Message: r.messages.Confirmed(o, v)}, nil
}

// Messages returns the customer-facing texts used by the router.
func (r *Router) Messages() Messages {
	return r.messages
}

func passThrough(raw string, malformed bool) Decision {
	return Decision{Kind: DecisionPassThrough, Message: raw, Raw: raw, Malformed: malformed}
}
