// README: Downstream sinks for finalized orders (automation webhook, kitchen queue).
package forward

import (
	"context"
	"errors"

	"pedidos/internal/metrics"
)

// ErrRejected is returned when a sink answers with a non-success status.
var ErrRejected = errors.New("forward rejected by sink")

// Forwarder pushes a finalized payload downstream exactly once.
type Forwarder interface {
	Forward(ctx context.Context, payload any) error
}

// Named is implemented by sinks that report a label for metrics.
type Named interface {
	Name() string
}

// Fanout forwards to every sink in order and stops at the first failure.
type Fanout []Forwarder

func (f Fanout) Forward(ctx context.Context, payload any) error {
	for _, sink := range f {
		err := sink.Forward(ctx, payload)
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.Forwards.WithLabelValues(sinkName(sink), status).Inc()
		if err != nil {
			return err
		}
	}
	return nil
}

func sinkName(f Forwarder) string {
	if n, ok := f.(Named); ok {
		return n.Name()
	}
	return "unknown"
}
