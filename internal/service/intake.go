package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"pedidos/internal/ai"
	"pedidos/internal/forward"
	"pedidos/internal/metrics"
	"pedidos/internal/modules/order"
)

// ErrForward means a decision to forward was reached but the downstream
// sink did not accept the order.
var ErrForward = errors.New("forward failed")

var tracer = otel.Tracer("pedidos/service")

// Intake orchestrates the completion call, order routing and forwarding.
// It holds no per-request state; one Intake serves all requests.
type Intake struct {
	provider  ai.Provider
	router    *order.Router
	sink      forward.Forwarder
	hours     order.Hours
	storeName string
	now       func() time.Time
	log       *zap.Logger
}

type IntakeDeps struct {
	Provider  ai.Provider
	Router    *order.Router
	Sink      forward.Forwarder
	Hours     order.Hours
	StoreName string
	Logger    *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewIntake(deps IntakeDeps) *Intake {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Intake{
		provider:  deps.Provider,
		router:    deps.Router,
		sink:      deps.Sink,
		hours:     deps.Hours,
		storeName: deps.StoreName,
		now:       now,
		log:       log,
	}
}

// HandleMessage runs one customer message through the whole pipeline.
func (s *Intake) HandleMessage(ctx context.Context, message string) (order.Decision, error) {
	ctx, span := tracer.Start(ctx, "intake.HandleMessage")
	defer span.End()

	if message == "" {
		return order.Decision{}, order.ErrBadRequest
	}

	prompt := ai.BuildSystemPrompt(ai.PromptContext{
		StoreName:   s.storeName,
		CurrentTime: s.now().In(s.hours.Location).Format(time.RFC3339),
		Hours:       s.hours.Describe(),
	})

	start := time.Now()
	raw, err := s.provider.Complete(ctx, prompt, message)
	metrics.CompletionLatency.WithLabelValues(s.provider.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CompletionRequests.WithLabelValues(s.provider.Name(), "error").Inc()
		span.RecordError(err)
		s.log.Error("completion call failed", zap.String("provider", s.provider.Name()), zap.Error(err))
		return order.Decision{}, err
	}
	metrics.CompletionRequests.WithLabelValues(s.provider.Name(), "ok").Inc()

	d, err := s.router.RouteText(ctx, raw)
	if err != nil {
		span.RecordError(err)
		s.log.Error("routing failed", zap.Error(err))
		return order.Decision{}, err
	}
	if d.Malformed {
		s.log.Warn("structured reply failed to parse, passing through", zap.Int("length", len(raw)))
	}
	return s.finish(ctx, "chat", d)
}

// VerifyOrder routes an order supplied directly by a caller.
func (s *Intake) VerifyOrder(ctx context.Context, o order.Order) (order.Decision, error) {
	ctx, span := tracer.Start(ctx, "intake.VerifyOrder")
	defer span.End()

	if err := order.Validate(&o); err != nil {
		return order.Decision{}, fmt.Errorf("%w: %v", order.ErrBadRequest, err)
	}
	d, err := s.router.RouteOrder(ctx, o)
	if err != nil {
		span.RecordError(err)
		s.log.Error("order verification failed", zap.Error(err))
		return order.Decision{}, err
	}
	return s.finish(ctx, "verify", d)
}

// SubmitOrder forwards a form-submitted order as is.
func (s *Intake) SubmitOrder(ctx context.Context, d order.DirectOrder) error {
	ctx, span := tracer.Start(ctx, "intake.SubmitOrder")
	defer span.End()

	if err := order.ValidateDirect(&d); err != nil {
		return fmt.Errorf("%w: %v", order.ErrBadRequest, err)
	}
	if err := s.sink.Forward(ctx, d); err != nil {
		span.RecordError(err)
		s.log.Error("direct order forward failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrForward, err)
	}
	s.log.Info("direct order forwarded", zap.String("name", d.Name))
	return nil
}

func (s *Intake) finish(ctx context.Context, source string, d order.Decision) (order.Decision, error) {
	fields := []zap.Field{zap.String("source", source), zap.String("decision", string(d.Kind))}
	if d.Order != nil && d.Order.OrderNumber != nil {
		fields = append(fields, zap.Int("numero_pedido", *d.Order.OrderNumber))
	}
	if d.Verdict != nil {
		fields = append(fields, zap.Int("distance_meters", d.Verdict.DistanceMeters))
	}

	if payload := d.Payload(); payload != nil {
		fctx, span := tracer.Start(ctx, "intake.Forward")
		span.SetAttributes(attribute.String("decision", string(d.Kind)))
		err := s.sink.Forward(fctx, payload)
		span.End()
		if err != nil {
			s.log.Error("forward failed", append(fields, zap.Error(err))...)
			return order.Decision{}, fmt.Errorf("%w: %v", ErrForward, err)
		}
	}

	metrics.Decisions.WithLabelValues(source, string(d.Kind)).Inc()
	s.log.Info("order routed", fields...)
	return d, nil
}
