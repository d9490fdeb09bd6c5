package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedidos/internal/modules/delivery"
)

type fakeChecker struct {
	meters int
	label  string
	err    error
	calls  []string
}

func (f *fakeChecker) Check(_ context.Context, destination string) (delivery.Verdict, error) {
	f.calls = append(f.calls, destination)
	if f.err != nil {
		return delivery.Verdict{}, &delivery.LookupError{Destination: destination, Err: f.err}
	}
	return delivery.Verdict{DistanceMeters: f.meters, DistanceLabel: f.label, WithinRange: f.meters <= f.MaxMeters()}, nil
}

func (f *fakeChecker) MaxMeters() int { return delivery.DefaultMaxMeters }

var (
	// Wednesday 2026-10-21 20:00 local.
	openTime = time.Date(2026, 10, 21, 20, 0, 0, 0, brt)
	// Monday 2026-10-19 20:00 local.
	closedTime = time.Date(2026, 10, 19, 20, 0, 0, 0, brt)
)

func newTestRouter(t *testing.T, at time.Time, checker *fakeChecker) *Router {
	t.Helper()
	return NewRouter(RouterConfig{
		Classifier: Classifier{SubstringFallback: true},
		Hours:      Hours{Days: mustDays(t, "tue-sun"), Open: 17, Close: 24, Location: brt},
		StoreName:  "Giulia Pizzaria",
		Now:        func() time.Time { return at },
	}, checker)
}

func TestRouter_ForwardsCompleteOrder(t *testing.T) {
	checker := &fakeChecker{meters: 4500, label: "4,5 km"}
	r := newTestRouter(t, openTime, checker)

	d, err := r.RouteText(context.Background(), completeReply)
	require.NoError(t, err)
	assert.Equal(t, DecisionForwarded, d.Kind)
	require.NotNil(t, d.Order)
	require.NotNil(t, d.Order.OrderNumber)
	assert.Equal(t, 1234, *d.Order.OrderNumber)
	assert.Equal(t, "20:00 - 21/10/26", d.Order.Timestamp)
	require.NotNil(t, d.Verdict)
	assert.Equal(t, 4500, d.Verdict.DistanceMeters)
	assert.Equal(t, completeReply, d.Raw)
	assert.Contains(t, d.Message, "#1234")
	assert.Same(t, d.Order, d.Payload())
	assert.Equal(t, []string{"Rua Augusta, 500"}, checker.calls)
}

func TestRouter_RejectsWhenClosed(t *testing.T) {
	checker := &fakeChecker{meters: 4500, label: "4,5 km"}
	r := newTestRouter(t, closedTime, checker)

	d, err := r.RouteText(context.Background(), completeReply)
	require.NoError(t, err)
	assert.Equal(t, DecisionRejectedClosed, d.Kind)
	assert.Equal(t, r.Messages().Closed(), d.Message)
	assert.Nil(t, d.Payload())
	assert.Empty(t, checker.calls, "no distance lookup for a closed store")
}

func TestRouter_ScheduledOrderPassesClosedGate(t *testing.T) {
	checker := &fakeChecker{meters: 4500, label: "4,5 km"}
	r := newTestRouter(t, closedTime, checker)

	o := Order{Name: "Ana", Product: "Pizza", Quantity: 1, Payment: "Pix", Address: "Rua A", Phone: "1199", Note: "Agendado para terça 19h"}
	d, err := r.RouteOrder(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, DecisionForwarded, d.Kind)
	assert.Len(t, checker.calls, 1)
}

func TestRouter_RejectsTooFar(t *testing.T) {
	checker := &fakeChecker{meters: 15000, label: "15,0 km"}
	r := newTestRouter(t, openTime, checker)

	d, err := r.RouteText(context.Background(), completeReply)
	require.NoError(t, err)
	assert.Equal(t, DecisionRejectedTooFar, d.Kind)
	assert.Contains(t, d.Message, "15")
	assert.Contains(t, d.Message, "10 km")
	assert.Nil(t, d.Payload())
}

func TestRouter_DistanceBoundary(t *testing.T) {
	tests := []struct {
		meters int
		want   DecisionKind
	}{
		{meters: 10000, want: DecisionForwarded},
		{meters: 10001, want: DecisionRejectedTooFar},
	}
	for _, tt := range tests {
		r := newTestRouter(t, openTime, &fakeChecker{meters: tt.meters, label: FormatKm(tt.meters)})
		d, err := r.RouteText(context.Background(), completeReply)
		require.NoError(t, err)
		assert.Equal(t, tt.want, d.Kind, "meters=%d", tt.meters)
	}
}

func TestRouter_LookupFailureIsAnError(t *testing.T) {
	r := newTestRouter(t, openTime, &fakeChecker{err: errors.New("quota exceeded")})

	_, err := r.RouteText(context.Background(), completeReply)
	var lookupErr *delivery.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "Rua Augusta, 500", lookupErr.Destination)
}

func TestRouter_PassThrough(t *testing.T) {
	checker := &fakeChecker{meters: 100, label: "0,1 km"}
	r := newTestRouter(t, openTime, checker)

	d, err := r.RouteText(context.Background(), "Olá! Qual sabor você deseja?")
	require.NoError(t, err)
	assert.Equal(t, DecisionPassThrough, d.Kind)
	assert.Equal(t, "Olá! Qual sabor você deseja?", d.Message)
	assert.False(t, d.Malformed)
	assert.Nil(t, d.Payload())

	truncated := `{"nome":"Ana","produto":"Pizza","quantidade":1,"pagamento":"Pix","endereco":"Rua A","telefone":"11`
	d, err = r.RouteText(context.Background(), truncated)
	require.NoError(t, err)
	assert.Equal(t, DecisionPassThrough, d.Kind)
	assert.True(t, d.Malformed)
	assert.Equal(t, truncated, d.Message)

	assert.Empty(t, checker.calls)
}

func TestRouter_AddressOnlyIsForwardedWithoutChecks(t *testing.T) {
	checker := &fakeChecker{meters: 50000, label: "50 km"}
	r := newTestRouter(t, closedTime, checker)

	d, err := r.RouteText(context.Background(), `{"endereco":"Av. Paulista, 1000"}`)
	require.NoError(t, err)
	assert.Equal(t, DecisionForwarded, d.Kind)
	require.NotNil(t, d.Address)
	assert.Equal(t, d.Address, d.Payload())
	assert.Contains(t, d.Message, "Av. Paulista, 1000")
	assert.Empty(t, checker.calls)
}

func TestRouter_Idempotent(t *testing.T) {
	checker := &fakeChecker{meters: 4500, label: "4,5 km"}
	at := openTime
	r := NewRouter(RouterConfig{
		Hours: Hours{Days: mustDays(t, "tue-sun"), Open: 17, Close: 24, Location: brt},
		Now: func() time.Time {
			at = at.Add(time.Minute)
			return at
		},
	}, checker)

	first, err := r.RouteText(context.Background(), completeReply)
	require.NoError(t, err)
	second, err := r.RouteText(context.Background(), completeReply)
	require.NoError(t, err)

	assert.NotEqual(t, first.Order.Timestamp, second.Order.Timestamp)
	a, b := *first.Order, *second.Order
	a.Timestamp, b.Timestamp = "", ""
	assert.Equal(t, a, b)
}
