package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pedidos/internal/http/handlers"
	"pedidos/internal/modules/delivery"
	"pedidos/internal/modules/order"
	"pedidos/internal/service"
)

// stubIntake is a test double for handlers.Intake.
type stubIntake struct {
	decision order.Decision
	err      error

	gotMessage  string
	gotOrder    order.Order
	gotDirect   order.DirectOrder
	hasDeadline bool
}

func (s *stubIntake) HandleMessage(ctx context.Context, message string) (order.Decision, error) {
	s.gotMessage = message
	_, s.hasDeadline = ctx.Deadline()
	return s.decision, s.err
}

func (s *stubIntake) VerifyOrder(_ context.Context, o order.Order) (order.Decision, error) {
	s.gotOrder = o
	return s.decision, s.err
}

func (s *stubIntake) SubmitOrder(_ context.Context, d order.DirectOrder) error {
	s.gotDirect = d
	return s.err
}

func buildTestRouter(intake handlers.Intake) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chat := handlers.NewChatHandler(intake, 5*time.Second, zap.NewNop())
	orders := handlers.NewOrderHandler(intake, 5*time.Second, zap.NewNop())
	r.POST("/chat", chat.Chat)
	r.POST("/verificar-pedido", orders.Verify)
	r.POST("/api/pedido", orders.Submit)
	return r
}

func doRequest(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestChat_PassThroughReply(t *testing.T) {
	intake := &stubIntake{decision: order.Decision{Kind: order.DecisionPassThrough, Message: "Qual sabor?"}}
	w := doRequest(buildTestRouter(intake), "/chat", `{"mensagem":"  oi  "}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Qual sabor?", decodeBody(t, w)["resposta"])
	assert.Equal(t, "oi", intake.gotMessage)
	assert.True(t, intake.hasDeadline)
}

func TestChat_ForwardedReplyCarriesRecord(t *testing.T) {
	n := 1234
	o := &order.Order{Name: "Ana #1234", Product: "Pizza", Quantity: 1, Payment: "Pix", Address: "Rua A", Phone: "1199", OrderNumber: &n}
	intake := &stubIntake{decision: order.Decision{Kind: order.DecisionForwarded, Order: o, Message: "✅"}}
	w := doRequest(buildTestRouter(intake), "/chat", `{"mensagem":"fechar pedido"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resposta, ok := decodeBody(t, w)["resposta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ana #1234", resposta["nome"])
	assert.Equal(t, float64(1234), resposta["numero_pedido"])
}

func TestChat_RejectedReplyIsText(t *testing.T) {
	intake := &stubIntake{decision: order.Decision{Kind: order.DecisionRejectedClosed, Order: &order.Order{}, Message: "fechado"}}
	w := doRequest(buildTestRouter(intake), "/chat", `{"mensagem":"pizza"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fechado", decodeBody(t, w)["resposta"])
}

func TestChat_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "invalid json", body: `{"mensagem":`, want: "JSON inválido"},
		{name: "missing field", body: `{}`, want: "O campo mensagem é obrigatório"},
		{name: "blank field", body: `{"mensagem":"   "}`, want: "O campo mensagem é obrigatório"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intake := &stubIntake{}
			w := doRequest(buildTestRouter(intake), "/chat", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decodeBody(t, w)["erro"])
			assert.Empty(t, intake.gotMessage)
		})
	}
}

func TestChat_PipelineFailure(t *testing.T) {
	for _, err := range []error{
		errors.New("completion timeout"),
		&delivery.LookupError{Err: errors.New("denied")},
		fmt.Errorf("%w: webhook down", service.ErrForward),
	} {
		w := doRequest(buildTestRouter(&stubIntake{err: err}), "/chat", `{"mensagem":"oi"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Erro ao processar pedido", decodeBody(t, w)["erro"])
	}
}

const validOrder = `{"nome":"Ana","produto":"Pizza","quantidade":"2","pagamento":"Pix","endereco":"Rua A","telefone":"1199"}`

func TestVerify(t *testing.T) {
	intake := &stubIntake{decision: order.Decision{Kind: order.DecisionForwarded, Message: "✅ Pedido confirmado!"}}
	w := doRequest(buildTestRouter(intake), "/verificar-pedido", validOrder)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "✅ Pedido confirmado!", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, order.Quantity(2), intake.gotOrder.Quantity)
}

func TestVerify_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "invalid json", body: `nope`, wantCode: http.StatusBadRequest, wantBody: "Dados incompletos no pedido."},
		{name: "validation", body: validOrder, err: fmt.Errorf("%w: phone", order.ErrBadRequest), wantCode: http.StatusBadRequest, wantBody: "Dados incompletos no pedido."},
		{name: "lookup", body: validOrder, err: &delivery.LookupError{Err: errors.New("denied")}, wantCode: http.StatusInternalServerError, wantBody: "Não foi possível verificar a distância de entrega no momento. Tente novamente mais tarde."},
		{name: "forward", body: validOrder, err: service.ErrForward, wantCode: http.StatusInternalServerError, wantBody: "Erro ao processar pedido. Tente novamente mais tarde."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(buildTestRouter(&stubIntake{err: tt.err}), "/verificar-pedido", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

const validDirect = `{"nome":"Ana","endereco":"Rua A","telefone":"1199","pedido":"1 calabresa","forma_pagamento":"Pix","observacoes":"sem cebola"}`

func TestSubmit(t *testing.T) {
	intake := &stubIntake{}
	w := doRequest(buildTestRouter(intake), "/api/pedido", validDirect)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pedido enviado com sucesso!", decodeBody(t, w)["mensagem"])
	assert.Equal(t, "1 calabresa", intake.gotDirect.Items)
	assert.Equal(t, "sem cebola", intake.gotDirect.Notes)
}

func TestSubmit_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "invalid json", body: `{`, wantCode: http.StatusBadRequest, wantErr: "Dados incompletos no pedido."},
		{name: "incomplete", body: validDirect, err: order.ErrBadRequest, wantCode: http.StatusBadRequest, wantErr: "Dados incompletos no pedido."},
		{name: "sink failure", body: validDirect, err: service.ErrForward, wantCode: http.StatusInternalServerError, wantErr: "Erro interno ao processar o pedido."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(buildTestRouter(&stubIntake{err: tt.err}), "/api/pedido", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, decodeBody(t, w)["error"])
		})
	}
}
