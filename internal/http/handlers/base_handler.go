// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pedidos/internal/modules/delivery"
	"pedidos/internal/modules/order"
)

// Intake is the pipeline the handlers delegate to.
type Intake interface {
	HandleMessage(ctx context.Context, message string) (order.Decision, error)
	VerifyOrder(ctx context.Context, o order.Order) (order.Decision, error)
	SubmitOrder(ctx context.Context, d order.DirectOrder) error
}

const (
	msgProcessingError = "Erro ao processar pedido"
	msgLookupError     = "Não foi possível verificar a distância de entrega no momento. Tente novamente mais tarde."
	msgRetryLater      = "Erro ao processar pedido. Tente novamente mais tarde."
	msgIncompleteOrder = "Dados incompletos no pedido."
)

type errorResponse struct {
	Error string `json:"erro"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// requestContext bounds the pipeline by timeout; zero leaves it unbounded.
func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

// writeTextError maps pipeline errors to plain-text responses.
func writeTextError(c *gin.Context, err error) {
	var lookupErr *delivery.LookupError
	switch {
	case errors.Is(err, order.ErrBadRequest):
		c.String(http.StatusBadRequest, msgIncompleteOrder)
	case errors.As(err, &lookupErr):
		c.String(http.StatusInternalServerError, msgLookupError)
	default:
		c.String(http.StatusInternalServerError, msgRetryLater)
	}
}
