// README: Order handlers for verification (/verificar-pedido) and direct submission (/api/pedido).
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pedidos/internal/modules/order"
)

type OrderHandler struct {
	intake  Intake
	timeout time.Duration
	log     *zap.Logger
}

func NewOrderHandler(intake Intake, timeout time.Duration, log *zap.Logger) *OrderHandler {
	return &OrderHandler{intake: intake, timeout: timeout, log: log}
}

// Verify handles POST /verificar-pedido. The answer is plain text.
func (h *OrderHandler) Verify(c *gin.Context) {
	var o order.Order
	if err := c.ShouldBindJSON(&o); err != nil {
		c.String(http.StatusBadRequest, msgIncompleteOrder)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	d, err := h.intake.VerifyOrder(ctx, o)
	if err != nil {
		h.log.Error("verify order failed", zap.Error(err))
		writeTextError(c, err)
		return
	}
	c.String(http.StatusOK, d.Message)
}

type directErrorResponse struct {
	Error string `json:"error"`
}

// Submit handles POST /api/pedido.
func (h *OrderHandler) Submit(c *gin.Context) {
	var d order.DirectOrder
	if err := c.ShouldBindJSON(&d); err != nil {
		writeJSON(c, http.StatusBadRequest, directErrorResponse{Error: msgIncompleteOrder})
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.intake.SubmitOrder(ctx, d); err != nil {
		if errors.Is(err, order.ErrBadRequest) {
			writeJSON(c, http.StatusBadRequest, directErrorResponse{Error: msgIncompleteOrder})
			return
		}
		h.log.Error("submit order failed", zap.Error(err))
		writeJSON(c, http.StatusInternalServerError, directErrorResponse{Error: "Erro interno ao processar o pedido."})
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"mensagem": "Pedido enviado com sucesso!"})
}
