// README: Chat handler; relays a customer message through the order pipeline.
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pedidos/internal/modules/order"
)

type ChatHandler struct {
	intake  Intake
	timeout time.Duration
	log     *zap.Logger
}

func NewChatHandler(intake Intake, timeout time.Duration, log *zap.Logger) *ChatHandler {
	return &ChatHandler{intake: intake, timeout: timeout, log: log}
}

type chatReq struct {
	Mensagem string `json:"mensagem"`
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "JSON inválido")
		return
	}

	req.Mensagem = strings.TrimSpace(req.Mensagem)
	if req.Mensagem == "" {
		writeError(c, http.StatusBadRequest, "O campo mensagem é obrigatório")
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	d, err := h.intake.HandleMessage(ctx, req.Mensagem)
	if err != nil {
		if errors.Is(err, order.ErrBadRequest) {
			writeError(c, http.StatusBadRequest, "O campo mensagem é obrigatório")
			return
		}
		h.log.Error("chat request failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, msgProcessingError)
		return
	}

	writeJSON(c, http.StatusOK, gin.H{"resposta": chatReply(d)})
}

// chatReply is the forwarded record for forwarded decisions and the
// customer-facing text otherwise.
func chatReply(d order.Decision) any {
	if p := d.Payload(); p != nil {
		return p
	}
	return d.Message
}
