// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pedidos/internal/http/handlers"
	"pedidos/internal/http/middleware"
)

type RouterDeps struct {
	Intake         handlers.Intake
	Logger         *zap.Logger
	RequestTimeout time.Duration
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		middleware.Recovery(deps.Logger),
		middleware.Tracing("pedidos-api"),
		middleware.Metrics(),
		middleware.Logging(deps.Logger),
	)

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Método não permitido"})
	})

	chatHandler := handlers.NewChatHandler(deps.Intake, deps.RequestTimeout, deps.Logger)
	r.POST("/chat", chatHandler.Chat)

	orderHandler := handlers.NewOrderHandler(deps.Intake, deps.RequestTimeout, deps.Logger)
	r.POST("/verificar-pedido", orderHandler.Verify)
	r.POST("/api/pedido", orderHandler.Submit)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
