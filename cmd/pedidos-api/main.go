// README: Entry point; loads config, wires the order pipeline and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pedidos/internal/ai"
	"pedidos/internal/config"
	"pedidos/internal/forward"
	httptransport "pedidos/internal/http"
	"pedidos/internal/infra"
	"pedidos/internal/logger"
	"pedidos/internal/maps"
	"pedidos/internal/modules/delivery"
	"pedidos/internal/modules/order"
	"pedidos/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zaplog, err := logger.NewZapLog(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer zaplog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Endpoint != "" {
		tp, err := infra.InitTracer("pedidos-api", cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		defer tp.Shutdown(context.Background())
	}

	hours, err := order.NewHours(cfg.Store.OpenDays, cfg.Store.OpenHour, cfg.Store.CloseHour, cfg.Store.Timezone)
	if err != nil {
		return err
	}

	provider, closeProvider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeProvider()

	distanceSvc, err := maps.NewDistanceService(cfg.Maps.APIKey, maps.DistanceOptions{Language: cfg.Maps.Language})
	if err != nil {
		return err
	}
	checker := delivery.NewChecker(distanceSvc, cfg.Store.OriginAddress, cfg.Store.MaxDeliveryMeters)

	router := order.NewRouter(order.RouterConfig{
		Classifier: order.Classifier{SubstringFallback: cfg.AI.SubstringFallback},
		Hours:      hours,
		StoreName:  cfg.Store.Name,
	}, checker)

	sinks := forward.Fanout{forward.NewWebhookForwarder(cfg.Forward.WebhookURL, cfg.Forward.Timeout)}
	if cfg.Forward.AMQPURL != "" {
		mq, err := infra.DialAMQP(cfg.Forward.AMQPURL, forward.OrdersExchange)
		if err != nil {
			return err
		}
		defer mq.Close()
		sinks = append(sinks, forward.NewAMQPForwarder(mq.Channel()))
	}

	intake := service.NewIntake(service.IntakeDeps{
		Provider:  provider,
		Router:    router,
		Sink:      sinks,
		Hours:     hours,
		StoreName: cfg.Store.Name,
		Logger:    zaplog,
	})

	gin.SetMode(gin.ReleaseMode)
	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Intake:         intake,
		Logger:         zaplog,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})

	zaplog.Info("starting",
		zap.String("store", cfg.Store.Name),
		zap.String("provider", provider.Name()),
		zap.String("hours", hours.Describe()),
		zap.Bool("amqp", cfg.Forward.AMQPURL != ""),
	)
	return httptransport.NewServer(cfg.HTTP.Addr, handler, zaplog).Run(ctx)
}

func newProvider(ctx context.Context, cfg config.Config) (ai.Provider, func(), error) {
	switch cfg.AI.Provider {
	case "gemini":
		p, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiModel, cfg.Forward.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	default:
		p := ai.NewOpenAIProvider(cfg.AI.OpenAIKey, cfg.AI.OpenAIModel, cfg.AI.OpenAIBaseURL, cfg.Forward.Timeout)
		return p, func() {}, nil
	}
}
