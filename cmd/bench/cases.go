// README: Bench cases for the order intake routes; input validation, live pipeline and throughput checks.
package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

type Runner struct {
	cfg    Config
	client *resty.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg: cfg,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(30 * time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s [%s] %s", res.Status, tc.Focus, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	sampleOrder := map[string]any{
		"nome":       "Bench #0001",
		"produto":    "Pizza Margherita",
		"quantidade": 1,
		"pagamento":  "Pix",
		"endereco":   "Av. Paulista, 1000, São Paulo",
		"telefone":   "11999990000",
		"observacao": "teste de carga",
	}

	return []TestCase{
		httpCaseMethod("Health check", http.MethodGet, "/health", nil, []int{200}),
		httpCaseMethod("Metrics exposed", http.MethodGet, "/metrics", nil, []int{200}),
		httpCaseMethod("Wrong method on /chat", http.MethodGet, "/chat", nil, []int{405}),
		httpCase("Chat: empty message", "/chat", map[string]any{"mensagem": "   "}, []int{400}),
		httpCase("Chat: missing body field", "/chat", map[string]any{}, []int{400}),
		httpCase("Verify: incomplete order", "/verificar-pedido", map[string]any{"nome": "Ana"}, []int{400}),
		httpCase("Direct order: incomplete", "/api/pedido", map[string]any{"nome": "Ana"}, []int{400}),

		liveCase("Chat: greeting passes through", "/chat", map[string]any{"mensagem": "Oi, qual o cardápio?"}, []int{200}),
		liveCase("Verify: sample order", "/verificar-pedido", sampleOrder, []int{200}),

		{
			Name:  "Perf: rejected chat throughput",
			Focus: "Performance",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, "/chat", map[string]any{"mensagem": ""})
			},
		},
	}
}

func httpCase(name, path string, body any, okStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, path, body, okStatuses)
}

func httpCaseMethod(name, method, path string, body any, okStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			return r.do(ctx, method, path, body, okStatuses)
		},
	}
}

// liveCase only runs with -live since it reaches paid upstream services.
func liveCase(name, path string, body any, okStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "Live",
		Run: func(ctx context.Context, r *Runner) Result {
			if !r.cfg.Live {
				return Result{Status: "SKIP", Note: "enable with -live"}
			}
			return r.do(ctx, http.MethodPost, path, body, okStatuses)
		},
	}
}

func (r *Runner) do(ctx context.Context, method, path string, body any, okStatuses []int) Result {
	req := r.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	latency := time.Since(start)
	if contains(okStatuses, resp.StatusCode()) {
		return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode())}
	}
	return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d body=%s", resp.StatusCode(), truncate(resp.String(), 120))}
}

func perfLoad(ctx context.Context, r *Runner, path string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				_, err := r.client.R().SetContext(ctx).SetBody(payload).Post(path)
				if err != nil {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
