// http собирает HTTP-границу сервиса: chi-роутер, мидлвары и маршруты.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/savelevaok/ainews/internal/transport/http/handlers"
	"github.com/savelevaok/ainews/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// CacheMaxAge / StaleWhileRevalidate — подсказки Cache-Control для /articles.
	CacheMaxAge          time.Duration
	StaleWhileRevalidate time.Duration
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.Service, summarizer handlers.Summarizer, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc, summarizer, opts.CacheMaxAge, opts.StaleWhileRevalidate)

	root.Get("/articles", h.Articles)
	root.Post("/summarize", h.Summarize)
	root.Get("/healthz", h.Healthz)
	root.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return root
}
