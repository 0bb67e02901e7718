// handlers — REST-хендлеры HTTP-границы сервиса.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/savelevaok/ainews/internal/models"
)

// Service — контракт query-сервиса со стороны HTTP-слоя.
type Service interface {
	Articles(ctx context.Context, filter models.ArticleFilter) []models.Article
}

// Summarizer — контракт внешнего суммаризатора.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	svc        Service
	summarizer Summarizer

	// Подсказки Cache-Control для /articles: короткий public max-age
	// и длинное окно stale-while-revalidate, чтобы промежуточные кэши
	// (CDN) гасили повторы одинаковых запросов.
	cacheMaxAge          time.Duration
	staleWhileRevalidate time.Duration
}

// New создаёт Handlers.
func New(svc Service, summarizer Summarizer, cacheMaxAge, staleWhileRevalidate time.Duration) *Handlers {
	return &Handlers{
		svc:                  svc,
		summarizer:           summarizer,
		cacheMaxAge:          cacheMaxAge,
		staleWhileRevalidate: staleWhileRevalidate,
	}
}

// apiError — единый формат ошибки для фронта.
type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// errorResponse — корневой объект в ответе с ошибкой.
type errorResponse struct {
	Error apiError `json:"error"`
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// writeError пишет унифицированный ответ об ошибке,
// добавляя request_id из заголовка, если он есть.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := errorResponse{Error: apiError{Code: code, Message: message}}
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	writeJSON(w, status, resp)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
