// summary — клиент внешнего суммаризатора (text→text коллаборатор).
//
// Контракта за пределами best-effort нет: вызов может быть медленным
// или упасть, тогда вместо текста возвращается явный сентинел
// Unavailable. Ошибки наружу не распространяются.
package summary

import (
	"context"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	logctx "github.com/savelevaok/ainews/pkg/log"

	"github.com/savelevaok/ainews/internal/config"
)

// Unavailable — сентинел «суммаризация недоступна».
const Unavailable = "unavailable"

const prompt = "Summarize the following text in plain language in about 60 words. " +
	"Return only the summary, no preamble."

// Summarizer — обёртка над OpenAI-совместимым chat API.
// Без API-ключа клиент выключен и всегда отвечает сентинелом.
type Summarizer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// New создаёт суммаризатор из конфигурации.
func New(cfg config.SummaryConfig) *Summarizer {
	if cfg.APIKey == "" {
		return &Summarizer{}
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Summarizer{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Summarize возвращает краткое (~60 слов) изложение текста
// или Unavailable при любом отказе.
func (s *Summarizer) Summarize(ctx context.Context, text string) string {
	const op = "summary.Summarize"

	text = strings.TrimSpace(text)
	if s.client == nil || text == "" {
		return Unavailable
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		logctx.From(ctx).Warn("summary_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return Unavailable
	}

	if len(resp.Choices) == 0 {
		return Unavailable
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return Unavailable
	}

	return out
}
