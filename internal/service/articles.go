package service

import (
	"context"
	"log/slog"
	"strings"

	logctx "github.com/savelevaok/ainews/pkg/log"

	"github.com/savelevaok/ainews/internal/models"
)

// Articles — внешне вызываемая операция query-сервиса.
//
// Читает текущую полезную нагрузку кэша (населяется она только внутри
// cache-miss пути loader'а) и применяет пост-фильтры:
//   - Category — точное совпадение с тегом статьи без учёта регистра;
//   - Query — подстрока в заголовке ИЛИ описании без учёта регистра;
//   - фильтры объединяются по AND; пустой фильтр — вся выдача как есть.
//
// Ошибки пайплайна наружу не выходят: худший наблюдаемый исход —
// пустой список с диагностикой в логе.
func (s *Service) Articles(ctx context.Context, filter models.ArticleFilter) []models.Article {
	const op = "service.Articles"

	lg := logctx.From(ctx)

	payload, err := s.loader.Load(ctx, s.key)
	if err != nil {
		lg.Error("articles_unavailable",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return []models.Article{}
	}

	if filter.Empty() {
		return payload
	}

	category := strings.ToLower(strings.TrimSpace(filter.Category))
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]models.Article, 0, len(payload))
	for _, a := range payload {
		if category != "" && strings.ToLower(string(a.Category)) != category {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(a.Title), query) &&
			!strings.Contains(strings.ToLower(a.Summary), query) {
			continue
		}

		out = append(out, a)
	}

	return out
}
