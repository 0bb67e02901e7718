// service содержит бизнес-логику агрегатора: оркестрацию цикла
// выборка→нормализация→слияние за двухуровневым кэшем и read-path выдачи.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	logctx "github.com/savelevaok/ainews/pkg/log"

	"github.com/savelevaok/ainews/internal/cache"
	"github.com/savelevaok/ainews/internal/config"
	"github.com/savelevaok/ainews/internal/fetch"
	"github.com/savelevaok/ainews/internal/models"
	"github.com/savelevaok/ainews/internal/normalize"
	"github.com/savelevaok/ainews/internal/rank"
	"github.com/savelevaok/ainews/internal/sources"
	"github.com/savelevaok/ainews/internal/storage"
)

var (
	// ErrAllSourcesFailed — в одном цикле упали все адаптеры.
	// Наружу не выходит: выше по стеку превращается в stale-fallback
	// или в пустую выдачу.
	ErrAllSourcesFailed = errors.New("all sources failed")
)

// Service — оркестратор агрегатора.
type Service struct {
	cfg      config.Config
	fetchers []fetch.Fetcher
	loader   *cache.Loader
	key      string
	now      func() time.Time
}

// New создаёт Service: собирает ключ кэша из состава адаптеров и
// замыкает цикл выборки в loader как cache-miss путь.
// store == nil допустим (деградация до одного уровня кэша).
func New(cfg config.Config, fetchers []fetch.Fetcher, mem *cache.Memory, store storage.Storage) *Service {
	s := &Service{
		cfg:      cfg,
		fetchers: fetchers,
		key:      buildKey(fetchers),
		now:      time.Now,
	}

	s.loader = cache.NewLoader(mem, store, cfg.Cache.SnapshotTTL, cfg.Cache.Retention, s.runPipeline)

	return s
}

// buildKey детерминированно выводит ключ кэша из параметров, которые
// определяют выборку — отсортированного состава адаптеров.
// Фильтры query-сервиса в ключ не входят: они применяются после кэша.
func buildKey(fetchers []fetch.Fetcher) string {
	names := make([]string, 0, len(fetchers))
	for _, f := range fetchers {
		names = append(names, f.Name())
	}
	sort.Strings(names)

	return "articles:" + strings.Join(names, ",")
}

// runPipeline — полный цикл: конкурентная выборка всех адаптеров,
// нормализация, слияние и ранжирование.
//
// Ошибка одного адаптера означает «ноль элементов отсюда» и логируется;
// ErrAllSourcesFailed возвращается только когда упали все.
func (s *Service) runPipeline(ctx context.Context) ([]models.Article, error) {
	const op = "service.runPipeline"

	lg := logctx.From(ctx)
	started := s.now()

	results := fetch.All(ctx, s.cfg.Fetch.Timeout, s.fetchers)

	nowUTC := s.now().UTC()

	var failed int
	lists := make([][]models.Article, 0, len(results))

	for _, r := range results {
		if r.Err != nil {
			failed++
			lg.Warn("adapter_error",
				slog.String("op", op),
				slog.String("adapter", r.Adapter),
				slog.String("err", r.Err.Error()),
			)
			continue
		}

		lists = append(lists, s.normalizeAll(r.Items, nowUTC))
	}

	if failed == len(results) && len(results) > 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrAllSourcesFailed)
	}

	merged := rank.MergeAndRank(lists...)

	lg.Info("pipeline_done",
		slog.String("op", op),
		slog.Int("adapters", len(results)),
		slog.Int("adapters_failed", failed),
		slog.Int("articles", len(merged)),
		slog.Duration("dur", s.now().Sub(started)),
	)

	return merged, nil
}

// normalizeAll прогоняет элементы одного адаптера через нормализатор,
// отбрасывая непригодные, и проставляет FetchedAt.
func (s *Service) normalizeAll(items []models.RawItem, nowUTC time.Time) []models.Article {
	out := make([]models.Article, 0, len(items))

	for _, raw := range items {
		src, ok := sources.ByID(raw.SourceID)
		if !ok {
			// Неизвестный источник трактуем как агрегатор с минимальным доверием.
			src = models.Source{
				ID:       raw.SourceID,
				Org:      raw.SourceLabel,
				Trust:    models.TrustLow,
				Category: models.CategoryAggregator,
			}
		}

		article, ok := normalize.Article(raw, src)
		if !ok {
			continue
		}

		article.FetchedAt = nowUTC
		out = append(out, article)
	}

	return out
}
