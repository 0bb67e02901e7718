package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	logctx "github.com/savelevaok/ainews/pkg/log"

	"github.com/savelevaok/ainews/internal/models"
	"github.com/savelevaok/ainews/internal/storage"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ainews_cache_hits_total",
		Help: "Cache hits per tier.",
	}, []string{"tier"})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ainews_cache_misses_total",
		Help: "Full cache misses that invoked the fetch pipeline.",
	})

	staleServes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ainews_cache_stale_serves_total",
		Help: "Responses served from a logically stale tier-2 snapshot.",
	})
)

// FetchFunc — cache-miss путь: полный цикл выборка→нормализация→слияние.
type FetchFunc func(ctx context.Context) ([]models.Article, error)

// Loader — read-through над двумя уровнями кэша.
//
// Порядок чтения: уровень 1 → свежий снапшот уровня 2 (с репопуляцией
// уровня 1) → цикл выборки (с записью в оба уровня). Если цикл выборки
// упал целиком, отдаётся протухший снапшот уровня 2, когда он ещё есть:
// устаревшая выдача предпочтительнее пустой.
//
// Одновременные промахи по одному ключу коалесцируются (singleflight):
// цикл выборки выполняется не более одного раза на ключ.
//
// Недоступность уровня 2 деградирует кэш до одного in-process уровня
// и никогда не роняет запрос.
type Loader struct {
	mem         *Memory
	store       storage.Storage
	snapshotTTL time.Duration
	retention   time.Duration
	fetch       FetchFunc

	group singleflight.Group
	now   func() time.Time
}

// NewLoader собирает двухуровневый загрузчик.
// store == nil допустим: сервис работает только с уровнем 1.
func NewLoader(mem *Memory, store storage.Storage, snapshotTTL, retention time.Duration, fetch FetchFunc) *Loader {
	return &Loader{
		mem:         mem,
		store:       store,
		snapshotTTL: snapshotTTL,
		retention:   retention,
		fetch:       fetch,
		now:         time.Now,
	}
}

// Load возвращает полезную нагрузку по ключу, при необходимости
// спускаясь по уровням вплоть до цикла выборки.
func (l *Loader) Load(ctx context.Context, key string) ([]models.Article, error) {
	if payload, ok := l.mem.Get(key); ok {
		cacheHits.WithLabelValues("memory").Inc()
		return payload, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		return l.loadSlow(ctx, key)
	})
	if err != nil {
		return nil, err
	}

	return v.([]models.Article), nil
}

// loadSlow — путь промаха уровня 1; выполняется под singleflight.
func (l *Loader) loadSlow(ctx context.Context, key string) ([]models.Article, error) {
	const op = "cache.Loader.loadSlow"

	lg := logctx.From(ctx)

	// Пока мы ждали своей очереди, параллельный полёт мог заполнить кэш.
	if payload, ok := l.mem.Get(key); ok {
		cacheHits.WithLabelValues("memory").Inc()
		return payload, nil
	}

	snap := l.snapshot(ctx, key)
	if snap != nil && l.now().Sub(snap.CreatedAt) <= l.snapshotTTL {
		cacheHits.WithLabelValues("persistent").Inc()
		l.mem.Set(key, snap.Articles)
		return snap.Articles, nil
	}

	cacheMisses.Inc()

	articles, err := l.fetch(ctx)
	if err != nil {
		// Цикл упал целиком: протухший снапшот лучше пустой выдачи.
		// Уровень 1 намеренно не заполняем, чтобы следующий промах
		// снова попробовал апстрим.
		if snap != nil {
			staleServes.Inc()
			lg.Warn("stale_serve",
				slog.String("op", op),
				slog.String("key", key),
				slog.Time("snapshot_created_at", snap.CreatedAt),
				slog.String("err", err.Error()),
			)

			return snap.Articles, nil
		}

		return nil, err
	}

	l.mem.Set(key, articles)
	l.persist(ctx, key, articles)

	return articles, nil
}

// Refresh безусловно прогоняет цикл выборки и перезаписывает оба уровня.
// Используется фоновым прогревом кэша.
func (l *Loader) Refresh(ctx context.Context, key string) error {
	articles, err := l.fetch(ctx)
	if err != nil {
		return err
	}

	l.mem.Set(key, articles)
	l.persist(ctx, key, articles)

	return nil
}

// snapshot читает уровень 2; любая ошибка стораджа — это промах, не отказ.
func (l *Loader) snapshot(ctx context.Context, key string) *storage.Snapshot {
	const op = "cache.Loader.snapshot"

	if l.store == nil {
		return nil
	}

	snap, err := l.store.Snapshot(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logctx.From(ctx).Warn("tier2_read_error",
				slog.String("op", op),
				slog.String("key", key),
				slog.String("err", err.Error()),
			)
		}

		return nil
	}

	return snap
}

// persist пишет уровень 2; ошибка записи логируется и не распространяется.
func (l *Loader) persist(ctx context.Context, key string, articles []models.Article) {
	const op = "cache.Loader.persist"

	if l.store == nil {
		return
	}

	now := l.now().UTC()
	err := l.store.SaveSnapshot(ctx, storage.Snapshot{
		Key:       key,
		Articles:  articles,
		CreatedAt: now,
		ExpiresAt: now.Add(l.retention),
	})
	if err != nil {
		logctx.From(ctx).Warn("tier2_write_error",
			slog.String("op", op),
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
	}
}
