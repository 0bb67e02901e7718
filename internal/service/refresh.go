package service

import (
	"context"
	"log/slog"
	"time"

	logctx "github.com/savelevaok/ainews/pkg/log"
)

// StartRefresh запускает фоновый прогрев кэша: периодически прогоняет
// цикл выборки и перезаписывает оба уровня, чтобы популярный ключ не
// остывал между запросами. Интервал <= 0 выключает прогрев.
//
// Останавливается по ctx. Ошибка одного тика логируется и не
// прерывает прогрев: следующий тик попробует снова.
func (s *Service) StartRefresh(ctx context.Context) {
	const op = "service.StartRefresh"

	interval := s.cfg.Cache.RefreshInterval
	if interval <= 0 {
		return
	}

	lg := logctx.From(ctx)
	lg.Info("refresh_start",
		slog.String("op", op),
		slog.Duration("interval", interval),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := s.loader.Refresh(ctx, s.key); err != nil {
		lg.Warn("refresh_tick_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}

	for {
		select {
		case <-ctx.Done():
			lg.Info("refresh_stop", slog.String("op", op))
			return
		case <-ticker.C:
			if err := s.loader.Refresh(ctx, s.key); err != nil {
				lg.Warn("refresh_tick_error",
					slog.String("op", op),
					slog.String("err", err.Error()),
				)
			}
		}
	}
}
