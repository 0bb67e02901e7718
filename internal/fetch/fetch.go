// fetch содержит адаптеры внешних источников и конкурентный фан-аут.
//
// Контракт адаптера — best-effort: ошибка одного источника никогда не
// валит цикл целиком, она возвращается рядом с (возможно пустым)
// результатом, и агрегация трактует её как «ноль элементов отсюда».
package fetch

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/savelevaok/ainews/internal/models"
)

// maxResponseBytes — предохранитель от бесконечных/гигантских ответов.
const maxResponseBytes = 4 << 20 // 4MB

var fetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ainews_fetch_errors_total",
	Help: "Upstream fetch failures per adapter.",
}, []string{"adapter"})

// Fetcher — абстракция адаптера одного семейства источников.
//
// Требования к реализации:
//  1. уважать ctx (дедлайн на адаптер навешивает вызывающий);
//  2. non-2xx или неразобранное тело — мягкая ошибка, не panic;
//  3. отсутствующие необязательные поля элемента не валят весь элемент.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]models.RawItem, error)
}

// Result — результат одного адаптера в рамках цикла.
// Если Err != nil, Items может быть неполным или пустым.
type Result struct {
	Adapter string
	Items   []models.RawItem
	Err     error
}

// All запускает все адаптеры конкурентно и дожидается каждого
// (успех или ошибка) перед возвратом. Порядок результатов совпадает
// с порядком адаптеров. Таймаут навешивается на каждый адаптер отдельно,
// чтобы медленный источник не задерживал остальные дольше timeout.
func All(ctx context.Context, timeout time.Duration, fetchers []Fetcher) []Result {
	results := make([]Result, len(fetchers))

	var wg sync.WaitGroup
	for i, f := range fetchers {
		wg.Add(1)

		go func(i int, f Fetcher) {
			defer wg.Done()

			fctx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				fctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			items, err := f.Fetch(fctx)
			if err != nil {
				fetchErrors.WithLabelValues(f.Name()).Inc()
			}

			results[i] = Result{Adapter: f.Name(), Items: items, Err: err}
		}(i, f)
	}
	wg.Wait()

	return results
}

// readBody читает тело ответа с ограничением размера.
func readBody(resp *http.Response) ([]byte, error) {
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}

// get — общий GET с прокинутым контекстом; статус проверяет вызывающий.
func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	return client.Do(req)
}
