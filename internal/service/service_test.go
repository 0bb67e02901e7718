package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/savelevaok/ainews/internal/cache"
	"github.com/savelevaok/ainews/internal/config"
	"github.com/savelevaok/ainews/internal/fetch"
	"github.com/savelevaok/ainews/internal/models"
	"github.com/savelevaok/ainews/internal/storage"
	"github.com/savelevaok/ainews/mocks"
)

// fakeFetcher — адаптер с заранее заданным результатом.
type fakeFetcher struct {
	name  string
	items []models.RawItem
	err   error
}

func (f *fakeFetcher) Name() string { return f.name }

func (f *fakeFetcher) Fetch(context.Context) ([]models.RawItem, error) {
	return f.items, f.err
}

func testConfig() config.Config {
	return config.Config{
		Cache: config.CacheConfig{
			MemoryTTL:   time.Minute,
			SnapshotTTL: time.Hour,
			Retention:   24 * time.Hour,
		},
		Fetch: config.FetchConfig{Timeout: time.Second},
	}
}

func newTestService(fetchers []fetch.Fetcher, store storage.Storage) *Service {
	return New(testConfig(), fetchers, cache.NewMemory(time.Minute), store)
}

// TestBuildKey_Deterministic — ключ кэша не зависит от порядка адаптеров.
func TestBuildKey_Deterministic(t *testing.T) {
	t.Parallel()

	a := &fakeFetcher{name: "arxiv"}
	b := &fakeFetcher{name: "rss"}
	c := &fakeFetcher{name: "hackernews"}

	k1 := buildKey([]fetch.Fetcher{a, b, c})
	k2 := buildKey([]fetch.Fetcher{c, a, b})

	require.Equal(t, "articles:arxiv,hackernews,rss", k1)
	require.Equal(t, k1, k2)
}

// TestArticles_Pipeline_DedupAndRank — сквозной прогон: два адаптера отдают
// одну и ту же ссылку (у агрегатора — с трекингом), остаётся одна статья
// от официального блога, порядок выдачи — по категории.
func TestArticles_Pipeline_DedupAndRank(t *testing.T) {
	t.Parallel()

	official := &fakeFetcher{name: "rss", items: []models.RawItem{
		{
			Family:   models.FamilyRSS,
			SourceID: "openai_blog",
			Title:    "New model released",
			Link:     "https://openai.com/blog/release?utm_source=rss",
			RawDate:  "Mon, 02 Jun 2025 10:00:00 +0000",
		},
	}}
	aggregator := &fakeFetcher{name: "hackernews", items: []models.RawItem{
		{
			Family:   models.FamilyHackerNews,
			SourceID: "hackernews",
			Title:    "New model released",
			Link:     "https://openai.com/blog/release",
			UnixDate: 1748858400,
		},
		{
			Family:   models.FamilyHackerNews,
			SourceID: "hackernews",
			Title:    "Unrelated discussion",
			Link:     "https://example.com/thread",
			UnixDate: 1748858400,
		},
	}}

	svc := newTestService([]fetch.Fetcher{aggregator, official}, nil)

	out := svc.Articles(context.Background(), models.ArticleFilter{})
	require.Len(t, out, 2)

	require.Equal(t, "New model released", out[0].Title)
	require.Equal(t, "OpenAI", out[0].SourceName)
	require.Equal(t, models.CategoryOfficialBlog, out[0].SourceCategory)
	require.False(t, out[0].FetchedAt.IsZero())

	require.Equal(t, "Unrelated discussion", out[1].Title)
	require.Equal(t, models.CategoryAggregator, out[1].SourceCategory)
}

// TestArticles_FilterCategory — фильтр по тегу оставляет только совпавшие
// статьи, сохраняя порядок ранжирования; регистр значения не важен.
func TestArticles_FilterCategory(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	research := &fakeFetcher{name: "arxiv", items: []models.RawItem{
		{
			Family: models.FamilyArxiv, SourceID: "arxiv_cs_ai",
			Title: "Scaling laws revisited", Link: "https://arxiv.org/abs/2506.00001",
			RawDate: ts.Format(time.RFC3339),
		},
		{
			Family: models.FamilyArxiv, SourceID: "arxiv_cs_ai",
			Title: "Alignment survey", Link: "https://arxiv.org/abs/2506.00002",
			RawDate: ts.Add(time.Hour).Format(time.RFC3339),
		},
	}}
	general := &fakeFetcher{name: "rss", items: []models.RawItem{
		{
			Family: models.FamilyRSS, SourceID: "techcrunch_ai",
			Title: "Startup raises round", Link: "https://techcrunch.com/a",
		},
		{
			Family: models.FamilyRSS, SourceID: "openai_blog",
			Title: "Product update", Link: "https://openai.com/blog/update",
		},
		{
			Family: models.FamilyRSS, SourceID: "venturebeat_ai",
			Title: "Industry roundup", Link: "https://venturebeat.com/b",
		},
	}}

	svc := newTestService([]fetch.Fetcher{research, general}, nil)

	out := svc.Articles(context.Background(), models.ArticleFilter{Category: "research"})
	require.Len(t, out, 2)

	// Внутри категории свежее — выше.
	require.Equal(t, "Alignment survey", out[0].Title)
	require.Equal(t, "Scaling laws revisited", out[1].Title)
	for _, a := range out {
		require.Equal(t, models.ContentResearch, a.Category)
	}
}

// TestArticles_FilterQuery — подстрока ищется в заголовке и описании,
// условия фильтра объединяются по AND.
func TestArticles_FilterQuery(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{name: "rss", items: []models.RawItem{
		{
			Family: models.FamilyRSS, SourceID: "openai_blog",
			Title: "GPT-5 announcement", Link: "https://openai.com/blog/gpt5",
		},
		{
			Family: models.FamilyRSS, SourceID: "openai_blog",
			Title: "Quarterly roundup", Summary: "Covers GPT-5 and more",
			Link: "https://openai.com/blog/roundup",
		},
		{
			Family: models.FamilyRSS, SourceID: "techcrunch_ai",
			Title: "GPT-5 hot take", Link: "https://techcrunch.com/take",
		},
	}}

	svc := newTestService([]fetch.Fetcher{f}, nil)

	// По заголовку и по описанию.
	out := svc.Articles(context.Background(), models.ArticleFilter{Query: "gpt-5"})
	require.Len(t, out, 3)

	// AND с категорией.
	out = svc.Articles(context.Background(), models.ArticleFilter{
		Category: "PRODUCT_UPDATE",
		Query:    "gpt-5",
	})
	require.Len(t, out, 2)
	for _, a := range out {
		require.Equal(t, models.ContentProductUpdate, a.Category)
	}
}

// TestArticles_PartialFailure — упавший адаптер даёт ноль элементов,
// остальные попадают в выдачу.
func TestArticles_PartialFailure(t *testing.T) {
	t.Parallel()

	ok := &fakeFetcher{name: "rss", items: []models.RawItem{
		{
			Family: models.FamilyRSS, SourceID: "openai_blog",
			Title: "Still here", Link: "https://openai.com/blog/post",
		},
	}}
	broken := &fakeFetcher{name: "gdelt", err: errors.New("upstream 502")}

	svc := newTestService([]fetch.Fetcher{ok, broken}, nil)

	out := svc.Articles(context.Background(), models.ArticleFilter{})
	require.Len(t, out, 1)
	require.Equal(t, "Still here", out[0].Title)
}

// TestArticles_AllFailed_EmptyNotNil — полный отказ без снапшота:
// пустой список, не nil и не паника.
func TestArticles_AllFailed_EmptyNotNil(t *testing.T) {
	t.Parallel()

	svc := newTestService([]fetch.Fetcher{
		&fakeFetcher{name: "rss", err: errors.New("down")},
		&fakeFetcher{name: "gdelt", err: errors.New("down")},
	}, nil)

	out := svc.Articles(context.Background(), models.ArticleFilter{})
	require.NotNil(t, out)
	require.Empty(t, out)
}

// TestArticles_AllFailed_ServesStaleSnapshot — полный отказ апстрима при
// живом сторадже: отдаётся протухший снапшот уровня 2.
func TestArticles_AllFailed_ServesStaleSnapshot(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	broken := &fakeFetcher{name: "rss", err: errors.New("down")}
	key := buildKey([]fetch.Fetcher{broken})

	stale := storage.Snapshot{
		Key: key,
		Articles: []models.Article{
			{Title: "Yesterday's news", SourceName: "OpenAI"},
		},
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
	}

	store := mocks.NewMockStorage(ctrl)
	store.EXPECT().Snapshot(gomock.Any(), key).Return(&stale, nil)

	svc := newTestService([]fetch.Fetcher{broken}, store)

	out := svc.Articles(context.Background(), models.ArticleFilter{})
	require.Len(t, out, 1)
	require.Equal(t, "Yesterday's news", out[0].Title)
}

// TestArticles_SecondCallHitsMemory — повторный запрос не прогоняет цикл
// выборки заново.
func TestArticles_SecondCallHitsMemory(t *testing.T) {
	t.Parallel()

	f := &countingFetcher{fakeFetcher: fakeFetcher{name: "rss", items: []models.RawItem{
		{
			Family: models.FamilyRSS, SourceID: "openai_blog",
			Title: "Cached", Link: "https://openai.com/blog/cached",
		},
	}}}

	svc := newTestService([]fetch.Fetcher{f}, nil)

	svc.Articles(context.Background(), models.ArticleFilter{})
	svc.Articles(context.Background(), models.ArticleFilter{})

	require.Equal(t, 1, f.calls)
}

type countingFetcher struct {
	fakeFetcher
	calls int
}

func (f *countingFetcher) Fetch(ctx context.Context) ([]models.RawItem, error) {
	f.calls++
	return f.fakeFetcher.Fetch(ctx)
}
