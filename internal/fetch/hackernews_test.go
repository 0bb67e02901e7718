package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/savelevaok/ainews/internal/models"
)

// newHNServer поднимает фейковый Firebase endpoint: topstories.json и
// item/{id}.json из переданной карты.
func newHNServer(t *testing.T, ids string, items map[int]string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(ids))
	})
	for id, body := range items {
		body := body
		mux.HandleFunc(fmt.Sprintf("/item/%d.json", id), func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(body))
		})
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

// TestHN_Fetch — истории собираются с деталями; элементы не-story и без
// заголовка пропускаются.
func TestHN_Fetch(t *testing.T) {
	t.Parallel()

	srv := newHNServer(t, `[1,2,3]`, map[int]string{
		1: `{"id":1,"title":"Show HN: thing","url":"https://example.com/thing","score":120,"by":"alice","time":1748858400,"type":"story"}`,
		2: `{"id":2,"title":"A comment","type":"comment","time":1748858400}`,
		3: `{"id":3,"title":"Ask HN: question","score":10,"by":"bob","time":1748858401,"type":"story"}`,
	})

	f := NewHackerNews(srv.Client(), srv.URL, 30)

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	require.Equal(t, models.FamilyHackerNews, first.Family)
	require.Equal(t, "hackernews", first.SourceID)
	require.Equal(t, "Hacker News", first.SourceLabel)
	require.Equal(t, "https://example.com/thing", first.Link)
	require.Equal(t, "1", first.ExternalID)
	require.EqualValues(t, 1748858400, first.UnixDate)
	require.EqualValues(t, 120, first.Score)

	// Ask HN без внешней ссылки ведёт на страницу обсуждения.
	require.Equal(t, "https://news.ycombinator.com/item?id=3", items[1].Link)
}

// TestHN_LimitApplied — запрашивается не больше limit историй.
func TestHN_LimitApplied(t *testing.T) {
	t.Parallel()

	srv := newHNServer(t, `[1,2,3]`, map[int]string{
		1: `{"id":1,"title":"one","url":"https://e.com/1","time":1,"type":"story"}`,
		2: `{"id":2,"title":"two","url":"https://e.com/2","time":2,"type":"story"}`,
		3: `{"id":3,"title":"three","url":"https://e.com/3","time":3,"type":"story"}`,
	})

	f := NewHackerNews(srv.Client(), srv.URL, 2)

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "one", items[0].Title)
	require.Equal(t, "two", items[1].Title)
}

// TestHN_ItemErrorSkipped — недоступная история пропускается,
// остальные доезжают.
func TestHN_ItemErrorSkipped(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[1,2]`))
	})
	mux.HandleFunc("/item/1.json", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/item/2.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":2,"title":"alive","url":"https://e.com/2","time":2,"type":"story"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	f := NewHackerNews(srv.Client(), srv.URL, 30)

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "alive", items[0].Title)
}

// TestHN_TopStoriesError — отказ списка — отказ адаптера целиком.
func TestHN_TopStoriesError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	f := NewHackerNews(srv.Client(), srv.URL, 30)

	_, err := f.Fetch(context.Background())
	require.Error(t, err)
}
