package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/savelevaok/ainews/internal/models"
)

// fakeService — query-сервис с фиксированной выдачей; запоминает фильтр.
type fakeService struct {
	articles   []models.Article
	lastFilter models.ArticleFilter
}

func (s *fakeService) Articles(_ context.Context, filter models.ArticleFilter) []models.Article {
	s.lastFilter = filter
	return s.articles
}

// fakeSummarizer — суммаризатор с фиксированным ответом.
type fakeSummarizer struct {
	result string
}

func (s *fakeSummarizer) Summarize(context.Context, string) string { return s.result }

// TestArticles_OK — 200, JSON-массив и подсказки Cache-Control.
func TestArticles_OK(t *testing.T) {
	t.Parallel()

	svc := &fakeService{articles: []models.Article{
		{Title: "hello", SourceName: "OpenAI"},
	}}
	h := New(svc, &fakeSummarizer{}, 5*time.Minute, time.Hour)

	rec := httptest.NewRecorder()
	h.Articles(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "public, max-age=300, stale-while-revalidate=3600", rec.Header().Get("Cache-Control"))

	var got []models.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "hello", got[0].Title)

	// Статья без даты — без published_at в теле, нулевой инстант
	// не фабрикуется на границе.
	require.NotContains(t, rec.Body.String(), "published_at")
}

// TestArticles_FilterFromQuery — category и q доезжают до сервиса.
func TestArticles_FilterFromQuery(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	h := New(svc, &fakeSummarizer{}, 0, 0)

	rec := httptest.NewRecorder()
	h.Articles(rec, httptest.NewRequest(http.MethodGet, "/articles?category=RESEARCH&q=gpt", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "RESEARCH", svc.lastFilter.Category)
	require.Equal(t, "gpt", svc.lastFilter.Query)

	// cacheMaxAge == 0 — без Cache-Control.
	require.Empty(t, rec.Header().Get("Cache-Control"))
}

// TestArticles_EmptyIsValidJSON — пустая выдача — это 200 и [], не null.
func TestArticles_EmptyIsValidJSON(t *testing.T) {
	t.Parallel()

	svc := &fakeService{articles: []models.Article{}}
	h := New(svc, &fakeSummarizer{}, 0, 0)

	rec := httptest.NewRecorder()
	h.Articles(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

// TestSummarize_OK — валидное тело, ответ суммаризатора как есть.
func TestSummarize_OK(t *testing.T) {
	t.Parallel()

	h := New(&fakeService{}, &fakeSummarizer{result: "short version"}, 0, 0)

	body := strings.NewReader(`{"text":"a long article body"}`)
	rec := httptest.NewRecorder()
	h.Summarize(rec, httptest.NewRequest(http.MethodPost, "/summarize", body))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"summary":"short version"}`, rec.Body.String())
}

// TestSummarize_EmptyText — пустой или пробельный текст — 400.
func TestSummarize_EmptyText(t *testing.T) {
	t.Parallel()

	h := New(&fakeService{}, &fakeSummarizer{}, 0, 0)

	for _, body := range []string{`{"text":""}`, `{"text":"   "}`, `{}`} {
		rec := httptest.NewRecorder()
		h.Summarize(rec, httptest.NewRequest(http.MethodPost, "/summarize", strings.NewReader(body)))

		require.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "invalid_argument", resp.Error.Code)
	}
}

// TestSummarize_BadJSON — мусор и неизвестные поля отклоняются.
func TestSummarize_BadJSON(t *testing.T) {
	t.Parallel()

	h := New(&fakeService{}, &fakeSummarizer{}, 0, 0)

	for _, body := range []string{`not json`, `{"text":"x","extra":true}`} {
		rec := httptest.NewRecorder()
		h.Summarize(rec, httptest.NewRequest(http.MethodPost, "/summarize", strings.NewReader(body)))

		require.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

// TestWriteError_RequestID — request_id из заголовка попадает в тело ошибки.
func TestWriteError_RequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "rid-123")

	rec := httptest.NewRecorder()
	writeError(rec, req, http.StatusBadRequest, "invalid_argument", "boom")

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "rid-123", resp.Error.RequestID)
}

// TestHealthz — проба живости.
func TestHealthz(t *testing.T) {
	t.Parallel()

	h := New(&fakeService{}, &fakeSummarizer{}, 0, 0)

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
