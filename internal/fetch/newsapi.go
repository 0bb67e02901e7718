package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/savelevaok/ainews/internal/models"
)

const newsapiDefaultBaseURL = "https://newsapi.org/v2/everything"

// NewsAPIFetcher — адаптер generic-заголовков (NewsAPI.org).
// Без API-ключа адаптер выключен: Fetch сразу отдаёт пустой результат,
// чтобы не жечь лимиты и не засорять логи ожидаемыми 401.
type NewsAPIFetcher struct {
	client  *http.Client
	baseURL string
	apiKey  string
	query   string
}

// NewNewsAPI создаёт NewsAPI-адаптер.
func NewNewsAPI(client *http.Client, baseURL, apiKey, query string) *NewsAPIFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	if baseURL == "" {
		baseURL = newsapiDefaultBaseURL
	}

	return &NewsAPIFetcher{client: client, baseURL: baseURL, apiKey: apiKey, query: query}
}

func (f *NewsAPIFetcher) Name() string { return "newsapi" }

// newsapiResponse — ответ /v2/everything.
type newsapiResponse struct {
	Status   string           `json:"status"`
	Articles []newsapiArticle `json:"articles"`
}

// newsapiArticle — одна запись выдачи.
type newsapiArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// Fetch возвращает заголовки по настроенному запросу.
func (f *NewsAPIFetcher) Fetch(ctx context.Context) ([]models.RawItem, error) {
	const op = "fetch.newsapi.Fetch"

	if f.apiKey == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("q", f.query)
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", "50")
	q.Set("apiKey", f.apiKey)

	resp, err := get(ctx, f.client, f.baseURL+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: read: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	var doc newsapiResponse
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	if doc.Status != "ok" {
		return nil, fmt.Errorf("%s: api status=%q", op, doc.Status)
	}

	out := make([]models.RawItem, 0, len(doc.Articles))
	for _, a := range doc.Articles {
		label := a.Source.Name
		if label == "" {
			label = "NewsAPI"
		}

		out = append(out, models.RawItem{
			Family:      models.FamilyNewsAPI,
			SourceID:    "newsapi",
			SourceLabel: label,
			Title:       a.Title,
			Link:        a.URL,
			Author:      a.Author,
			Summary:     a.Description,
			ImageURL:    a.URLToImage,
			RawDate:     a.PublishedAt,
		})
	}

	return out, nil
}
