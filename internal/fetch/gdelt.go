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

const gdeltDefaultBaseURL = "https://api.gdeltproject.org/api/v2/doc/doc"

// GDELTFetcher — адаптер геополитического поиска событий (GDELT doc 2.0):
// один запрос ArtList в JSON по настроенному поисковому выражению.
type GDELTFetcher struct {
	client  *http.Client
	baseURL string
	query   string
}

// NewGDELT создаёт GDELT-адаптер.
func NewGDELT(client *http.Client, baseURL, query string) *GDELTFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	if baseURL == "" {
		baseURL = gdeltDefaultBaseURL
	}

	return &GDELTFetcher{client: client, baseURL: baseURL, query: query}
}

func (f *GDELTFetcher) Name() string { return "gdelt" }

// gdeltResponse — ответ doc API в режиме ArtList.
type gdeltResponse struct {
	Articles []gdeltArticle `json:"articles"`
}

// gdeltArticle — одна запись выдачи.
type gdeltArticle struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Domain   string `json:"domain"`
	Language string `json:"language"`
	// SeenDate — формат YYYYMMDDTHHMMSSZ.
	SeenDate string `json:"seendate"`
	SocImage string `json:"socialimage"`
}

// Fetch выполняет поиск и возвращает сырые элементы.
func (f *GDELTFetcher) Fetch(ctx context.Context) ([]models.RawItem, error) {
	const op = "fetch.gdelt.Fetch"

	q := url.Values{}
	q.Set("query", f.query)
	q.Set("mode", "ArtList")
	q.Set("format", "json")
	q.Set("maxrecords", "50")
	q.Set("sort", "DateDesc")

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

	var doc gdeltResponse
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	out := make([]models.RawItem, 0, len(doc.Articles))
	for _, a := range doc.Articles {
		label := a.Domain
		if label == "" {
			label = "GDELT"
		}

		out = append(out, models.RawItem{
			Family:      models.FamilyGDELT,
			SourceID:    "gdelt",
			SourceLabel: label,
			Title:       a.Title,
			Link:        a.URL,
			ImageURL:    a.SocImage,
			RawDate:     a.SeenDate,
		})
	}

	return out, nil
}
