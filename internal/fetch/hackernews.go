package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	logctx "github.com/savelevaok/ainews/pkg/log"

	"github.com/savelevaok/ainews/internal/models"
)

const (
	hnDefaultBaseURL = "https://hacker-news.firebaseio.com/v0"
	hnDefaultLimit   = 30
	hnConcurrency    = 10
)

// HNFetcher — адаптер социально-новостного API (Hacker News Firebase):
// забирает список топ-историй и детали по каждой с ограниченной
// конкурентностью. Ошибка отдельной истории пропускает её, не весь цикл.
type HNFetcher struct {
	client   *http.Client
	baseURL  string
	sourceID string
	limit    int
}

// NewHackerNews создаёт HN-адаптер. baseURL с пустым значением
// заменяется на публичный Firebase endpoint.
func NewHackerNews(client *http.Client, baseURL string, limit int) *HNFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	if baseURL == "" {
		baseURL = hnDefaultBaseURL
	}

	if limit <= 0 {
		limit = hnDefaultLimit
	}

	return &HNFetcher{client: client, baseURL: baseURL, sourceID: "hackernews", limit: limit}
}

func (f *HNFetcher) Name() string { return "hackernews" }

// hnStory — элемент ответа item/{id}.json.
type hnStory struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Score int    `json:"score"`
	By    string `json:"by"`
	Time  int64  `json:"time"`
	Type  string `json:"type"`
}

// Fetch возвращает топ-истории HN как сырые элементы.
func (f *HNFetcher) Fetch(ctx context.Context) ([]models.RawItem, error) {
	const op = "fetch.hackernews.Fetch"

	resp, err := get(ctx, f.client, f.baseURL+"/topstories.json")
	if err != nil {
		return nil, fmt.Errorf("%s: top stories: %w", op, err)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: read: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	var ids []int
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("%s: unmarshal ids: %w", op, err)
	}

	if len(ids) > f.limit {
		ids = ids[:f.limit]
	}

	lg := logctx.From(ctx)

	stories := make([]*hnStory, len(ids))
	sem := make(chan struct{}, hnConcurrency)

	var wg sync.WaitGroup
	for i, id := range ids {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			defer func() { <-sem }()

			story, err := f.fetchStory(ctx, id)
			if err != nil {
				lg.Warn("hn_item_error",
					slog.String("op", op),
					slog.Int("id", id),
					slog.String("err", err.Error()),
				)
				return
			}

			stories[i] = story
		}(i, id)
	}
	wg.Wait()

	out := make([]models.RawItem, 0, len(stories))
	for _, st := range stories {
		if st == nil || st.Title == "" || st.Type != "story" {
			continue
		}

		link := st.URL
		if link == "" {
			// Ask HN/Show HN без внешней ссылки — ведём на обсуждение.
			link = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", st.ID)
		}

		out = append(out, models.RawItem{
			Family:      models.FamilyHackerNews,
			SourceID:    f.sourceID,
			SourceLabel: "Hacker News",
			Title:       st.Title,
			Link:        link,
			ExternalID:  fmt.Sprintf("%d", st.ID),
			Author:      st.By,
			UnixDate:    st.Time,
			Score:       float64(st.Score),
		})
	}

	return out, nil
}

// fetchStory загружает одну историю.
func (f *HNFetcher) fetchStory(ctx context.Context, id int) (*hnStory, error) {
	resp, err := get(ctx, f.client, fmt.Sprintf("%s/item/%d.json", f.baseURL, id))
	if err != nil {
		return nil, err
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status=%d", resp.StatusCode)
	}

	var st hnStory
	if err := json.Unmarshal(body, &st); err != nil {
		return nil, err
	}

	return &st, nil
}
