package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	logctx "github.com/savelevaok/ainews/pkg/log"

	"github.com/savelevaok/ainews/internal/models"
)

// RSSFetcher — адаптер семейства RSS 2.0: обходит ленты источников
// каталога конкурентно (семафор maxConc) и отдаёт сырые элементы.
//
// Ошибка отдельной ленты логируется и не валит остальные; адаптер
// возвращает ошибку только когда не удалась ни одна лента.
type RSSFetcher struct {
	client  *http.Client
	sources []models.Source
	maxConc int
}

// NewRSS создаёт RSS-адаптер над переданными источниками.
// Источники без FeedURL молча пропускаются.
func NewRSS(client *http.Client, sources []models.Source, maxConcurrent int) *RSSFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 6
	}

	var withFeed []models.Source
	for _, s := range sources {
		if s.Method == models.FetchFeed && s.FeedURL != "" {
			withFeed = append(withFeed, s)
		}
	}

	return &RSSFetcher{client: client, sources: withFeed, maxConc: maxConcurrent}
}

func (f *RSSFetcher) Name() string { return "rss" }

// Fetch обходит все ленты и сливает результаты.
func (f *RSSFetcher) Fetch(ctx context.Context) ([]models.RawItem, error) {
	const op = "fetch.rss.Fetch"

	type feedResult struct {
		items []models.RawItem
		err   error
	}

	lg := logctx.From(ctx)

	sem := make(chan struct{}, f.maxConc)
	results := make([]feedResult, len(f.sources))

	var wg sync.WaitGroup
	for i, src := range f.sources {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, src models.Source) {
			defer wg.Done()
			defer func() { <-sem }()

			items, err := f.fetchOne(ctx, src)
			results[i] = feedResult{items: items, err: err}
		}(i, src)
	}
	wg.Wait()

	var out []models.RawItem
	var feedsOK, feedsErr int
	var lastErr error

	for i, r := range results {
		if r.err != nil {
			feedsErr++
			lastErr = r.err
			lg.Warn("feed_error",
				slog.String("op", op),
				slog.String("source", f.sources[i].ID),
				slog.String("err", r.err.Error()),
			)
			continue
		}

		feedsOK++
		out = append(out, r.items...)
	}

	if feedsOK == 0 && lastErr != nil {
		return nil, fmt.Errorf("%s: all feeds failed: %w", op, lastErr)
	}

	return out, nil
}

// fetchOne загружает и разбирает одну ленту.
func (f *RSSFetcher) fetchOne(ctx context.Context, src models.Source) ([]models.RawItem, error) {
	const op = "fetch.rss.fetchOne"

	resp, err := get(ctx, f.client, src.FeedURL)
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

	var doc rssDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	out := make([]models.RawItem, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			if g := strings.TrimSpace(item.GUID.Value); strings.HasPrefix(g, "http://") || strings.HasPrefix(g, "https://") {
				link = g
			}
		}

		out = append(out, models.RawItem{
			Family:      models.FamilyRSS,
			SourceID:    src.ID,
			SourceLabel: src.Org,
			Title:       item.Title,
			Link:        link,
			ExternalID:  strings.TrimSpace(item.GUID.Value),
			Author:      strings.TrimSpace(item.Creator),
			Summary:     strings.TrimSpace(item.Description),
			ImageURL:    pickImageURL(item),
			RawDate:     item.PubDate,
		})
	}

	return out, nil
}

// pickImageURL выбирает URL обложки в порядке приоритетов:
// 1) enclosure image/* (если несколько — c max length, иначе последний);
// 2) media:content / media:thumbnail (image/* или пустой type);
// 3) первая <img src> из content:encoded, затем из description.
func pickImageURL(item rssItem) string {
	var bestURL string
	var bestLen int64

	for _, e := range item.Enclosures {
		if e.URL == "" {
			continue
		}

		if t := strings.ToLower(e.Type); t != "" && !strings.HasPrefix(t, "image/") {
			continue
		}

		if e.Length > 0 && e.Length >= bestLen {
			bestLen, bestURL = e.Length, e.URL
			continue
		}

		if bestLen == 0 {
			bestURL = e.URL
		}
	}

	if bestURL != "" {
		return bestURL
	}

	for _, m := range item.MediaContent {
		if m.URL == "" {
			continue
		}

		if m.Type == "" || strings.HasPrefix(strings.ToLower(m.Type), "image/") {
			return m.URL
		}
	}

	for _, m := range item.MediaThumbs {
		if m.URL != "" {
			return m.URL
		}
	}

	if u := firstImgSrc(item.ContentHTML); u != "" {
		return u
	}

	return firstImgSrc(item.Description)
}

var reImg = regexp.MustCompile(`(?is)<img[^>]+src=["']([^"']+)["']`)

func firstImgSrc(html string) string {
	m := reImg.FindStringSubmatch(html)

	if len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}

	return ""
}
