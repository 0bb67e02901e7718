package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/savelevaok/ainews/internal/models"
)

const arxivDefaultBaseURL = "http://export.arxiv.org/api/query"

// ArxivFetcher — адаптер препринт-API (arXiv export, Atom 1.0):
// свежие работы по настроенному запросу, отсортированные по дате подачи.
type ArxivFetcher struct {
	client  *http.Client
	baseURL string
	query   string
	limit   int
}

// NewArxiv создаёт arXiv-адаптер.
func NewArxiv(client *http.Client, baseURL, query string, limit int) *ArxivFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	if baseURL == "" {
		baseURL = arxivDefaultBaseURL
	}

	if limit <= 0 {
		limit = 25
	}

	return &ArxivFetcher{client: client, baseURL: baseURL, query: query, limit: limit}
}

func (f *ArxivFetcher) Name() string { return "arxiv" }

// atomFeed — корень Atom-ответа export API.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

// atomEntry — одна работа.
type atomEntry struct {
	// ID — канонический URL абстракта (http://arxiv.org/abs/...).
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
	Links     []atomLink   `xml:"link"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// Fetch возвращает свежие препринты как сырые элементы.
func (f *ArxivFetcher) Fetch(ctx context.Context) ([]models.RawItem, error) {
	const op = "fetch.arxiv.Fetch"

	q := url.Values{}
	q.Set("search_query", f.query)
	q.Set("sortBy", "submittedDate")
	q.Set("sortOrder", "descending")
	q.Set("max_results", strconv.Itoa(f.limit))

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

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	out := make([]models.RawItem, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		out = append(out, models.RawItem{
			Family:      models.FamilyArxiv,
			SourceID:    "arxiv_cs_ai",
			SourceLabel: "arXiv",
			Title:       e.Title,
			Link:        pickArxivLink(e),
			ExternalID:  strings.TrimSpace(e.ID),
			Author:      joinAuthors(e.Authors),
			Summary:     e.Summary,
			RawDate:     e.Published,
		})
	}

	return out, nil
}

// pickArxivLink предпочитает rel="alternate", затем id, затем первую ссылку.
func pickArxivLink(e atomEntry) string {
	for _, l := range e.Links {
		if l.Rel == "alternate" && l.Href != "" {
			return l.Href
		}
	}

	if id := strings.TrimSpace(e.ID); id != "" {
		return id
	}

	for _, l := range e.Links {
		if l.Href != "" {
			return l.Href
		}
	}

	return ""
}

func joinAuthors(authors []atomAuthor) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if n := strings.TrimSpace(a.Name); n != "" {
			names = append(names, n)
		}
	}

	return strings.Join(names, ", ")
}
