// normalize приводит сырые элементы адаптеров к канонической статье.
//
// Пакет чистый: никакого I/O, единственный «отказ» — пропуск элемента
// без обязательных полей (заголовок, ссылка). Такие элементы
// отбрасываются, а не превращаются в ошибки.
package normalize

import (
	"errors"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/savelevaok/ainews/internal/models"
)

// reliability — маппинг уровня доверия в числовую оценку выдачи.
var reliability = map[models.TrustLevel]float64{
	models.TrustHigh:   0.9,
	models.TrustMedium: 0.6,
	models.TrustLow:    0.3,
}

// Article строит каноническую статью из сырого элемента и метаданных
// источника. Возвращает ok=false, если элемент следует отбросить.
//
// Инварианты результата:
//   - Title без переводов строк и управляющих символов, с одиночными пробелами;
//   - CanonicalURL — ключ дедупликации (нижний регистр, без трекинга и фрагмента);
//   - PublishedAt — UTC или нулевое время, «сейчас» не фабрикуется;
//   - ImageURL никогда не пустой (сентинел models.PlaceholderImage);
//   - FetchedAt не проставляется — это делает оркестратор.
func Article(raw models.RawItem, src models.Source) (models.Article, bool) {
	title := cleanTitle(raw.Title)
	link := strings.TrimSpace(raw.Link)

	if title == "" || link == "" {
		return models.Article{}, false
	}

	display, canonical := canonicalURL(link)

	sourceName := strings.TrimSpace(raw.SourceLabel)
	if sourceName == "" {
		sourceName = src.Org
	}

	image := strings.TrimSpace(raw.ImageURL)
	if image == "" {
		image = models.PlaceholderImage
	}

	return models.Article{
		ID:             models.ArticleID(canonical),
		Title:          title,
		Summary:        cleanSummary(raw.Summary),
		SourceName:     sourceName,
		URL:            display,
		CanonicalURL:   canonical,
		Category:       src.PrimaryContentType(),
		SourceCategory: src.Category,
		Trust:          src.Trust,
		Reliability:    reliability[src.Trust],
		PublishedAt:    parseDate(raw),
		ImageURL:       image,
	}, true
}

// cleanTitle убирает управляющие символы и схлопывает пробелы.
func cleanTitle(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(' ')
			continue
		}

		if r < 0x20 || r == 0x7f {
			continue
		}

		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

var reTag = regexp.MustCompile(`(?s)<[^>]*>`)

// cleanSummary снимает HTML-теги и схлопывает пробелы.
// Полноценный санитайзер здесь не нужен: текст уходит в JSON, не в DOM.
func cleanSummary(s string) string {
	s = reTag.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)

	return strings.Join(strings.Fields(s), " ")
}

// canonicalURL возвращает (display, canonical):
// display — ссылка без трекинг-параметров и фрагмента, в исходном регистре;
// canonical — то же в нижнем регистре, ключ дедупликации.
func canonicalURL(raw string) (string, string) {
	display := stripTracking(raw)

	return display, strings.ToLower(display)
}

// stripTracking убирает фрагмент и трекинг-параметры (utm_*, *clid, mc_*, igshid).
func stripTracking(raw string) string {
	u, err := parseHTTPURL(raw)
	if err != nil {
		return raw
	}

	u.Fragment = ""
	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || strings.HasSuffix(lk, "clid") || strings.HasPrefix(lk, "mc_") || lk == "igshid" || lk == "ref" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// parseHTTPURL разбирает ссылку и принимает только http(s)-схемы.
func parseHTTPURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("not an http(s) url")
	}

	return u, nil
}

// parseDate выбирает вариант разбора даты по семейству источника.
// Неразобранная дата остаётся нулевой.
func parseDate(raw models.RawItem) time.Time {
	if raw.UnixDate > 0 {
		return time.Unix(raw.UnixDate, 0).UTC()
	}

	value := strings.TrimSpace(raw.RawDate)
	if value == "" {
		return time.Time{}
	}

	var layouts []string
	switch raw.Family {
	case models.FamilyGDELT:
		layouts = []string{"20060102T150405Z", "20060102150405"}
	case models.FamilyArxiv, models.FamilyNewsAPI:
		layouts = []string{time.RFC3339, "2006-01-02T15:04:05Z"}
	default:
		layouts = rssLayouts
	}

	t, err := parseAny(value, layouts)
	if err != nil {
		return time.Time{}
	}

	return t
}

// rssLayouts — популярные форматы pubDate, встречающиеся у издателей.
var rssLayouts = []string{
	time.RFC1123Z,                   // Mon, 02 Jan 2006 15:04:05 -0700
	time.RFC1123,                    // Mon, 02 Jan 2006 15:04:05 MST
	"Mon, 02 Jan 06 15:04:05 -0700", // двухзначный год
	"Mon, 02 Jan 06 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
}

func parseAny(value string, layouts []string) (time.Time, error) {
	var lastErr error
	for _, l := range layouts {
		if t, err := time.Parse(l, value); err == nil {
			return t.UTC(), nil
		} else {
			lastErr = err
		}
	}

	if lastErr == nil {
		lastErr = errors.New("no layouts")
	}

	return time.Time{}, lastErr
}
