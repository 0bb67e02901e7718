package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PlaceholderImage — сентинел обложки: подставляется, когда у материала
// не удалось извлечь изображение. Рендеринг никогда не получает пустой URL.
const PlaceholderImage = "/static/placeholder-article.svg"

// Article — каноническая статья, единица выдачи агрегатора.
//
// Особенности:
//   - неизменяема после построения; повторная выборка с тем же ID
//     замещает запись целиком, а не сливает поля;
//   - ID стабилен: детерминированно выводится из канонической ссылки;
//     элементы без ссылки до статьи не доживают — их отбрасывает
//     нормализатор;
//   - временные метки — в UTC.
type Article struct {
	// ID — стабильный идентификатор статьи (SHA1-UUID от канонической ссылки).
	ID uuid.UUID `bson:"_id" json:"id"`
	// Title — заголовок без переводов строк и управляющих символов.
	Title string `bson:"title" json:"title"`
	// Summary — краткое описание/тизер.
	Summary string `bson:"summary" json:"summary"`
	// SourceName — подпись источника для выдачи.
	SourceName string `bson:"source_name" json:"source_name"`
	// URL — ссылка на материал (как отдаём наружу).
	URL string `bson:"url" json:"url"`
	// CanonicalURL — нормализованная ссылка (нижний регистр, без
	// трекинг-параметров и фрагмента) — ключ дедупликации.
	CanonicalURL string `bson:"canonical_url" json:"-"`
	// Category — тематический тег для фильтра query-сервиса.
	Category ContentType `bson:"category" json:"category"`
	// SourceCategory — класс источника, первичный ключ ранжирования.
	SourceCategory SourceCategory `bson:"source_category" json:"source_category"`
	// Trust — уровень доверия источника.
	Trust TrustLevel `bson:"trust" json:"-"`
	// Reliability — числовая оценка надёжности 0..1, опциональна.
	Reliability float64 `bson:"reliability,omitempty" json:"reliability,omitempty"`
	// PublishedAt — время публикации у источника (UTC).
	// Нулевое значение — источник даты не отдал; «сейчас» не подставляется.
	PublishedAt time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
	// ImageURL — обложка; при отсутствии — PlaceholderImage.
	ImageURL string `bson:"image_url" json:"image_url"`
	// FetchedAt — время выборки (UTC); проставляет оркестратор.
	FetchedAt time.Time `bson:"fetched_at" json:"fetched_at"`
}

// MarshalJSON опускает нулевой PublishedAt: omitempty не работает для
// time.Time, а отсутствующая у источника дата не должна превращаться
// в фиктивный инстант в выдаче.
func (a Article) MarshalJSON() ([]byte, error) {
	type article Article

	out := struct {
		article
		PublishedAt *time.Time `json:"published_at,omitempty"`
	}{article: article(a)}

	if !a.PublishedAt.IsZero() {
		out.PublishedAt = &a.PublishedAt
	}

	return json.Marshal(out)
}

// ArticleID детерминированно выводит стабильный идентификатор статьи
// из канонической ссылки.
func ArticleID(canonicalURL string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(canonicalURL))
}

// ArticleFilter — параметры пост-фильтрации выдачи query-сервиса.
// Пустые значения означают «без фильтра»; условия объединяются по AND.
type ArticleFilter struct {
	// Category — точное совпадение с Article.Category без учёта регистра.
	Category string
	// Query — подстрока в Title или Summary без учёта регистра.
	Query string
}

// Empty сообщает, что фильтр не ограничивает выдачу.
func (f ArticleFilter) Empty() bool {
	return f.Category == "" && f.Query == ""
}
