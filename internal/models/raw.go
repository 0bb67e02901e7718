package models

// SourceFamily — семейство источника; определяет, какой адаптер
// выдал элемент и какой вариант нормализации к нему применяется.
type SourceFamily string

const (
	FamilyRSS        SourceFamily = "rss"
	FamilyHackerNews SourceFamily = "hackernews"
	FamilyGDELT      SourceFamily = "gdelt"
	FamilyArxiv      SourceFamily = "arxiv"
	FamilyNewsAPI    SourceFamily = "newsapi"
)

// RawItem — сырой элемент одной выгрузки адаптера.
//
// Живёт только внутри цикла выборки: никогда не кэшируется и не
// сохраняется. Вместо дак-тайпинга по полям — явный тег Family,
// по которому нормализатор выбирает вариант разбора.
//
// Обязательные поля задаёт нормализатор (Title + Link/ExternalID),
// всё остальное — best-effort.
type RawItem struct {
	// Family — семейство источника (тег варианта).
	Family SourceFamily
	// SourceID — идентификатор источника из каталога; может быть пустым
	// для API-семейств, не привязанных к конкретному источнику.
	SourceID string
	// SourceLabel — человекочитаемая подпись источника (имя ленты,
	// домен, "Hacker News" и т.п.).
	SourceLabel string
	// Title — заголовок как пришёл от источника.
	Title string
	// Link — ссылка на материал (возможно, с трекинг-параметрами).
	Link string
	// ExternalID — идентификатор записи у источника (guid, id истории,
	// arXiv id). В стабильный ID статьи не входит (его даёт каноническая
	// ссылка), хранится для диагностики.
	ExternalID string
	// Author — автор(ы) одним полем, best-effort.
	Author string
	// Summary — краткое описание/аннотация, может содержать HTML.
	Summary string
	// ImageURL — обложка, best-effort.
	ImageURL string
	// RawDate — дата публикации в строковом виде источника.
	RawDate string
	// UnixDate — дата публикации в unix-секундах, если источник отдаёт
	// её числом (Hacker News). 0 — не задана.
	UnixDate int64
	// Score — числовой рейтинг у источника (очки HN и т.п.), best-effort.
	Score float64
}
