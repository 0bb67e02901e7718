// models содержит доменные сущности агрегатора:
// источники, сырые элементы выгрузки и каноническую статью.
// Эти типы используются слоями выборки, нормализации, ранжирования и транспорта.
package models

// FetchMethod — способ получения материалов источника.
type FetchMethod string

const (
	// FetchFeed — у источника есть машиночитаемая лента (RSS/Atom).
	FetchFeed FetchMethod = "FEED"
	// FetchListingPage — ленты нет, материалы собираются со страницы списка.
	FetchListingPage FetchMethod = "LISTING_PAGE"
	// FetchNone — источник попадает в выдачу только через сторонние API.
	FetchNone FetchMethod = "NONE"
)

// TrustLevel — грубая оценка доверия к источнику.
type TrustLevel int

const (
	TrustLow TrustLevel = iota
	TrustMedium
	TrustHigh
)

// String возвращает строковое представление уровня доверия.
func (t TrustLevel) String() string {
	switch t {
	case TrustHigh:
		return "HIGH"
	case TrustMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// SourceCategory — класс источника, первичный ключ ранжирования.
// Числовое значение задаёт строгий порядок: официальный блог выше всего,
// сторонние агрегаторы — в самом низу.
type SourceCategory int

const (
	CategoryAggregator SourceCategory = iota
	CategoryTechNews
	CategoryResearchLab
	CategoryChangelog
	CategoryOfficialBlog
)

// String возвращает строковое представление категории источника.
func (c SourceCategory) String() string {
	switch c {
	case CategoryOfficialBlog:
		return "OFFICIAL_BLOG"
	case CategoryChangelog:
		return "CHANGELOG"
	case CategoryResearchLab:
		return "RESEARCH_LAB"
	case CategoryTechNews:
		return "TECH_NEWS"
	default:
		return "AGGREGATOR"
	}
}

// ContentType — тематический тег материалов источника.
// Используется фильтром query-сервиса (см. Article.Category).
type ContentType string

const (
	ContentProductUpdate ContentType = "PRODUCT_UPDATE"
	ContentModelRelease  ContentType = "MODEL_RELEASE"
	ContentAPIUpdate     ContentType = "API_UPDATE"
	ContentResearch      ContentType = "RESEARCH"
	ContentGeneral       ContentType = "GENERAL"
)

// Source — статический дескриптор источника.
//
// Особенности:
//   - источники неизменяемы и загружаются один раз на старте процесса;
//   - добавление источника — изменение каталога в internal/sources,
//     адаптеры при этом не правятся.
type Source struct {
	// ID — уникальный идентификатор источника (snake_case).
	ID string
	// Org — организация-владелец.
	Org string
	// Products — продукты/модели организации (для тегирования).
	Products []string
	// Website — сайт организации.
	Website string
	// FeedURL — URL машиночитаемой ленты, если есть.
	FeedURL string
	// Method — способ получения материалов.
	Method FetchMethod
	// ListingURL — страница списка материалов; пустое значение
	// означает fallback на Website (см. Listing()).
	ListingURL string
	// Trust — уровень доверия.
	Trust TrustLevel
	// ContentTypes — тематические теги источника.
	ContentTypes []ContentType
	// Category — класс источника для ранжирования.
	Category SourceCategory
}

// Listing возвращает страницу списка материалов с fallback на Website.
func (s Source) Listing() string {
	if s.ListingURL != "" {
		return s.ListingURL
	}

	return s.Website
}

// PrimaryContentType возвращает первый тег источника (как «основной»)
// или ContentGeneral, если теги не заданы.
func (s Source) PrimaryContentType() ContentType {
	if len(s.ContentTypes) == 0 {
		return ContentGeneral
	}

	return s.ContentTypes[0]
}
