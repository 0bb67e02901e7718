// sources — статический каталог источников.
//
// Каталог чистый и детерминированный: никакого I/O, загрузка один раз
// при инициализации пакета. Добавление источника — правка этого файла
// (конфигурационное изменение), адаптеры при этом не трогаются.
package sources

import "github.com/savelevaok/ainews/internal/models"

// catalog — известные источники в порядке объявления.
// Порядок не влияет на ранжирование (его задаёт Category/Trust).
var catalog = []models.Source{
	{
		ID:       "openai_blog",
		Org:      "OpenAI",
		Products: []string{"ChatGPT", "GPT-4o", "Sora"},
		Website:  "https://openai.com",
		FeedURL:  "https://openai.com/news/rss.xml",
		Method:   models.FetchFeed,
		Trust:    models.TrustHigh,
		ContentTypes: []models.ContentType{
			models.ContentProductUpdate, models.ContentModelRelease,
		},
		Category: models.CategoryOfficialBlog,
	},
	{
		ID:         "anthropic_news",
		Org:        "Anthropic",
		Products:   []string{"Claude"},
		Website:    "https://www.anthropic.com",
		Method:     models.FetchListingPage,
		ListingURL: "https://www.anthropic.com/news",
		Trust:      models.TrustHigh,
		ContentTypes: []models.ContentType{
			models.ContentProductUpdate, models.ContentModelRelease,
		},
		Category: models.CategoryOfficialBlog,
	},
	{
		ID:       "google_deepmind_blog",
		Org:      "Google DeepMind",
		Products: []string{"Gemini", "AlphaFold"},
		Website:  "https://deepmind.google",
		FeedURL:  "https://deepmind.google/blog/rss.xml",
		Method:   models.FetchFeed,
		Trust:    models.TrustHigh,
		ContentTypes: []models.ContentType{
			models.ContentModelRelease, models.ContentResearch,
		},
		Category: models.CategoryOfficialBlog,
	},
	{
		ID:         "openai_api_changelog",
		Org:        "OpenAI",
		Products:   []string{"OpenAI API"},
		Website:    "https://platform.openai.com",
		Method:     models.FetchListingPage,
		ListingURL: "https://platform.openai.com/docs/changelog",
		Trust:      models.TrustHigh,
		ContentTypes: []models.ContentType{
			models.ContentAPIUpdate,
		},
		Category: models.CategoryChangelog,
	},
	{
		ID:         "anthropic_api_changelog",
		Org:        "Anthropic",
		Products:   []string{"Claude API"},
		Website:    "https://docs.anthropic.com",
		Method:     models.FetchListingPage,
		ListingURL: "https://docs.anthropic.com/en/release-notes/api",
		Trust:      models.TrustHigh,
		ContentTypes: []models.ContentType{
			models.ContentAPIUpdate,
		},
		Category: models.CategoryChangelog,
	},
	{
		ID:       "huggingface_blog",
		Org:      "Hugging Face",
		Products: []string{"Transformers", "Hub"},
		Website:  "https://huggingface.co",
		FeedURL:  "https://huggingface.co/blog/feed.xml",
		Method:   models.FetchFeed,
		Trust:    models.TrustHigh,
		ContentTypes: []models.ContentType{
			models.ContentModelRelease, models.ContentResearch,
		},
		Category: models.CategoryResearchLab,
	},
	{
		ID:       "arxiv_cs_ai",
		Org:      "arXiv",
		Products: []string{"cs.AI", "cs.CL", "cs.LG"},
		Website:  "https://arxiv.org",
		Method:   models.FetchNone,
		Trust:    models.TrustHigh,
		ContentTypes: []models.ContentType{
			models.ContentResearch,
		},
		Category: models.CategoryResearchLab,
	},
	{
		ID:       "mit_tech_review_ai",
		Org:      "MIT Technology Review",
		Website:  "https://www.technologyreview.com",
		FeedURL:  "https://www.technologyreview.com/topic/artificial-intelligence/feed",
		Method:   models.FetchFeed,
		Trust:    models.TrustMedium,
		ContentTypes: []models.ContentType{
			models.ContentGeneral, models.ContentResearch,
		},
		Category: models.CategoryTechNews,
	},
	{
		ID:       "techcrunch_ai",
		Org:      "TechCrunch",
		Website:  "https://techcrunch.com",
		FeedURL:  "https://techcrunch.com/category/artificial-intelligence/feed/",
		Method:   models.FetchFeed,
		Trust:    models.TrustMedium,
		ContentTypes: []models.ContentType{
			models.ContentGeneral,
		},
		Category: models.CategoryTechNews,
	},
	{
		ID:       "venturebeat_ai",
		Org:      "VentureBeat",
		Website:  "https://venturebeat.com",
		FeedURL:  "https://venturebeat.com/category/ai/feed/",
		Method:   models.FetchFeed,
		Trust:    models.TrustMedium,
		ContentTypes: []models.ContentType{
			models.ContentGeneral,
		},
		Category: models.CategoryTechNews,
	},
	{
		ID:      "hackernews",
		Org:     "Y Combinator",
		Website: "https://news.ycombinator.com",
		Method:  models.FetchNone,
		Trust:   models.TrustLow,
		ContentTypes: []models.ContentType{
			models.ContentGeneral,
		},
		Category: models.CategoryAggregator,
	},
	{
		ID:      "gdelt",
		Org:     "GDELT Project",
		Website: "https://www.gdeltproject.org",
		Method:  models.FetchNone,
		Trust:   models.TrustLow,
		ContentTypes: []models.ContentType{
			models.ContentGeneral,
		},
		Category: models.CategoryAggregator,
	},
	{
		ID:      "newsapi",
		Org:     "NewsAPI.org",
		Website: "https://newsapi.org",
		Method:  models.FetchNone,
		Trust:   models.TrustLow,
		ContentTypes: []models.ContentType{
			models.ContentGeneral,
		},
		Category: models.CategoryAggregator,
	},
}

// All возвращает копию каталога целиком.
func All() []models.Source {
	out := make([]models.Source, len(catalog))
	copy(out, catalog)
	return out
}

// ByID возвращает источник по идентификатору.
func ByID(id string) (models.Source, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}

	return models.Source{}, false
}

// WithFeed возвращает источники с машиночитаемой лентой.
func WithFeed() []models.Source {
	return Filter(func(s models.Source) bool {
		return s.Method == models.FetchFeed && s.FeedURL != ""
	})
}

// Filter возвращает источники, удовлетворяющие предикату.
func Filter(keep func(models.Source) bool) []models.Source {
	var out []models.Source
	for _, s := range catalog {
		if keep(s) {
			out = append(out, s)
		}
	}

	return out
}
