// config предоставляет структуру конфигурации сервиса
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env"     env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	DB       DBConfig      `yaml:"db"`
	Cache    CacheConfig   `yaml:"cache"`
	Fetch    FetchConfig   `yaml:"fetch"`
	Summary  SummaryConfig `yaml:"summary"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	// CacheMaxAge — Cache-Control max-age для /articles (подсказка CDN).
	CacheMaxAge time.Duration `yaml:"cache_max_age" env:"HTTP_CACHE_MAX_AGE" env-default:"5m"`
	// StaleWhileRevalidate — окно stale-while-revalidate для /articles.
	StaleWhileRevalidate time.Duration `yaml:"stale_while_revalidate" env:"HTTP_SWR" env-default:"1h"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к MongoDB (tier-2 кэш).
// Пустой URL допустим: сервис деградирует до одного in-process уровня.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL"`
}

// CacheConfig — TTL двух уровней кэша.
type CacheConfig struct {
	// MemoryTTL — свежесть записи in-process уровня.
	MemoryTTL time.Duration `yaml:"memory_ttl" env:"CACHE_MEMORY_TTL" env-default:"30m"`
	// SnapshotTTL — логическая свежесть снапшота в MongoDB.
	SnapshotTTL time.Duration `yaml:"snapshot_ttl" env:"CACHE_SNAPSHOT_TTL" env-default:"6h"`
	// Retention — срок хранения снапшота в MongoDB (TTL-индекс стораджа).
	// Независим от SnapshotTTL: протухший снапшот остаётся читаемым
	// для stale-fallback, пока его не удалит сам сторадж.
	Retention time.Duration `yaml:"retention" env:"CACHE_RETENTION" env-default:"168h"`
	// RefreshInterval — период фонового прогрева кэша; <=0 выключает его.
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"CACHE_REFRESH_INTERVAL" env-default:"0"`
}

// FetchConfig — параметры выборки из внешних источников.
type FetchConfig struct {
	// Timeout — дедлайн на один адаптер.
	Timeout time.Duration `yaml:"timeout" env:"FETCH_TIMEOUT" env-default:"15s"`
	// MaxConcurrentFeeds — семафор конкурентного разбора RSS-лент.
	MaxConcurrentFeeds int `yaml:"max_concurrent_feeds" env:"FETCH_MAX_CONCURRENT_FEEDS" env-default:"6"`
	// HackerNewsLimit — сколько топ-историй HN запрашивать.
	HackerNewsLimit int `yaml:"hackernews_limit" env:"FETCH_HN_LIMIT" env-default:"30"`
	// GDELTQuery — поисковый запрос к GDELT doc API.
	GDELTQuery string `yaml:"gdelt_query" env:"FETCH_GDELT_QUERY" env-default:"\"artificial intelligence\""`
	// ArxivQuery — категория/запрос arXiv export API.
	ArxivQuery string `yaml:"arxiv_query" env:"FETCH_ARXIV_QUERY" env-default:"cat:cs.AI"`
	// ArxivLimit — максимум результатов arXiv.
	ArxivLimit int `yaml:"arxiv_limit" env:"FETCH_ARXIV_LIMIT" env-default:"25"`
	// NewsAPIKey — ключ NewsAPI.org; пустой ключ выключает адаптер.
	NewsAPIKey string `yaml:"newsapi_key" env:"NEWSAPI_KEY"`
	// NewsAPIQuery — поисковый запрос к /v2/everything.
	NewsAPIQuery string `yaml:"newsapi_query" env:"FETCH_NEWSAPI_QUERY" env-default:"artificial intelligence"`
}

// SummaryConfig — параметры внешнего суммаризатора.
// Пустой APIKey выключает интеграцию: ручка отвечает сентинелом.
type SummaryConfig struct {
	APIKey  string        `yaml:"api_key" env:"SUMMARY_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"SUMMARY_BASE_URL"`
	Model   string        `yaml:"model" env:"SUMMARY_MODEL" env-default:"gpt-4o-mini"`
	Timeout time.Duration `yaml:"timeout" env:"SUMMARY_TIMEOUT" env-default:"20s"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	// HTTP — общий дедлайн обработки входящего запроса.
	HTTP time.Duration `yaml:"http" env:"HTTP_TIMEOUT" env-default:"30s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по описанному приоритету.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			path = "local.yaml"
		}
	}

	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config from env: %w", err)
	}

	return &cfg, nil
}
