// cache — двухуровневый кэш агрегированной выдачи.
//
// Уровень 1 — in-process TTL-кэш (этот файл), уровень 2 — персистентный
// снапшот-сторадж (internal/storage). Связывает их Loader (loader.go).
package cache

import (
	"sync"
	"time"

	"github.com/savelevaok/ainews/internal/models"
)

// entry — запись уровня 1.
type entry struct {
	payload   []models.Article
	createdAt time.Time
}

// Memory — in-process TTL-кэш.
//
// Протухшие записи не выметаются фоново: запись физически удаляется
// лениво, при первом чтении после истечения TTL. Set всегда перезаписывает
// и сбрасывает отметку времени (last-write-wins).
type Memory struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry

	// now — инъекция часов для тестов.
	now func() time.Time
}

// NewMemory создаёт кэш уровня 1 с заданным TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl: ttl,
		m:   make(map[string]entry),
		now: time.Now,
	}
}

// Get возвращает полезную нагрузку и признак свежего попадания.
// Протухшая запись удаляется и считается промахом.
func (c *Memory) Get(key string) ([]models.Article, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.now().Sub(e.createdAt) > c.ttl {
		c.mu.Lock()
		// Перепроверка: запись могли успеть перезаписать свежей.
		if cur, ok := c.m[key]; ok && c.now().Sub(cur.createdAt) > c.ttl {
			delete(c.m, key)
		}
		c.mu.Unlock()

		return nil, false
	}

	return e.payload, true
}

// Set сохраняет полезную нагрузку, перезаписывая любую прежнюю запись.
func (c *Memory) Set(key string, payload []models.Article) {
	c.mu.Lock()
	c.m[key] = entry{payload: payload, createdAt: c.now()}
	c.mu.Unlock()
}
