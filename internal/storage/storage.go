// storage описывает контракт персистентного уровня кэша (tier 2).
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/savelevaok/ainews/internal/models"
)

var (
	// ErrNotFound — снапшот по ключу отсутствует.
	ErrNotFound = errors.New("not found")
)

// Snapshot — сохранённый результат одного цикла агрегации.
//
// Два независимых срока жизни:
//   - CreatedAt задаёт логическую свежесть (сравнивается с TTL приложения);
//   - ExpiresAt — граница хранения данных, её вычищает сам сторадж
//     (TTL-индекс), независимо от логической свежести. Логически
//     протухший снапшот остаётся читаемым для stale-fallback.
type Snapshot struct {
	// Key — детерминированный ключ кэша.
	Key string `bson:"_id"`
	// Articles — упорядоченная выдача агрегации.
	Articles []models.Article `bson:"articles"`
	// CreatedAt — момент записи (UTC).
	CreatedAt time.Time `bson:"created_at"`
	// ExpiresAt — момент удаления стораджем (UTC).
	ExpiresAt time.Time `bson:"expires_at"`
}

//go:generate mockgen -source=storage.go -destination=../../mocks/mock_storage.go -package=mocks

// Storage — операции персистентного уровня кэша.
//
// Конкурентность наследуется от подлежащего стораджа: одинаковые ключи
// перезаписываются по принципу last-write-wins, транзакционных гарантий
// между уровнями нет (полезная нагрузка идемпотентно регенерируема).
type Storage interface {
	// SaveSnapshot сохраняет снапшот, перезаписывая прежний по тому же ключу.
	SaveSnapshot(ctx context.Context, snap Snapshot) error

	// Snapshot возвращает снапшот по ключу независимо от его логической
	// свежести. Если записи нет (или её уже удалил TTL-индекс) — ErrNotFound.
	Snapshot(ctx context.Context, key string) (*Snapshot, error)

	// Close закрывает соединения/ресурсы стораджа.
	Close(ctx context.Context) error
}
