// rank — слияние, дедупликация и упорядочивание канонических статей.
//
// Пакет чистый и детерминированный: для фиксированного мультимножества
// входных статей результат одинаков при любом порядке подачи списков:
// внутри одной группы дубликатов решает явная цепочка тай-брейков,
// а итоговая сортировка тотальна.
package rank

import (
	"sort"

	"github.com/savelevaok/ainews/internal/models"
)

// MergeAndRank сливает списки статей от адаптеров, схлопывает дубликаты
// и упорядочивает результат.
//
// Дедупликация: группировка по CanonicalURL; представитель группы —
// по цепочке (категория источника выше → доверие выше → публикация
// свежее → первый увиденный).
//
// Порядок выдачи: категория источника по убыванию, затем дата публикации
// по убыванию (статьи без даты — после датированных), затем заголовок
// по возрастанию, затем каноническая ссылка по возрастанию (финальный
// ключ, делающий порядок тотальным и для одинаковых заголовков).
func MergeAndRank(lists ...[]models.Article) []models.Article {
	byKey := make(map[string]models.Article)
	order := make([]string, 0)

	for _, list := range lists {
		for _, a := range list {
			key := a.CanonicalURL
			if key == "" {
				key = a.ID.String()
			}

			cur, ok := byKey[key]
			if !ok {
				byKey[key] = a
				order = append(order, key)
				continue
			}

			if wins(a, cur) {
				byKey[key] = a
			}
		}
	}

	out := make([]models.Article, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})

	return out
}

// wins сообщает, вытесняет ли кандидат текущего представителя группы.
// Полное равенство по цепочке оставляет первого увиденного (стабильность).
func wins(candidate, current models.Article) bool {
	if candidate.SourceCategory != current.SourceCategory {
		return candidate.SourceCategory > current.SourceCategory
	}

	if candidate.Trust != current.Trust {
		return candidate.Trust > current.Trust
	}

	return candidate.PublishedAt.After(current.PublishedAt)
}

// less — тотальный порядок выдачи.
func less(a, b models.Article) bool {
	if a.SourceCategory != b.SourceCategory {
		return a.SourceCategory > b.SourceCategory
	}

	aZero, bZero := a.PublishedAt.IsZero(), b.PublishedAt.IsZero()
	switch {
	case aZero && !bZero:
		return false
	case !aZero && bZero:
		return true
	case !aZero && !bZero && !a.PublishedAt.Equal(b.PublishedAt):
		return a.PublishedAt.After(b.PublishedAt)
	}

	if a.Title != b.Title {
		return a.Title < b.Title
	}

	return a.CanonicalURL < b.CanonicalURL
}
