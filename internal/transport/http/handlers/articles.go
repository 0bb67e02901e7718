package handlers

import (
	"fmt"
	"net/http"

	"github.com/savelevaok/ainews/internal/models"
)

// Articles — GET /articles?category=&q=.
//
// Пустая выдача — валидный ответ (200 с пустым массивом): отказ
// пайплайна не превращается в 5xx на этой границе.
func (h *Handlers) Articles(w http.ResponseWriter, r *http.Request) {
	filter := models.ArticleFilter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	}

	articles := h.svc.Articles(r.Context(), filter)

	if h.cacheMaxAge > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf(
			"public, max-age=%d, stale-while-revalidate=%d",
			int(h.cacheMaxAge.Seconds()),
			int(h.staleWhileRevalidate.Seconds()),
		))
	}

	writeJSON(w, http.StatusOK, articles)
}

// Healthz — GET /healthz, проба живости.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
