package handlers

import (
	"net/http"
	"strings"
)

// summarizeRequest — тело POST /summarize.
type summarizeRequest struct {
	Text string `json:"text"`
}

// summarizeResponse — ответ /summarize. Summary == "unavailable" —
// явный сентинел отказа внешнего коллаборатора.
type summarizeResponse struct {
	Summary string `json:"summary"`
}

// Summarize — POST /summarize: краткое изложение произвольного текста
// внешним сервисом, best-effort.
func (h *Handlers) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_argument", "invalid argument")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_argument", "text is required")
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{
		Summary: h.summarizer.Summarize(r.Context(), req.Text),
	})
}
