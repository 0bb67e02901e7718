package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/savelevaok/ainews/internal/models"
)

const sampleArxiv = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2506.00001v1</id>
    <title>Scaling laws revisited</title>
    <summary>We revisit scaling laws.</summary>
    <published>2025-06-02T10:30:00Z</published>
    <author><name>Alice Smith</name></author>
    <author><name>Bob Jones</name></author>
    <link href="http://arxiv.org/abs/2506.00001v1" rel="alternate" type="text/html"/>
    <link href="http://arxiv.org/pdf/2506.00001v1" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2506.00002v1</id>
    <title>Alignment survey</title>
    <summary>A survey.</summary>
    <published>2025-06-02T11:30:00Z</published>
    <author><name>Carol Lee</name></author>
  </entry>
</feed>`

// TestArxiv_Fetch — разбор Atom-ответа export API: alternate-ссылка,
// склейка авторов, id как fallback ссылки.
func TestArxiv_Fetch(t *testing.T) {
	t.Parallel()

	var gotSort string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSort = r.URL.Query().Get("sortBy")
		w.Write([]byte(sampleArxiv))
	}))
	t.Cleanup(srv.Close)

	f := NewArxiv(srv.Client(), srv.URL, "cat:cs.AI", 25)

	items, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "submittedDate", gotSort)
	require.Len(t, items, 2)

	first := items[0]
	require.Equal(t, models.FamilyArxiv, first.Family)
	require.Equal(t, "arxiv_cs_ai", first.SourceID)
	require.Equal(t, "Scaling laws revisited", first.Title)
	require.Equal(t, "http://arxiv.org/abs/2506.00001v1", first.Link)
	require.Equal(t, "Alice Smith, Bob Jones", first.Author)
	require.Equal(t, "2025-06-02T10:30:00Z", first.RawDate)

	// Без rel="alternate" ссылкой становится id.
	require.Equal(t, "http://arxiv.org/abs/2506.00002v1", items[1].Link)
}

// TestArxiv_BadXML — неразобранное тело — ошибка адаптера.
func TestArxiv_BadXML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not":"xml"}`))
	}))
	t.Cleanup(srv.Close)

	f := NewArxiv(srv.Client(), srv.URL, "cat:cs.AI", 25)

	_, err := f.Fetch(context.Background())
	require.Error(t, err)
}

// TestPickArxivLink_FallbackChain — alternate → id → первая ссылка.
func TestPickArxivLink_FallbackChain(t *testing.T) {
	t.Parallel()

	require.Equal(t, "https://a", pickArxivLink(atomEntry{
		Links: []atomLink{{Href: "https://pdf", Rel: "related"}, {Href: "https://a", Rel: "alternate"}},
	}))

	require.Equal(t, "https://id", pickArxivLink(atomEntry{
		ID:    " https://id ",
		Links: []atomLink{{Href: "https://pdf", Rel: "related"}},
	}))

	require.Equal(t, "https://pdf", pickArxivLink(atomEntry{
		Links: []atomLink{{Href: "https://pdf", Rel: "related"}},
	}))

	require.Equal(t, "", pickArxivLink(atomEntry{}))
}
