package openlibrary

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/ratelimit"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(server.Client(), server.URL, ratelimit.New("openlibrary-test", 0), logger)
}

func TestClient_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "dune", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"numFound": 3, "docs": [
			{"key": "/works/OL893415W", "title": "Dune", "author_name": ["Frank Herbert"],
			 "publisher": ["Chilton Books", "Ace"], "publish_date": ["1965"], "subject": ["Science fiction"],
			 "cover_edition_key": "OL26242482M", "edition_key": ["OL1M"]},
			{"key": "/works/OL2W", "title": "Dune Messiah", "first_publish_year": 1969, "edition_key": ["OL7M", "OL8M"]},
			{"key": "/works/OL3W", "title": "Bare"}
		]}`))
	})

	records, err := client.Search(context.Background(), "dune", 20)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "OL26242482M", records[0].ExternalID)
	assert.Equal(t, book.ProviderOpenLibrary, records[0].Provider)
	assert.Equal(t, "Chilton Books", records[0].Publisher)
	assert.Equal(t, "1965", records[0].PublishDate)
	assert.Equal(t, []string{"Frank Herbert"}, records[0].Authors)
	assert.Equal(t, []string{"Science fiction"}, records[0].Categories)

	assert.Equal(t, "OL7M", records[1].ExternalID)
	assert.Equal(t, "1969", records[1].PublishDate)

	assert.Equal(t, "OL3W", records[2].ExternalID)
	assert.Empty(t, records[2].Authors)
}

func TestClient_Search_Truncates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"docs": [{"title": "a"}, {"title": "b"}, {"title": "c"}]}`))
	})

	records, err := client.Search(context.Background(), "x", 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestClient_Fetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/books/OL26242482M.json":
			_, _ = w.Write([]byte(`{
				"title": "Dune", "subtitle": "Deluxe", "publish_date": "2019", "publishers": ["Ace"],
				"description": {"type": "/type/text", "value": "Arrakis"},
				"authors": [{"key": "/authors/OL1A"}, {"author": {"key": "/authors/OL2A"}}, {"key": "/authors/BROKEN"}, {}],
				"works": [{"key": "/works/OL893415W"}]
			}`))
		case "/authors/OL1A.json":
			_, _ = w.Write([]byte(`{"name": "Frank Herbert"}`))
		case "/authors/OL2A.json":
			_, _ = w.Write([]byte(`{"name": "Brian Herbert"}`))
		case "/works/OL893415W.json":
			_, _ = w.Write([]byte(`{"subjects": ["Science fiction", "Deserts"]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	rec, err := client.Fetch(context.Background(), "OL26242482M")
	require.NoError(t, err)
	assert.Equal(t, "Dune", rec.Title)
	assert.Equal(t, "Deluxe", rec.SubTitle)
	assert.Equal(t, "Ace", rec.Publisher)
	assert.Equal(t, "Arrakis", rec.Description)
	assert.Equal(t, []string{"Frank Herbert", "Brian Herbert"}, rec.Authors)
	assert.Equal(t, []string{"Science fiction", "Deserts"}, rec.Categories)
}

func TestClient_Fetch_PlainDescriptionAndMissingWork(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/books/OL1M.json":
			_, _ = w.Write([]byte(`{"title": "Plain", "description": "just text", "works": [{"key": "/works/GONE"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	rec, err := client.Fetch(context.Background(), "OL1M")
	require.NoError(t, err)
	assert.Equal(t, "just text", rec.Description)
	assert.Empty(t, rec.Authors)
	assert.Empty(t, rec.Categories)
}

func TestClient_Fetch_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Fetch(context.Background(), "OL404M")
	assert.ErrorIs(t, err, book.ErrExternalBookNotFound)
}
