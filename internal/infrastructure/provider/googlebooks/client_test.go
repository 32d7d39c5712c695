package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/provider"
)

const searchBody = `{
  "totalItems": 2,
  "items": [
    {"id": "zyTCAlFPjgYC", "volumeInfo": {"title": "The Google Story", "authors": ["David A. Vise", "Mark Malseed"],
      "publisher": "Random House", "publishedDate": "2005-11-15", "categories": ["Business"]}},
    {"id": "abc", "volumeInfo": {"title": "Second", "subtitle": "Sub"}}
  ]
}`

func TestClient_Search(t *testing.T) {
	var gotQuery, gotMax, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotMax = r.URL.Query().Get("maxResults")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "secret")
	records, err := client.Search(context.Background(), "google story", 20)
	require.NoError(t, err)

	assert.Equal(t, "google story", gotQuery)
	assert.Equal(t, "20", gotMax)
	assert.Equal(t, "secret", gotKey)

	require.Len(t, records, 2)
	assert.Equal(t, "zyTCAlFPjgYC", records[0].ExternalID)
	assert.Equal(t, book.ProviderGoogle, records[0].Provider)
	assert.Equal(t, []string{"David A. Vise", "Mark Malseed"}, records[0].Authors)
	assert.Equal(t, "2005-11-15", records[0].PublishDate)
	assert.Equal(t, []string{"Business"}, records[0].Categories)
	assert.Equal(t, "Sub", records[1].SubTitle)
	assert.Empty(t, records[1].Authors)
}

func TestClient_Search_NoItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer server.Close()

	records, err := NewClient(server.Client(), server.URL, "").Search(context.Background(), "nothing", 20)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes/abc", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"id": "abc", "volumeInfo": {"title": "Dune", "authors": ["Frank Herbert"], "description": "Spice"}}`))
	}))
	defer server.Close()

	rec, err := NewClient(server.Client(), server.URL, "").Fetch(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Dune", rec.Title)
	assert.Equal(t, "Spice", rec.Description)
	assert.Equal(t, []string{"Frank Herbert"}, rec.Authors)
}

func TestClient_Fetch_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/volumes/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()
	client := NewClient(server.Client(), server.URL, "")

	_, err := client.Fetch(context.Background(), "missing")
	assert.ErrorIs(t, err, book.ErrExternalBookNotFound)

	_, err = client.Fetch(context.Background(), "broken")
	var statusErr *provider.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}
