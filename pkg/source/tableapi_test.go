package source

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestFetchPage(t *testing.T) {
	var gotAuth, gotPageSize, gotOffset string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPageSize = r.URL.Query().Get("pageSize")
		gotOffset = r.URL.Query().Get("offset")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"records": []map[string]interface{}{
				{
					"id": "recABC",
					"fields": map[string]interface{}{
						"ID":           42,
						"Title":        "Brooks Ghost 17 review",
						"Content":      "It weighs 283 grams.",
						"Article link": "https://example.com/ghost-17",
						"Published":    "2026-05-04",
					},
				},
			},
			"offset": "page2token",
		})
	}))
	defer srv.Close()

	client := NewTableClient("test-key", "baseX", "Articles")
	client.baseURL = srv.URL
	client.httpClient = srv.Client()

	page, err := client.FetchPage("", 100)

	assert.Equal(t, nil, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "100", gotPageSize)
	assert.Equal(t, "", gotOffset)

	assert.Equal(t, 1, len(page.Rows))
	assert.Equal(t, "page2token", page.NextOffset)

	row := page.Rows[0]
	assert.Equal(t, "recABC", row.ID)
	assert.Equal(t, int64(42), row.Fields.ID)
	assert.Equal(t, "Brooks Ghost 17 review", row.Fields.Title)
	assert.Equal(t, "https://example.com/ghost-17", row.Fields.ArticleLink)
}

func TestFetchPage_PassesOffset(t *testing.T) {
	var gotOffset string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOffset = r.URL.Query().Get("offset")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"records": []map[string]interface{}{}})
	}))
	defer srv.Close()

	client := NewTableClient("test-key", "baseX", "Articles")
	client.baseURL = srv.URL
	client.httpClient = srv.Client()

	page, err := client.FetchPage("page2token", 50)

	assert.Equal(t, nil, err)
	assert.Equal(t, "page2token", gotOffset)
	assert.Equal(t, 0, len(page.Rows))

	// Last page carries no offset.
	assert.Equal(t, "", page.NextOffset)
}

func TestFetchPage_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewTableClient("bad-key", "baseX", "Articles")
	client.baseURL = srv.URL
	client.httpClient = srv.Client()

	_, err := client.FetchPage("", 100)
	assert.NotEqual(t, nil, err)
}
