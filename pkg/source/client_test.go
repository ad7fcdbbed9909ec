package source

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestMapArticle(t *testing.T) {
	row := Row{
		ID: "recABC",
		Fields: Fields{
			ID:          42,
			Title:       "  Brooks Ghost 17 review  ",
			Content:     "The Brooks Ghost 17 weighs 283 grams.",
			ArticleLink: "https://example.com/ghost-17 ",
			Published:   "2026-05-04",
			TimeCreated: "2026-05-06 09:00:00",
		},
	}

	a := MapArticle(row)

	assert.Equal(t, int64(42), a.ArticleID)
	assert.Equal(t, "recABC", a.RecordID)
	assert.Equal(t, "Brooks Ghost 17 review", a.Title)
	assert.Equal(t, "https://example.com/ghost-17", a.SourceLink)

	// Published wins over the row creation time.
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), *a.Date)
}

func TestMapArticle_FallsBackToTimeCreated(t *testing.T) {
	row := Row{
		ID: "recABC",
		Fields: Fields{
			ID:          42,
			TimeCreated: "2026-05-06T09:00:00Z",
		},
	}

	a := MapArticle(row)
	assert.Equal(t, time.Date(2026, 5, 6, 9, 0, 0, 0, time.UTC), *a.Date)
}

func TestMapArticle_UnparseableDateStaysNil(t *testing.T) {
	row := Row{
		ID:     "recABC",
		Fields: Fields{ID: 42, Published: "sometime in spring"},
	}

	a := MapArticle(row)
	assert.Equal(t, (*time.Time)(nil), a.Date)
}
