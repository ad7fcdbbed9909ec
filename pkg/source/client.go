// Package source reads raw article rows from the upstream tabular content
// store. The pipeline only ever sees the mapped Article shape.
package source

import (
	"strings"
	"time"

	"shoedex/internal/model"
)

type Row struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

type Fields struct {
	ID          int64  `json:"ID"`
	Title       string `json:"Title"`
	Content     string `json:"Content"`
	ArticleLink string `json:"Article link"`
	Published   string `json:"Published"`
	TimeCreated string `json:"Time created"`
}

type Page struct {
	Rows       []Row
	NextOffset string
}

type Client interface {
	// FetchPage returns one page of rows starting at offset (empty for the
	// first page). NextOffset is empty on the last page.
	FetchPage(offset string, pageSize int) (*Page, error)
	Name() string
}

var rowDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// MapArticle adapts a raw row to the pipeline's Article shape. Published
// wins over the row creation time; an unparseable date stays nil.
func MapArticle(row Row) model.Article {
	a := model.Article{
		ArticleID:  row.Fields.ID,
		RecordID:   row.ID,
		Title:      strings.TrimSpace(row.Fields.Title),
		Content:    row.Fields.Content,
		SourceLink: strings.TrimSpace(row.Fields.ArticleLink),
	}

	for _, raw := range []string{row.Fields.Published, row.Fields.TimeCreated} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range rowDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				a.Date = &t
				break
			}
		}
		if a.Date != nil {
			break
		}
	}

	return a
}
