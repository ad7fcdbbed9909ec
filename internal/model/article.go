package model

import "time"

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusIrrelevant = "irrelevant"
)

type Article struct {
	ID         int64
	ArticleID  int64
	RecordID   string
	Title      string
	Content    string
	Date       *time.Time
	SourceLink string
	Status     string
	FetchedAt  time.Time
}

type ProcessingError struct {
	ID           int64
	ArticleID    int64
	ErrorMessage string
	ErrorType    string
	AttemptCount int
	CreatedAt    time.Time
}
