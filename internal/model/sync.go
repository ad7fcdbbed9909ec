package model

import "time"

// SyncState is the watermark row read before a sync run and written after.
// LastSourcePosition is the opaque page offset of the content source.
type SyncState struct {
	LastSourcePosition string
	LastRunAt          time.Time
	Counters           RunSummary
}

// RunSummary aggregates per-run counters. Record-level failures land here
// instead of aborting the run.
type RunSummary struct {
	RunID             string `json:"run_id"`
	ArticlesProcessed int    `json:"articles_processed"`
	ArticlesSkipped   int    `json:"articles_skipped"`
	ArticlesFailed    int    `json:"articles_failed"`
	ModelsExtracted   int    `json:"models_extracted"`
	ModelsRejected    int    `json:"models_rejected"`
	ModelsDeduped     int    `json:"models_deduped"`
	RecordsInserted   int    `json:"records_inserted"`
	RecordsUpdated    int    `json:"records_updated"`
	RecordsUnchanged  int    `json:"records_unchanged"`
}

func (s *RunSummary) Add(other RunSummary) {
	s.ArticlesProcessed += other.ArticlesProcessed
	s.ArticlesSkipped += other.ArticlesSkipped
	s.ArticlesFailed += other.ArticlesFailed
	s.ModelsExtracted += other.ModelsExtracted
	s.ModelsRejected += other.ModelsRejected
	s.ModelsDeduped += other.ModelsDeduped
	s.RecordsInserted += other.RecordsInserted
	s.RecordsUpdated += other.RecordsUpdated
	s.RecordsUnchanged += other.RecordsUnchanged
}
