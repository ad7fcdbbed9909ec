// One-shot operational report: article status counts, queue depth, watermark
// and the latest run summaries, printed as structured log lines.
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"shoedex/db"
	"shoedex/internal/repository"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	articleRepo := repository.NewArticleRepository(db.DB)
	syncRepo := repository.NewSyncRepository(db.DB)

	counts, err := articleRepo.CountByStatus()
	if err != nil {
		log.Fatalf("error counting articles: %v", err)
	}

	queued, err := db.QueueLength(db.ExtractQueueKey)
	if err != nil {
		log.Fatalf("error reading queue length: %v", err)
	}

	deadLettered, err := db.QueueLength(db.DeadLetterKey)
	if err != nil {
		log.Fatalf("error reading dead letter length: %v", err)
	}

	state, err := syncRepo.GetState()
	if err != nil {
		log.Fatalf("error reading sync state: %v", err)
	}

	slog.Info("article status",
		"pending", counts["pending"],
		"processing", counts["processing"],
		"completed", counts["completed"],
		"irrelevant", counts["irrelevant"],
		"failed", counts["failed"],
	)
	slog.Info("queues", "extract", queued, "dead_letter", deadLettered)

	if state.LastRunAt.IsZero() {
		slog.Info("no sync run recorded yet")
		return
	}

	slog.Info("last run",
		"run_id", state.Counters.RunID,
		"last_run_at", state.LastRunAt,
		"position", state.LastSourcePosition,
		"saved", state.Counters.ArticlesProcessed,
		"skipped", state.Counters.ArticlesSkipped,
		"failed", state.Counters.ArticlesFailed,
	)

	runs, err := syncRepo.GetRecentRuns(5)
	if err != nil {
		log.Fatalf("error reading run log: %v", err)
	}

	for _, run := range runs {
		slog.Info("run",
			"run_id", run.RunID,
			"articles", run.ArticlesProcessed,
			"models", run.ModelsExtracted,
			"rejected", run.ModelsRejected,
			"deduped", run.ModelsDeduped,
		)
	}
}
