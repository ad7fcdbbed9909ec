package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"shoedex/db"
	"shoedex/internal/config"
	"shoedex/internal/model"
	"shoedex/internal/repository"
	"shoedex/pkg/source"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(os.Getenv("SHOEDEX_CONFIG"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	apiKey := os.Getenv("SOURCE_API_KEY")
	baseID := os.Getenv("SOURCE_BASE_ID")
	table := os.Getenv("SOURCE_TABLE")
	if apiKey == "" || baseID == "" || table == "" {
		slog.Error("content source is not configured", "base_id", baseID, "table", table)
		return
	}

	client := source.NewTableClient(apiKey, baseID, table)
	articleRepo := repository.NewArticleRepository(db.DB)
	syncRepo := repository.NewSyncRepository(db.DB)

	queued, err := db.QueueLength(db.ExtractQueueKey)
	if err != nil {
		log.Fatalf("error reading queue length: %v", err)
	}

	requeue, err := pendingRequeueIDs(articleRepo, queued, cfg.FetchPageSize)
	if err != nil {
		log.Fatalf("error loading pending articles: %v", err)
	}
	for _, id := range requeue {
		if err := db.PushToQueue(db.ExtractQueueKey, id); err != nil {
			log.Fatalf("error re-queueing article: %v", err)
		}
	}
	if len(requeue) > 0 {
		slog.Info("re-queued pending articles", "count", len(requeue))
	}

	state, err := syncRepo.GetState()
	if err != nil {
		log.Fatalf("error reading sync state: %v", err)
	}

	summary := model.RunSummary{RunID: uuid.NewString()}
	offset := state.LastSourcePosition

	slog.Info("sync started", "run_id", summary.RunID, "source", client.Name(), "offset", offset)

	for {
		page, err := client.FetchPage(offset, cfg.FetchPageSize)
		if err != nil {
			// Source I/O failures abort the run; the orchestration layer
			// owns retries.
			log.Fatalf("error fetching page from %s: %v", client.Name(), err)
		}

		for _, row := range page.Rows {
			article := source.MapArticle(row)

			if article.Title == "" || article.Content == "" {
				summary.ArticlesSkipped++
				continue
			}

			saved, err := articleRepo.SaveArticle(&article)
			if err != nil {
				slog.Error("error saving article", "record_id", article.RecordID, "error", err)
				summary.ArticlesFailed++
				continue
			}

			if !saved {
				summary.ArticlesSkipped++
				continue
			}

			summary.ArticlesProcessed++

			err = db.PushToQueue(db.ExtractQueueKey, strconv.FormatInt(article.ID, 10))
			if err != nil {
				slog.Error("error pushing to extract queue", "error", err, "article_id", article.ID)
				summary.ArticlesFailed++
			}
		}

		offset = page.NextOffset
		if offset == "" {
			break
		}
	}

	state.LastSourcePosition = offset
	state.LastRunAt = time.Now()
	state.Counters = summary

	if err := syncRepo.SaveState(state); err != nil {
		log.Fatalf("error saving sync state: %v", err)
	}
	if err := syncRepo.SaveRun(&summary); err != nil {
		slog.Error("error saving run summary", "error", err, "run_id", summary.RunID)
	}

	slog.Info("sync complete",
		"run_id", summary.RunID,
		"saved", summary.ArticlesProcessed,
		"skipped", summary.ArticlesSkipped,
		"failed", summary.ArticlesFailed,
	)
}

type pendingStore interface {
	GetPending(limit int) ([]model.Article, error)
}

// pendingRequeueIDs returns queue payloads for articles stuck in pending
// after an interrupted worker. Only a drained queue triggers the pass; a
// non-empty queue means the worker is still catching up and re-queueing
// would duplicate work.
func pendingRequeueIDs(store pendingStore, queueLen int64, limit int) ([]string, error) {
	if queueLen > 0 {
		return nil, nil
	}

	articles, err := store.GetPending(limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, strconv.FormatInt(a.ID, 10))
	}
	return ids, nil
}
