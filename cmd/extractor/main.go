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
	"shoedex/internal/extract"
	"shoedex/internal/merge"
	"shoedex/internal/metrics"
	"shoedex/internal/model"
	"shoedex/internal/pipeline"
	"shoedex/internal/repository"
	"shoedex/pkg/llm"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(os.Getenv("SHOEDEX_CONFIG"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	articleRepo := repository.NewArticleRepository(db.DB)
	shoeRepo := repository.NewShoeRepository(db.DB)
	syncRepo := repository.NewSyncRepository(db.DB)
	pipe := pipeline.New(cfg)
	fallback := newFallbackExtractor(cfg)

	summary := model.RunSummary{RunID: uuid.NewString()}
	slog.Info("extractor started", "run_id", summary.RunID)

	go func() {
		if err := metrics.Serve(cfg.MetricsAddr); err != nil {
			slog.Error("metrics listener stopped", "error", err)
		}
	}()

	for {
		id, err := db.PopFromQueue(db.ExtractQueueKey, 0)
		if err != nil {
			slog.Error("error popping from extract queue", "error", err)
			break
		}

		articleID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			slog.Error("invalid article id in queue", "id", id, "error", err)
			continue
		}

		errorCount, err := articleRepo.GetErrorCount(articleID)
		if err != nil {
			slog.Error("error getting error count", "error", err, "article_id", articleID)
			continue
		}

		if errorCount >= cfg.MaxRetries {
			slog.Warn("article exceeded max retries, dead-lettering", "article_id", articleID, "error_count", errorCount)
			articleRepo.UpdateStatus(articleID, model.StatusFailed)
			db.PushToQueue(db.DeadLetterKey, id)
			metrics.ArticlesProcessed.WithLabelValues("failed").Inc()
			summary.ArticlesFailed++
			continue
		}

		article, err := articleRepo.GetByID(articleID)
		if err != nil {
			slog.Error("error getting article from DB", "error", err, "article_id", articleID)
			continue
		}

		if article == nil {
			slog.Warn("article not found in DB", "article_id", articleID)
			continue
		}

		result := pipe.Process(*article)

		if len(result.Records) == 0 && fallback != nil {
			metrics.LLMFallbacks.Inc()

			specs, err := fallback.ExtractShoes(llm.ExtractInput{
				ArticleID: article.ArticleID,
				RecordID:  article.RecordID,
				Title:     article.Title,
				Content:   article.Content,
				SourceURL: article.SourceLink,
			})
			if err != nil {
				slog.Error("error running LLM fallback", "error", err, "article_id", articleID)

				articleRepo.SaveError(articleID, err.Error(), "llm_error")
				db.PushToQueue(db.ExtractQueueKey, id)

				time.Sleep(5 * time.Second)
				continue
			}

			result = pipe.Tighten(*article, specs, extract.MethodLLM)
		}

		for _, rejection := range result.Rejected {
			metrics.ModelsRejected.WithLabelValues(string(rejection.Reason)).Inc()
		}
		metrics.ModelsDeduped.Add(float64(result.Deduped))

		counters, ok := upsertRecords(pipe.Policy(), shoeRepo, result.Records, articleID)
		if !ok {
			continue
		}
		counters.Add(result.Counters())
		counters.ArticlesProcessed = 1
		summary.Add(counters)

		status := model.StatusCompleted
		if len(result.Records) == 0 {
			status = model.StatusIrrelevant
		}
		articleRepo.UpdateStatus(articleID, status)
		metrics.ArticlesProcessed.WithLabelValues(status).Inc()

		slog.Info("article extracted",
			"article_id", article.ID,
			"method", result.Method,
			"models", counters.ModelsExtracted,
			"rejected", counters.ModelsRejected,
			"deduped", counters.ModelsDeduped,
			"inserted", counters.RecordsInserted,
			"updated", counters.RecordsUpdated,
			"unchanged", counters.RecordsUnchanged,
		)
	}

	if err := syncRepo.SaveRun(&summary); err != nil {
		slog.Error("error saving run summary", "error", err, "run_id", summary.RunID)
	}

	slog.Info("extractor stopped",
		"run_id", summary.RunID,
		"articles", summary.ArticlesProcessed,
		"failed", summary.ArticlesFailed,
		"models", summary.ModelsExtracted,
		"rejected", summary.ModelsRejected,
		"deduped", summary.ModelsDeduped,
		"inserted", summary.RecordsInserted,
		"updated", summary.RecordsUpdated,
		"unchanged", summary.RecordsUnchanged,
	)
}

// upsertRecords runs the cross-run merge gate for every record and counts
// the outcome of each write. Returns ok=false when a database failure means
// the article should stay pending.
func upsertRecords(policy merge.Policy, shoeRepo *repository.ShoeRepository, records []model.ShoeInput, articleID int64) (model.RunSummary, bool) {
	var counters model.RunSummary

	for _, rec := range records {
		metrics.ModelsExtracted.Inc()

		existing, err := shoeRepo.GetByIdentity(rec.RecordID, rec.ModelKey)
		if err != nil {
			slog.Error("error looking up shoe", "error", err, "article_id", articleID, "model_key", rec.ModelKey)
			return counters, false
		}

		if existing == nil {
			inserted, err := shoeRepo.Upsert(&rec)
			if err != nil {
				slog.Error("error inserting shoe", "error", err, "article_id", articleID, "model_key", rec.ModelKey)
				return counters, false
			}
			action := "inserted"
			counters.RecordsInserted++
			if !inserted {
				// A concurrent run won the insert race; the constrained
				// upsert already resolved the conflict.
				action = "updated"
				counters.RecordsInserted--
				counters.RecordsUpdated++
			}
			metrics.RecordsUpserted.WithLabelValues(action).Inc()
			continue
		}

		merged := policy.Merge(existing.ShoeInput, rec)
		if merge.Equal(merged, existing.ShoeInput) {
			if err := shoeRepo.Touch(rec.RecordID, rec.ModelKey); err != nil {
				slog.Error("error touching shoe", "error", err, "article_id", articleID, "model_key", rec.ModelKey)
				return counters, false
			}
			metrics.RecordsUpserted.WithLabelValues("unchanged").Inc()
			counters.RecordsUnchanged++
			continue
		}

		if _, err := shoeRepo.Upsert(&merged); err != nil {
			slog.Error("error updating shoe", "error", err, "article_id", articleID, "model_key", rec.ModelKey)
			return counters, false
		}
		metrics.RecordsUpserted.WithLabelValues("updated").Inc()
		counters.RecordsUpdated++
	}

	return counters, true
}

func newFallbackExtractor(cfg *config.Config) llm.Extractor {
	switch cfg.LLMProvider {
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return llm.NewOpenAIExtractor(key)
		}
	case "anthropic":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			return llm.NewAnthropicExtractor(key)
		}
	}
	slog.Warn("LLM fallback disabled", "provider", cfg.LLMProvider)
	return nil
}
