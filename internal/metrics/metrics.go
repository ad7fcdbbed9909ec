// Package metrics exposes the extractor's run counters as Prometheus
// collectors. The pipeline itself stays metrics-free; the worker records
// outcomes here after each article.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ArticlesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoedex_articles_processed_total",
		Help: "Articles pulled from the extract queue, by outcome.",
	}, []string{"outcome"})

	ModelsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shoedex_models_extracted_total",
		Help: "Normalized shoe records produced by extraction.",
	})

	ModelsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoedex_models_rejected_total",
		Help: "Candidates rejected by the relevance filter or identity gate.",
	}, []string{"reason"})

	ModelsDeduped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shoedex_models_deduped_total",
		Help: "Duplicate candidates folded within a single article.",
	})

	RecordsUpserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoedex_records_upserted_total",
		Help: "Upsert gate outcomes, by action (inserted, updated, unchanged).",
	}, []string{"action"})

	LLMFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shoedex_llm_fallbacks_total",
		Help: "Articles routed to the LLM extractor after regex found nothing.",
	})
)

// Serve exposes /metrics on addr. Blocks; run it in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
