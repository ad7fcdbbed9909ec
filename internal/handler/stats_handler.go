package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shoedex/internal/model"
)

type StatsStore interface {
	CountByStatus() (map[string]int, error)
}

type RunStore interface {
	GetState() (*model.SyncState, error)
	GetRecentRuns(limit int) ([]model.RunSummary, error)
}

type StatsHandler struct {
	articles StatsStore
	runs     RunStore
}

func NewStatsHandler(articles StatsStore, runs RunStore) *StatsHandler {
	return &StatsHandler{articles: articles, runs: runs}
}

// GetStats summarizes extraction quality: article status counts, the
// watermark and the most recent run summaries.
func (h *StatsHandler) GetStats(c *gin.Context) {
	counts, err := h.articles.CountByStatus()
	if err != nil {
		slog.Error("error counting articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	state, err := h.runs.GetState()
	if err != nil {
		slog.Error("error reading sync state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	runs, err := h.runs.GetRecentRuns(10)
	if err != nil {
		slog.Error("error reading run log", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := StatsResponse{
		Articles: counts,
		Runs:     runs,
	}
	if !state.LastRunAt.IsZero() {
		lastRun := state.LastRunAt.Format(time.RFC3339)
		res.LastRun = &lastRun
	}

	c.JSON(http.StatusOK, res)
}
