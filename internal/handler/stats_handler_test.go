package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"shoedex/internal/model"
)

type fakeStatsStore struct {
	counts map[string]int
	err    error
}

func (f *fakeStatsStore) CountByStatus() (map[string]int, error) {
	return f.counts, f.err
}

type fakeRunStore struct {
	state *model.SyncState
	runs  []model.RunSummary
	err   error
}

func (f *fakeRunStore) GetState() (*model.SyncState, error) {
	return f.state, f.err
}

func (f *fakeRunStore) GetRecentRuns(limit int) ([]model.RunSummary, error) {
	return f.runs, f.err
}

func newStatsRouter(articles StatsStore, runs RunStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewStatsHandler(articles, runs)
	r.GET("/stats", h.GetStats)
	return r
}

func TestGetStats(t *testing.T) {
	lastRun := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	articles := &fakeStatsStore{counts: map[string]int{"pending": 3, "completed": 12}}
	runs := &fakeRunStore{
		state: &model.SyncState{LastRunAt: lastRun},
		runs: []model.RunSummary{
			{RunID: "run-1", ArticlesProcessed: 15, ModelsExtracted: 40},
		},
	}

	r := newStatsRouter(articles, runs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/stats", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res StatsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 3, res.Articles["pending"])
	assert.Equal(t, 12, res.Articles["completed"])
	assert.Equal(t, "2026-05-04T10:00:00Z", *res.LastRun)
	assert.Equal(t, 1, len(res.Runs))
	assert.Equal(t, "run-1", res.Runs[0].RunID)
}

func TestGetStats_NoRunYet(t *testing.T) {
	articles := &fakeStatsStore{counts: map[string]int{}}
	runs := &fakeRunStore{state: &model.SyncState{}}

	r := newStatsRouter(articles, runs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/stats", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res StatsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, (*string)(nil), res.LastRun)
}

func TestGetStats_DBError(t *testing.T) {
	articles := &fakeStatsStore{err: errors.New("DB down")}
	runs := &fakeRunStore{state: &model.SyncState{}}

	r := newStatsRouter(articles, runs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/stats", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
