package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"shoedex/internal/model"
	"shoedex/internal/repository"
)

type fakeShoeStore struct {
	feed      []model.ShoeRecord
	feedTotal int
	shoe      *model.ShoeRecord
	brands    []repository.BrandCount
	err       error

	gotBrand  string
	gotLimit  int
	gotOffset int
}

func (f *fakeShoeStore) GetFeed(brand string, limit, offset int) ([]model.ShoeRecord, error) {
	f.gotBrand = brand
	f.gotLimit = limit
	f.gotOffset = offset
	return f.feed, f.err
}

func (f *fakeShoeStore) GetFeedTotal(brand string) (int, error) {
	return f.feedTotal, f.err
}

func (f *fakeShoeStore) GetByID(id int64) (*model.ShoeRecord, error) {
	return f.shoe, f.err
}

func (f *fakeShoeStore) GetBrands() ([]repository.BrandCount, error) {
	return f.brands, f.err
}

func newTestRouter(store ShoeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewShoeHandler(store)
	r.GET("/shoes", h.GetFeed)
	r.GET("/shoes/:id", h.GetShoe)
	r.GET("/brands", h.GetBrands)
	r.GET("/health", h.GetHealth)
	return r
}

func testRecord() model.ShoeRecord {
	weight := 283.0
	return model.ShoeRecord{
		ID: 1,
		ShoeInput: model.ShoeInput{
			ArticleID: 42,
			RecordID:  "recABC",
			BrandName: "Brooks",
			Model:     "Ghost 17",
			ModelKey:  "brooks::ghost 17",
			Weight:    &weight,
		},
	}
}

func TestGetFeed_ReturnsShoes(t *testing.T) {
	store := &fakeShoeStore{
		feed:      []model.ShoeRecord{testRecord()},
		feedTotal: 1,
	}

	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shoes?limit=10&offset=0", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res FeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, len(res.Shoes))
	assert.Equal(t, "Brooks", res.Shoes[0].BrandName)
	assert.Equal(t, "Ghost 17", res.Shoes[0].Model)
	assert.Equal(t, 283.0, *res.Shoes[0].Weight)
}

func TestGetFeed_BrandFilterPassedThrough(t *testing.T) {
	store := &fakeShoeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shoes?brand=Hoka", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hoka", store.gotBrand)
}

func TestGetFeed_DefaultAndClampedPaging(t *testing.T) {
	store := &fakeShoeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shoes", nil)
	r.ServeHTTP(w, req)

	var res FeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 20, res.Limit)
	assert.Equal(t, 0, res.Offset)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/shoes?limit=5000&offset=-3", nil)
	r.ServeHTTP(w, req)

	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 20, res.Limit)
	assert.Equal(t, 0, res.Offset)
}

func TestGetFeed_DBError(t *testing.T) {
	store := &fakeShoeStore{err: errors.New("DB down")}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shoes", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetShoe_Found(t *testing.T) {
	rec := testRecord()
	store := &fakeShoeStore{shoe: &rec}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shoes/1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ShoeResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "brooks::ghost 17", res.ModelKey)
	assert.Equal(t, "recABC", res.RecordID)
}

func TestGetShoe_NotFound(t *testing.T) {
	store := &fakeShoeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shoes/999", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetShoe_InvalidID(t *testing.T) {
	store := &fakeShoeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shoes/aaa", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBrands(t *testing.T) {
	store := &fakeShoeStore{
		brands: []repository.BrandCount{
			{Brand: "Brooks", Count: 12},
			{Brand: "Hoka", Count: 7},
		},
	}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/brands", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res []BrandResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, "Brooks", res[0].Brand)
	assert.Equal(t, 12, res[0].Count)
}

func TestGetHealth(t *testing.T) {
	store := &fakeShoeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "ok", res["status"])
}
