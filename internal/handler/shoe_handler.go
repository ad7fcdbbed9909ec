package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shoedex/internal/model"
	"shoedex/internal/repository"
)

type ShoeStore interface {
	GetFeed(brand string, limit, offset int) ([]model.ShoeRecord, error)
	GetFeedTotal(brand string) (int, error)
	GetByID(id int64) (*model.ShoeRecord, error)
	GetBrands() ([]repository.BrandCount, error)
}

type ShoeHandler struct {
	repository ShoeStore
}

func NewShoeHandler(repository ShoeStore) *ShoeHandler {
	return &ShoeHandler{repository: repository}
}

func (h *ShoeHandler) GetFeed(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)
	brand := c.Query("brand")

	shoes, err := h.repository.GetFeed(brand, limit, offset)
	if err != nil {
		slog.Error("error fetching shoe feed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetFeedTotal(brand)
	if err != nil {
		slog.Error("error fetching shoe feed total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := FeedResponse{
		Shoes:  make([]ShoeResponse, 0, len(shoes)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, s := range shoes {
		res.Shoes = append(res.Shoes, toShoeResponse(s))
	}

	c.JSON(http.StatusOK, res)
}

func (h *ShoeHandler) GetShoe(c *gin.Context) {
	id := c.Param("id")

	shoeID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Error("invalid shoe id", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shoe id"})
		return
	}

	shoe, err := h.repository.GetByID(shoeID)
	if err != nil {
		slog.Error("error fetching shoe", "error", err, "shoe_id", shoeID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if shoe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shoe not found"})
		return
	}

	c.JSON(http.StatusOK, toShoeResponse(*shoe))
}

func (h *ShoeHandler) GetBrands(c *gin.Context) {
	brands, err := h.repository.GetBrands()
	if err != nil {
		slog.Error("error fetching brands", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := make([]BrandResponse, 0, len(brands))
	for _, b := range brands {
		res = append(res, BrandResponse{Brand: b.Brand, Count: b.Count})
	}

	c.JSON(http.StatusOK, res)
}

func (h *ShoeHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func toShoeResponse(s model.ShoeRecord) ShoeResponse {
	return ShoeResponse{
		ID:                 s.ID,
		ArticleID:          s.ArticleID,
		RecordID:           s.RecordID,
		BrandName:          s.BrandName,
		Model:              s.Model,
		ModelKey:           s.ModelKey,
		HeelHeight:         s.HeelHeight,
		ForefootHeight:     s.ForefootHeight,
		Drop:               s.Drop,
		Weight:             s.Weight,
		Price:              s.Price,
		UpperBreathability: s.UpperBreathability,
		CarbonPlate:        s.CarbonPlate,
		Waterproof:         s.Waterproof,
		PrimaryUse:         s.PrimaryUse,
		CushioningType:     s.CushioningType,
		SurfaceType:        s.SurfaceType,
		FootWidth:          s.FootWidth,
		AdditionalFeatures: s.AdditionalFeatures,
		Date:               s.Date,
		SourceLink:         s.SourceLink,
		ExtractionMethod:   s.ExtractionMethod,
		UpdatedAt:          s.UpdatedAt.Format(time.RFC3339),
	}
}

func getQueryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		return 20
	}
	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}
