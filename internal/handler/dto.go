package handler

import "shoedex/internal/model"

type ShoeResponse struct {
	ID                 int64    `json:"id"`
	ArticleID          int64    `json:"article_id"`
	RecordID           string   `json:"record_id"`
	BrandName          string   `json:"brand_name"`
	Model              string   `json:"model"`
	ModelKey           string   `json:"model_key"`
	HeelHeight         *float64 `json:"heel_height"`
	ForefootHeight     *float64 `json:"forefoot_height"`
	Drop               *float64 `json:"drop"`
	Weight             *float64 `json:"weight"`
	Price              *float64 `json:"price"`
	UpperBreathability *string  `json:"upper_breathability"`
	CarbonPlate        *bool    `json:"carbon_plate"`
	Waterproof         *bool    `json:"waterproof"`
	PrimaryUse         *string  `json:"primary_use"`
	CushioningType     *string  `json:"cushioning_type"`
	SurfaceType        *string  `json:"surface_type"`
	FootWidth          *string  `json:"foot_width"`
	AdditionalFeatures []string `json:"additional_features"`
	Date               *string  `json:"date"`
	SourceLink         *string  `json:"source_link"`
	ExtractionMethod   string   `json:"extraction_method"`
	UpdatedAt          string   `json:"updated_at"`
}

type FeedResponse struct {
	Shoes  []ShoeResponse `json:"shoes"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type BrandResponse struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

type StatsResponse struct {
	Articles map[string]int     `json:"articles"`
	LastRun  *string            `json:"last_run"`
	Runs     []model.RunSummary `json:"runs"`
}
