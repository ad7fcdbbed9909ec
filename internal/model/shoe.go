package model

import "time"

// Closed enumerations for categorical spec fields. Extraction maps keyword
// hits onto these values; anything unmatched stays null.
const (
	SurfaceRoad  = "road"
	SurfaceTrail = "trail"
	SurfaceTrack = "track"

	CushioningFirm     = "firm"
	CushioningBalanced = "balanced"
	CushioningMax      = "max"

	WidthNarrow   = "narrow"
	WidthStandard = "standard"
	WidthWide     = "wide"

	BreathabilityLow    = "low"
	BreathabilityMedium = "medium"
	BreathabilityHigh   = "high"
)

// LooseSpec is a partially-typed extraction result. Numeric fields are `any`
// because values arrive as float64 from regex capture conversion but as
// strings or json numbers from the LLM fallback; tightening owns coercion.
type LooseSpec struct {
	ArticleID          any    `json:"article_id"`
	RecordID           string `json:"record_id"`
	BrandName          string `json:"brand_name"`
	Model              string `json:"model"`
	ModelKey           string `json:"model_key"`
	HeelHeight         any    `json:"heel_height"`
	ForefootHeight     any    `json:"forefoot_height"`
	Drop               any    `json:"drop"`
	Weight             any    `json:"weight"`
	Price              any    `json:"price"`
	UpperBreathability string `json:"upper_breathability"`
	CarbonPlate        any    `json:"carbon_plate"`
	Waterproof         any    `json:"waterproof"`
	PrimaryUse         string `json:"primary_use"`
	CushioningType     string `json:"cushioning_type"`
	SurfaceType        string `json:"surface_type"`
	FootWidth          string `json:"foot_width"`
	AdditionalFeatures string `json:"additional_features"`
	Date               string `json:"date"`
	SourceLink         string `json:"source_link"`
	ExtractionMethod   string `json:"-"`
}

// ShoeInput is the tightened, persistable record. Identity fields are
// required; everything else is independently nullable.
type ShoeInput struct {
	ArticleID          int64
	RecordID           string
	BrandName          string
	Model              string
	ModelKey           string
	HeelHeight         *float64
	ForefootHeight     *float64
	Drop               *float64
	Weight             *float64
	Price              *float64
	UpperBreathability *string
	CarbonPlate        *bool
	Waterproof         *bool
	PrimaryUse         *string
	CushioningType     *string
	SurfaceType        *string
	FootWidth          *string
	AdditionalFeatures []string
	Date               *string
	SourceLink         *string
	ExtractionMethod   string
}

type ShoeRecord struct {
	ID        int64
	ShoeInput
	CreatedAt time.Time
	UpdatedAt time.Time
}
