// Package merge implements the richness rules used both for intra-article
// deduplication and for cross-run conflict resolution: non-null beats null,
// longer strings beat shorter, grams-range weights beat ounce-range ones.
package merge

import (
	"shoedex/internal/model"
)

// DefaultWeightUnitThreshold separates grams-range weights from values that
// are plausibly an unconverted ounce figure. Preserved from the original
// heuristic, overridable via config.
const DefaultWeightUnitThreshold = 50

type Policy struct {
	WeightUnitThreshold float64
}

func DefaultPolicy() Policy {
	return Policy{WeightUnitThreshold: DefaultWeightUnitThreshold}
}

// Merge folds incoming into existing field by field and returns a new record;
// neither argument is mutated. Merging a record with itself returns an equal
// record.
func (p Policy) Merge(existing, incoming model.ShoeInput) model.ShoeInput {
	out := existing

	out.BrandName = richerString(existing.BrandName, incoming.BrandName)
	out.Model = richerString(existing.Model, incoming.Model)
	out.HeelHeight = richerFloat(existing.HeelHeight, incoming.HeelHeight)
	out.ForefootHeight = richerFloat(existing.ForefootHeight, incoming.ForefootHeight)
	out.Drop = richerFloat(existing.Drop, incoming.Drop)
	out.Weight = p.richerWeight(existing.Weight, incoming.Weight)
	out.Price = richerFloat(existing.Price, incoming.Price)
	out.UpperBreathability = richerStringPtr(existing.UpperBreathability, incoming.UpperBreathability)
	out.CarbonPlate = richerBool(existing.CarbonPlate, incoming.CarbonPlate)
	out.Waterproof = richerBool(existing.Waterproof, incoming.Waterproof)
	out.PrimaryUse = richerStringPtr(existing.PrimaryUse, incoming.PrimaryUse)
	out.CushioningType = richerStringPtr(existing.CushioningType, incoming.CushioningType)
	out.SurfaceType = richerStringPtr(existing.SurfaceType, incoming.SurfaceType)
	out.FootWidth = richerStringPtr(existing.FootWidth, incoming.FootWidth)
	out.Date = richerStringPtr(existing.Date, incoming.Date)
	out.SourceLink = richerStringPtr(existing.SourceLink, incoming.SourceLink)

	if len(incoming.AdditionalFeatures) > len(existing.AdditionalFeatures) {
		out.AdditionalFeatures = incoming.AdditionalFeatures
	}

	if out.ExtractionMethod == "" {
		out.ExtractionMethod = incoming.ExtractionMethod
	}

	return out
}

// DedupeByKey groups records by model key and folds each group left to right
// with Merge, preserving first-seen order. Returns the merged records and the
// number of duplicates folded away.
func (p Policy) DedupeByKey(records []model.ShoeInput) ([]model.ShoeInput, int) {
	var order []string
	byKey := make(map[string]model.ShoeInput)
	removed := 0

	for _, rec := range records {
		existing, seen := byKey[rec.ModelKey]
		if !seen {
			order = append(order, rec.ModelKey)
			byKey[rec.ModelKey] = rec
			continue
		}
		byKey[rec.ModelKey] = p.Merge(existing, rec)
		removed++
	}

	out := make([]model.ShoeInput, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out, removed
}

// IsPayloadRicher reports whether candidate carries strictly more information
// than existing: non-null fields counted, identity-adjacent fields (brand,
// model, weight, drop, price) weighted double, with a bonus for a grams-range
// weight. Used where a wholesale replace decision is needed instead of a
// field-by-field merge.
func (p Policy) IsPayloadRicher(candidate, existing model.ShoeInput) bool {
	return p.score(candidate) > p.score(existing)
}

func (p Policy) score(rec model.ShoeInput) int {
	s := 0
	if rec.BrandName != "" {
		s += 2
	}
	if rec.Model != "" {
		s += 2
	}
	if rec.Weight != nil {
		s += 2
		if *rec.Weight > p.WeightUnitThreshold {
			s++
		}
	}
	if rec.Drop != nil {
		s += 2
	}
	if rec.Price != nil {
		s += 2
	}
	for _, present := range []bool{
		rec.HeelHeight != nil,
		rec.ForefootHeight != nil,
		rec.UpperBreathability != nil,
		rec.CarbonPlate != nil,
		rec.Waterproof != nil,
		rec.PrimaryUse != nil,
		rec.CushioningType != nil,
		rec.SurfaceType != nil,
		rec.FootWidth != nil,
		rec.Date != nil,
		rec.SourceLink != nil,
		len(rec.AdditionalFeatures) > 0,
	} {
		if present {
			s++
		}
	}
	return s
}

// Equal reports whether two records carry the same value set. Identity and
// bookkeeping fields (ids, extraction method) are included.
func Equal(a, b model.ShoeInput) bool {
	if a.ArticleID != b.ArticleID || a.RecordID != b.RecordID ||
		a.BrandName != b.BrandName || a.Model != b.Model || a.ModelKey != b.ModelKey ||
		a.ExtractionMethod != b.ExtractionMethod {
		return false
	}
	if !eqFloat(a.HeelHeight, b.HeelHeight) || !eqFloat(a.ForefootHeight, b.ForefootHeight) ||
		!eqFloat(a.Drop, b.Drop) || !eqFloat(a.Weight, b.Weight) || !eqFloat(a.Price, b.Price) {
		return false
	}
	if !eqBool(a.CarbonPlate, b.CarbonPlate) || !eqBool(a.Waterproof, b.Waterproof) {
		return false
	}
	if !eqString(a.UpperBreathability, b.UpperBreathability) || !eqString(a.PrimaryUse, b.PrimaryUse) ||
		!eqString(a.CushioningType, b.CushioningType) || !eqString(a.SurfaceType, b.SurfaceType) ||
		!eqString(a.FootWidth, b.FootWidth) || !eqString(a.Date, b.Date) ||
		!eqString(a.SourceLink, b.SourceLink) {
		return false
	}
	if len(a.AdditionalFeatures) != len(b.AdditionalFeatures) {
		return false
	}
	for i := range a.AdditionalFeatures {
		if a.AdditionalFeatures[i] != b.AdditionalFeatures[i] {
			return false
		}
	}
	return true
}

func richerString(existing, incoming string) string {
	if len(incoming) > len(existing) {
		return incoming
	}
	return existing
}

func richerStringPtr(existing, incoming *string) *string {
	if existing == nil {
		return incoming
	}
	if incoming == nil {
		return existing
	}
	if len(*incoming) > len(*existing) {
		return incoming
	}
	return existing
}

func richerFloat(existing, incoming *float64) *float64 {
	if existing == nil {
		return incoming
	}
	return existing
}

func richerBool(existing, incoming *bool) *bool {
	if existing == nil {
		return incoming
	}
	return existing
}

// richerWeight prefers a grams-range value over an ounce-range one regardless
// of arrival order; an oz-range figure next to a grams-range one is assumed
// to be a unit-confusion artifact.
func (p Policy) richerWeight(existing, incoming *float64) *float64 {
	if existing == nil {
		return incoming
	}
	if incoming == nil {
		return existing
	}
	if *existing <= p.WeightUnitThreshold && *incoming > p.WeightUnitThreshold {
		return incoming
	}
	return existing
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqBool(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
