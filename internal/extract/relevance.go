// Package extract turns raw article text into loose shoe spec candidates:
// relevance filtering, heading/mention detection and regex spec extraction.
package extract

import (
	"regexp"
	"strings"
)

// ReasonCode explains why a candidate was rejected. Rejections are expected
// and non-fatal; they are counted, never thrown.
type ReasonCode string

const (
	ReasonListicle ReasonCode = "listicle"
	ReasonApparel  ReasonCode = "apparel"
	ReasonNonShoe  ReasonCode = "nonshoe"
	ReasonBadBrand ReasonCode = "badbrand"
	ReasonBadModel ReasonCode = "badmodel"
	ReasonTooLong  ReasonCode = "toolong"

	// ReasonIdentity marks a record dropped by the tightening gate, not by
	// the relevance filter.
	ReasonIdentity ReasonCode = "identity"
)

// Disqualifying length ceilings: past these the string is a sentence, not a
// product name.
const (
	maxBrandLength = 25
	maxModelLength = 50
	maxModelWords  = 6
)

var listiclePattern = regexp.MustCompile(`(?i)^(?:the\s+)?(?:\d+\s+)?(?:best|top\s*\d*\b|buying guide|editor'?s (?:choice|picks?)|our favou?rites?|gift guide|roundup)`)

// Word-bounded so brand substrings like "gel" never trip the apparel check.
var apparelPattern = regexp.MustCompile(`(?i)\b(?:shirts?|t-shirts?|shorts?|tights?|leggings?|socks?|jackets?|vests?|bras?|belts?|caps?|hats?|gloves?|sunglasses|headphones?|earbuds?|watch(?:es)?|hydration packs?|running packs?|insoles?|massage guns?|foam rollers?)\b`)

var nonShoePattern = regexp.MustCompile(`(?i)\b(?:sandals?|slides?|boots?|flip[- ]?flops?|clogs?|slippers?|spikes? bag)\b`)

// Brand strings that are actually generic words, not manufacturers.
var brandDenylist = map[string]bool{
	"best":      true,
	"top":       true,
	"the":       true,
	"a":         true,
	"new":       true,
	"stability": true,
	"cushioned": true,
	"trail":     true,
	"racing":    true,
	"running":   true,
}

var digitsOnlyPattern = regexp.MustCompile(`^\d+$`)

// Model strings that read as article fragments rather than product names.
var badModelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^for\s`),
	regexp.MustCompile(`(?i)\bshoes?\b`),
	regexp.MustCompile(`(?i)\bthat'?s\b`),
	regexp.MustCompile(`(?i)\bevery (?:type|kind|runner)\b`),
	regexp.MustCompile(`(?i)^(?:a|an|the|your|our)\s`),
	regexp.MustCompile(`(?i)\bbeginners?\b`),
	regexp.MustCompile(`(?i)\b(?:guide|review of|comparison)\b`),
}

// Classify decides whether a title/model pair refers to an actual running
// shoe. Pure function over strings; checks short-circuit and the first hit
// reports its reason.
func Classify(title, modelKey, modelName, brand string) (bool, ReasonCode) {
	title = strings.TrimSpace(title)
	modelName = strings.TrimSpace(modelName)
	brand = strings.TrimSpace(brand)

	if listiclePattern.MatchString(title) || listiclePattern.MatchString(modelName) {
		return false, ReasonListicle
	}

	combined := title + " " + modelName + " " + modelKey
	if apparelPattern.MatchString(combined) {
		return false, ReasonApparel
	}
	if nonShoePattern.MatchString(combined) {
		return false, ReasonNonShoe
	}

	lowerBrand := strings.ToLower(brand)
	if brandDenylist[lowerBrand] || digitsOnlyPattern.MatchString(lowerBrand) {
		return false, ReasonBadBrand
	}

	for _, p := range badModelPatterns {
		if p.MatchString(modelName) {
			return false, ReasonBadModel
		}
	}

	if len(brand) > maxBrandLength || len(modelName) > maxModelLength ||
		len(strings.Fields(modelName)) > maxModelWords {
		return false, ReasonTooLong
	}

	return true, ""
}
