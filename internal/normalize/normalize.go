// Package normalize tightens loose extraction output into persistable
// records: canonical model names, the "brand::model" identity key, type
// coercion and the required-field gate.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"shoedex/internal/model"
)

var (
	parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)`)
	milesSuffixPattern   = regexp.MustCompile(`(?i)[\s\p{Pd}]*\d+[\s-]*miles?$`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// Trailing tokens that belong to the article, not the product name.
var genericTrailingTokens = map[string]bool{
	"tester":  true,
	"running": true,
	"review":  true,
	"test":    true,
}

// Sub-brand prefixes some manufacturers prepend to model names; stripped for
// that manufacturer only so "Gel Nimbus 27" and "Nimbus 27" share a key.
var subBrandPrefixes = map[string][]string{
	"asics":       {"gel-", "gel "},
	"new balance": {"fresh foam x ", "fresh foam ", "fuelcell "},
}

// RefineModelName canonicalizes a raw model string. Idempotent: refining an
// already-refined name is a no-op.
func RefineModelName(brand, modelName string) string {
	m := strings.TrimSpace(modelName)
	if m == "" {
		return ""
	}

	m = parentheticalPattern.ReplaceAllString(m, "")

	if idx := strings.Index(m, ":"); idx >= 0 {
		m = m[:idx]
	}

	m = whitespacePattern.ReplaceAllString(strings.TrimSpace(m), " ")

	b := strings.TrimSpace(brand)
	if b != "" {
		lower := strings.ToLower(m)
		lowerBrand := strings.ToLower(b)
		if strings.HasPrefix(lower, lowerBrand+" ") {
			m = strings.TrimSpace(m[len(lowerBrand)+1:])
		}

		for _, prefix := range subBrandPrefixes[lowerBrand] {
			if rest, ok := cutPrefixFold(m, prefix); ok {
				m = rest
				break
			}
		}
	}

	m = milesSuffixPattern.ReplaceAllString(m, "")

	for {
		words := strings.Fields(m)
		if len(words) < 2 {
			break
		}
		last := strings.ToLower(strings.Trim(words[len(words)-1], ".,;!-"))
		if !genericTrailingTokens[last] {
			break
		}
		m = strings.Join(words[:len(words)-1], " ")
	}

	return strings.TrimSpace(m)
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		rest := strings.TrimSpace(s[len(prefix):])
		if rest != "" {
			return rest, true
		}
	}
	return s, false
}

var keyFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeKeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(keyFolder, s); err == nil {
		s = folded
	}

	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace && b.Len() > 0 {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// MakeModelKey returns the "brand::model" identity key: lowercased,
// diacritics folded, non-alphanumeric runs collapsed to single spaces. This
// is the sole dedup/merge join key within and across runs. Empty when either
// side normalizes to nothing.
func MakeModelKey(brand, modelName string) string {
	b := normalizeKeyPart(brand)
	m := normalizeKeyPart(modelName)
	if b == "" || m == "" {
		return ""
	}
	return b + "::" + m
}

// TightenInput converts a loose spec into a strict record. Returns nil when
// any required identity field is missing after coercion; this is the single
// gate keeping malformed records out of persistence.
func TightenInput(loose model.LooseSpec) *model.ShoeInput {
	articleID := coerceInt64(loose.ArticleID)
	brand := strings.TrimSpace(loose.BrandName)
	name := RefineModelName(brand, loose.Model)
	recordID := strings.TrimSpace(loose.RecordID)

	key := strings.TrimSpace(loose.ModelKey)
	if key == "" {
		key = MakeModelKey(brand, name)
	}

	if articleID <= 0 || brand == "" || name == "" || key == "" || recordID == "" {
		return nil
	}

	heel := coerceFloat(loose.HeelHeight)
	forefoot := coerceFloat(loose.ForefootHeight)
	drop := coerceFloat(loose.Drop)
	if drop == nil && heel != nil && forefoot != nil {
		derived := *heel - *forefoot
		drop = &derived
	}

	out := &model.ShoeInput{
		ArticleID:          articleID,
		RecordID:           recordID,
		BrandName:          brand,
		Model:              name,
		ModelKey:           key,
		HeelHeight:         heel,
		ForefootHeight:     forefoot,
		Drop:               drop,
		Weight:             coerceFloat(loose.Weight),
		Price:              coerceFloat(loose.Price),
		UpperBreathability: optString(loose.UpperBreathability),
		CarbonPlate:        coerceBool(loose.CarbonPlate),
		Waterproof:         coerceBool(loose.Waterproof),
		PrimaryUse:         optString(loose.PrimaryUse),
		CushioningType:     optString(loose.CushioningType),
		SurfaceType:        optString(loose.SurfaceType),
		FootWidth:          optString(loose.FootWidth),
		AdditionalFeatures: splitFeatures(loose.AdditionalFeatures),
		Date:               coerceDate(loose.Date),
		SourceLink:         optString(loose.SourceLink),
		ExtractionMethod:   loose.ExtractionMethod,
	}
	return out
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func splitFeatures(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var nonNumericPattern = regexp.MustCompile(`[^0-9.\-]`)

func coerceFloat(v any) *float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		f := t
		return &f
	case float32:
		f := float64(t)
		return &f
	case int:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	case string:
		cleaned := nonNumericPattern.ReplaceAllString(t, "")
		if cleaned == "" {
			return nil
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func coerceInt64(v any) int64 {
	f := coerceFloat(v)
	if f == nil {
		return 0
	}
	return int64(*f)
}

func coerceBool(v any) *bool {
	switch t := v.(type) {
	case nil:
		return nil
	case bool:
		b := t
		return &b
	case float64:
		if t == 1 || t == 0 {
			b := t == 1
			return &b
		}
		return nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1":
			b := true
			return &b
		case "false", "no", "n", "0":
			b := false
			return &b
		}
		return nil
	default:
		return nil
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02.01.2006",
	"2/1/2006",
}

// coerceDate normalizes a free-typed date to ISO-8601 (date part only);
// unparseable input becomes null rather than an error.
func coerceDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			iso := t.Format("2006-01-02")
			return &iso
		}
	}
	return nil
}
