package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"shoedex/internal/config"
	"shoedex/internal/model"
)

const gramsPerOunce = 28.35

// numericRule pairs a pattern with its value conversion. Rules are evaluated
// in table order with early exit, so the tie-break policy is the ordering.
type numericRule struct {
	re   *regexp.Regexp
	conv func(groups []string) (float64, bool)
}

func captureConv(groups []string) (float64, bool) {
	return parseNumber(groups[1])
}

func ouncesConv(groups []string) (float64, bool) {
	oz, ok := parseNumber(groups[1])
	if !ok {
		return 0, false
	}
	return math.Round(oz * gramsPerOunce), true
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Explicit "official weight" / "weighed" framings outrank the generic
// number-next-to-unit matches.
var weightRules = []numericRule{
	{regexp.MustCompile(`(?i)official weight[^0-9]{0,20}(\d{2,3}(?:[.,]\d+)?)\s*g(?:rams?)?\b`), captureConv},
	{regexp.MustCompile(`(?i)weigh(?:s|ed|ing)?\s*(?:in at\s*)?(?:about\s+|around\s+|just\s+)?(\d{2,3}(?:[.,]\d+)?)\s*g(?:rams?)?\b`), captureConv},
	{regexp.MustCompile(`(?i)official weight[^0-9]{0,20}(\d{1,2}(?:[.,]\d+)?)\s*(?:oz\b|ounces?\b)`), ouncesConv},
	{regexp.MustCompile(`(?i)weigh(?:s|ed|ing)?\s*(?:in at\s*)?(?:about\s+|around\s+|just\s+)?(\d{1,2}(?:[.,]\d+)?)\s*(?:oz\b|ounces?\b)`), ouncesConv},
	{regexp.MustCompile(`(?i)\b(\d{2,3}(?:[.,]\d+)?)\s*g(?:rams?)?\b`), captureConv},
	{regexp.MustCompile(`(?i)\b(\d{1,2}(?:[.,]\d+)?)\s*(?:oz\b|ounces?\b)`), ouncesConv},
}

// Paired stack patterns capture (heel, forefoot) or the reverse order.
var heelForefootRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{1,2}(?:[.,]\d+)?)\s*mm\s*(?:(?:in|at) the\s+)?heel(?:\s*(?:height|stack))?[^0-9]{0,40}?(\d{1,2}(?:[.,]\d+)?)\s*mm\s*(?:(?:in|at) the\s+)?forefoot`),
	regexp.MustCompile(`(?i)heel(?:\s*(?:height|stack))?\s*(?:of|:|is|measures)?\s*(\d{1,2}(?:[.,]\d+)?)\s*mm[^0-9]{0,40}?forefoot(?:\s*(?:height|stack))?\s*(?:of|:|is|measures)?\s*(\d{1,2}(?:[.,]\d+)?)\s*mm`),
}

var forefootHeelRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{1,2}(?:[.,]\d+)?)\s*mm\s*(?:(?:in|at) the\s+)?forefoot(?:\s*(?:height|stack))?[^0-9]{0,40}?(\d{1,2}(?:[.,]\d+)?)\s*mm\s*(?:(?:in|at) the\s+)?heel`),
}

var heelRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)heel(?:\s*(?:height|stack))?\s*(?:of|:|is|measures)?\s*(\d{1,2}(?:[.,]\d+)?)\s*mm`),
	regexp.MustCompile(`(?i)(\d{1,2}(?:[.,]\d+)?)\s*mm\s*(?:(?:in|at) the\s+)?heel`),
}

var forefootRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)forefoot(?:\s*(?:height|stack))?\s*(?:of|:|is|measures)?\s*(\d{1,2}(?:[.,]\d+)?)\s*mm`),
	regexp.MustCompile(`(?i)(\d{1,2}(?:[.,]\d+)?)\s*mm\s*(?:(?:in|at) the\s+)?forefoot`),
}

var dropRules = []numericRule{
	{regexp.MustCompile(`(?i)\bzero[\s-]?drop\b`), func([]string) (float64, bool) { return 0, true }},
	{regexp.MustCompile(`(?i)(\d{1,2}(?:[.,]\d+)?)\s*mm\s*(?:of\s+)?(?:heel(?:-to-toe)?\s+)?drop`), captureConv},
	{regexp.MustCompile(`(?i)drop\s*(?:of|:|is)?\s*(\d{1,2}(?:[.,]\d+)?)\s*mm`), captureConv},
}

var priceRules = []numericRule{
	{regexp.MustCompile(`[$€£]\s?(\d{2,3}(?:\.\d{2})?)\b`), captureConv},
	{regexp.MustCompile(`(?i)\b(\d{2,3}(?:\.\d{2})?)\s?(?:USD|EUR|GBP)\b`), captureConv},
}

type keywordRule struct {
	re    *regexp.Regexp
	value string
}

// More specific surfaces first: a trail shoe review mentions roads too.
var surfaceRules = []keywordRule{
	{regexp.MustCompile(`(?i)\btrail(?:s|-ready| running| shoe)?\b`), model.SurfaceTrail},
	{regexp.MustCompile(`(?i)\btrack\b`), model.SurfaceTrack},
	{regexp.MustCompile(`(?i)\broads?\b|\basphalt\b|\bpavement\b`), model.SurfaceRoad},
}

var cushioningRules = []keywordRule{
	{regexp.MustCompile(`(?i)\b(?:max(?:imal)?|plush)(?:\s|-)?cushion`), model.CushioningMax},
	{regexp.MustCompile(`(?i)\bfirm(?:er)?\s+(?:ride|cushion|midsole)\b|\bminimal cushion`), model.CushioningFirm},
	{regexp.MustCompile(`(?i)\bbalanced\s+(?:ride|cushion)\b|\bmoderate cushion`), model.CushioningBalanced},
}

var widthRules = []keywordRule{
	{regexp.MustCompile(`(?i)\bwider?\s+(?:fit|width|toe box)\b|\bin wide\b|\b[24]E\b`), model.WidthWide},
	{regexp.MustCompile(`(?i)\bnarrow(?:er)?\s+(?:fit|width|last)\b|\bruns narrow\b`), model.WidthNarrow},
	{regexp.MustCompile(`(?i)\bstandard\s+(?:fit|width)\b|\bD width\b`), model.WidthStandard},
}

// Negative breathability first: "not very breathable" contains "breathable".
var breathabilityRules = []keywordRule{
	{regexp.MustCompile(`(?i)\bnot (?:very |particularly )?breathable\b|\bpoor breathab|\bruns warm\b`), model.BreathabilityLow},
	{regexp.MustCompile(`(?i)\b(?:highly|very|extremely) breathable\b|\bexcellent breathab|\bairy\b`), model.BreathabilityHigh},
	{regexp.MustCompile(`(?i)\bbreathable\b|\bengineered mesh\b`), model.BreathabilityMedium},
}

var primaryUseRules = []keywordRule{
	{regexp.MustCompile(`(?i)\brace[\s-]?day\b|\bracing shoe\b|\bmarathon racer\b`), "race"},
	{regexp.MustCompile(`(?i)\btempo\b|\bspeed\s?work\b|\bintervals?\b`), "tempo"},
	{regexp.MustCompile(`(?i)\brecovery (?:runs?|days?|shoe)\b`), "recovery"},
	{regexp.MustCompile(`(?i)\bdaily trainer\b|\beveryday (?:runs?|trainer|miles)\b`), "daily trainer"},
}

type boolRule struct {
	re    *regexp.Regexp
	value bool
}

// Negations first so "not waterproof" suppresses the naive positive match.
var waterproofRules = []boolRule{
	{regexp.MustCompile(`(?i)\b(?:not|isn'?t|is not|no)\s+(?:fully\s+)?waterproof\b`), false},
	{regexp.MustCompile(`(?i)\bwater[\s-]?resistant\b(?:[^.]{0,40}\bnot waterproof\b)?`), false},
	{regexp.MustCompile(`(?i)\bwaterproof\b|\bgore[\s-]?tex\b|\bGTX\b`), true},
}

var platedRules = []boolRule{
	{regexp.MustCompile(`(?i)\b(?:no|without a?|lacks a?)\s+(?:carbon\s+)?plate\b|\bplateless\b`), false},
	{regexp.MustCompile(`(?i)\bcarbon[\s-]?(?:fib(?:er|re)[\s-]?)?plated?\b`), true},
}

var featureRules = []keywordRule{
	{regexp.MustCompile(`(?i)\brocker(?:ed)?\b`), "rocker geometry"},
	{regexp.MustCompile(`(?i)\bgusseted tongue\b`), "gusseted tongue"},
	{regexp.MustCompile(`(?i)\breflective\b`), "reflective details"},
	{regexp.MustCompile(`(?i)\bheel counter\b`), "rigid heel counter"},
	{regexp.MustCompile(`(?i)\bvibram\b`), "Vibram outsole"},
	{regexp.MustCompile(`(?i)\bwide toe box\b`), "wide toe box"},
}

type Extractor struct {
	cfg *config.Config
}

func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract fills a loose spec for each candidate from the text window around
// it. Pattern misses leave fields null; extraction itself never fails.
func (e *Extractor) Extract(article model.Article, cands []Candidate, method string) []model.LooseSpec {
	specs := make([]model.LooseSpec, 0, len(cands))
	for i, cand := range cands {
		window := e.window(article.Content, cands, i, method)

		spec := model.LooseSpec{
			ArticleID:        article.ArticleID,
			RecordID:         article.RecordID,
			BrandName:        cand.Brand,
			Model:            cand.Model,
			SourceLink:       article.SourceLink,
			ExtractionMethod: method,
		}
		if article.Date != nil {
			spec.Date = article.Date.Format("2006-01-02")
		}

		// Heading-captured prices obey the same plausibility bounds as body
		// matches; an implausible one falls through to the body scan.
		if cand.Price != nil && *cand.Price >= e.cfg.PriceMin && *cand.Price <= e.cfg.PriceMax {
			spec.Price = *cand.Price
		} else if p, ok := firstNumeric(window, priceRules, e.cfg.PriceMin, e.cfg.PriceMax); ok {
			spec.Price = p
		}

		if w, ok := firstNumeric(window, weightRules, e.cfg.WeightMinGrams, e.cfg.WeightMaxGrams); ok {
			spec.Weight = w
		}

		if d, ok := firstNumeric(window, dropRules, 0, e.cfg.StackMaxMM); ok {
			spec.Drop = d
		}

		e.extractStack(window, &spec)

		if v := firstKeyword(window, surfaceRules); v != "" {
			spec.SurfaceType = v
		}
		if v := firstKeyword(window, cushioningRules); v != "" {
			spec.CushioningType = v
		}
		if v := firstKeyword(window, widthRules); v != "" {
			spec.FootWidth = v
		}
		if v := firstKeyword(window, breathabilityRules); v != "" {
			spec.UpperBreathability = v
		}
		if v := firstKeyword(window, primaryUseRules); v != "" {
			spec.PrimaryUse = v
		}

		spec.Waterproof = firstBool(window, waterproofRules)
		spec.CarbonPlate = firstBool(window, platedRules)
		spec.AdditionalFeatures = collectFeatures(window)

		specs = append(specs, spec)
	}
	return specs
}

// window bounds the text searched for one candidate: the heading span plus a
// fixed tail for structured articles, a fixed radius for mentions. Both ends
// are capped at neighbouring candidates so specs never bleed across models.
func (e *Extractor) window(content string, cands []Candidate, i int, method string) string {
	end := e.forwardEnd(content, cands, i, method)

	var start int
	if method == MethodHeadings {
		start = cands[i].Start
	} else {
		start = cands[i].Start - e.cfg.MentionWindowBefore
	}
	if start < 0 {
		start = 0
	}
	// Text before this candidate belongs to the previous model's window.
	if i > 0 {
		if prevEnd := e.forwardEnd(content, cands, i-1, method); prevEnd > start {
			start = prevEnd
		}
	}
	if start > end {
		start = end
	}
	return content[start:end]
}

func (e *Extractor) forwardEnd(content string, cands []Candidate, i int, method string) int {
	var end int
	if method == MethodHeadings {
		end = cands[i].End + e.cfg.HeadingWindow
	} else {
		end = cands[i].Start + e.cfg.MentionWindowAfter
	}
	if i+1 < len(cands) && cands[i+1].Start > cands[i].End && cands[i+1].Start < end {
		end = cands[i+1].Start
	}
	if end > len(content) {
		end = len(content)
	}
	return end
}

func (e *Extractor) extractStack(window string, spec *model.LooseSpec) {
	heel, forefoot := matchPair(window, heelForefootRules, false)
	if heel == nil && forefoot == nil {
		heel, forefoot = matchPair(window, forefootHeelRules, true)
	}
	if heel == nil {
		heel = matchSingle(window, heelRules)
	}
	if forefoot == nil {
		forefoot = matchSingle(window, forefootRules)
	}

	// Secondary-language vocabulary, tried only after English fails.
	if heel == nil && forefoot == nil {
		for _, loc := range locales {
			heel, forefoot = matchPair(window, loc.HeelForefoot, false)
			if heel == nil && forefoot == nil {
				heel, forefoot = matchPair(window, loc.ForefootHeel, true)
			}
			if heel == nil {
				heel = matchSingle(window, loc.Heel)
			}
			if forefoot == nil {
				forefoot = matchSingle(window, loc.Forefoot)
			}

			if spec.Drop == nil {
				if d, ok := firstNumeric(window, numericRulesFrom(loc.Drop), 0, e.cfg.StackMaxMM); ok {
					spec.Drop = d
				}
			}
			if spec.Weight == nil {
				if w, ok := firstNumeric(window, numericRulesFrom(loc.Weight), e.cfg.WeightMinGrams, e.cfg.WeightMaxGrams); ok {
					spec.Weight = w
				}
			}

			if heel != nil || forefoot != nil {
				break
			}
		}
	}

	if heel != nil && *heel > 0 && *heel <= e.cfg.StackMaxMM {
		spec.HeelHeight = *heel
	}
	if forefoot != nil && *forefoot > 0 && *forefoot <= e.cfg.StackMaxMM {
		spec.ForefootHeight = *forefoot
	}
}

func numericRulesFrom(patterns []*regexp.Regexp) []numericRule {
	rules := make([]numericRule, 0, len(patterns))
	for _, re := range patterns {
		rules = append(rules, numericRule{re: re, conv: captureConv})
	}
	return rules
}

func matchPair(window string, rules []*regexp.Regexp, reversed bool) (*float64, *float64) {
	for _, re := range rules {
		m := re.FindStringSubmatch(window)
		if m == nil {
			continue
		}
		first, ok1 := parseNumber(m[1])
		second, ok2 := parseNumber(m[2])
		if !ok1 || !ok2 {
			continue
		}
		if reversed {
			return &second, &first
		}
		return &first, &second
	}
	return nil, nil
}

func matchSingle(window string, rules []*regexp.Regexp) *float64 {
	for _, re := range rules {
		m := re.FindStringSubmatch(window)
		if m == nil {
			continue
		}
		if v, ok := parseNumber(m[1]); ok {
			return &v
		}
	}
	return nil
}

func firstNumeric(window string, rules []numericRule, lo, hi float64) (float64, bool) {
	for _, rule := range rules {
		m := rule.re.FindStringSubmatch(window)
		if m == nil {
			continue
		}
		v, ok := rule.conv(m)
		if !ok || v < lo || v > hi {
			continue
		}
		return v, true
	}
	return 0, false
}

func firstKeyword(window string, rules []keywordRule) string {
	for _, rule := range rules {
		if rule.re.MatchString(window) {
			return rule.value
		}
	}
	return ""
}

func firstBool(window string, rules []boolRule) any {
	for _, rule := range rules {
		if rule.re.MatchString(window) {
			return rule.value
		}
	}
	return nil
}

func collectFeatures(window string) string {
	var hits []string
	for _, rule := range featureRules {
		if rule.re.MatchString(window) {
			hits = append(hits, rule.value)
		}
	}
	return strings.Join(hits, ", ")
}
