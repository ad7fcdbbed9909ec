package extract

import (
	"regexp"
	"strconv"
	"strings"

	"shoedex/internal/config"
	"shoedex/internal/normalize"
)

// Extraction method recorded on every candidate; useful for auditing which
// strategy produced a record, shape is identical downstream.
const (
	MethodHeadings = "headings"
	MethodMentions = "mentions"
	MethodLLM      = "llm"
)

// Candidate is a text span believed to introduce one shoe model. Ephemeral,
// lives only within a single extraction pass.
type Candidate struct {
	Brand string
	Model string
	Price *float64
	Start int
	End   int
}

// Multi-word names first so the alternation matches them before their
// one-word prefixes.
var knownBrands = []string{
	"New Balance", "Under Armour", "Topo Athletic", "La Sportiva",
	"Hoka One One", "Nike", "Adidas", "Asics", "Brooks", "Saucony", "Hoka",
	"Altra", "Mizuno", "Salomon", "Puma", "Reebok", "On", "Inov-8",
	"Skechers", "Karhu", "Tracksmith", "Kiprun", "Diadora", "Craft", "Veja",
	"Merrell", "Scott", "Newton", "361 Degrees", "Xtep", "Li-Ning", "Anta",
}

var brandAlternation = func() string {
	quoted := make([]string, len(knownBrands))
	for i, b := range knownBrands {
		quoted[i] = regexp.QuoteMeta(b)
	}
	return strings.Join(quoted, "|")
}()

var headingPattern = regexp.MustCompile(
	`^(?i:(` + brandAlternation + `))\s+([A-Za-z0-9][\w.'%-]*(?:\s+[\w.'%-]+)*?)\s*(?:\((?:[$€£]\s?)?(\d{2,4}(?:\.\d{2})?)\))?$`)

var headingPrefixPattern = regexp.MustCompile(`^(?:#+\s*|\d+[.)]\s*|[-*]\s*)`)

var mentionPattern = regexp.MustCompile(
	`\b(?i:(` + brandAlternation + `))\s+((?:[A-Z][A-Za-z0-9'%-]*|\d[\w.'%-]*)(?:\s+(?:[A-Z][A-Za-z0-9'%-]*|\d[\w.'%-]*)){0,4})`)

type Detector struct {
	cfg *config.Config
}

func NewDetector(cfg *config.Config) *Detector {
	return &Detector{cfg: cfg}
}

// Detect scans an article body for shoe model candidates. Structured
// headings are tried first; when fewer than the configured minimum are found
// the article is treated as unstructured and body mentions are scanned
// instead. Returns the candidates in document order and the method used.
func (d *Detector) Detect(content string) ([]Candidate, string) {
	headings := d.detectHeadings(content)
	if len(headings) >= d.cfg.MinStructuredHeadings {
		return headings, MethodHeadings
	}

	mentions := d.detectMentions(content)
	if len(mentions) > 0 {
		return mentions, MethodMentions
	}
	return headings, MethodHeadings
}

func (d *Detector) detectHeadings(content string) []Candidate {
	var out []Candidate
	offset := 0

	for _, line := range strings.Split(content, "\n") {
		lineStart := offset
		offset += len(line) + 1

		trimmed := strings.TrimSpace(line)
		trimmed = headingPrefixPattern.ReplaceAllString(trimmed, "")
		if trimmed == "" || len(trimmed) > d.cfg.MaxHeadingLength {
			continue
		}

		m := headingPattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}

		cand := Candidate{
			Brand: canonicalBrand(m[1]),
			Model: strings.TrimSpace(m[2]),
			Start: lineStart,
			End:   lineStart + len(line),
		}
		if m[3] != "" {
			if p, err := strconv.ParseFloat(m[3], 64); err == nil {
				cand.Price = &p
			}
		}
		out = append(out, cand)
	}
	return out
}

func (d *Detector) detectMentions(content string) []Candidate {
	matches := mentionPattern.FindAllStringSubmatchIndex(content, -1)
	if matches == nil {
		return nil
	}

	var out []Candidate
	seen := make(map[string]bool)
	for _, idx := range matches {
		rawBrand := content[idx[2]:idx[3]]
		// Prose mentions of real brands are capitalized; a lowercase hit is
		// almost always an ordinary word ("on", "craft").
		if rawBrand == strings.ToLower(rawBrand) {
			continue
		}
		brand := canonicalBrand(rawBrand)
		name := strings.TrimSpace(content[idx[4]:idx[5]])

		key := normalize.MakeModelKey(brand, name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, Candidate{
			Brand: brand,
			Model: name,
			Start: idx[0],
			End:   idx[1],
		})
	}
	return out
}

// canonicalBrand restores vocabulary casing for a case-insensitive match.
func canonicalBrand(raw string) string {
	for _, b := range knownBrands {
		if strings.EqualFold(b, raw) {
			return b
		}
	}
	return strings.TrimSpace(raw)
}
