// Package llm is the fallback extractor used when regex detection finds no
// usable candidates. Output is loose by contract; nothing here is trusted
// until it passes the same tightening gate as regex output.
package llm

import (
	"strings"

	"shoedex/internal/model"
)

// promptVersion is stamped into each record's extraction method so rows can
// be traced back to the prompt that produced them.
const promptVersion = "v1"

const systemPrompt = `You are a running-shoe data extractor. Given one magazine article about running shoes, extract every distinct shoe model the article actually reviews or presents.

Rules:
1. Skip listicle intros, apparel, accessories and non-shoe footwear
2. One object per distinct shoe model; do not invent models
3. Numbers only for numeric fields; omit a field entirely when the article does not state it
4. weight is in grams; convert ounces (1 oz = 28.35 g)
5. drop is heel minus forefoot in mm; 0 is a valid drop
6. surface_type is one of: road, trail, track
7. cushioning_type is one of: firm, balanced, max
8. foot_width is one of: narrow, standard, wide
9. upper_breathability is one of: low, medium, high

Output as a JSON array only, no other text:
[
  {
    "brand_name": "Brooks",
    "model": "Ghost 17",
    "heel_height": 32,
    "forefoot_height": 20,
    "drop": 12,
    "weight": 283,
    "price": 140,
    "carbon_plate": false,
    "waterproof": false,
    "surface_type": "road",
    "cushioning_type": "balanced",
    "foot_width": "standard",
    "upper_breathability": "medium",
    "primary_use": "daily trainer",
    "additional_features": "rocker geometry, gusseted tongue"
  }
]`

// maxContentChars bounds how much article body is sent to the model.
const maxContentChars = 8000

type ExtractInput struct {
	ArticleID int64
	RecordID  string
	Title     string
	Content   string
	SourceURL string
}

type Extractor interface {
	ExtractShoes(input ExtractInput) ([]model.LooseSpec, error)
}

func userPromptFor(input ExtractInput) string {
	content := input.Content
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}

	var sb strings.Builder
	sb.WriteString("Title: ")
	sb.WriteString(input.Title)
	sb.WriteString("\n\nArticle:\n")
	sb.WriteString(content)
	return sb.String()
}

// stampIdentity overwrites identity fields on every parsed spec; the model
// has no authority over them.
func stampIdentity(specs []model.LooseSpec, input ExtractInput) []model.LooseSpec {
	for i := range specs {
		specs[i].ArticleID = input.ArticleID
		specs[i].RecordID = input.RecordID
		specs[i].SourceLink = input.SourceURL
		specs[i].ModelKey = ""
		specs[i].ExtractionMethod = "llm/" + promptVersion
	}
	return specs
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around the JSON array.
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
