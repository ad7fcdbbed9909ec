package extract

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"shoedex/internal/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func TestDetect_StructuredHeadings(t *testing.T) {
	content := "Brooks Ghost 17 ($140)\n" +
		"A reliable daily trainer. It weighs 283 grams.\n" +
		"\n" +
		"## Hoka Clifton 10 (€155)\n" +
		"Softer than last year. It weighs 258 grams.\n"

	cands, method := NewDetector(testConfig()).Detect(content)

	assert.Equal(t, MethodHeadings, method)
	assert.Equal(t, 2, len(cands))

	assert.Equal(t, "Brooks", cands[0].Brand)
	assert.Equal(t, "Ghost 17", cands[0].Model)
	assert.Equal(t, 140.0, *cands[0].Price)

	assert.Equal(t, "Hoka", cands[1].Brand)
	assert.Equal(t, "Clifton 10", cands[1].Model)
	assert.Equal(t, 155.0, *cands[1].Price)
}

func TestDetect_HeadingWithoutPrice(t *testing.T) {
	content := "Altra Lone Peak 9\nGrippy on rocks.\n\nSalomon Sense Ride 5\nA softer trail option.\n"

	cands, method := NewDetector(testConfig()).Detect(content)

	assert.Equal(t, MethodHeadings, method)
	assert.Equal(t, 2, len(cands))
	assert.Equal(t, "Lone Peak 9", cands[0].Model)
	assert.Equal(t, (*float64)(nil), cands[0].Price)
}

func TestDetect_FallbackToMentions(t *testing.T) {
	content := "We took two trainers out for a month. " +
		"The Brooks Ghost 17 held up well on long runs, while the Saucony Ride 18 felt quicker."

	cands, method := NewDetector(testConfig()).Detect(content)

	assert.Equal(t, MethodMentions, method)
	assert.Equal(t, 2, len(cands))
	assert.Equal(t, "Brooks", cands[0].Brand)
	assert.Equal(t, "Ghost 17", cands[0].Model)
	assert.Equal(t, "Saucony", cands[1].Brand)
	assert.Equal(t, "Ride 18", cands[1].Model)
}

// One structured heading is below the minimum; the article is treated as
// unstructured prose.
func TestDetect_SingleHeadingFallsBack(t *testing.T) {
	content := "Brooks Ghost 17 ($140)\nIt runs smooth. The Brooks Ghost 17 weighs 283 grams.\n"

	cands, method := NewDetector(testConfig()).Detect(content)

	assert.Equal(t, MethodMentions, method)
	assert.Equal(t, 1, len(cands))
	assert.Equal(t, "Ghost 17", cands[0].Model)
}

// Brand vocabulary words that double as ordinary prose ("on", "craft") only
// count when capitalized.
func TestDetect_LowercaseBrandWordsSkipped(t *testing.T) {
	content := "We kept moving on Sunday and admired the craft Behind every build."

	cands, _ := NewDetector(testConfig()).Detect(content)
	assert.Equal(t, 0, len(cands))
}

func TestDetect_MentionDeduplication(t *testing.T) {
	content := "The Brooks Ghost 17 impressed us. Later the Brooks Ghost 17 impressed us again."

	cands, method := NewDetector(testConfig()).Detect(content)

	assert.Equal(t, MethodMentions, method)
	assert.Equal(t, 1, len(cands))
}

func TestDetect_OverlongHeadingIgnored(t *testing.T) {
	content := "Brooks Ghost 17 is a trainer we ran in for a month and kept reaching for on easy days, which says a lot\n" +
		"Nike Pegasus 42 ($140)\n"

	cands, method := NewDetector(testConfig()).Detect(content)

	// Only one line qualifies as a heading, so detection falls back.
	assert.Equal(t, MethodMentions, method)
	assert.NotEqual(t, 0, len(cands))
}

func TestCanonicalBrand(t *testing.T) {
	assert.Equal(t, "Hoka", canonicalBrand("HOKA"))
	assert.Equal(t, "New Balance", canonicalBrand("new balance"))
	assert.Equal(t, "Brooks", canonicalBrand("Brooks"))
}
