package extract

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		model  string
		brand  string
		ok     bool
		reason ReasonCode
	}{
		{
			name:  "plain review passes",
			title: "Nike Pegasus 42 review",
			model: "Pegasus 42",
			brand: "Nike",
			ok:    true,
		},
		{
			name:   "listicle title",
			title:  "The 10 Best Running Shoes for Beginners",
			model:  "Ghost 17",
			brand:  "Brooks",
			reason: ReasonListicle,
		},
		{
			name:   "listicle model name",
			title:  "Spring roundup",
			model:  "Best picks",
			brand:  "Brooks",
			reason: ReasonListicle,
		},
		{
			name:   "apparel",
			title:  "Brooks gear test",
			model:  "Trail Jacket",
			brand:  "Brooks",
			reason: ReasonApparel,
		},
		{
			name:  "gel substring does not trip apparel",
			title: "Asics Gel-Nimbus 27 tested",
			model: "Gel-Nimbus 27",
			brand: "Asics",
			ok:    true,
		},
		{
			name:   "non-shoe footwear",
			title:  "Hoka recovery footwear",
			model:  "Ora Slides",
			brand:  "Hoka",
			reason: ReasonNonShoe,
		},
		{
			name:  "glide does not trip slides",
			title: "Adidas Supernova Glide tested",
			model: "Supernova Glide",
			brand: "Adidas",
			ok:    true,
		},
		{
			name:   "generic word as brand",
			title:  "Stability picks",
			model:  "Trainer 2",
			brand:  "Stability",
			reason: ReasonBadBrand,
		},
		{
			name:   "digits-only brand",
			title:  "361 overview",
			model:  "Meraki 5",
			brand:  "361",
			reason: ReasonBadBrand,
		},
		{
			name:   "model is an article fragment",
			title:  "Shopping advice",
			model:  "for every type of runner",
			brand:  "Brooks",
			reason: ReasonBadModel,
		},
		{
			name:   "model mentions shoes",
			title:  "Summer picks",
			model:  "shoes for summer",
			brand:  "Brooks",
			reason: ReasonBadModel,
		},
		{
			name:   "overlong model",
			title:  "Notes",
			model:  "Ghost 17 with the softest ride we have ever run in",
			brand:  "Brooks",
			reason: ReasonTooLong,
		},
		{
			name:   "overlong brand",
			title:  "Notes",
			model:  "Trainer",
			brand:  strings.Repeat("B", 26),
			reason: ReasonTooLong,
		},
		{
			name:   "too many model words",
			title:  "Notes",
			model:  "One Two Three Four Five Six Seven",
			brand:  "Brooks",
			reason: ReasonTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Classify(tt.title, "", tt.model, tt.brand)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

// The checks short-circuit in a fixed order; a title that is both a listicle
// and apparel-flavoured reports the listicle reason.
func TestClassify_FirstHitWins(t *testing.T) {
	ok, reason := Classify("Best running socks of 2026", "", "Ghost 17", "Brooks")
	assert.Equal(t, false, ok)
	assert.Equal(t, ReasonListicle, reason)
}
