package extract

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed locales.yaml
var localesYAML []byte

type localeFile struct {
	Locales []localeEntry `yaml:"locales"`
}

type localeEntry struct {
	Language     string   `yaml:"language"`
	HeelForefoot []string `yaml:"heel_forefoot"`
	ForefootHeel []string `yaml:"forefoot_heel"`
	Heel         []string `yaml:"heel"`
	Forefoot     []string `yaml:"forefoot"`
	Drop         []string `yaml:"drop"`
	Weight       []string `yaml:"weight"`
}

// localePatterns is a compiled per-language pattern set.
type localePatterns struct {
	Language     string
	HeelForefoot []*regexp.Regexp
	ForefootHeel []*regexp.Regexp
	Heel         []*regexp.Regexp
	Forefoot     []*regexp.Regexp
	Drop         []*regexp.Regexp
	Weight       []*regexp.Regexp
}

var locales = mustLoadLocales()

func mustLoadLocales() []localePatterns {
	var f localeFile
	if err := yaml.Unmarshal(localesYAML, &f); err != nil {
		panic(fmt.Sprintf("extract: malformed locales.yaml: %v", err))
	}

	out := make([]localePatterns, 0, len(f.Locales))
	for _, e := range f.Locales {
		out = append(out, localePatterns{
			Language:     e.Language,
			HeelForefoot: compileAll(e.HeelForefoot),
			ForefootHeel: compileAll(e.ForefootHeel),
			Heel:         compileAll(e.Heel),
			Forefoot:     compileAll(e.Forefoot),
			Drop:         compileAll(e.Drop),
			Weight:       compileAll(e.Weight),
		})
	}
	return out
}

func compileAll(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}
