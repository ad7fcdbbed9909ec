// Package pipeline wires the per-article extraction pass: relevance filter,
// heading/mention detection, spec extraction, tightening and intra-article
// dedup. Pure over the article text; callers own all I/O.
package pipeline

import (
	"shoedex/internal/config"
	"shoedex/internal/extract"
	"shoedex/internal/merge"
	"shoedex/internal/model"
	"shoedex/internal/normalize"
)

type Rejection struct {
	Brand  string
	Model  string
	Reason extract.ReasonCode
}

type Result struct {
	Records  []model.ShoeInput
	Method   string
	Rejected []Rejection
	Deduped  int
}

// Counters reports one article's outcome in run-summary form so the worker
// can aggregate it across a run.
func (r Result) Counters() model.RunSummary {
	return model.RunSummary{
		ModelsExtracted: len(r.Records),
		ModelsRejected:  len(r.Rejected),
		ModelsDeduped:   r.Deduped,
	}
}

type Pipeline struct {
	cfg       *config.Config
	detector  *extract.Detector
	extractor *extract.Extractor
	policy    merge.Policy
}

func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		detector:  extract.NewDetector(cfg),
		extractor: extract.NewExtractor(cfg),
		policy:    merge.Policy{WeightUnitThreshold: cfg.WeightUnitThreshold},
	}
}

// Process runs the regex pass over one article. Rejections and dedups are
// reported, never raised; an article with no usable candidates yields an
// empty record list.
func (p *Pipeline) Process(article model.Article) Result {
	cands, method := p.detector.Detect(article.Content)
	specs := p.extractor.Extract(article, cands, method)
	return p.Tighten(article, specs, method)
}

// Tighten validates loose specs through the relevance filter, the identity
// gate and intra-article dedup. LLM fallback output goes through this same
// path; nothing reaches persistence without it.
func (p *Pipeline) Tighten(article model.Article, specs []model.LooseSpec, method string) Result {
	result := Result{Method: method}

	var records []model.ShoeInput
	for _, spec := range specs {
		if spec.ExtractionMethod == "" {
			spec.ExtractionMethod = method
		}

		refined := normalize.RefineModelName(spec.BrandName, spec.Model)
		key := normalize.MakeModelKey(spec.BrandName, refined)

		if ok, reason := extract.Classify(article.Title, key, refined, spec.BrandName); !ok {
			result.Rejected = append(result.Rejected, Rejection{
				Brand:  spec.BrandName,
				Model:  spec.Model,
				Reason: reason,
			})
			continue
		}

		tightened := normalize.TightenInput(spec)
		if tightened == nil {
			result.Rejected = append(result.Rejected, Rejection{
				Brand:  spec.BrandName,
				Model:  spec.Model,
				Reason: extract.ReasonIdentity,
			})
			continue
		}

		records = append(records, *tightened)
	}

	result.Records, result.Deduped = p.policy.DedupeByKey(records)
	return result
}

func (p *Pipeline) Policy() merge.Policy {
	return p.policy
}
