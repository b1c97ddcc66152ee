package fragset

import "sort"

// Token budget for pages entering the training pipeline. Pages below the
// floor rarely contain a complete fragment; pages above the ceiling exceed
// the downstream model's context window.
const (
	MinPageTokens = 4096
	MaxPageTokens = 131072
)

// PageAnalysis is the quality assessment of one fetched page.
type PageAnalysis struct {
	// IsDynamic reports an SPA or heavily client-rendered page.
	IsDynamic bool `json:"is_dynamic"`

	// HasAnomalies reports error text, redirects, captchas, login walls, or
	// structurally broken markup.
	HasAnomalies bool `json:"has_issues"`

	// QualityScore in [0, 100] rewards substantial prose, vocabulary
	// richness, semantic structure, and sane link density.
	QualityScore float64 `json:"quality_score"`
}

// PageAnalyzer assesses the quality of raw fetched pages before they are
// considered as fragment sources.
type PageAnalyzer interface {
	Analyze(html string) PageAnalysis
}

// ManifestEntry is one fetched page recorded by the sampling stage.
type ManifestEntry struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Domain   string `json:"domain"`
	Category string `json:"category"`
	HTMLFile string `json:"html_file"`
	Size     int    `json:"size"`
}

// PageReport combines a manifest entry with its analysis and token count.
type PageReport struct {
	ManifestEntry
	PageAnalysis
	TokenCount int  `json:"token_count"`
	Eligible   bool `json:"eligible"`
}

// Qualify computes the eligibility flag: static, anomaly-free, and within
// the token budget.
func (r *PageReport) Qualify() {
	r.Eligible = !r.IsDynamic && !r.HasAnomalies &&
		r.TokenCount >= MinPageTokens && r.TokenCount <= MaxPageTokens
}

// SelectBest returns the topN eligible reports ordered by quality score,
// highest first. Ties keep input order so selection is deterministic.
func SelectBest(reports []PageReport, topN int) []PageReport {
	eligible := make([]PageReport, 0, len(reports))
	for _, r := range reports {
		if r.Eligible {
			eligible = append(eligible, r)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].QualityScore > eligible[j].QualityScore
	})

	if topN >= 0 && len(eligible) > topN {
		eligible = eligible[:topN]
	}
	return eligible
}
