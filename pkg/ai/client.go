// pkg/ai/client.go

package ai

import "time"

// HarvestWindowAdvice is the advisory's proposal for the widest
// realistic harvest window of a crop/variety in a planning year.
type HarvestWindowAdvice struct {
	MaximumStart   time.Time `json:"maximum_start"`
	MaximumEnd     time.Time `json:"maximum_end"`
	DaysToHarvest  int       `json:"days_to_harvest,omitempty"`
	YieldPeak      string    `json:"yield_peak,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	ExtendedWindow bool      `json:"extended_window,omitempty"`
	Source         string    `json:"source"` // llm|fallback|mock
}

type Client interface {
	// ProposeHarvestWindow asks the model for a harvest window. Errors
	// (or unusable replies) are expected; callers substitute the
	// deterministic crop fallback and keep going.
	ProposeHarvestWindow(crop, variety string, year int) (*HarvestWindowAdvice, error)

	// CritiquePlan returns free-text feedback on a plan summary,
	// optionally grounded in growing-guide context.
	CritiquePlan(planSummary, guideCtx string) (string, error)
}
