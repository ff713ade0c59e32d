package service

import (
	"soilsync/entities"
	"soilsync/pkg/advisory"
	"soilsync/pkg/ai"
	"soilsync/pkg/ledger"
	"soilsync/pkg/planner/types"
)

// PlanService orchestrates plan calculation, bed allocation, and
// advisory acceptance for one grower session each.
type PlanService interface {
	// CalculatePlan replaces the session plan wholesale and clears its
	// allocations. Returns (nil, nil) when crop or harvest window are
	// missing: a not-ready-yet state, not an error.
	CalculatePlan(uid string, req types.PlanRequest) (*types.Plan, error)

	CurrentPlan(uid string) *types.Plan
	CurrentPlanID(uid string) uint
	Allocations(uid string) []ledger.Allocation

	Allocate(uid string, successionNumber int, bedID, bedName string) (ledger.Allocation, error)
	Reallocate(uid string, successionNumber int, newBedID, newBedName string) (ledger.Allocation, error)
	Deallocate(uid string, successionNumber int)
	ClearAllocations(uid string)

	// ApplyDirectives mutates the session plan with the auto-applicable
	// directives (remove, adjust_timing) and returns one-line summaries
	// of what was applied.
	ApplyDirectives(uid string, ds []advisory.Directive) []string

	Critique(uid string) (*entities.CritiqueLog, []advisory.Directive, error)
	HarvestWindow(crop, variety string, year int) *ai.HarvestWindowAdvice
}
