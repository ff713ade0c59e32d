package service

import (
	"soilsync/entities"
	"soilsync/pkg/ledger"
	"soilsync/pkg/planner/types"
)

// PlantingService turns a finalized plan into per-succession planting
// records (seeding/transplanting/harvest rows), persists them, and
// pushes them to the farm-management backend.
type PlantingService interface {
	Submit(uid string, planID uint, plan *types.Plan, allocations []ledger.Allocation) ([]entities.PlantingLog, error)
}
