package repository

import "soilsync/entities"

type PlantingRepository interface {
	BulkInsert(logs []entities.PlantingLog) error
	ListByUser(uid string, from, to string) ([]entities.PlantingLog, error)
	ListByPlan(planID uint) ([]entities.PlantingLog, error)
	PatchStatus(logID uint, status string) error
}
