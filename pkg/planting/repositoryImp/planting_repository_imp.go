package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"soilsync/entities"
	"soilsync/pkg/planting/repository"
)

type plantingRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlantingRepository { return &plantingRepo{db} }

func (r *plantingRepo) BulkInsert(logs []entities.PlantingLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.Create(&logs).Error
}

func (r *plantingRepo) ListByUser(uid string, from, to string) ([]entities.PlantingLog, error) {
	q := r.db.Where("user_id = ?", uid)
	if t, err := time.Parse("2006-01-02", from); err == nil {
		q = q.Where("date >= ?", t)
	}
	if t, err := time.Parse("2006-01-02", to); err == nil {
		q = q.Where("date <= ?", t)
	}
	var out []entities.PlantingLog
	if err := q.Order("date ASC, succession_number ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *plantingRepo) ListByPlan(planID uint) ([]entities.PlantingLog, error) {
	var out []entities.PlantingLog
	if err := r.db.Where("plan_id = ?", planID).Order("succession_number ASC, date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *plantingRepo) PatchStatus(logID uint, status string) error {
	return r.db.Model(&entities.PlantingLog{}).Where("log_id = ?", logID).Update("status", status).Error
}
