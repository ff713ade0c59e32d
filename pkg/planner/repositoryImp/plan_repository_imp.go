package repositoryImp

import (
	"gorm.io/gorm"

	"soilsync/entities"
	"soilsync/pkg/planner/repository"
)

type planRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlanRepository { return &planRepo{db} }

func (r *planRepo) Create(p *entities.PlanRecord) error { return r.db.Create(p).Error }

func (r *planRepo) LatestByUser(uid string) (*entities.PlanRecord, error) {
	var p entities.PlanRecord
	if err := r.db.Where("user_id = ?", uid).Order("version DESC").First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) ListByUser(uid string) ([]entities.PlanRecord, error) {
	var ps []entities.PlanRecord
	if err := r.db.Where("user_id = ?", uid).Order("version ASC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *planRepo) SaveCritique(l *entities.CritiqueLog) error { return r.db.Create(l).Error }
