package repository

import "soilsync/entities"

type PlanRepository interface {
	Create(p *entities.PlanRecord) error
	LatestByUser(uid string) (*entities.PlanRecord, error)
	ListByUser(uid string) ([]entities.PlanRecord, error)
	SaveCritique(l *entities.CritiqueLog) error
}
