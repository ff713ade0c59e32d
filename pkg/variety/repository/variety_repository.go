package repository

import "soilsync/entities"

type VarietyRepository interface {
	ReplaceAll(vs []entities.PlantVariety) error
	List() ([]entities.PlantVariety, error)
	FindByID(id string) (*entities.PlantVariety, error)
	FindByName(name string) (*entities.PlantVariety, error)
}
