package repositoryImp

import (
	"gorm.io/gorm"

	"soilsync/entities"
	"soilsync/pkg/variety/repository"
)

type varietyRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.VarietyRepository { return &varietyRepo{db} }

func (r *varietyRepo) ReplaceAll(vs []entities.PlantVariety) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entities.PlantVariety{}).Error; err != nil {
			return err
		}
		if len(vs) == 0 {
			return nil
		}
		return tx.Create(&vs).Error
	})
}

func (r *varietyRepo) List() ([]entities.PlantVariety, error) {
	var vs []entities.PlantVariety
	if err := r.db.Order("crop_name ASC, name ASC").Find(&vs).Error; err != nil {
		return nil, err
	}
	return vs, nil
}

func (r *varietyRepo) FindByID(id string) (*entities.PlantVariety, error) {
	var v entities.PlantVariety
	if err := r.db.Where("variety_id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *varietyRepo) FindByName(name string) (*entities.PlantVariety, error) {
	var v entities.PlantVariety
	if err := r.db.Where("name = ?", name).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}
