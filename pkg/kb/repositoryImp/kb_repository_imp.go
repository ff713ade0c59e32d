package repositoryImp

import (
	"gorm.io/gorm"

	"soilsync/entities"
	"soilsync/pkg/kb/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.GuideRepository { return &repo{db} }

func (r *repo) CreateDoc(d *entities.GuideDoc) error { return r.db.Create(d).Error }

func (r *repo) BulkInsertChunks(cs []entities.GuideChunk) error { return r.db.Create(&cs).Error }

func (r *repo) ListDocs() ([]entities.GuideDoc, error) {
	var ds []entities.GuideDoc
	return ds, r.db.Order("doc_id DESC").Find(&ds).Error
}

func (r *repo) AllChunks() ([]entities.GuideChunk, error) {
	var cs []entities.GuideChunk
	return cs, r.db.Find(&cs).Error
}

func (r *repo) DocsByIDs(ids []uint) (map[uint]entities.GuideDoc, error) {
	if len(ids) == 0 {
		return map[uint]entities.GuideDoc{}, nil
	}
	var ds []entities.GuideDoc
	if err := r.db.Where("doc_id IN ?", ids).Find(&ds).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]entities.GuideDoc, len(ds))
	for i := range ds {
		m[ds[i].DocID] = ds[i]
	}
	return m, nil
}
