package service

import "soilsync/entities"

type GuideService interface {
	IngestGuide(title, crops, text, sourceURL string) (*entities.GuideDoc, int, error)
	Search(query string, k int) ([]entities.GuideChunk, error)
	DocsMeta(ids []uint) (map[uint]entities.GuideDoc, error)
}
