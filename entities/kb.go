package entities

import "time"

// GuideDoc is an ingested growing guide (pasted text or a fetched page)
// used as context when the advisory critiques a plan.
type GuideDoc struct {
	DocID     uint      `gorm:"primaryKey" json:"doc_id"`
	Title     string    `json:"title"`
	SourceURL string    `json:"source_url"`
	Crops     string    `json:"crops"` // comma-separated crop names this guide covers
	CreatedAt time.Time
}

type GuideChunk struct {
	ChunkID   uint   `gorm:"primaryKey" json:"chunk_id"`
	DocID     uint   `gorm:"index" json:"doc_id"`
	Ord       int    `json:"ord"`
	Text      string `json:"text"`
	Embedding []byte `json:"-"`
	CreatedAt time.Time
}
