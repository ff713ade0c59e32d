package entities

import "time"

// PlanRecord is a persisted snapshot of a calculated succession plan.
// The live plan is held in the planning session; every recalculation
// writes a new version here, like an audit trail.
type PlanRecord struct {
	PlanID          uint      `gorm:"primaryKey" json:"plan_id"`
	UserID          string    `json:"user_id" gorm:"index"`
	CropName        string    `json:"crop_name"`
	VarietyName     string    `json:"variety_name"`
	WindowStart     time.Time `json:"window_start"`
	WindowEnd       time.Time `json:"window_end"`
	SuccessionCount int       `json:"succession_count"`
	Version         int       `json:"version"`
	SuccessionsJSON string    `json:"successions_json"`
	CreatedAt       time.Time
}

type CritiqueLog struct {
	ID       uint   `gorm:"primaryKey"`
	PlanID   uint   `gorm:"index"`
	UserID   string `gorm:"index"`
	Critique string
	// Applied holds short summaries of the directives auto-applied from
	// this critique (remove/shift only; spacing and companion advice is
	// surfaced but never applied).
	Applied   []string `gorm:"serializer:json" json:"applied,omitempty"`
	CreatedAt time.Time

	// Not persisted: guide articles that informed the critique.
	SuggestedArticles []ArticleRef `gorm:"-" json:"suggested_articles,omitempty"`
}

type ArticleRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
