package entities

import "time"

// PlantingLog is one finalized planting record row produced when a plan
// is submitted: one row per succession per activity kind
// (seeding|transplanting|harvest), mirroring the shape the persistence
// backend expects.
type PlantingLog struct {
	LogID            uint      `gorm:"primaryKey" json:"log_id"`
	PlanID           uint      `gorm:"index" json:"plan_id"`
	UserID           string    `gorm:"index" json:"user_id"`
	SuccessionNumber int       `json:"succession_number"`
	Season           string    `json:"season"`
	CropName         string    `json:"crop_name"`
	VarietyName      string    `json:"variety_name"`
	Kind             string    `json:"kind"` // seeding|transplanting|harvest
	Date             time.Time `json:"date"`
	Location         string    `json:"location"` // bed name, or propagation house for tray sowing
	Quantity         *float64  `json:"quantity"`
	Unit             string    `json:"unit"`    // seeds|plants|trays
	Measure          string    `json:"measure"` // count|weight
	Notes            string    `json:"notes"`
	Status           string    `json:"status" gorm:"index"` // pending|submitted|confirmed
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
