package entities

import "time"

// PlantVariety is a local cache row for a variety fetched from the
// external catalog. The catalog is the source of truth; rows here are
// replaced wholesale on refresh and never edited locally.
type PlantVariety struct {
	VarietyID          string   `gorm:"primaryKey" json:"variety_id"` // catalog UUID
	Name               string   `json:"name" gorm:"index"`
	CropName           string   `json:"crop_name" gorm:"index"`
	PlantTypeID        string   `json:"plant_type_id"`
	SeasonType         string   `json:"season_type"` // early|mid|late
	MaturityDays       *int     `json:"maturity_days"`
	HarvestWindowDays  *int     `json:"harvest_window_days"`
	PropagationDays    *int     `json:"propagation_days"`
	SuccessionInterval *int     `json:"succession_interval"`
	InRowSpacingCM     *float64 `json:"in_row_spacing_cm"`
	BetweenRowSpacingCM *float64 `json:"between_row_spacing_cm"`
	SyncedAt           time.Time `json:"synced_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
