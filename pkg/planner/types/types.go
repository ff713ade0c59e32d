package types

import "time"

// Quantities are derived from bed geometry; recomputed whenever the
// geometry changes and never persisted apart from their succession.
type Quantities struct {
	NumberOfRows       int     `json:"number_of_rows"`
	PlantsPerRow       int     `json:"plants_per_row"`
	TotalPlants        int     `json:"total_plants"`
	SeedingQuantity    int     `json:"seeding_quantity"`
	TransplantQuantity int     `json:"transplant_quantity"`
	BedAreaM2          float64 `json:"bed_area_m2"`
}

type BedGeometry struct {
	LengthM             float64 `json:"length_m"`
	WidthM              float64 `json:"width_m"`
	InRowSpacingCM      float64 `json:"in_row_spacing_cm"`
	BetweenRowSpacingCM float64 `json:"between_row_spacing_cm"`
	Method              string  `json:"method"` // direct|transplant
}

// Succession is one discrete planting batch inside a staggered plan.
type Succession struct {
	SuccessionNumber int        `json:"succession_number"` // 1-based, contiguous
	SowDate          time.Time  `json:"sow_date"`
	TransplantDate   *time.Time `json:"transplant_date,omitempty"`
	HarvestStartDate time.Time  `json:"harvest_start_date"`
	HarvestEndDate   time.Time  `json:"harvest_end_date"`
	Method           string     `json:"method"`
	VarietyName      string     `json:"variety_name"`
	Quantities       Quantities `json:"quantities"`
}

// VarietalChoice selects one variety of an early/mid/late set, with the
// number of beds (successions) it should cover and its agronomic
// overrides from the catalog record.
type VarietalChoice struct {
	VarietyName       string `json:"variety_name"`
	SeasonType        string `json:"season_type"` // early|mid|late
	BedCount          int    `json:"bed_count"`
	MaturityDays      *int   `json:"maturity_days,omitempty"`
	HarvestWindowDays *int   `json:"harvest_window_days,omitempty"`
}

type Plan struct {
	CropName    string           `json:"crop_name"`
	VarietyName string           `json:"variety_name"`
	Varietals   []VarietalChoice `json:"varietals,omitempty"`
	WindowStart time.Time        `json:"window_start"`
	WindowEnd   time.Time        `json:"window_end"`
	Successions []Succession     `json:"successions"`
}

// PlanRequest carries the user inputs for a plan calculation. Optional
// overrides come from the selected catalog variety; zero/nil means
// "use the crop timing defaults".
type PlanRequest struct {
	CropName          string           `json:"crop_name"`
	VarietyName       string           `json:"variety_name"`
	WindowStart       time.Time        `json:"window_start"`
	WindowEnd         time.Time        `json:"window_end"`
	SuccessionCount   int              `json:"succession_count"` // 0 = derive from interval
	Geometry          BedGeometry      `json:"geometry"`
	Varietals         []VarietalChoice `json:"varietals,omitempty"`
	MaturityDays      *int             `json:"maturity_days,omitempty"`
	HarvestWindowDays *int             `json:"harvest_window_days,omitempty"`
	IntervalDays      *int             `json:"interval_days,omitempty"`
}
