// pkg/catalog/client.go

package catalog

import "time"

// Variety is a read-only record from the external taxonomy catalog.
// Optional agronomic attributes are pointers; nil means the catalog has
// no value and the crop timing defaults apply.
type Variety struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	CropName            string   `json:"crop_name"`
	PlantTypeID         string   `json:"plant_type_id"`
	SeasonType          string   `json:"season_type,omitempty"` // early|mid|late
	MaturityDays        *int     `json:"maturity_days,omitempty"`
	HarvestWindowDays   *int     `json:"harvest_window_days,omitempty"`
	PropagationDays     *int     `json:"propagation_days,omitempty"`
	SuccessionInterval  *int     `json:"succession_interval,omitempty"`
	InRowSpacingCM      *float64 `json:"in_row_spacing_cm,omitempty"`
	BetweenRowSpacingCM *float64 `json:"between_row_spacing_cm,omitempty"`
}

type Bed struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Block string `json:"block"`
}

type Planting struct {
	BedID          string     `json:"bed_id"`
	Crop           string     `json:"crop"`
	Variety        string     `json:"variety"`
	SeedingDate    *time.Time `json:"seeding_date,omitempty"`
	TransplantDate *time.Time `json:"transplant_date,omitempty"`
	HarvestDate    *time.Time `json:"harvest_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	IsDirectSeeded bool       `json:"is_direct_seeded"`
	Notes          string     `json:"notes,omitempty"`
}

// Occupancy is the farm's current bed bookings within a date range, as
// reported by the farm-management backend.
type Occupancy struct {
	Beds      []Bed      `json:"beds"`
	Plantings []Planting `json:"plantings"`
}

// PlantingRecord is one finalized activity row pushed to the backend on
// plan submission.
type PlantingRecord struct {
	Season   string    `json:"season"`
	Crop     string    `json:"crop"`
	Variety  string    `json:"variety"`
	Kind     string    `json:"kind"` // seeding|transplanting|harvest
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
	Measure  string    `json:"measure"`
	Notes    string    `json:"notes,omitempty"`
}

type Client interface {
	Varieties() ([]Variety, error)
	VarietyByID(id string) (*Variety, error)
	BedOccupancy(start, end time.Time) (*Occupancy, error)
	SubmitPlanting(rec PlantingRecord) error
}
