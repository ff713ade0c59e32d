// pkg/catalog/mock_client.go

package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// mockCatalog serves a small fixed farm so the planner runs without a
// farmOS instance. IDs are stable for one process lifetime.
type mockCatalog struct {
	varieties []Variety
	beds      []Bed
	submitted []PlantingRecord
}

func NewMock() Client {
	iv := func(n int) *int { return &n }
	fv := func(f float64) *float64 { return &f }
	m := &mockCatalog{
		varieties: []Variety{
			{ID: uuid.NewString(), Name: "Nantes 2", CropName: "Carrot", SeasonType: "mid", MaturityDays: iv(68), HarvestWindowDays: iv(28), SuccessionInterval: iv(21), InRowSpacingCM: fv(5), BetweenRowSpacingCM: fv(25)},
			{ID: uuid.NewString(), Name: "Little Gem", CropName: "Lettuce", SeasonType: "early", MaturityDays: iv(50), HarvestWindowDays: iv(14), SuccessionInterval: iv(14), InRowSpacingCM: fv(20), BetweenRowSpacingCM: fv(25)},
			{ID: uuid.NewString(), Name: "Lollo Rossa", CropName: "Lettuce", SeasonType: "mid", MaturityDays: iv(55), HarvestWindowDays: iv(21), SuccessionInterval: iv(14), InRowSpacingCM: fv(25), BetweenRowSpacingCM: fv(30)},
			{ID: uuid.NewString(), Name: "Winter Density", CropName: "Lettuce", SeasonType: "late", MaturityDays: iv(60), HarvestWindowDays: iv(28), SuccessionInterval: iv(14), InRowSpacingCM: fv(25), BetweenRowSpacingCM: fv(30)},
			{ID: uuid.NewString(), Name: "Doric", CropName: "Brussels Sprouts", SeasonType: "late", MaturityDays: iv(115), HarvestWindowDays: iv(60), PropagationDays: iv(35), InRowSpacingCM: fv(50), BetweenRowSpacingCM: fv(60)},
		},
	}
	for block := 1; block <= 2; block++ {
		for bed := 1; bed <= 6; bed++ {
			m.beds = append(m.beds, Bed{
				ID:    uuid.NewString(),
				Name:  fmt.Sprintf("Block %d / Bed %d", block, bed),
				Block: fmt.Sprintf("Block %d", block),
			})
		}
	}
	return m
}

func (m *mockCatalog) Varieties() ([]Variety, error) { return m.varieties, nil }

func (m *mockCatalog) VarietyByID(id string) (*Variety, error) {
	for i := range m.varieties {
		if m.varieties[i].ID == id {
			return &m.varieties[i], nil
		}
	}
	return nil, fmt.Errorf("variety %s not found", id)
}

func (m *mockCatalog) BedOccupancy(start, end time.Time) (*Occupancy, error) {
	// Mock farm has no pre-existing plantings; every bed is free.
	return &Occupancy{Beds: m.beds, Plantings: []Planting{}}, nil
}

func (m *mockCatalog) SubmitPlanting(rec PlantingRecord) error {
	m.submitted = append(m.submitted, rec)
	return nil
}
