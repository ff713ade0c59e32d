package quantity

import (
	"math"

	"soilsync/pkg/planner/types"
)

// marginCM is the fixed minimum cultivation margin kept clear on each
// side of the bed.
const marginCM = 10.0

const (
	directOverseed     = 1.3 // germination loss buffer for direct sowing
	transplantOverseed = 1.2 // tray loss buffer for module sowing
)

// Calculate derives plant and seed quantities from bed geometry. Pure:
// identical inputs always yield identical quantities.
//
// Rows are clamped to a minimum of 1 even when the between-row spacing
// exceeds the usable width. PlantsPerRow may legitimately be 0 for
// degenerate spacing; callers should guard against zero-quantity plans.
func Calculate(lengthM, widthM, inRowCM, betweenRowCM float64, method string) types.Quantities {
	lengthCM := lengthM * 100
	widthCM := widthM * 100

	availableWidth := widthCM - 2*marginCM

	rows := 1
	if betweenRowCM > 0 {
		rows = int(math.Floor(availableWidth/betweenRowCM)) + 1
		if rows < 1 {
			rows = 1
		}
	}

	plantsPerRow := 0
	if inRowCM > 0 {
		plantsPerRow = int(math.Floor(lengthCM / inRowCM))
		if plantsPerRow < 0 {
			plantsPerRow = 0
		}
	}

	total := rows * plantsPerRow

	seeding := total
	switch method {
	case "direct":
		seeding = int(math.Ceil(float64(total) * directOverseed))
	case "transplant":
		seeding = int(math.Ceil(float64(total) * transplantOverseed))
	}

	return types.Quantities{
		NumberOfRows:       rows,
		PlantsPerRow:       plantsPerRow,
		TotalPlants:        total,
		SeedingQuantity:    seeding,
		TransplantQuantity: total,
		BedAreaM2:          math.Round(lengthM*widthM*100) / 100,
	}
}

// ForGeometry is a convenience wrapper over Calculate for a BedGeometry
// value.
func ForGeometry(g types.BedGeometry) types.Quantities {
	return Calculate(g.LengthM, g.WidthM, g.InRowSpacingCM, g.BetweenRowSpacingCM, g.Method)
}
