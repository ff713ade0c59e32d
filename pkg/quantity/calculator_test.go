package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilsync/pkg/planner/types"
)

func TestCalculateDirectSown(t *testing.T) {
	q := Calculate(11, 0.75, 15, 20, "direct")

	// 75cm bed minus two 10cm margins leaves 55cm: floor(55/20)+1 rows
	assert.Equal(t, 3, q.NumberOfRows)
	assert.Equal(t, 73, q.PlantsPerRow)
	assert.Equal(t, 219, q.TotalPlants)
	assert.Equal(t, 285, q.SeedingQuantity) // ceil(219 * 1.3)
	assert.Equal(t, 219, q.TransplantQuantity)
	assert.InDelta(t, 8.25, q.BedAreaM2, 0.001)
}

func TestCalculateTransplantBuffer(t *testing.T) {
	q := Calculate(10, 0.75, 25, 30, "transplant")

	require.Equal(t, 2, q.NumberOfRows)
	require.Equal(t, 40, q.PlantsPerRow)
	assert.Equal(t, 80, q.TotalPlants)
	assert.Equal(t, 96, q.SeedingQuantity) // ceil(80 * 1.2)
	assert.Equal(t, 80, q.TransplantQuantity)
}

func TestCalculateUnknownMethodNoOverseed(t *testing.T) {
	q := Calculate(10, 0.75, 25, 30, "")
	assert.Equal(t, q.TotalPlants, q.SeedingQuantity)
}

func TestCalculateDegenerateSpacing(t *testing.T) {
	// between-row spacing wider than the usable bed still yields one row
	q := Calculate(5, 0.5, 200, 100, "direct")
	assert.Equal(t, 1, q.NumberOfRows)
	assert.Equal(t, 2, q.PlantsPerRow)

	// in-row spacing longer than the bed: zero plants, zero seed
	q = Calculate(1, 0.75, 200, 20, "direct")
	assert.Equal(t, 0, q.PlantsPerRow)
	assert.Equal(t, 0, q.TotalPlants)
	assert.Equal(t, 0, q.SeedingQuantity)
}

func TestCalculateDeterministic(t *testing.T) {
	a := Calculate(11, 0.75, 15, 20, "direct")
	b := Calculate(11, 0.75, 15, 20, "direct")
	assert.Equal(t, a, b)
}

func TestForGeometry(t *testing.T) {
	g := types.BedGeometry{LengthM: 11, WidthM: 0.75, InRowSpacingCM: 15, BetweenRowSpacingCM: 20, Method: "direct"}
	assert.Equal(t, Calculate(11, 0.75, 15, 20, "direct"), ForGeometry(g))
}
