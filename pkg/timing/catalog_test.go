package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupMatchesCropSubstring(t *testing.T) {
	c := NewCatalog()

	ct := c.Lookup("Brussels Sprouts", "Doric")
	assert.Equal(t, 110, ct.DaysToHarvest)
	assert.Equal(t, "transplant", ct.Method)
	require.NotNil(t, ct.DaysToTransplant)
	assert.Equal(t, 35, *ct.DaysToTransplant)
	require.NotNil(t, ct.TransplantWindow)
	assert.Equal(t, time.March, ct.TransplantWindow.StartMonth)
}

func TestLookupCaseInsensitive(t *testing.T) {
	c := NewCatalog()
	ct := c.Lookup("LETTUCE", "")
	assert.Equal(t, 50, ct.DaysToHarvest)
	assert.Equal(t, "direct", ct.Method)
	assert.Equal(t, 14, ct.IntervalDays)
}

func TestLookupMatchesVarietyName(t *testing.T) {
	c := NewCatalog()
	ct := c.Lookup("", "Autumn King carrot")
	assert.Equal(t, 70, ct.DaysToHarvest)
}

func TestLookupPriorityOrder(t *testing.T) {
	c := NewCatalog()
	// "purple sprouting broccoli" contains both "sprouting broccoli" and
	// "broccoli"; the more specific row is listed first and must win
	ct := c.Lookup("Purple Sprouting Broccoli", "")
	assert.Equal(t, 160, ct.DaysToHarvest)
}

func TestLookupDefault(t *testing.T) {
	c := NewCatalog()
	ct := c.Lookup("salsify", "")
	assert.Equal(t, 60, ct.DaysToHarvest)
	assert.Equal(t, "direct", ct.Method)
	assert.Equal(t, 21, ct.IntervalDays)
	assert.Nil(t, ct.DaysToTransplant)
}

func TestTransplantWindowDates(t *testing.T) {
	w := TransplantWindow{time.March, 15, time.May, 15}
	start, end := w.Dates(2026)
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.May, 15, 0, 0, 0, 0, time.UTC), end)
}

func TestFallbackHarvestWindow(t *testing.T) {
	c := NewCatalog()

	start, end := c.FallbackHarvestWindow("Carrot", 2026)
	assert.Equal(t, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), end)

	start, end = c.FallbackHarvestWindow("salsify", 2026)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC), end)
}
