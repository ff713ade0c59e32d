package timing

import (
	"strings"
	"time"
)

// TransplantWindow is the calendar period a crop can realistically be
// moved from propagation to field. Month/day only; the year comes from
// the harvest window being planned.
type TransplantWindow struct {
	StartMonth time.Month `json:"start_month"`
	StartDay   int        `json:"start_day"`
	EndMonth   time.Month `json:"end_month"`
	EndDay     int        `json:"end_day"`
}

// Dates resolves the window in a concrete year.
func (w TransplantWindow) Dates(year int) (time.Time, time.Time) {
	start := time.Date(year, w.StartMonth, w.StartDay, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, w.EndMonth, w.EndDay, 0, 0, 0, 0, time.UTC)
	return start, end
}

// CropTiming is the agronomic timing profile for one crop (or variety).
type CropTiming struct {
	DaysToHarvest    int               `json:"days_to_harvest"`
	DaysToTransplant *int              `json:"days_to_transplant,omitempty"`
	Method           string            `json:"method"` // direct|transplant
	IntervalDays     int               `json:"interval_days"`
	TransplantWindow *TransplantWindow `json:"transplant_window,omitempty"`
}

type catalogRow struct {
	Key    string
	Timing CropTiming
}

// Catalog maps crop/variety names to timing profiles by case-insensitive
// substring match against a priority-ordered table. Lookups never fail;
// unknown crops get a usable default.
type Catalog struct {
	rows     []catalogRow
	fallback map[string]TransplantWindow // crop key -> fallback harvest window
}

func days(n int) *int { return &n }

var springWindow = TransplantWindow{time.March, 15, time.May, 15}

// defaultTiming is returned when nothing in the table matches.
var defaultTiming = CropTiming{
	DaysToHarvest:    60,
	DaysToTransplant: nil,
	Method:           "direct",
	IntervalDays:     21,
	TransplantWindow: &springWindow,
}

// NewCatalog builds the built-in table. Order matters: the first row
// whose key is a substring of the crop or variety name wins, so more
// specific keys go first.
func NewCatalog() *Catalog {
	w := func(sm time.Month, sd int, em time.Month, ed int) *TransplantWindow {
		return &TransplantWindow{sm, sd, em, ed}
	}
	rows := []catalogRow{
		{"brussels", CropTiming{110, days(35), "transplant", 30, w(time.March, 15, time.May, 15)}},
		{"sprouting broccoli", CropTiming{160, days(35), "transplant", 30, w(time.April, 1, time.June, 1)}},
		{"cauliflower", CropTiming{100, days(35), "transplant", 28, w(time.March, 15, time.May, 31)}},
		{"cabbage", CropTiming{105, days(35), "transplant", 28, w(time.March, 15, time.May, 15)}},
		{"leek", CropTiming{120, days(70), "transplant", 35, w(time.April, 1, time.June, 15)}},
		{"parsnip", CropTiming{120, nil, "direct", 35, nil}},
		{"tomato", CropTiming{120, days(42), "transplant", 35, w(time.April, 15, time.June, 1)}},
		{"squash", CropTiming{110, days(21), "transplant", 30, w(time.April, 15, time.May, 31)}},
		{"pumpkin", CropTiming{110, days(21), "transplant", 30, w(time.April, 15, time.May, 31)}},
		{"broccoli", CropTiming{70, days(35), "transplant", 21, w(time.March, 15, time.June, 15)}},
		{"kale", CropTiming{60, days(35), "transplant", 28, w(time.March, 15, time.June, 30)}},
		{"courgette", CropTiming{55, days(21), "transplant", 30, w(time.April, 15, time.June, 15)}},
		{"zucchini", CropTiming{55, days(21), "transplant", 30, w(time.April, 15, time.June, 15)}},
		{"lettuce", CropTiming{50, nil, "direct", 14, nil}},
		{"salad", CropTiming{40, nil, "direct", 14, nil}},
		{"spinach", CropTiming{45, nil, "direct", 14, nil}},
		{"rocket", CropTiming{35, nil, "direct", 14, nil}},
		{"radish", CropTiming{28, nil, "direct", 10, nil}},
		{"carrot", CropTiming{70, nil, "direct", 21, nil}},
		{"beetroot", CropTiming{55, nil, "direct", 14, nil}},
		{"beet", CropTiming{55, nil, "direct", 14, nil}},
		{"turnip", CropTiming{45, nil, "direct", 14, nil}},
		{"pea", CropTiming{65, nil, "direct", 21, nil}},
		{"bean", CropTiming{60, nil, "direct", 14, nil}},
		{"chard", CropTiming{55, nil, "direct", 28, nil}},
		{"fennel", CropTiming{80, days(28), "transplant", 21, w(time.April, 1, time.July, 15)}},
		{"onion", CropTiming{100, days(56), "transplant", 30, w(time.March, 15, time.May, 1)}},
	}
	return &Catalog{rows: rows, fallback: defaultFallbackWindows()}
}

// Lookup matches cropName/varietyName against the table; the first row
// whose key appears as a substring of either wins. Pure, never errors.
func (c *Catalog) Lookup(cropName, varietyName string) CropTiming {
	crop := strings.ToLower(strings.TrimSpace(cropName))
	variety := strings.ToLower(strings.TrimSpace(varietyName))
	for _, r := range c.rows {
		if strings.Contains(crop, r.Key) || strings.Contains(variety, r.Key) {
			return r.Timing
		}
	}
	return defaultTiming
}

func defaultFallbackWindows() map[string]TransplantWindow {
	return map[string]TransplantWindow{
		"carrot":   {time.May, 1, time.December, 31},
		"lettuce":  {time.March, 1, time.November, 30},
		"brussels": {time.August, 1, time.December, 31},
		"cabbage":  {time.June, 1, time.December, 31},
		"kale":     {time.June, 1, time.December, 31},
		"beetroot": {time.May, 15, time.November, 30},
		"spinach":  {time.April, 1, time.November, 15},
		"radish":   {time.April, 1, time.October, 31},
		"tomato":   {time.July, 1, time.October, 15},
		"bean":     {time.June, 15, time.September, 30},
		"pea":      {time.June, 1, time.August, 31},
	}
}

// FallbackHarvestWindow returns the deterministic harvest window used
// when the advisory is unavailable or unparseable. Consolidated here so
// every caller gets the same defaults.
func (c *Catalog) FallbackHarvestWindow(cropName string, year int) (time.Time, time.Time) {
	crop := strings.ToLower(strings.TrimSpace(cropName))
	for key, w := range c.fallback {
		if strings.Contains(crop, key) {
			return w.Dates(year)
		}
	}
	generic := TransplantWindow{time.April, 1, time.October, 31}
	return generic.Dates(year)
}
