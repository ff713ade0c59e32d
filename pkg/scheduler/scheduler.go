package scheduler

import (
	"log"
	"math"
	"time"

	"soilsync/pkg/planner/types"
	"soilsync/pkg/timing"
)

// longSeasonThreshold splits the two scheduling paths: crops at or above
// this many days to harvest are planned around their transplant window
// rather than backward from the harvest window.
const longSeasonThreshold = 100

const (
	defaultHarvestDaysShort = 30 // per-succession harvest duration, short-season
	defaultHarvestDaysLong  = 60 // variety harvest window, long-season
	defaultPropagationShort = 35 // propagation days when the catalog has none
	defaultPropagationLong  = 21
)

// Request describes one scheduling run. Count must already be resolved
// by the caller (explicit, varietal sum, or interval-derived).
// Varietals, when present, map succession indexes to varieties by
// cumulative bed counts.
type Request struct {
	CropName          string
	VarietyName       string
	WindowStart       time.Time
	WindowEnd         time.Time
	Count             int
	MaturityDays      *int
	HarvestWindowDays *int
	Varietals         []types.VarietalChoice
}

type Scheduler struct {
	catalog *timing.Catalog
}

func New(catalog *timing.Catalog) *Scheduler { return &Scheduler{catalog: catalog} }

// perIndex is the variety context resolved for one succession index.
type perIndex struct {
	varietyName       string
	maturityDays      *int
	harvestWindowDays *int
}

func (r Request) resolve(i int) perIndex {
	if len(r.Varietals) == 0 {
		return perIndex{r.VarietyName, r.MaturityDays, r.HarvestWindowDays}
	}
	cum := 0
	for _, v := range r.Varietals {
		cum += v.BedCount
		if i < cum {
			return perIndex{v.VarietyName, v.MaturityDays, v.HarvestWindowDays}
		}
	}
	last := r.Varietals[len(r.Varietals)-1]
	return perIndex{last.VarietyName, last.MaturityDays, last.HarvestWindowDays}
}

// Schedule produces the ordered succession list (dates only; quantities
// are attached by the orchestrator). Never errors: an over-packed
// window degrades to compressed spacing with a logged warning.
func (s *Scheduler) Schedule(req Request) []types.Succession {
	if req.Count < 1 {
		req.Count = 1
	}
	ct := s.catalog.Lookup(req.CropName, req.VarietyName)

	if ct.DaysToHarvest >= longSeasonThreshold {
		return s.scheduleTransplantWindow(req, ct)
	}
	return s.scheduleBackward(req, ct)
}

// scheduleBackward spaces harvest-start dates evenly across the window
// and back-calculates sowing from maturity, so each succession's
// harvest slightly overlaps the next.
func (s *Scheduler) scheduleBackward(req Request, ct timing.CropTiming) []types.Succession {
	windowDays := daysBetween(req.WindowStart, req.WindowEnd)
	out := make([]types.Succession, 0, req.Count)

	for i := 0; i < req.Count; i++ {
		v := req.resolve(i)

		harvestDays := defaultHarvestDaysShort
		if v.harvestWindowDays != nil && *v.harvestWindowDays > 0 {
			harvestDays = *v.harvestWindowDays
		}
		maturity := ct.DaysToHarvest
		if v.maturityDays != nil && *v.maturityDays > 0 {
			maturity = *v.maturityDays
		}

		spacing := 0
		if req.Count > 1 {
			spacing = (windowDays - harvestDays) / (req.Count - 1)
			if spacing < 0 {
				log.Printf("[sched] degraded: harvest window %dd shorter than per-succession harvest %dd for %q, compressing", windowDays, harvestDays, req.CropName)
				spacing = 0
			}
		}

		harvestStart := req.WindowStart.AddDate(0, 0, i*spacing)
		sow := harvestStart.AddDate(0, 0, -maturity)

		var transplant *time.Time
		if ct.Method == "transplant" {
			prop := defaultPropagationShort
			if ct.DaysToTransplant != nil {
				prop = *ct.DaysToTransplant
			}
			t := sow.AddDate(0, 0, prop)
			transplant = &t
		}

		out = append(out, types.Succession{
			SuccessionNumber: i + 1,
			SowDate:          sow,
			TransplantDate:   transplant,
			HarvestStartDate: harvestStart,
			HarvestEndDate:   harvestStart.AddDate(0, 0, harvestDays),
			Method:           ct.Method,
			VarietyName:      v.varietyName,
		})
	}
	return out
}

// scheduleTransplantWindow plans long-season crops around the narrow
// calendar window in which transplanting is possible: transplant dates
// are spread across that window first and everything else is derived
// from them, with a solstice-relative maturity correction.
func (s *Scheduler) scheduleTransplantWindow(req Request, ct timing.CropTiming) []types.Succession {
	tw := springWindowOrCrop(ct)
	year := req.WindowStart.Year()
	twStart, twEnd := tw.Dates(year)
	plantingDays := daysBetween(twStart, twEnd)

	prop := defaultPropagationLong
	if ct.DaysToTransplant != nil {
		prop = *ct.DaysToTransplant
	}

	out := make([]types.Succession, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		v := req.resolve(i)

		var transplant time.Time
		if req.Count > 1 {
			off := int(math.Round(float64(i) * float64(plantingDays) / float64(req.Count-1)))
			transplant = twStart.AddDate(0, 0, off)
		} else {
			transplant = twStart.AddDate(0, 0, plantingDays/2)
		}

		sow := transplant.AddDate(0, 0, -prop)
		if sow.Before(twStart) {
			// Clamping beats even spacing for this one succession.
			sow = twStart
			transplant = sow.AddDate(0, 0, prop)
			log.Printf("[sched] succession %d: sow date clamped to transplant window start %s", i+1, twStart.Format("2006-01-02"))
		}
		if transplant.After(twEnd) {
			transplant = twEnd
			sow = transplant.AddDate(0, 0, -prop)
			log.Printf("[sched] succession %d: transplant clamped to window end %s", i+1, twEnd.Format("2006-01-02"))
		}

		base := ct.DaysToHarvest
		if v.maturityDays != nil && *v.maturityDays > 0 {
			base = *v.maturityDays
		}
		adjusted := adjustedMaturityDays(base, transplant)

		harvestDays := defaultHarvestDaysLong
		if v.harvestWindowDays != nil && *v.harvestWindowDays > 0 {
			harvestDays = *v.harvestWindowDays
		}

		varietyHarvestStart := transplant.AddDate(0, 0, adjusted)
		varietyHarvestEnd := varietyHarvestStart.AddDate(0, 0, harvestDays)

		spacing := float64(harvestDays) / math.Max(1, float64(req.Count-1))
		harvestStart := varietyHarvestStart.AddDate(0, 0, int(math.Round(float64(i)*spacing)))
		if harvestStart.After(varietyHarvestEnd) {
			harvestStart = varietyHarvestEnd
		}

		t := transplant
		out = append(out, types.Succession{
			SuccessionNumber: i + 1,
			SowDate:          sow,
			TransplantDate:   &t,
			HarvestStartDate: harvestStart,
			HarvestEndDate:   varietyHarvestEnd,
			Method:           "transplant",
			VarietyName:      v.varietyName,
		})
	}
	return out
}

func springWindowOrCrop(ct timing.CropTiming) timing.TransplantWindow {
	if ct.TransplantWindow != nil {
		return *ct.TransplantWindow
	}
	return timing.TransplantWindow{StartMonth: time.March, StartDay: 15, EndMonth: time.May, EndDay: 15}
}

// daysBetween is calendar days from a to b (midnight-normalized inputs
// assumed, as all plan dates are).
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// daysFromSolstice is the signed day count from June 21 of the date's
// year. Northern Hemisphere only; a southern deployment would need a
// December reference.
func daysFromSolstice(d time.Time) int {
	solstice := time.Date(d.Year(), time.June, 21, 0, 0, 0, 0, d.Location())
	return daysBetween(solstice, d)
}

// growthMultiplier scales base maturity by the daylight trend at
// transplant time: before the solstice days are lengthening and growth
// is faster; after it, slower.
func growthMultiplier(fromSolstice int) float64 {
	if fromSolstice <= 0 {
		switch {
		case fromSolstice >= -30:
			return 0.95
		case fromSolstice >= -60:
			return 0.90
		default:
			return 0.85
		}
	}
	switch {
	case fromSolstice <= 30:
		return 1.05
	case fromSolstice <= 60:
		return 1.10
	case fromSolstice <= 90:
		return 1.20
	default:
		return 1.30
	}
}

func adjustedMaturityDays(base int, transplant time.Time) int {
	return int(math.Round(float64(base) * growthMultiplier(daysFromSolstice(transplant))))
}
