package timing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// LoadFromFiles builds a catalog from the built-in table plus optional
// overrides: a timing CSV and a transplant-window XLSX. File rows take
// priority over built-ins (they are prepended). Either path may be
// empty; a missing override file is not an error for the XLSX, matching
// how optional config sheets are treated elsewhere.
func LoadFromFiles(timingCSV, transplantXLSX string) (*Catalog, error) {
	c := NewCatalog()
	if timingCSV != "" {
		if err := c.loadTimingCSV(timingCSV); err != nil {
			return nil, err
		}
	}
	if transplantXLSX != "" {
		_ = c.loadTransplantXLSX(transplantXLSX)
	}
	return c, nil
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// loadTimingCSV reads rows of crop timing overrides. Headers are
// alias-tolerant: Crop, DaysToHarvest, DaysToTransplant, Method,
// IntervalDays in any common spelling.
func (c *Catalog) loadTimingCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return err
	}

	hmap := map[string]int{}
	for i, h := range head {
		hmap[normHeader(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[normHeader(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cCrop := findAny("Crop", "name", "crop_name")
	cDTH := findAny("DaysToHarvest", "maturity", "maturity_days", "dth")
	cDTT := findAny("DaysToTransplant", "propagation", "propagation_days")
	cMethod := findAny("Method", "planting_method")
	cInt := findAny("IntervalDays", "interval", "succession_interval")

	if cCrop == -1 || cDTH == -1 {
		return fmt.Errorf("timing csv missing required columns, found headers: %v (need at least Crop, DaysToHarvest)", head)
	}

	var added []catalogRow
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		key := strings.ToLower(get(cCrop))
		dth, _ := strconv.Atoi(get(cDTH))
		if key == "" || dth <= 0 {
			continue // skip invalid rows
		}

		t := CropTiming{DaysToHarvest: dth, Method: "direct", IntervalDays: defaultTiming.IntervalDays}
		if v, err := strconv.Atoi(get(cDTT)); err == nil && v > 0 {
			t.DaysToTransplant = days(v)
			t.Method = "transplant"
		}
		if m := strings.ToLower(get(cMethod)); m == "direct" || m == "transplant" {
			t.Method = m
		}
		if v, err := strconv.Atoi(get(cInt)); err == nil && v > 0 {
			t.IntervalDays = v
		}
		added = append(added, catalogRow{Key: key, Timing: t})
	}

	c.rows = append(added, c.rows...)
	return nil
}

// loadTransplantXLSX reads a workbook whose first sheet has rows
// Crop | StartMonth | StartDay | EndMonth | EndDay and attaches the
// window to the matching catalog row (or adds a new one).
func (c *Catalog) loadTransplantXLSX(path string) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	sheet := x.GetSheetName(0)
	rows, err := x.GetRows(sheet)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 || len(row) < 5 {
			continue // header or short row
		}
		key := strings.ToLower(strings.TrimSpace(row[0]))
		sm, _ := strconv.Atoi(strings.TrimSpace(row[1]))
		sd, _ := strconv.Atoi(strings.TrimSpace(row[2]))
		em, _ := strconv.Atoi(strings.TrimSpace(row[3]))
		ed, _ := strconv.Atoi(strings.TrimSpace(row[4]))
		if key == "" || sm < 1 || sm > 12 || em < 1 || em > 12 || sd < 1 || ed < 1 {
			continue
		}
		w := &TransplantWindow{time.Month(sm), sd, time.Month(em), ed}
		found := false
		for j := range c.rows {
			if c.rows[j].Key == key {
				c.rows[j].Timing.TransplantWindow = w
				found = true
			}
		}
		if !found {
			t := defaultTiming
			t.TransplantWindow = w
			c.rows = append(c.rows, catalogRow{Key: key, Timing: t})
		}
	}
	return nil
}
