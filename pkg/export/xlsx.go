package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"soilsync/pkg/ledger"
	"soilsync/pkg/planner/types"
)

// WriteXLSX renders the plan as a workbook with a Successions sheet
// and, when bed allocations exist, an Allocations sheet.
func WriteXLSX(w io.Writer, plan *types.Plan, allocations []ledger.Allocation) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Successions"
	f.SetSheetName("Sheet1", sheet)

	head := []any{"Succession", "Crop", "Variety", "Sowing Date", "Transplant Date", "Harvest Start", "Harvest End", "Method", "Total Plants", "Seeding Qty"}
	for i, h := range head {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for r, su := range plan.Successions {
		variety := su.VarietyName
		if variety == "" {
			variety = plan.VarietyName
		}
		row := []any{
			su.SuccessionNumber,
			plan.CropName,
			variety,
			su.SowDate.Format(dateLayout),
			formatOptional(su.TransplantDate),
			su.HarvestStartDate.Format(dateLayout),
			su.HarvestEndDate.Format(dateLayout),
			su.Method,
			su.Quantities.TotalPlants,
			su.Quantities.SeedingQuantity,
		}
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	_ = f.SetColWidth(sheet, "A", "J", 16)

	if len(allocations) > 0 {
		const alloc = "Allocations"
		_, err := f.NewSheet(alloc)
		if err == nil {
			for i, h := range []any{"Succession", "Bed", "Occupied From", "Occupied To"} {
				cell, _ := excelize.CoordinatesToCellName(i+1, 1)
				_ = f.SetCellValue(alloc, cell, h)
			}
			for r, a := range allocations {
				row := []any{
					a.SuccessionNumber,
					a.BedName,
					a.OccupationStart.Format(dateLayout),
					a.OccupationEnd.Format(dateLayout),
				}
				for c, v := range row {
					cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
					_ = f.SetCellValue(alloc, cell, v)
				}
			}
			_ = f.SetColWidth(alloc, "A", "D", 18)
		}
	}

	return f.Write(w)
}
