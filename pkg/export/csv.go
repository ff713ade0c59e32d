package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"soilsync/pkg/planner/types"
)

const dateLayout = "2006-01-02"

var csvHeader = []string{"Succession", "Crop", "Variety", "Sowing Date", "Transplant Date", "Harvest Date", "Method"}

// WriteCSV renders a plan as one row per succession. The transplant
// column is empty for direct-sown successions.
func WriteCSV(w io.Writer, plan *types.Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, su := range plan.Successions {
		variety := su.VarietyName
		if variety == "" {
			variety = plan.VarietyName
		}
		row := []string{
			strconv.Itoa(su.SuccessionNumber),
			plan.CropName,
			variety,
			su.SowDate.Format(dateLayout),
			formatOptional(su.TransplantDate),
			su.HarvestStartDate.Format(dateLayout),
			su.Method,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
