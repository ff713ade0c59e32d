package serviceImp

import (
	"fmt"
	"log"
	"strconv"

	"soilsync/entities"
	"soilsync/pkg/catalog"
	"soilsync/pkg/ledger"
	"soilsync/pkg/planner/types"
	"soilsync/pkg/planting/repository"
	svc "soilsync/pkg/planting/service"
)

const propagationLocation = "Propagation house"

type service struct {
	repo repository.PlantingRepository
	cat  catalog.Client
}

func New(r repository.PlantingRepository, cat catalog.Client) svc.PlantingService {
	return &service{repo: r, cat: cat}
}

// Submit builds one record per succession per activity, persists the
// batch, then pushes each record to the backend. A failed push is
// logged and the row stays "pending" for a later retry; persistence
// failures are the only hard error.
func (s *service) Submit(uid string, planID uint, plan *types.Plan, allocations []ledger.Allocation) ([]entities.PlantingLog, error) {
	if plan == nil || len(plan.Successions) == 0 {
		return nil, fmt.Errorf("no plan to submit")
	}

	bedFor := map[int]string{}
	for _, a := range allocations {
		bedFor[a.SuccessionNumber] = a.BedName
	}

	season := strconv.Itoa(plan.WindowStart.Year())
	var logs []entities.PlantingLog
	for _, su := range plan.Successions {
		location := bedFor[su.SuccessionNumber]
		variety := su.VarietyName
		if variety == "" {
			variety = plan.VarietyName
		}

		base := entities.PlantingLog{
			PlanID:           planID,
			UserID:           uid,
			SuccessionNumber: su.SuccessionNumber,
			Season:           season,
			CropName:         plan.CropName,
			VarietyName:      variety,
			Measure:          "count",
			Status:           "pending",
		}

		seeding := base
		seeding.Kind = "seeding"
		seeding.Date = su.SowDate
		seeding.Quantity = f(su.Quantities.SeedingQuantity)
		seeding.Unit = "seeds"
		if su.Method == "transplant" {
			seeding.Location = propagationLocation
		} else {
			seeding.Location = location
		}
		logs = append(logs, seeding)

		if su.TransplantDate != nil {
			tr := base
			tr.Kind = "transplanting"
			tr.Date = *su.TransplantDate
			tr.Quantity = f(su.Quantities.TransplantQuantity)
			tr.Unit = "plants"
			tr.Location = location
			logs = append(logs, tr)
		}

		harvest := base
		harvest.Kind = "harvest"
		harvest.Date = su.HarvestStartDate
		harvest.Quantity = f(su.Quantities.TotalPlants)
		harvest.Unit = "plants"
		harvest.Location = location
		harvest.Notes = fmt.Sprintf("harvest window %s to %s",
			su.HarvestStartDate.Format("2006-01-02"), su.HarvestEndDate.Format("2006-01-02"))
		logs = append(logs, harvest)
	}

	if err := s.repo.BulkInsert(logs); err != nil {
		return nil, err
	}

	for i := range logs {
		rec := catalog.PlantingRecord{
			Season:   logs[i].Season,
			Crop:     logs[i].CropName,
			Variety:  logs[i].VarietyName,
			Kind:     logs[i].Kind,
			Date:     logs[i].Date,
			Location: logs[i].Location,
			Unit:     logs[i].Unit,
			Measure:  logs[i].Measure,
			Notes:    logs[i].Notes,
		}
		if logs[i].Quantity != nil {
			rec.Quantity = *logs[i].Quantity
		}
		if err := s.cat.SubmitPlanting(rec); err != nil {
			log.Printf("[planting] push failed for succession %d %s: %v", logs[i].SuccessionNumber, logs[i].Kind, err)
			continue
		}
		logs[i].Status = "submitted"
		_ = s.repo.PatchStatus(logs[i].LogID, "submitted")
	}
	return logs, nil
}

func f(n int) *float64 {
	v := float64(n)
	return &v
}
