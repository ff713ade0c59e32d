package serviceImp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilsync/entities"
	"soilsync/pkg/catalog"
	"soilsync/pkg/ledger"
	"soilsync/pkg/planner/types"
)

type fakeRepo struct {
	inserted []entities.PlantingLog
	statuses map[uint]string
}

func (r *fakeRepo) BulkInsert(logs []entities.PlantingLog) error {
	for i := range logs {
		logs[i].LogID = uint(len(r.inserted) + i + 1)
	}
	r.inserted = append(r.inserted, logs...)
	return nil
}

func (r *fakeRepo) ListByUser(uid, from, to string) ([]entities.PlantingLog, error) {
	return r.inserted, nil
}

func (r *fakeRepo) ListByPlan(planID uint) ([]entities.PlantingLog, error) {
	return r.inserted, nil
}

func (r *fakeRepo) PatchStatus(logID uint, status string) error {
	if r.statuses == nil {
		r.statuses = map[uint]string{}
	}
	r.statuses[logID] = status
	return nil
}

func date(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC)
}

func submitPlan() *types.Plan {
	tp := date(time.April, 19)
	return &types.Plan{
		CropName:    "Lettuce",
		VarietyName: "Little Gem",
		WindowStart: date(time.June, 1),
		WindowEnd:   date(time.August, 31),
		Successions: []types.Succession{
			{
				SuccessionNumber: 1,
				SowDate:          date(time.April, 12),
				HarvestStartDate: date(time.June, 1),
				HarvestEndDate:   date(time.July, 1),
				Method:           "direct",
				Quantities:       types.Quantities{TotalPlants: 219, SeedingQuantity: 285, TransplantQuantity: 219},
			},
			{
				SuccessionNumber: 2,
				SowDate:          date(time.March, 15),
				TransplantDate:   &tp,
				HarvestStartDate: date(time.June, 16),
				HarvestEndDate:   date(time.July, 16),
				Method:           "transplant",
				Quantities:       types.Quantities{TotalPlants: 80, SeedingQuantity: 96, TransplantQuantity: 80},
			},
		},
	}
}

func TestSubmitBuildsActivityRows(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, catalog.NewMock())

	allocs := []ledger.Allocation{
		{BedID: "b1", BedName: "Block 1 / Bed 1", SuccessionNumber: 1},
		{BedID: "b2", BedName: "Block 1 / Bed 2", SuccessionNumber: 2},
	}
	logs, err := svc.Submit("g1", 7, submitPlan(), allocs)
	require.NoError(t, err)

	// direct succession: seeding + harvest; transplant adds a third row
	require.Len(t, logs, 5)

	seeding := logs[0]
	assert.Equal(t, "seeding", seeding.Kind)
	assert.Equal(t, uint(7), seeding.PlanID)
	assert.Equal(t, "2026", seeding.Season)
	assert.Equal(t, "Block 1 / Bed 1", seeding.Location)
	require.NotNil(t, seeding.Quantity)
	assert.Equal(t, float64(285), *seeding.Quantity)
	assert.Equal(t, "seeds", seeding.Unit)

	harvest := logs[1]
	assert.Equal(t, "harvest", harvest.Kind)
	assert.Contains(t, harvest.Notes, "2026-06-01 to 2026-07-01")

	// transplant succession sows into the propagation house, not the bed
	traySow := logs[2]
	assert.Equal(t, "seeding", traySow.Kind)
	assert.Equal(t, "Propagation house", traySow.Location)

	tr := logs[3]
	assert.Equal(t, "transplanting", tr.Kind)
	assert.Equal(t, "Block 1 / Bed 2", tr.Location)
	require.NotNil(t, tr.Quantity)
	assert.Equal(t, float64(80), *tr.Quantity)
	assert.Equal(t, "plants", tr.Unit)

	// mock backend accepts every record, so all rows end up submitted
	for _, lg := range logs {
		assert.Equal(t, "submitted", lg.Status)
	}
	assert.Len(t, repo.statuses, 5)
}

func TestSubmitEmptyPlanRejected(t *testing.T) {
	svc := New(&fakeRepo{}, catalog.NewMock())
	_, err := svc.Submit("g1", 1, nil, nil)
	assert.Error(t, err)
	_, err = svc.Submit("g1", 1, &types.Plan{}, nil)
	assert.Error(t, err)
}
