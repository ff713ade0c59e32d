package serviceImp

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilsync/entities"
	"soilsync/pkg/advisory"
	"soilsync/pkg/ai"
	"soilsync/pkg/ledger"
	"soilsync/pkg/planner/types"
	"soilsync/pkg/scheduler"
	"soilsync/pkg/timing"
)

type fakeRepo struct {
	records   []entities.PlanRecord
	critiques []entities.CritiqueLog
}

func (r *fakeRepo) Create(p *entities.PlanRecord) error {
	p.PlanID = uint(len(r.records) + 1)
	r.records = append(r.records, *p)
	return nil
}

func (r *fakeRepo) LatestByUser(uid string) (*entities.PlanRecord, error) {
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == uid {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (r *fakeRepo) ListByUser(uid string) ([]entities.PlanRecord, error) {
	var out []entities.PlanRecord
	for _, rec := range r.records {
		if rec.UserID == uid {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRepo) SaveCritique(l *entities.CritiqueLog) error {
	r.critiques = append(r.critiques, *l)
	return nil
}

type stubLLM struct {
	critique    string
	critiqueErr error
	windowErr   error
}

func (s stubLLM) ProposeHarvestWindow(crop, variety string, year int) (*ai.HarvestWindowAdvice, error) {
	if s.windowErr != nil {
		return nil, s.windowErr
	}
	return &ai.HarvestWindowAdvice{Source: "llm"}, nil
}

func (s stubLLM) CritiquePlan(planSummary, guideCtx string) (string, error) {
	return s.critique, s.critiqueErr
}

func newTestService(llm ai.Client) (*PlanSvc, *fakeRepo) {
	cat := timing.NewCatalog()
	repo := &fakeRepo{}
	return NewPlanService(scheduler.New(cat), cat, llm, repo, nil), repo
}

func date(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC)
}

func lettuceRequest() types.PlanRequest {
	return types.PlanRequest{
		CropName:    "Lettuce",
		VarietyName: "Little Gem",
		WindowStart: date(time.June, 1),
		WindowEnd:   date(time.August, 31),
		Geometry:    types.BedGeometry{LengthM: 11, WidthM: 0.75, InRowSpacingCM: 15, BetweenRowSpacingCM: 20, Method: "direct"},
	}
}

func TestCalculatePlanNotReadyIsSilent(t *testing.T) {
	s, repo := newTestService(ai.NewMock())

	plan, err := s.CalculatePlan("g1", types.PlanRequest{WindowStart: date(time.June, 1), WindowEnd: date(time.July, 1)})
	require.NoError(t, err)
	assert.Nil(t, plan)

	plan, err = s.CalculatePlan("g1", types.PlanRequest{CropName: "Lettuce"})
	require.NoError(t, err)
	assert.Nil(t, plan)

	assert.Empty(t, repo.records)
}

func TestCalculatePlanCountFromInterval(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	req := lettuceRequest()
	req.WindowEnd = date(time.June, 29) // 28 days over the 14-day lettuce interval

	plan, err := s.CalculatePlan("g1", req)
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Len(t, plan.Successions, 2)
}

func TestCalculatePlanExplicitCountWins(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	req := lettuceRequest()
	req.SuccessionCount = 5

	plan, err := s.CalculatePlan("g1", req)
	require.NoError(t, err)
	assert.Len(t, plan.Successions, 5)
}

func TestCalculatePlanVarietalSum(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	req := lettuceRequest()
	req.Varietals = []types.VarietalChoice{
		{VarietyName: "Little Gem", SeasonType: "early", BedCount: 2},
		{VarietyName: "Winter Density", SeasonType: "late", BedCount: 2},
	}

	plan, err := s.CalculatePlan("g1", req)
	require.NoError(t, err)
	require.Len(t, plan.Successions, 4)
	assert.Equal(t, "Winter Density", plan.Successions[3].VarietyName)
}

func TestCalculatePlanAttachesQuantities(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	plan, err := s.CalculatePlan("g1", lettuceRequest())
	require.NoError(t, err)
	for _, su := range plan.Successions {
		assert.Equal(t, 219, su.Quantities.TotalPlants)
		assert.Equal(t, 285, su.Quantities.SeedingQuantity)
	}
}

func TestCalculatePlanSuccessionNumbersContiguous(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	req := lettuceRequest()
	req.SuccessionCount = 4
	plan, err := s.CalculatePlan("g1", req)
	require.NoError(t, err)
	for i, su := range plan.Successions {
		assert.Equal(t, i+1, su.SuccessionNumber)
	}
}

func TestCalculatePlanVersionBump(t *testing.T) {
	s, repo := newTestService(ai.NewMock())
	_, err := s.CalculatePlan("g1", lettuceRequest())
	require.NoError(t, err)
	_, err = s.CalculatePlan("g1", lettuceRequest())
	require.NoError(t, err)

	require.Len(t, repo.records, 2)
	assert.Equal(t, 1, repo.records[0].Version)
	assert.Equal(t, 2, repo.records[1].Version)
}

func TestRecalculateClearsAllocations(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	_, err := s.CalculatePlan("g1", lettuceRequest())
	require.NoError(t, err)
	_, err = s.Allocate("g1", 1, "bed-1", "Bed 1")
	require.NoError(t, err)
	require.Len(t, s.Allocations("g1"), 1)

	_, err = s.CalculatePlan("g1", lettuceRequest())
	require.NoError(t, err)
	assert.Empty(t, s.Allocations("g1"))
}

func TestAllocateConflictSurfaced(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	req := lettuceRequest()
	req.SuccessionCount = 2
	_, err := s.CalculatePlan("g1", req)
	require.NoError(t, err)

	_, err = s.Allocate("g1", 1, "bed-1", "Bed 1")
	require.NoError(t, err)

	// succession 2 overlaps succession 1 on the same bed
	_, err = s.Allocate("g1", 2, "bed-1", "Bed 1")
	var conflict *ledger.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, 1, conflict.Existing.SuccessionNumber)

	// a different bed is fine
	_, err = s.Allocate("g1", 2, "bed-2", "Bed 2")
	assert.NoError(t, err)
}

func TestAllocateUsesSowDateForDirectCrops(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	plan, err := s.CalculatePlan("g1", lettuceRequest())
	require.NoError(t, err)

	a, err := s.Allocate("g1", 1, "bed-1", "Bed 1")
	require.NoError(t, err)
	assert.Equal(t, plan.Successions[0].SowDate, a.OccupationStart)
	assert.Equal(t, plan.Successions[0].HarvestEndDate, a.OccupationEnd)
}

func TestSessionsAreIsolatedPerGrower(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	_, err := s.CalculatePlan("g1", lettuceRequest())
	require.NoError(t, err)
	assert.Nil(t, s.CurrentPlan("g2"))
}

func TestApplyDirectivesRemoveRenumbers(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	req := lettuceRequest()
	req.SuccessionCount = 3
	plan, err := s.CalculatePlan("g1", req)
	require.NoError(t, err)
	thirdSow := plan.Successions[2].SowDate

	_, err = s.Allocate("g1", 3, "bed-3", "Bed 3")
	require.NoError(t, err)

	applied := s.ApplyDirectives("g1", []advisory.Directive{
		{Type: advisory.DirectiveRemove, SuccessionNumber: 2, AutoApply: true},
	})
	require.Equal(t, []string{"remove succession 2"}, applied)

	cur := s.CurrentPlan("g1")
	require.Len(t, cur.Successions, 2)
	assert.Equal(t, 1, cur.Successions[0].SuccessionNumber)
	assert.Equal(t, 2, cur.Successions[1].SuccessionNumber)
	assert.Equal(t, thirdSow, cur.Successions[1].SowDate)

	// the old succession 3's allocation followed the renumbering
	allocs := s.Allocations("g1")
	require.Len(t, allocs, 1)
	assert.Equal(t, 2, allocs[0].SuccessionNumber)
	assert.Equal(t, "bed-3", allocs[0].BedID)
}

func TestApplyDirectivesShift(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	req := lettuceRequest()
	req.SuccessionCount = 2
	plan, err := s.CalculatePlan("g1", req)
	require.NoError(t, err)
	origSow := plan.Successions[1].SowDate
	otherSow := plan.Successions[0].SowDate

	applied := s.ApplyDirectives("g1", []advisory.Directive{
		{Type: advisory.DirectiveAdjustTiming, SuccessionNumber: 2, DeltaDays: 7, AutoApply: true},
	})
	require.Len(t, applied, 1)

	cur := s.CurrentPlan("g1")
	assert.Equal(t, origSow.AddDate(0, 0, 7), cur.Successions[1].SowDate)
	assert.Equal(t, origSow.AddDate(0, 0, 7+50), cur.Successions[1].HarvestStartDate)
	// only the named succession moves
	assert.Equal(t, otherSow, cur.Successions[0].SowDate)
}

func TestApplyDirectivesSkipsNonAuto(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	req := lettuceRequest()
	req.SuccessionCount = 2
	_, err := s.CalculatePlan("g1", req)
	require.NoError(t, err)

	applied := s.ApplyDirectives("g1", []advisory.Directive{
		{Type: advisory.DirectiveAdjustSpacing, Note: "tighter spacing", AutoApply: false},
	})
	assert.Empty(t, applied)
	assert.Len(t, s.CurrentPlan("g1").Successions, 2)
}

func TestCritiqueAutoAppliesParsedDirectives(t *testing.T) {
	s, repo := newTestService(stubLLM{critique: "Too crowded. Remove succession 2."})
	req := lettuceRequest()
	req.SuccessionCount = 3
	_, err := s.CalculatePlan("g1", req)
	require.NoError(t, err)

	cl, directives, err := s.Critique("g1")
	require.NoError(t, err)
	require.Len(t, directives, 1)
	assert.Equal(t, advisory.DirectiveRemove, directives[0].Type)
	assert.Equal(t, []string{"remove succession 2"}, cl.Applied)
	assert.Len(t, s.CurrentPlan("g1").Successions, 2)
	require.Len(t, repo.critiques, 1)
}

func TestCritiqueWithoutPlan(t *testing.T) {
	s, _ := newTestService(ai.NewMock())
	_, _, err := s.Critique("g1")
	assert.Error(t, err)
}

func TestHarvestWindowFallsBack(t *testing.T) {
	s, _ := newTestService(stubLLM{windowErr: errors.New("llm down")})
	adv := s.HarvestWindow("Carrot", "", 2026)
	require.NotNil(t, adv)
	assert.Equal(t, "fallback", adv.Source)
	assert.Equal(t, date(time.May, 1), adv.MaximumStart)
	assert.Equal(t, date(time.December, 31), adv.MaximumEnd)
}
