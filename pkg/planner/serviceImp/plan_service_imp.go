package serviceImp

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"soilsync/entities"
	"soilsync/pkg/advisory"
	"soilsync/pkg/ai"
	"soilsync/pkg/ledger"
	"soilsync/pkg/planner/repository"
	svc "soilsync/pkg/planner/service"
	"soilsync/pkg/planner/types"
	"soilsync/pkg/quantity"
	"soilsync/pkg/scheduler"
	"soilsync/pkg/timing"
)

// harvestBuffer pads the occupation interval when a succession has no
// explicit harvest-window length.
const harvestBufferDays = 14

type guideSource interface {
	Search(query string, k int) ([]entities.GuideChunk, error)
	DocsMeta(ids []uint) (map[uint]entities.GuideDoc, error)
}

// session is one grower's live planning state. The plan and ledger are
// single-owner mutable state; the mutex serializes the HTTP handlers
// that share them.
type session struct {
	mu     sync.Mutex
	plan   *types.Plan
	ledger *ledger.Ledger
	planID uint
}

type PlanSvc struct {
	mu       sync.Mutex
	sessions map[string]*session

	sched   *scheduler.Scheduler
	catalog *timing.Catalog
	llm     ai.Client
	repo    repository.PlanRepository
	guides  guideSource
}

func NewPlanService(sched *scheduler.Scheduler, cat *timing.Catalog, llm ai.Client, repo repository.PlanRepository, guides guideSource) *PlanSvc {
	return &PlanSvc{
		sessions: map[string]*session{},
		sched:    sched,
		catalog:  cat,
		llm:      llm,
		repo:     repo,
		guides:   guides,
	}
}

var _ svc.PlanService = (*PlanSvc)(nil)

func (s *PlanSvc) sessionFor(uid string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ss, ok := s.sessions[uid]; ok {
		return ss
	}
	ss := &session{ledger: ledger.New()}
	s.sessions[uid] = ss
	return ss
}

func (s *PlanSvc) CalculatePlan(uid string, req types.PlanRequest) (*types.Plan, error) {
	// not-ready-yet, the UI simply hasn't filled the form in
	if strings.TrimSpace(req.CropName) == "" || req.WindowStart.IsZero() || req.WindowEnd.IsZero() {
		return nil, nil
	}

	count := s.successionCount(req)
	scheduled := s.sched.Schedule(scheduler.Request{
		CropName:          req.CropName,
		VarietyName:       req.VarietyName,
		WindowStart:       req.WindowStart,
		WindowEnd:         req.WindowEnd,
		Count:             count,
		MaturityDays:      req.MaturityDays,
		HarvestWindowDays: req.HarvestWindowDays,
		Varietals:         req.Varietals,
	})

	g := req.Geometry
	if g.LengthM > 0 && g.WidthM > 0 && g.InRowSpacingCM > 0 && g.BetweenRowSpacingCM > 0 {
		for i := range scheduled {
			scheduled[i].Quantities = quantity.Calculate(g.LengthM, g.WidthM, g.InRowSpacingCM, g.BetweenRowSpacingCM, scheduled[i].Method)
		}
	}

	plan := &types.Plan{
		CropName:    req.CropName,
		VarietyName: req.VarietyName,
		Varietals:   req.Varietals,
		WindowStart: req.WindowStart,
		WindowEnd:   req.WindowEnd,
		Successions: scheduled,
	}

	ss := s.sessionFor(uid)
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.plan = plan
	ss.ledger.Clear()

	version := 1
	if prev, err := s.repo.LatestByUser(uid); err == nil {
		version = prev.Version + 1
	}
	sj, _ := json.Marshal(plan.Successions)
	rec := &entities.PlanRecord{
		UserID:          uid,
		CropName:        plan.CropName,
		VarietyName:     plan.VarietyName,
		WindowStart:     plan.WindowStart,
		WindowEnd:       plan.WindowEnd,
		SuccessionCount: len(plan.Successions),
		Version:         version,
		SuccessionsJSON: string(sj),
	}
	if err := s.repo.Create(rec); err != nil {
		return nil, err
	}
	ss.planID = rec.PlanID
	return plan, nil
}

// successionCount resolves the count: explicit override, varietal
// bed-count sum, or window duration over the succession interval.
func (s *PlanSvc) successionCount(req types.PlanRequest) int {
	if req.SuccessionCount > 0 {
		return req.SuccessionCount
	}
	if len(req.Varietals) > 0 {
		sum := 0
		for _, v := range req.Varietals {
			sum += v.BedCount
		}
		if sum > 0 {
			return sum
		}
	}
	interval := s.catalog.Lookup(req.CropName, req.VarietyName).IntervalDays
	if req.IntervalDays != nil && *req.IntervalDays > 0 {
		interval = *req.IntervalDays
	}
	if interval <= 0 {
		return 1
	}
	days := int(req.WindowEnd.Sub(req.WindowStart).Hours() / 24)
	n := int(math.Ceil(float64(days) / float64(interval)))
	if n < 1 {
		n = 1
	}
	return n
}

func (s *PlanSvc) CurrentPlan(uid string) *types.Plan {
	ss := s.sessionFor(uid)
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.plan
}

func (s *PlanSvc) CurrentPlanID(uid string) uint {
	ss := s.sessionFor(uid)
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.planID
}

func (s *PlanSvc) Allocations(uid string) []ledger.Allocation {
	ss := s.sessionFor(uid)
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.ledger.All()
}

// occupationInterval derives the bed-occupation span of a succession:
// from transplant (or sowing for direct crops) until harvest end.
func occupationInterval(su types.Succession) ledger.Interval {
	start := su.SowDate
	if su.Method == "transplant" && su.TransplantDate != nil {
		start = *su.TransplantDate
	}
	end := su.HarvestEndDate
	if end.IsZero() || !end.After(su.HarvestStartDate) {
		end = su.HarvestStartDate.AddDate(0, 0, harvestBufferDays)
	}
	return ledger.Interval{Start: start, End: end}
}

func (s *PlanSvc) Allocate(uid string, successionNumber int, bedID, bedName string) (ledger.Allocation, error) {
	ss := s.sessionFor(uid)
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.plan == nil {
		return ledger.Allocation{}, fmt.Errorf("no plan calculated")
	}
	var target *types.Succession
	for i := range ss.plan.Successions {
		if ss.plan.Successions[i].SuccessionNumber == successionNumber {
			target = &ss.plan.Successions[i]
			break
		}
	}
	if target == nil {
		return ledger.Allocation{}, fmt.Errorf("succession %d not in plan", successionNumber)
	}
	return ss.ledger.Allocate(bedID, bedName, successionNumber, occupationInterval(*target), target.Method)
}

func (s *PlanSvc) Reallocate(uid string, successionNumber int, newBedID, newBedName string) (ledger.Allocation, error) {
	ss := s.sessionFor(uid)
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.ledger.Reallocate(successionNumber, newBedID, newBedName)
}

func (s *PlanSvc) Deallocate(uid string, successionNumber int) {
	ss := s.sessionFor(uid)
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.ledger.Deallocate(successionNumber)
}

func (s *PlanSvc) ClearAllocations(uid string) {
	ss := s.sessionFor(uid)
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.ledger.Clear()
}

func (s *PlanSvc) ApplyDirectives(uid string, ds []advisory.Directive) []string {
	ss := s.sessionFor(uid)
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.plan == nil {
		return nil
	}
	var applied []string
	for _, d := range ds {
		if !d.AutoApply {
			continue
		}
		switch d.Type {
		case advisory.DirectiveRemove:
			if removeSuccession(ss.plan, d.SuccessionNumber) {
				ss.ledger.Renumber(d.SuccessionNumber)
				applied = append(applied, d.Summary())
			}
		case advisory.DirectiveAdjustTiming:
			if shiftSuccession(ss.plan, d.SuccessionNumber, d.DeltaDays) {
				applied = append(applied, d.Summary())
			}
		}
	}
	return applied
}

// removeSuccession deletes succession n and renumbers the survivors so
// numbers stay contiguous 1..len.
func removeSuccession(p *types.Plan, n int) bool {
	idx := -1
	for i := range p.Successions {
		if p.Successions[i].SuccessionNumber == n {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	p.Successions = append(p.Successions[:idx], p.Successions[idx+1:]...)
	for i := range p.Successions {
		p.Successions[i].SuccessionNumber = i + 1
	}
	return true
}

func shiftSuccession(p *types.Plan, n, deltaDays int) bool {
	for i := range p.Successions {
		su := &p.Successions[i]
		if su.SuccessionNumber != n {
			continue
		}
		su.SowDate = su.SowDate.AddDate(0, 0, deltaDays)
		if su.TransplantDate != nil {
			t := su.TransplantDate.AddDate(0, 0, deltaDays)
			su.TransplantDate = &t
		}
		su.HarvestStartDate = su.HarvestStartDate.AddDate(0, 0, deltaDays)
		su.HarvestEndDate = su.HarvestEndDate.AddDate(0, 0, deltaDays)
		return true
	}
	return false
}

func (s *PlanSvc) Critique(uid string) (*entities.CritiqueLog, []advisory.Directive, error) {
	ss := s.sessionFor(uid)
	ss.mu.Lock()
	plan := ss.plan
	planID := ss.planID
	ss.mu.Unlock()
	if plan == nil {
		return nil, nil, fmt.Errorf("no plan calculated")
	}

	summary := planSummary(plan)

	var guideCtx string
	var refs []entities.ArticleRef
	if s.guides != nil {
		chunks, _ := s.guides.Search(plan.CropName+" succession planting spacing timing", 6)
		ids := make([]uint, 0, len(chunks))
		seen := map[uint]struct{}{}
		for _, ch := range chunks {
			if len(guideCtx) > 6000 {
				break
			}
			guideCtx += "\n---\n" + ch.Text
			if _, ok := seen[ch.DocID]; !ok {
				seen[ch.DocID] = struct{}{}
				ids = append(ids, ch.DocID)
			}
		}
		if meta, err := s.guides.DocsMeta(ids); err == nil {
			for _, id := range ids {
				if d, ok := meta[id]; ok {
					refs = append(refs, entities.ArticleRef{Title: d.Title, URL: d.SourceURL})
				}
			}
		}
	}

	text, err := s.llm.CritiquePlan(summary, guideCtx)
	if err != nil {
		log.Printf("[plan] critique unavailable: %v", err)
		return nil, nil, err
	}

	directives := advisory.Parse(text)
	applied := s.ApplyDirectives(uid, directives)

	cl := &entities.CritiqueLog{
		PlanID:            planID,
		UserID:            uid,
		Critique:          text,
		Applied:           applied,
		SuggestedArticles: refs,
	}
	_ = s.repo.SaveCritique(cl)
	return cl, directives, nil
}

func planSummary(p *types.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Crop: %s", p.CropName)
	if p.VarietyName != "" {
		fmt.Fprintf(&b, " (%s)", p.VarietyName)
	}
	fmt.Fprintf(&b, "\nHarvest window: %s to %s\nSuccessions: %d\n",
		p.WindowStart.Format("2006-01-02"), p.WindowEnd.Format("2006-01-02"), len(p.Successions))
	for _, su := range p.Successions {
		fmt.Fprintf(&b, "#%d sow %s", su.SuccessionNumber, su.SowDate.Format("2006-01-02"))
		if su.TransplantDate != nil {
			fmt.Fprintf(&b, " transplant %s", su.TransplantDate.Format("2006-01-02"))
		}
		fmt.Fprintf(&b, " harvest %s to %s (%s", su.HarvestStartDate.Format("2006-01-02"),
			su.HarvestEndDate.Format("2006-01-02"), su.Method)
		if su.Quantities.TotalPlants > 0 {
			fmt.Fprintf(&b, ", %d plants", su.Quantities.TotalPlants)
		}
		b.WriteString(")\n")
	}
	return b.String()
}

func (s *PlanSvc) HarvestWindow(crop, variety string, year int) *ai.HarvestWindowAdvice {
	if year == 0 {
		year = time.Now().Year()
	}
	if s.llm != nil {
		if adv, err := s.llm.ProposeHarvestWindow(crop, variety, year); err == nil {
			return adv
		} else {
			log.Printf("[plan] harvest-window advice failed for %s/%s: %v", crop, variety, err)
		}
	}
	start, end := s.catalog.FallbackHarvestWindow(crop, year)
	return &ai.HarvestWindowAdvice{
		MaximumStart: start,
		MaximumEnd:   end,
		Notes:        "fallback window",
		Source:       "fallback",
	}
}
