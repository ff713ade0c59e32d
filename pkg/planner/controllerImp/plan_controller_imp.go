package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"soilsync/pkg/advisory"
	"soilsync/pkg/export"
	"soilsync/pkg/ledger"
	"soilsync/pkg/planner/repository"
	"soilsync/pkg/planner/service"
	"soilsync/pkg/planner/types"
	plantingsvc "soilsync/pkg/planting/service"
)

type PlanCtrl struct {
	svc      service.PlanService
	repo     repository.PlanRepository
	planting plantingsvc.PlantingService
}

func NewPlanCtrl(svc service.PlanService, repo repository.PlanRepository, planting plantingsvc.PlantingService) *PlanCtrl {
	return &PlanCtrl{svc: svc, repo: repo, planting: planting}
}

type calcReq struct {
	CropName          string                 `json:"crop_name"`
	VarietyName       string                 `json:"variety_name"`
	WindowStart       string                 `json:"window_start"`
	WindowEnd         string                 `json:"window_end"`
	SuccessionCount   int                    `json:"succession_count"`
	Geometry          types.BedGeometry      `json:"geometry"`
	Varietals         []types.VarietalChoice `json:"varietals"`
	MaturityDays      *int                   `json:"maturity_days"`
	HarvestWindowDays *int                   `json:"harvest_window_days"`
	IntervalDays      *int                   `json:"interval_days"`
}

func (h *PlanCtrl) Calculate(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req calcReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	ws, _ := time.Parse("2006-01-02", req.WindowStart)
	we, _ := time.Parse("2006-01-02", req.WindowEnd)
	plan, err := h.svc.CalculatePlan(uid, types.PlanRequest{
		CropName:          req.CropName,
		VarietyName:       req.VarietyName,
		WindowStart:       ws,
		WindowEnd:         we,
		SuccessionCount:   req.SuccessionCount,
		Geometry:          req.Geometry,
		Varietals:         req.Varietals,
		MaturityDays:      req.MaturityDays,
		HarvestWindowDays: req.HarvestWindowDays,
		IntervalDays:      req.IntervalDays,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if plan == nil {
		// form not filled in yet, nothing to calculate
		return c.JSON(http.StatusOK, map[string]string{"status": "incomplete", "message": "please select a crop and harvest window first"})
	}
	return c.JSON(http.StatusCreated, map[string]any{"plan": plan, "plan_id": h.svc.CurrentPlanID(uid)})
}

func (h *PlanCtrl) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	out, err := h.repo.ListByUser(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlanCtrl) Current(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	plan := h.svc.CurrentPlan(uid)
	if plan == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no plan calculated"})
	}
	return c.JSON(http.StatusOK, map[string]any{"plan": plan, "allocations": h.svc.Allocations(uid)})
}

type allocReq struct {
	SuccessionNumber int    `json:"succession_number"`
	BedID            string `json:"bed_id"`
	BedName          string `json:"bed_name"`
}

func (h *PlanCtrl) Allocate(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req allocReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	a, err := h.svc.Allocate(uid, req.SuccessionNumber, req.BedID, req.BedName)
	if err != nil {
		return allocError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *PlanCtrl) Reallocate(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	n, _ := strconv.Atoi(c.Param("n"))
	var req allocReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	a, err := h.svc.Reallocate(uid, n, req.BedID, req.BedName)
	if err != nil {
		return allocError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func allocError(c echo.Context, err error) error {
	var conflict *ledger.ConflictError
	if errors.As(err, &conflict) {
		return c.JSON(http.StatusConflict, map[string]any{"error": conflict.Error(), "existing": conflict.Existing})
	}
	return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
}

func (h *PlanCtrl) Deallocate(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	n, _ := strconv.Atoi(c.Param("n"))
	h.svc.Deallocate(uid, n)
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *PlanCtrl) ClearAllocations(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	h.svc.ClearAllocations(uid)
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *PlanCtrl) ExportCSV(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	plan := h.svc.CurrentPlan(uid)
	if plan == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no plan calculated"})
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="plan-%s.csv"`, uuid.NewString()[:8]))
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteCSV(c.Response(), plan)
}

func (h *PlanCtrl) ExportXLSX(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	plan := h.svc.CurrentPlan(uid)
	if plan == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no plan calculated"})
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="plan-%s.xlsx"`, uuid.NewString()[:8]))
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteXLSX(c.Response(), plan, h.svc.Allocations(uid))
}

func (h *PlanCtrl) Critique(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	cl, directives, err := h.svc.Critique(uid)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"critique":   cl,
		"directives": directives,
		"plan":       h.svc.CurrentPlan(uid),
	})
}

func (h *PlanCtrl) Directives(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var body struct {
		Directives []advisory.Directive `json:"directives"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	// explicit user-submitted directives are trusted
	for i := range body.Directives {
		t := body.Directives[i].Type
		body.Directives[i].AutoApply = t == advisory.DirectiveRemove || t == advisory.DirectiveAdjustTiming
	}
	applied := h.svc.ApplyDirectives(uid, body.Directives)
	return c.JSON(http.StatusOK, map[string]any{"applied": applied, "plan": h.svc.CurrentPlan(uid)})
}

func (h *PlanCtrl) Submit(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	plan := h.svc.CurrentPlan(uid)
	if plan == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no plan calculated"})
	}
	logs, err := h.planting.Submit(uid, h.svc.CurrentPlanID(uid), plan, h.svc.Allocations(uid))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"records": logs})
}

func (h *PlanCtrl) HarvestWindow(c echo.Context) error {
	crop := c.QueryParam("crop")
	if crop == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "crop required"})
	}
	year, _ := strconv.Atoi(c.QueryParam("year"))
	adv := h.svc.HarvestWindow(crop, c.QueryParam("variety"), year)
	return c.JSON(http.StatusOK, adv)
}
