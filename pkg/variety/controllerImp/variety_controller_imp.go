package controllerImp

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"soilsync/entities"
	"soilsync/pkg/catalog"
	"soilsync/pkg/variety/repository"
)

type VarietyCtrl struct {
	repo repository.VarietyRepository
	cat  catalog.Client
}

func New(repo repository.VarietyRepository, cat catalog.Client) *VarietyCtrl {
	return &VarietyCtrl{repo: repo, cat: cat}
}

// List serves the local cache; ?refresh=1 re-syncs from the catalog
// first. A failed sync degrades to the stale cache rather than erroring.
func (h *VarietyCtrl) List(c echo.Context) error {
	if c.QueryParam("refresh") == "1" {
		if err := h.refresh(); err != nil {
			log.Printf("[variety] catalog refresh failed, serving cache: %v", err)
		}
	}
	vs, err := h.repo.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, vs)
}

func (h *VarietyCtrl) Get(c echo.Context) error {
	v, err := h.repo.FindByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "variety not found"})
	}
	return c.JSON(http.StatusOK, v)
}

func (h *VarietyCtrl) refresh() error {
	vs, err := h.cat.Varieties()
	if err != nil {
		return err
	}
	now := time.Now()
	rows := make([]entities.PlantVariety, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, entities.PlantVariety{
			VarietyID:           v.ID,
			Name:                v.Name,
			CropName:            v.CropName,
			PlantTypeID:         v.PlantTypeID,
			SeasonType:          v.SeasonType,
			MaturityDays:        v.MaturityDays,
			HarvestWindowDays:   v.HarvestWindowDays,
			PropagationDays:     v.PropagationDays,
			SuccessionInterval:  v.SuccessionInterval,
			InRowSpacingCM:      v.InRowSpacingCM,
			BetweenRowSpacingCM: v.BetweenRowSpacingCM,
			SyncedAt:            now,
		})
	}
	return h.repo.ReplaceAll(rows)
}
