package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"soilsync/pkg/planting/repository"
)

type PlantingCtrl struct{ repo repository.PlantingRepository }

func New(repo repository.PlantingRepository) *PlantingCtrl { return &PlantingCtrl{repo} }

func (h *PlantingCtrl) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	out, err := h.repo.ListByUser(uid, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlantingCtrl) Patch(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("log_id"))
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if body.Status == "" {
		body.Status = "confirmed"
	}
	if err := h.repo.PatchStatus(uint(id), body.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
