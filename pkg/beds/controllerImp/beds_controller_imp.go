package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"soilsync/pkg/catalog"
)

type BedsCtrl struct{ cat catalog.Client }

func New(cat catalog.Client) *BedsCtrl { return &BedsCtrl{cat} }

// Occupancy proxies the farm backend's bed list plus the plantings
// occupying them over a date range. Defaults to the next 12 months.
func (h *BedsCtrl) Occupancy(c echo.Context) error {
	start := time.Now()
	end := start.AddDate(1, 0, 0)
	if v := c.QueryParam("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			start = t
		}
	}
	if v := c.QueryParam("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end = t
		}
	}
	occ, err := h.cat.BedOccupancy(start, end)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, occ)
}
