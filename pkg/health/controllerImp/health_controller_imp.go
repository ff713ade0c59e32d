package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"soilsync/pkg/catalog"
)

var appStart = time.Now()

type HealthCtrl struct {
	db  *gorm.DB
	cat catalog.Client
}

func NewHealthCtrl(db *gorm.DB, cat catalog.Client) *HealthCtrl {
	return &HealthCtrl{db: db, cat: cat}
}

// Health pings the plan database and the variety catalog backend. The
// catalog check is informational only: planning keeps working against
// cached varieties when farmOS is down, so a failed catalog probe does
// not flip the overall status.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbOK := true
	dbErr := ""
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil {
			dbOK = false
			dbErr = "db.DB(): " + err.Error()
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbOK = false
			dbErr = "ping: " + err.Error()
		}
	} else {
		dbOK = false
		dbErr = "gorm db is nil"
	}

	catOK := true
	catErr := ""
	catVarieties := 0
	if h.cat != nil {
		vs, err := h.cat.Varieties()
		if err != nil {
			catOK = false
			catErr = err.Error()
		} else {
			catVarieties = len(vs)
		}
	} else {
		catOK = false
		catErr = "catalog client is nil"
	}

	status := http.StatusOK
	if !dbOK {
		status = http.StatusServiceUnavailable
	}

	type sub struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": dbOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": sub{OK: dbOK, Err: dbErr},
			"catalog":  sub{OK: catOK, Err: catErr},
		},
		"catalog_varieties": catVarieties,
		"time":              time.Now().Format(time.RFC3339),
	}

	return c.JSON(status, resp)
}
