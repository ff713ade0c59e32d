package router

import (
	"github.com/labstack/echo/v4"

	"soilsync/pkg/middleware"
)

func New(
	e *echo.Echo,
	requireAuth bool,
	planCtrl interface {
		Calculate(echo.Context) error
		List(echo.Context) error
		Current(echo.Context) error
		Allocate(echo.Context) error
		Reallocate(echo.Context) error
		Deallocate(echo.Context) error
		ClearAllocations(echo.Context) error
		ExportCSV(echo.Context) error
		ExportXLSX(echo.Context) error
		Critique(echo.Context) error
		Directives(echo.Context) error
		Submit(echo.Context) error
		HarvestWindow(echo.Context) error
	},
	varietyCtrl interface {
		List(echo.Context) error
		Get(echo.Context) error
	},
	bedsCtrl interface{ Occupancy(echo.Context) error },
	plantingCtrl interface {
		List(echo.Context) error
		Patch(echo.Context) error
	},
	authCtrl interface {
		DevLogin(echo.Context) error
		WhoAmI(echo.Context) error
	},
	kbCtrl interface {
		IngestText(echo.Context) error
		IngestURL(echo.Context) error
		Search(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(middleware.RequireUID(requireAuth))
	if !requireAuth {
		e.Use(middleware.DevLogin())
	}
	api := e.Group("")

	api.GET("/whoami", authCtrl.WhoAmI)
	api.GET("/devlogin", authCtrl.DevLogin)
	e.GET("/health", healthCtrl.Health)

	api.POST("/plans", planCtrl.Calculate)
	api.GET("/plans", planCtrl.List)
	api.GET("/plans/current", planCtrl.Current)
	api.POST("/plans/allocations", planCtrl.Allocate)
	api.PUT("/plans/allocations/:n", planCtrl.Reallocate)
	api.DELETE("/plans/allocations/:n", planCtrl.Deallocate)
	api.DELETE("/plans/allocations", planCtrl.ClearAllocations)
	api.GET("/plans/export.csv", planCtrl.ExportCSV)
	api.GET("/plans/export.xlsx", planCtrl.ExportXLSX)
	api.POST("/plans/critique", planCtrl.Critique)
	api.POST("/plans/directives", planCtrl.Directives)
	api.POST("/plans/submit", planCtrl.Submit)
	api.GET("/harvest-window", planCtrl.HarvestWindow)

	api.GET("/varieties", varietyCtrl.List)
	api.GET("/varieties/:id", varietyCtrl.Get)

	api.GET("/beds/occupancy", bedsCtrl.Occupancy)

	api.GET("/plantings", plantingCtrl.List)
	api.PATCH("/plantings/:log_id", plantingCtrl.Patch)

	api.POST("/kb/ingest", kbCtrl.IngestText)
	api.POST("/kb/ingest/url", kbCtrl.IngestURL)
	api.GET("/kb/search", kbCtrl.Search)

	return e
}
