package controller

import "github.com/labstack/echo/v4"

type PlanController interface {
	Calculate(c echo.Context) error
	List(c echo.Context) error
	Current(c echo.Context) error
	Allocate(c echo.Context) error
	Reallocate(c echo.Context) error
	Deallocate(c echo.Context) error
	ClearAllocations(c echo.Context) error
	ExportCSV(c echo.Context) error
	ExportXLSX(c echo.Context) error
	Critique(c echo.Context) error
	Directives(c echo.Context) error
	Submit(c echo.Context) error
	HarvestWindow(c echo.Context) error
}
