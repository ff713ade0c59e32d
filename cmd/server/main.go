package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"soilsync/config"
	"soilsync/database"
	"soilsync/router"

	"soilsync/pkg/ai"
	"soilsync/pkg/catalog"
	"soilsync/pkg/scheduler"
	"soilsync/pkg/timing"

	authCtrlImp "soilsync/pkg/auth/controllerImp"
	bedsCtrlImp "soilsync/pkg/beds/controllerImp"
	healthCtrlImp "soilsync/pkg/health/controllerImp"

	kbCtrlImp "soilsync/pkg/kb/controllerImp"
	kbEmbedder "soilsync/pkg/kb/embedder"
	kbRepoImp "soilsync/pkg/kb/repositoryImp"
	kbServiceImp "soilsync/pkg/kb/serviceImp"

	planCtrlImp "soilsync/pkg/planner/controllerImp"
	planRepoImp "soilsync/pkg/planner/repositoryImp"
	planServiceImp "soilsync/pkg/planner/serviceImp"

	plantingCtrlImp "soilsync/pkg/planting/controllerImp"
	plantingRepoImp "soilsync/pkg/planting/repositoryImp"
	plantingServiceImp "soilsync/pkg/planting/serviceImp"

	varietyCtrlImp "soilsync/pkg/variety/controllerImp"
	varietyRepoImp "soilsync/pkg/variety/repositoryImp"
)

func main() {
	cfg := config.Load()

	db := database.OpenSQLite(cfg.DBPath)

	e := echo.New()
	e.Use(echoMiddleware.Recover())

	// crop timing: built-in table, optional file overrides
	timingCat, err := timing.LoadFromFiles(cfg.TimingCSV, cfg.TransplantXLSX)
	if err != nil {
		log.Printf("[timing] override load failed, using built-ins: %v", err)
		timingCat = timing.NewCatalog()
	}
	sched := scheduler.New(timingCat)

	var llm ai.Client
	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	} else {
		llm = ai.NewMock()
	}

	var farm catalog.Client
	if cfg.FarmOSEndpoint != "" {
		farm = catalog.NewFarmOS(cfg.FarmOSEndpoint, cfg.FarmOSToken)
	} else {
		farm = catalog.NewMock()
	}

	var emb *kbEmbedder.Client
	if cfg.EmbEndpoint != "" {
		emb = kbEmbedder.New(cfg.EmbEndpoint, cfg.EmbAPIKey, cfg.EmbModel)
	}
	kbRepo := kbRepoImp.New(db)
	kbSvc := kbServiceImp.New(kbRepo, emb)
	kbCtrl := kbCtrlImp.New(kbSvc)

	planRepo := planRepoImp.New(db)
	planSvc := planServiceImp.NewPlanService(sched, timingCat, llm, planRepo, kbSvc)

	plantingRepo := plantingRepoImp.New(db)
	plantingSvc := plantingServiceImp.New(plantingRepo, farm)
	plantingCtrl := plantingCtrlImp.New(plantingRepo)

	planCtrl := planCtrlImp.NewPlanCtrl(planSvc, planRepo, plantingSvc)

	varietyRepo := varietyRepoImp.New(db)
	varietyCtrl := varietyCtrlImp.New(varietyRepo, farm)

	bedsCtrl := bedsCtrlImp.New(farm)
	authCtrl := authCtrlImp.NewAuthController()
	healthCtrl := healthCtrlImp.NewHealthCtrl(db, farm)

	r := router.New(
		e,
		cfg.RequireAuth,
		planCtrl,
		varietyCtrl,
		bedsCtrl,
		plantingCtrl,
		authCtrl,
		kbCtrl,
		healthCtrl,
	)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
