package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"agriyield/config"
	"agriyield/database"
	"agriyield/router"

	analysisCtrlImp "agriyield/pkg/analysis/controllerImp"
	analysisRepoImp "agriyield/pkg/analysis/repositoryImp"
	analysisSvcImp "agriyield/pkg/analysis/serviceImp"
	auditSvcImp "agriyield/pkg/audit/serviceImp"
	authCtrlImp "agriyield/pkg/auth/controllerImp"
	authRepoImp "agriyield/pkg/auth/repositoryImp"
	healthCtrlImp "agriyield/pkg/health/controllerImp"
	masterCtrlImp "agriyield/pkg/master/controllerImp"
	masterRepoImp "agriyield/pkg/master/repositoryImp"
	reportCtrlImp "agriyield/pkg/report/controllerImp"
	reportRepoImp "agriyield/pkg/report/repositoryImp"
	"agriyield/pkg/session"
	userCtrlImp "agriyield/pkg/user/controllerImp"
	userRepoImp "agriyield/pkg/user/repositoryImp"
	yieldCtrlImp "agriyield/pkg/yield/controllerImp"
	yieldRepoImp "agriyield/pkg/yield/repositoryImp"
	yieldSvcImp "agriyield/pkg/yield/serviceImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate + seed
	db := database.OpenSQLite(cfg.DBPath)
	if err := database.Seed(db, cfg.SeedDefaultUsers); err != nil {
		log.Fatalf("seed: %v", err)
	}

	// 3) Sessions
	sessions := session.NewManager(db, cfg.SessionCookie, cfg.SessionTTL)

	// 4) Repos
	users := authRepoImp.New(db)
	masters := masterRepoImp.New(db)
	yields := yieldRepoImp.New(db)
	analyses := analysisRepoImp.New(db)
	reports := reportRepoImp.New(db)
	adminUsers := userRepoImp.New(db)

	// 5) Services
	audit := auditSvcImp.New(db)
	yieldSvc := yieldSvcImp.New(yields, masters, audit)
	analysisSvc := analysisSvcImp.New(analyses)

	// 6) Controllers
	authCtrl := authCtrlImp.New(users, sessions)
	analysisCtrl := analysisCtrlImp.New(analysisSvc, sessions)
	yieldCtrl := yieldCtrlImp.New(yieldSvc, sessions)
	reportCtrl := reportCtrlImp.New(reports, masters, sessions)
	masterCtrl := masterCtrlImp.New(masters, audit, sessions)
	adminCtrl := userCtrlImp.New(adminUsers, audit, sessions)
	healthCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 7) Echo + routes
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	router.New(e, sessions, users, authCtrl, analysisCtrl, yieldCtrl, reportCtrl, masterCtrl, adminCtrl, healthCtrl)

	// 8) Start
	log.Printf("[srv] listening on :%s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
