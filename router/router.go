package router

import (
	"github.com/labstack/echo/v4"

	analysisCtrl "agriyield/pkg/analysis/controllerImp"
	authController "agriyield/pkg/auth/controller"
	authRepo "agriyield/pkg/auth/repository"
	healthCtrl "agriyield/pkg/health/controllerImp"
	masterCtrl "agriyield/pkg/master/controllerImp"
	mw "agriyield/pkg/middleware"
	reportCtrl "agriyield/pkg/report/controllerImp"
	"agriyield/pkg/session"
	userCtrl "agriyield/pkg/user/controllerImp"
	yieldCtrl "agriyield/pkg/yield/controllerImp"

	"agriyield/entities"
)

// New wires every route behind the session, CSRF and access-control
// middleware. Guard order is fixed here: LoadSession and CSRF run
// globally, mw.Protect puts authentication in front of role checks.
func New(
	e *echo.Echo,
	sessions *session.Manager,
	users authRepo.UserRepository,
	auth authController.AuthController,
	analysis *analysisCtrl.AnalysisCtrl,
	yields *yieldCtrl.YieldCtrl,
	reports *reportCtrl.ReportCtrl,
	masters *masterCtrl.MasterCtrl,
	admin *userCtrl.AdminUserCtrl,
	health *healthCtrl.HealthCtrl,
) *echo.Echo {
	e.Use(mw.LoadSession(sessions, users))
	e.Use(mw.CSRF(sessions))

	e.GET("/health", health.Health)

	// auth
	e.GET("/login", auth.LoginForm)
	e.POST("/login", auth.Login)
	e.GET("/register", auth.Register)
	e.POST("/register", auth.Register)
	e.POST("/logout", auth.Logout, mw.RequireLogin(sessions))
	e.GET("/whoami", auth.WhoAmI)

	anyRole := mw.Protect(sessions, entities.RoleFarmer, entities.RoleOfficer, entities.RoleAdmin)
	farmerAdmin := mw.Protect(sessions, entities.RoleFarmer, entities.RoleAdmin)
	officerAdmin := mw.Protect(sessions, entities.RoleOfficer, entities.RoleAdmin)
	adminOnly := mw.Protect(sessions, entities.RoleAdmin)

	// dashboard + full report
	e.GET("/", analysis.Dashboard, anyRole...)
	e.GET("/yield/full_report", reports.Full, anyRole...)
	e.GET("/yield/full_report/export/:file_format", reports.Export, anyRole...)
	e.GET("/lookups", masters.Lookups, anyRole...)

	// yield records
	e.POST("/yield/add", yields.Add, farmerAdmin...)
	e.POST("/yield/:yield_id/edit", yields.Edit, farmerAdmin...)
	e.POST("/delete_yield/:yield_id", yields.Delete, farmerAdmin...)

	// analysis
	a := e.Group("/analysis", officerAdmin...)
	a.GET("/trend/:crop_id", analysis.Trend)
	a.GET("/comparison", analysis.Comparison)
	a.GET("/district/:district_id", analysis.District)
	a.GET("/summary", analysis.Summary)

	// master data
	m := e.Group("/master", adminOnly...)
	m.GET("/crop", masters.ListCrops)
	m.POST("/crop/add", masters.AddCrop)
	m.POST("/crop/:crop_id/edit", masters.EditCrop)
	m.POST("/crop/:crop_id/delete", masters.DeleteCrop)
	m.GET("/crop-type", masters.ListCropTypes)
	m.POST("/crop-type/add", masters.AddCropType)
	m.POST("/crop-type/:croptype_id/edit", masters.EditCropType)
	m.POST("/crop-type/:croptype_id/delete", masters.DeleteCropType)
	m.GET("/season", masters.ListSeasons)
	m.POST("/season/add", masters.AddSeason)
	m.POST("/season/:season_id/edit", masters.EditSeason)
	m.POST("/season/:season_id/delete", masters.DeleteSeason)

	// user administration
	u := e.Group("/admin/users", adminOnly...)
	u.GET("", admin.List)
	u.POST("/add", admin.Add)
	u.POST("/:user_id/edit", admin.Edit)
	u.POST("/:user_id/delete", admin.Delete)

	return e
}
