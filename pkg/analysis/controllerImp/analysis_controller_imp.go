package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agriyield/entities"
	"agriyield/pkg/analysis/service"
	mw "agriyield/pkg/middleware"
	"agriyield/pkg/session"
)

type AnalysisCtrl struct {
	svc      service.AnalysisService
	sessions *session.Manager
}

func New(svc service.AnalysisService, sessions *session.Manager) *AnalysisCtrl {
	return &AnalysisCtrl{svc: svc, sessions: sessions}
}

func scope(c echo.Context) entities.Scope { return entities.ScopeFor(mw.CurrentUser(c)) }

// Dashboard backs the landing page: KPI cards plus the latest records,
// restricted to the caller's own rows for the Farmer role.
func (h *AnalysisCtrl) Dashboard(c echo.Context) error {
	d, err := h.svc.Dashboard(scope(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to load dashboard"})
	}
	sess := mw.CurrentSession(c)
	return c.JSON(http.StatusOK, map[string]any{
		"dashboard":  d,
		"csrf_token": sess.CSRFToken,
		"notice":     h.sessions.PopFlash(sess),
	})
}

func (h *AnalysisCtrl) Trend(c echo.Context) error {
	cropID, err := strconv.Atoi(c.Param("crop_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid crop id"})
	}
	data, err := h.svc.Trend(scope(c), uint(cropID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to generate trend analysis"})
	}
	return c.JSON(http.StatusOK, data)
}

func (h *AnalysisCtrl) Comparison(c echo.Context) error {
	data, err := h.svc.CropComparison(scope(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to generate crop comparison"})
	}
	return c.JSON(http.StatusOK, data)
}

func (h *AnalysisCtrl) District(c echo.Context) error {
	districtID, err := strconv.Atoi(c.Param("district_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid district id"})
	}
	data, err := h.svc.DistrictAnalysis(scope(c), uint(districtID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to generate district analysis"})
	}
	return c.JSON(http.StatusOK, data)
}

func (h *AnalysisCtrl) Summary(c echo.Context) error {
	data, err := h.svc.Summary(scope(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to generate analysis summary"})
	}
	return c.JSON(http.StatusOK, data)
}
