package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agriyield/entities"
	mw "agriyield/pkg/middleware"
	"agriyield/pkg/session"
	"agriyield/pkg/yield/service"
)

type YieldCtrl struct {
	svc      service.YieldService
	sessions *session.Manager
}

func New(svc service.YieldService, sessions *session.Manager) *YieldCtrl {
	return &YieldCtrl{svc: svc, sessions: sessions}
}

func parseInput(c echo.Context) (service.YieldInput, bool) {
	var in service.YieldInput
	cropID, err1 := strconv.Atoi(c.FormValue("crop_id"))
	districtID, err2 := strconv.Atoi(c.FormValue("district_id"))
	municipalityID, err3 := strconv.Atoi(c.FormValue("municipality_id"))
	year, err4 := strconv.Atoi(c.FormValue("year"))
	area, err5 := strconv.ParseFloat(c.FormValue("area_harvested"), 64)
	amount, err6 := strconv.ParseFloat(c.FormValue("yield_amount"), 64)
	production, err7 := strconv.ParseFloat(c.FormValue("production"), 64)
	for _, err := range []error{err1, err2, err3, err4, err5, err6, err7} {
		if err != nil {
			return in, false
		}
	}
	// season is optional; blank or 0 stores a null reference
	seasonID := 0
	if v := c.FormValue("season_id"); v != "" {
		var err error
		if seasonID, err = strconv.Atoi(v); err != nil {
			return in, false
		}
	}
	in = service.YieldInput{
		CropID:         uint(cropID),
		DistrictID:     uint(districtID),
		MunicipalityID: uint(municipalityID),
		SeasonID:       uint(seasonID),
		Year:           year,
		AreaHarvested:  area,
		YieldAmount:    amount,
		Production:     production,
	}
	return in, true
}

func (h *YieldCtrl) scope(c echo.Context) entities.Scope {
	return entities.ScopeFor(mw.CurrentUser(c))
}

// Add creates a yield record owned by the caller.
func (h *YieldCtrl) Add(c echo.Context) error {
	in, ok := parseInput(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": []string{"Please enter valid numeric values."}})
	}
	_, verrs, err := h.svc.Create(h.scope(c), in)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to process yield form"})
	}
	if len(verrs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": verrs})
	}
	h.sessions.SetFlash(mw.CurrentSession(c), "Yield record added successfully!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// Edit updates an existing record; farmers may only touch their own.
func (h *YieldCtrl) Edit(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("yield_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid yield id"})
	}
	in, ok := parseInput(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": []string{"Please enter valid numeric values."}})
	}
	_, verrs, err := h.svc.Update(h.scope(c), uint(id), in)
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.sessions.SetFlash(mw.CurrentSession(c), "Yield record not found.")
		return c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, service.ErrForbidden):
		h.sessions.SetFlash(mw.CurrentSession(c), "You are not authorized to edit this record.")
		return c.Redirect(http.StatusSeeOther, "/")
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to process yield form"})
	}
	if len(verrs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": verrs})
	}
	h.sessions.SetFlash(mw.CurrentSession(c), "Yield record updated successfully!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// Delete removes a record. POST only; ownership enforced for farmers.
func (h *YieldCtrl) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("yield_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid yield id"})
	}
	switch err := h.svc.Delete(h.scope(c), uint(id)); {
	case errors.Is(err, service.ErrNotFound):
		h.sessions.SetFlash(mw.CurrentSession(c), "Yield record not found.")
	case errors.Is(err, service.ErrForbidden):
		h.sessions.SetFlash(mw.CurrentSession(c), "You are not authorized to delete this record.")
	case err != nil:
		h.sessions.SetFlash(mw.CurrentSession(c), "Error deleting record.")
	default:
		h.sessions.SetFlash(mw.CurrentSession(c), "Yield record deleted successfully!")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
