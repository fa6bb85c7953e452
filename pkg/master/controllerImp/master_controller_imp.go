package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"agriyield/entities"
	auditSvc "agriyield/pkg/audit/service"
	"agriyield/pkg/master/repository"
	mw "agriyield/pkg/middleware"
	"agriyield/pkg/session"
)

// MasterCtrl serves the admin-only reference data screens: crops,
// crop types, seasons, plus the lookup feeds the forms consume.
type MasterCtrl struct {
	repo     repository.MasterRepository
	audit    auditSvc.AuditService
	sessions *session.Manager
}

func New(repo repository.MasterRepository, audit auditSvc.AuditService, sessions *session.Manager) *MasterCtrl {
	return &MasterCtrl{repo: repo, audit: audit, sessions: sessions}
}

func (h *MasterCtrl) userID(c echo.Context) *uint {
	if u := mw.CurrentUser(c); u != nil {
		id := u.ID
		return &id
	}
	return nil
}

func idParam(c echo.Context, name string) (uint, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		return 0, false
	}
	return uint(v), true
}

// ---- crops

func (h *MasterCtrl) ListCrops(c echo.Context) error {
	crops, err := h.repo.ListCrops()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to list crops"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"crops":  crops,
		"notice": h.sessions.PopFlash(mw.CurrentSession(c)),
	})
}

func (h *MasterCtrl) AddCrop(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("crop_name"))
	cropTypeID, _ := strconv.Atoi(c.FormValue("croptype_id"))

	fieldErrors := map[string]string{}
	if name == "" {
		fieldErrors["crop_name"] = "Crop name is required."
	}
	if cropTypeID <= 0 {
		fieldErrors["croptype_id"] = "Crop type is required."
	}
	if name != "" {
		taken, err := h.repo.CropNameTaken(name, 0)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to add crop"})
		}
		if taken {
			fieldErrors["crop_name"] = "This crop name already exists."
		}
	}
	if len(fieldErrors) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"field_errors": fieldErrors})
	}

	uid := h.userID(c)
	crop := &entities.Crop{CropName: name, CropTypeID: uint(cropTypeID), CreatedBy: uid, UpdatedBy: uid}
	if err := h.repo.CreateCrop(crop); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"field_errors": map[string]string{"crop_name": "This crop name already exists."},
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to add crop"})
	}
	h.audit.Log(entities.AuditInsert, "crop_master", uid, &crop.CropID, crop.CropName)
	h.sessions.SetFlash(mw.CurrentSession(c), "Crop added successfully!")
	return c.Redirect(http.StatusSeeOther, "/master/crop")
}

func (h *MasterCtrl) EditCrop(c echo.Context) error {
	id, ok := idParam(c, "crop_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid crop id"})
	}
	crop, err := h.repo.FindCrop(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit crop"})
	}
	if crop == nil {
		h.sessions.SetFlash(mw.CurrentSession(c), "Crop not found.")
		return c.Redirect(http.StatusSeeOther, "/master/crop")
	}

	name := strings.TrimSpace(c.FormValue("crop_name"))
	cropTypeID, _ := strconv.Atoi(c.FormValue("croptype_id"))

	fieldErrors := map[string]string{}
	if name == "" {
		fieldErrors["crop_name"] = "Crop name is required."
	}
	if cropTypeID <= 0 {
		fieldErrors["croptype_id"] = "Crop type is required."
	}
	if name != "" {
		taken, err := h.repo.CropNameTaken(name, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit crop"})
		}
		if taken {
			fieldErrors["crop_name"] = "Another crop with same name exists."
		}
	}
	if len(fieldErrors) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"field_errors": fieldErrors})
	}

	crop.CropName = name
	crop.CropTypeID = uint(cropTypeID)
	crop.UpdatedBy = h.userID(c)
	if err := h.repo.UpdateCrop(crop); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit crop"})
	}
	h.audit.Log(entities.AuditUpdate, "crop_master", h.userID(c), &crop.CropID, crop.CropName)
	h.sessions.SetFlash(mw.CurrentSession(c), "Crop updated successfully!")
	return c.Redirect(http.StatusSeeOther, "/master/crop")
}

func (h *MasterCtrl) DeleteCrop(c echo.Context) error {
	id, ok := idParam(c, "crop_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid crop id"})
	}
	switch err := h.repo.DeleteCrop(id); {
	case errors.Is(err, repository.ErrInUse):
		h.sessions.SetFlash(mw.CurrentSession(c), "Cannot delete crop. It is used in yield records.")
	case errors.Is(err, repository.ErrNotFound):
		h.sessions.SetFlash(mw.CurrentSession(c), "Crop not found.")
	case err != nil:
		h.sessions.SetFlash(mw.CurrentSession(c), "Unable to delete crop.")
	default:
		h.audit.Log(entities.AuditDelete, "crop_master", h.userID(c), &id, "")
		h.sessions.SetFlash(mw.CurrentSession(c), "Crop deleted successfully!")
	}
	return c.Redirect(http.StatusSeeOther, "/master/crop")
}

// ---- crop types

func (h *MasterCtrl) ListCropTypes(c echo.Context) error {
	types, err := h.repo.ListCropTypes()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to list crop types"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"crop_types": types,
		"notice":     h.sessions.PopFlash(mw.CurrentSession(c)),
	})
}

func (h *MasterCtrl) AddCropType(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("croptypename"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"field_errors": map[string]string{"croptypename": "Crop type name is required."},
		})
	}
	taken, err := h.repo.CropTypeNameTaken(name, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to add crop type"})
	}
	if taken {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"field_errors": map[string]string{"croptypename": "Crop type already exists."},
		})
	}
	ct := &entities.CropType{CropTypeName: name}
	if err := h.repo.CreateCropType(ct); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			// lost a race against a concurrent insert
			return c.JSON(http.StatusBadRequest, map[string]any{
				"field_errors": map[string]string{"croptypename": "Unable to add crop type due to data conflict. Please try a different name."},
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to add crop type"})
	}
	h.audit.Log(entities.AuditInsert, "crop_type_master", h.userID(c), &ct.CropTypeID, ct.CropTypeName)
	h.sessions.SetFlash(mw.CurrentSession(c), "Crop type added successfully.")
	return c.Redirect(http.StatusSeeOther, "/master/crop-type")
}

func (h *MasterCtrl) EditCropType(c echo.Context) error {
	id, ok := idParam(c, "croptype_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid crop type id"})
	}
	ct, err := h.repo.FindCropType(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit crop type"})
	}
	if ct == nil {
		h.sessions.SetFlash(mw.CurrentSession(c), "Crop type not found.")
		return c.Redirect(http.StatusSeeOther, "/master/crop-type")
	}
	name := strings.TrimSpace(c.FormValue("croptypename"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"field_errors": map[string]string{"croptypename": "Crop type name is required."},
		})
	}
	taken, err := h.repo.CropTypeNameTaken(name, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit crop type"})
	}
	if taken {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"field_errors": map[string]string{"croptypename": "Crop type already exists."},
		})
	}
	ct.CropTypeName = name
	if err := h.repo.UpdateCropType(ct); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit crop type"})
	}
	h.audit.Log(entities.AuditUpdate, "crop_type_master", h.userID(c), &ct.CropTypeID, ct.CropTypeName)
	h.sessions.SetFlash(mw.CurrentSession(c), "Crop type updated successfully.")
	return c.Redirect(http.StatusSeeOther, "/master/crop-type")
}

func (h *MasterCtrl) DeleteCropType(c echo.Context) error {
	id, ok := idParam(c, "croptype_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid crop type id"})
	}
	switch err := h.repo.DeleteCropType(id); {
	case errors.Is(err, repository.ErrInUse):
		h.sessions.SetFlash(mw.CurrentSession(c), "Cannot delete crop type. It is used in crop records.")
	case errors.Is(err, repository.ErrNotFound):
		h.sessions.SetFlash(mw.CurrentSession(c), "Crop type not found.")
	case err != nil:
		h.sessions.SetFlash(mw.CurrentSession(c), "Unable to delete crop type.")
	default:
		h.audit.Log(entities.AuditDelete, "crop_type_master", h.userID(c), &id, "")
		h.sessions.SetFlash(mw.CurrentSession(c), "Crop type deleted successfully.")
	}
	return c.Redirect(http.StatusSeeOther, "/master/crop-type")
}

// ---- seasons

func (h *MasterCtrl) ListSeasons(c echo.Context) error {
	seasons, err := h.repo.ListSeasons()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to list seasons"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"seasons": seasons,
		"notice":  h.sessions.PopFlash(mw.CurrentSession(c)),
	})
}

func (h *MasterCtrl) AddSeason(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("seasonname"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"field_errors": map[string]string{"seasonname": "Season name is required."},
		})
	}
	taken, err := h.repo.SeasonNameTaken(name, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to add season"})
	}
	if taken {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"field_errors": map[string]string{"seasonname": "Season already exists."},
		})
	}
	season := &entities.Season{SeasonName: name}
	if err := h.repo.CreateSeason(season); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"field_errors": map[string]string{"seasonname": "Unable to add season due to data conflict."},
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to add season"})
	}
	h.audit.Log(entities.AuditInsert, "season_master", h.userID(c), &season.SeasonID, season.SeasonName)
	h.sessions.SetFlash(mw.CurrentSession(c), "Season added successfully.")
	return c.Redirect(http.StatusSeeOther, "/master/season")
}

func (h *MasterCtrl) EditSeason(c echo.Context) error {
	id, ok := idParam(c, "season_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid season id"})
	}
	season, err := h.repo.FindSeason(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit season"})
	}
	if season == nil {
		h.sessions.SetFlash(mw.CurrentSession(c), "Season not found.")
		return c.Redirect(http.StatusSeeOther, "/master/season")
	}
	name := strings.TrimSpace(c.FormValue("seasonname"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"field_errors": map[string]string{"seasonname": "Season name is required."},
		})
	}
	taken, err := h.repo.SeasonNameTaken(name, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit season"})
	}
	if taken {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"field_errors": map[string]string{"seasonname": "Season already exists."},
		})
	}
	season.SeasonName = name
	if err := h.repo.UpdateSeason(season); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to edit season"})
	}
	h.audit.Log(entities.AuditUpdate, "season_master", h.userID(c), &season.SeasonID, season.SeasonName)
	h.sessions.SetFlash(mw.CurrentSession(c), "Season updated successfully.")
	return c.Redirect(http.StatusSeeOther, "/master/season")
}

func (h *MasterCtrl) DeleteSeason(c echo.Context) error {
	id, ok := idParam(c, "season_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid season id"})
	}
	switch err := h.repo.DeleteSeason(id); {
	case errors.Is(err, repository.ErrInUse):
		h.sessions.SetFlash(mw.CurrentSession(c), "Cannot delete season. It is used by yield records.")
	case errors.Is(err, repository.ErrNotFound):
		h.sessions.SetFlash(mw.CurrentSession(c), "Season not found.")
	case err != nil:
		h.sessions.SetFlash(mw.CurrentSession(c), "Unable to delete season.")
	default:
		h.audit.Log(entities.AuditDelete, "season_master", h.userID(c), &id, "")
		h.sessions.SetFlash(mw.CurrentSession(c), "Season deleted successfully.")
	}
	return c.Redirect(http.StatusSeeOther, "/master/season")
}

// Lookups feeds the add/edit yield forms: every reference list the
// frontend renders as select options.
func (h *MasterCtrl) Lookups(c echo.Context) error {
	crops, err := h.repo.ListCrops()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to load lookups"})
	}
	districts, err := h.repo.ListDistricts()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to load lookups"})
	}
	municipalities, err := h.repo.ListMunicipalities()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to load lookups"})
	}
	seasons, err := h.repo.ListSeasons()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to load lookups"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"crops":          crops,
		"districts":      districts,
		"municipalities": municipalities,
		"seasons":        seasons,
	})
}
