package controllerImp

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"agriyield/entities"
	masterRepo "agriyield/pkg/master/repository"
	mw "agriyield/pkg/middleware"
	"agriyield/pkg/report/repository"
	"agriyield/pkg/session"
)

// reportColumns is the export header row, in view order.
var reportColumns = []string{
	"yield_id", "crop_id", "crop_name", "crop_type_name", "year",
	"yield_amount", "area_harvested", "production",
	"district_id", "district_name", "province_id", "province_name",
	"municipality_id", "municipality_name", "municipality_type_name",
	"season_id", "season_name",
}

type ReportCtrl struct {
	repo     repository.ReportRepository
	masters  masterRepo.MasterRepository
	sessions *session.Manager
}

func New(repo repository.ReportRepository, masters masterRepo.MasterRepository, sessions *session.Manager) *ReportCtrl {
	return &ReportCtrl{repo: repo, masters: masters, sessions: sessions}
}

func filterFrom(c echo.Context) repository.Filter {
	var f repository.Filter
	if v, err := strconv.Atoi(c.QueryParam("year")); err == nil {
		f.Year = &v
	}
	if v, err := strconv.Atoi(c.QueryParam("crop_id")); err == nil {
		id := uint(v)
		f.CropID = &id
	}
	if v, err := strconv.Atoi(c.QueryParam("district_id")); err == nil {
		id := uint(v)
		f.DistrictID = &id
	}
	if v, err := strconv.Atoi(c.QueryParam("season_id")); err == nil {
		id := uint(v)
		f.SeasonID = &id
	}
	return f
}

func scope(c echo.Context) entities.Scope { return entities.ScopeFor(mw.CurrentUser(c)) }

// Full returns the filtered report plus the filter option lists.
func (h *ReportCtrl) Full(c echo.Context) error {
	f := filterFrom(c)
	rows, err := h.repo.FullReport(scope(c), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to load full report"})
	}
	crops, err := h.masters.ListCrops()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to load full report"})
	}
	districts, err := h.masters.ListDistricts()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to load full report"})
	}
	seasons, err := h.masters.ListSeasons()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to load full report"})
	}
	years, err := h.repo.Years(scope(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to load full report"})
	}
	if rows == nil {
		rows = []repository.Row{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"report_data": rows,
		"columns":     reportColumns,
		"crops":       crops,
		"districts":   districts,
		"seasons":     seasons,
		"years":       years,
		"notice":      h.sessions.PopFlash(mw.CurrentSession(c)),
	})
}

// Export streams the filtered report as csv or excel. No rows means a
// notice and a redirect, never an empty file.
func (h *ReportCtrl) Export(c echo.Context) error {
	format := strings.ToLower(c.Param("file_format"))
	rows, err := h.repo.FullReport(scope(c), filterFrom(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to export report"})
	}
	if len(rows) == 0 {
		h.sessions.SetFlash(mw.CurrentSession(c), "No data to export for current filters.")
		return c.Redirect(http.StatusSeeOther, "/yield/full_report")
	}

	switch format {
	case "csv":
		return h.exportCSV(c, rows)
	case "excel":
		return h.exportExcel(c, rows)
	}
	h.sessions.SetFlash(mw.CurrentSession(c), "Unsupported export format.")
	return c.Redirect(http.StatusSeeOther, "/yield/full_report")
}

func rowValues(r repository.Row) []string {
	season := ""
	seasonName := ""
	if r.SeasonID != nil {
		season = strconv.FormatUint(uint64(*r.SeasonID), 10)
	}
	if r.SeasonName != nil {
		seasonName = *r.SeasonName
	}
	return []string{
		strconv.FormatUint(uint64(r.YieldID), 10),
		strconv.FormatUint(uint64(r.CropID), 10),
		r.CropName,
		r.CropTypeName,
		strconv.Itoa(r.Year),
		strconv.FormatFloat(r.YieldAmount, 'f', -1, 64),
		strconv.FormatFloat(r.AreaHarvested, 'f', -1, 64),
		strconv.FormatFloat(r.Production, 'f', -1, 64),
		strconv.FormatUint(uint64(r.DistrictID), 10),
		r.DistrictName,
		strconv.FormatUint(uint64(r.ProvinceID), 10),
		r.ProvinceName,
		strconv.FormatUint(uint64(r.MunicipalityID), 10),
		r.MunicipalityName,
		r.MunicipalityTypeName,
		season,
		seasonName,
	}
}

func (h *ReportCtrl) exportCSV(c echo.Context, rows []repository.Row) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(reportColumns); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to export report"})
	}
	for _, r := range rows {
		if err := w.Write(rowValues(r)); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to export report"})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to export report"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=yield_report.csv`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *ReportCtrl) exportExcel(c echo.Context, rows []repository.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Yield Report"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to export report"})
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	header := make([]any, len(reportColumns))
	for i, col := range reportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to export report"})
	}
	for i, r := range rows {
		vals := rowValues(r)
		cells := make([]any, len(vals))
		for j, v := range vals {
			cells[j] = v
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to export report"})
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Unable to export report"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=yield_report.xlsx`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
