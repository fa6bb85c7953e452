package serviceImp

import (
	"agriyield/entities"
	"agriyield/pkg/analysis/repository"
	"agriyield/pkg/analysis/service"
)

type analysisSvc struct{ r repository.AnalysisRepository }

func New(r repository.AnalysisRepository) service.AnalysisService { return &analysisSvc{r} }

// AverageYield is total production over total area, 0 when no area has
// been recorded.
func (s *analysisSvc) AverageYield(sc entities.Scope) (float64, error) {
	production, err := s.r.TotalProduction(sc)
	if err != nil {
		return 0, err
	}
	area, err := s.r.TotalArea(sc)
	if err != nil {
		return 0, err
	}
	if area == 0 {
		return 0, nil
	}
	return production / area, nil
}

func (s *analysisSvc) Trend(sc entities.Scope, cropID uint) (*service.TrendData, error) {
	rows, err := s.r.TrendByYear(sc, cropID)
	if err != nil {
		return nil, err
	}
	out := &service.TrendData{Years: []int{}, Production: []float64{}}
	for _, row := range rows {
		out.Years = append(out.Years, row.Year)
		out.Production = append(out.Production, row.Production)
	}
	return out, nil
}

func (s *analysisSvc) CropComparison(sc entities.Scope) (*service.ComparisonData, error) {
	rows, err := s.r.CropComparison(sc)
	if err != nil {
		return nil, err
	}
	return comparison(rows), nil
}

func (s *analysisSvc) DistrictAnalysis(sc entities.Scope, districtID uint) (*service.ComparisonData, error) {
	rows, err := s.r.DistrictComparison(sc, districtID)
	if err != nil {
		return nil, err
	}
	return comparison(rows), nil
}

func comparison(rows []repository.CropProduction) *service.ComparisonData {
	out := &service.ComparisonData{Crops: []string{}, Production: []float64{}}
	for _, row := range rows {
		out.Crops = append(out.Crops, row.CropName)
		out.Production = append(out.Production, row.Production)
	}
	return out
}

func (s *analysisSvc) Summary(sc entities.Scope) (*service.Summary, error) {
	byYear, err := s.r.SummaryByYear(sc)
	if err != nil {
		return nil, err
	}
	byCrop, err := s.r.SummaryByCrop(sc)
	if err != nil {
		return nil, err
	}
	byDistrict, err := s.r.SummaryByDistrict(sc)
	if err != nil {
		return nil, err
	}
	if byYear == nil {
		byYear = []repository.YearProduction{}
	}
	if byCrop == nil {
		byCrop = []repository.CropSummary{}
	}
	if byDistrict == nil {
		byDistrict = []repository.DistrictSummary{}
	}
	return &service.Summary{ByYear: byYear, ByCrop: byCrop, ByDistrict: byDistrict}, nil
}

func (s *analysisSvc) Dashboard(sc entities.Scope) (*service.Dashboard, error) {
	production, err := s.r.TotalProduction(sc)
	if err != nil {
		return nil, err
	}
	area, err := s.r.TotalArea(sc)
	if err != nil {
		return nil, err
	}
	records, err := s.r.TotalRecords(sc)
	if err != nil {
		return nil, err
	}
	latestCount, err := s.r.LatestYearRecordCount(sc)
	if err != nil {
		return nil, err
	}
	latest, err := s.r.LatestRecords(sc, 10)
	if err != nil {
		return nil, err
	}
	highest := service.HighestCrop{CropName: "N/A"}
	if top, err := s.r.HighestProducingCrop(sc); err != nil {
		return nil, err
	} else if top != nil {
		highest = service.HighestCrop{CropName: top.CropName, TotalProduction: top.Production}
	}
	d := &service.Dashboard{
		TotalProduction:     production,
		TotalArea:           area,
		TotalRecords:        records,
		HighestCrop:         highest,
		LatestYearDataCount: latestCount,
		YieldRecords:        latest,
	}
	if area != 0 {
		d.AvgYieldPerHa = production / area
	}
	if sc.FarmerOnly() {
		fs := &service.FarmerSummary{Records: records, Production: production, Area: area, AvgYield: d.AvgYieldPerHa}
		d.FarmerSummary = fs
	}
	if d.YieldRecords == nil {
		d.YieldRecords = []entities.YieldRecord{}
	}
	return d, nil
}
