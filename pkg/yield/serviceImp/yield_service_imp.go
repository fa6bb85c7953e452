package serviceImp

import (
	"fmt"
	"time"

	"agriyield/entities"
	auditSvc "agriyield/pkg/audit/service"
	masterRepo "agriyield/pkg/master/repository"
	"agriyield/pkg/yield/repository"
	"agriyield/pkg/yield/service"
)

type yieldSvc struct {
	records repository.YieldRepository
	masters masterRepo.MasterRepository
	audit   auditSvc.AuditService
}

func New(records repository.YieldRepository, masters masterRepo.MasterRepository, audit auditSvc.AuditService) service.YieldService {
	return &yieldSvc{records: records, masters: masters, audit: audit}
}

// Validate applies the business rules: non-negative amounts, year in
// [1900, current year], and every referenced lookup row must exist.
func (s *yieldSvc) Validate(in service.YieldInput) ([]string, error) {
	var errs []string
	currentYear := time.Now().Year()

	if in.YieldAmount < 0 {
		errs = append(errs, "Yield amount cannot be negative")
	}
	if in.Production < 0 {
		errs = append(errs, "Production cannot be negative")
	}
	if in.AreaHarvested < 0 {
		errs = append(errs, "Area harvested cannot be negative")
	}
	if in.Year < 1900 || in.Year > currentYear {
		errs = append(errs, fmt.Sprintf("Year must be between 1900 and %d", currentYear))
	}

	ok, err := s.masters.CropExists(in.CropID)
	if err != nil {
		return nil, err
	}
	if !ok {
		errs = append(errs, "Invalid crop selected")
	}
	ok, err = s.masters.DistrictExists(in.DistrictID)
	if err != nil {
		return nil, err
	}
	if !ok {
		errs = append(errs, "Invalid district selected")
	}
	ok, err = s.masters.MunicipalityExists(in.MunicipalityID)
	if err != nil {
		return nil, err
	}
	if !ok {
		errs = append(errs, "Invalid municipality selected")
	}
	if in.SeasonID != 0 {
		ok, err = s.masters.SeasonExists(in.SeasonID)
		if err != nil {
			return nil, err
		}
		if !ok {
			errs = append(errs, "Invalid season selected")
		}
	}
	return errs, nil
}

func (s *yieldSvc) Create(sc entities.Scope, in service.YieldInput) (*entities.YieldRecord, []string, error) {
	verrs, err := s.Validate(in)
	if err != nil || len(verrs) > 0 {
		return nil, verrs, err
	}
	uid := sc.UserID
	rec := &entities.YieldRecord{
		CropID:         in.CropID,
		DistrictID:     in.DistrictID,
		MunicipalityID: in.MunicipalityID,
		SeasonID:       seasonRef(in.SeasonID),
		Year:           in.Year,
		AreaHarvested:  in.AreaHarvested,
		YieldAmount:    in.YieldAmount,
		Production:     in.Production,
		CreatedBy:      &uid,
		UpdatedBy:      &uid,
	}
	if err := s.records.Create(rec); err != nil {
		return nil, nil, err
	}
	s.audit.Log(entities.AuditInsert, "yielddata", &uid, &rec.YieldID, "")
	return rec, nil, nil
}

func (s *yieldSvc) Update(sc entities.Scope, id uint, in service.YieldInput) (*entities.YieldRecord, []string, error) {
	rec, err := s.records.FindByID(id)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, service.ErrNotFound
	}
	if sc.FarmerOnly() && (rec.CreatedBy == nil || *rec.CreatedBy != sc.UserID) {
		return nil, nil, service.ErrForbidden
	}
	verrs, err := s.Validate(in)
	if err != nil || len(verrs) > 0 {
		return nil, verrs, err
	}
	uid := sc.UserID
	rec.CropID = in.CropID
	rec.DistrictID = in.DistrictID
	rec.MunicipalityID = in.MunicipalityID
	rec.SeasonID = seasonRef(in.SeasonID)
	rec.Year = in.Year
	rec.AreaHarvested = in.AreaHarvested
	rec.YieldAmount = in.YieldAmount
	rec.Production = in.Production
	rec.UpdatedBy = &uid
	if err := s.records.Update(rec); err != nil {
		return nil, nil, err
	}
	s.audit.Log(entities.AuditUpdate, "yielddata", &uid, &rec.YieldID, "")
	return rec, nil, nil
}

func (s *yieldSvc) Delete(sc entities.Scope, id uint) error {
	rec, err := s.records.FindByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return service.ErrNotFound
	}
	if sc.FarmerOnly() && (rec.CreatedBy == nil || *rec.CreatedBy != sc.UserID) {
		return service.ErrForbidden
	}
	if err := s.records.Delete(id); err != nil {
		return err
	}
	uid := sc.UserID
	s.audit.Log(entities.AuditDelete, "yielddata", &uid, &id, "")
	return nil
}

func seasonRef(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
