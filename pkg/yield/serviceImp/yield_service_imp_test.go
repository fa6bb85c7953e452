package serviceImp

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agriyield/database"
	"agriyield/entities"
	auditSvcImp "agriyield/pkg/audit/serviceImp"
	masterRepoImp "agriyield/pkg/master/repositoryImp"
	"agriyield/pkg/yield/repositoryImp"
	"agriyield/pkg/yield/service"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func newService(t *testing.T) (service.YieldService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.Create(&entities.Country{CountryID: 1, CountryName: "Testland"}).Error)
	require.NoError(t, db.Create(&entities.Province{ProvinceID: 1, CountryID: 1, ProvinceName: "North"}).Error)
	require.NoError(t, db.Create(&entities.District{DistrictID: 1, ProvinceID: 1, DistrictName: "Hilltop"}).Error)
	require.NoError(t, db.Create(&entities.MunicipalityType{MunicipalityTypeID: 1, MunicipalityTypeName: "Rural"}).Error)
	require.NoError(t, db.Create(&entities.Municipality{MunicipalityID: 1, MunicipalityTypeID: 1, DistrictID: 1, MunicipalityName: "Greenfield"}).Error)
	require.NoError(t, db.Create(&entities.Season{SeasonID: 1, SeasonName: "Spring"}).Error)
	require.NoError(t, db.Create(&entities.CropType{CropTypeID: 1, CropTypeName: "Cereal"}).Error)
	require.NoError(t, db.Create(&entities.Crop{CropID: 1, CropName: "Maize", CropTypeID: 1}).Error)
	svc := New(repositoryImp.New(db), masterRepoImp.New(db), auditSvcImp.New(db))
	return svc, db
}

func validInput() service.YieldInput {
	return service.YieldInput{
		CropID: 1, DistrictID: 1, MunicipalityID: 1, SeasonID: 1,
		Year: time.Now().Year(), AreaHarvested: 2, YieldAmount: 5, Production: 10,
	}
}

func countYields(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entities.YieldRecord{}).Count(&n).Error)
	return n
}

func TestCreateValidRecord(t *testing.T) {
	svc, db := newService(t)
	farmer := entities.Scope{Role: entities.RoleFarmer, UserID: 3}

	rec, verrs, err := svc.Create(farmer, validInput())
	require.NoError(t, err)
	require.Empty(t, verrs)
	require.NotNil(t, rec)
	assert.Equal(t, uint(3), *rec.CreatedBy)
	assert.Equal(t, int64(1), countYields(t, db))

	var audits int64
	require.NoError(t, db.Model(&entities.AuditLog{}).Where("action = ? AND entity = ?", "INSERT", "yielddata").Count(&audits).Error)
	assert.Equal(t, int64(1), audits)
}

func TestYearOutOfRangeWritesNothing(t *testing.T) {
	svc, db := newService(t)
	s := entities.Scope{Role: entities.RoleAdmin, UserID: 1}

	for _, year := range []int{1899, time.Now().Year() + 1, 0} {
		in := validInput()
		in.Year = year
		_, verrs, err := svc.Create(s, in)
		require.NoError(t, err)
		assert.Contains(t, verrs, fmt.Sprintf("Year must be between 1900 and %d", time.Now().Year()))
	}
	assert.Zero(t, countYields(t, db))
}

func TestNegativeAmountsRejected(t *testing.T) {
	svc, db := newService(t)
	s := entities.Scope{Role: entities.RoleAdmin, UserID: 1}

	in := validInput()
	in.YieldAmount = -1
	in.Production = -2
	in.AreaHarvested = -3
	_, verrs, err := svc.Create(s, in)
	require.NoError(t, err)
	assert.Contains(t, verrs, "Yield amount cannot be negative")
	assert.Contains(t, verrs, "Production cannot be negative")
	assert.Contains(t, verrs, "Area harvested cannot be negative")
	assert.Zero(t, countYields(t, db))
}

func TestDanglingReferencesRejected(t *testing.T) {
	svc, db := newService(t)
	s := entities.Scope{Role: entities.RoleAdmin, UserID: 1}

	in := validInput()
	in.CropID = 99
	in.DistrictID = 99
	in.MunicipalityID = 99
	in.SeasonID = 99
	_, verrs, err := svc.Create(s, in)
	require.NoError(t, err)
	assert.Contains(t, verrs, "Invalid crop selected")
	assert.Contains(t, verrs, "Invalid district selected")
	assert.Contains(t, verrs, "Invalid municipality selected")
	assert.Contains(t, verrs, "Invalid season selected")
	assert.Zero(t, countYields(t, db))
}

func TestNullSeasonAllowed(t *testing.T) {
	svc, _ := newService(t)
	in := validInput()
	in.SeasonID = 0
	rec, verrs, err := svc.Create(entities.Scope{Role: entities.RoleAdmin, UserID: 1}, in)
	require.NoError(t, err)
	require.Empty(t, verrs)
	assert.Nil(t, rec.SeasonID)
}

func TestFarmerCannotTouchForeignRecord(t *testing.T) {
	svc, _ := newService(t)
	owner := entities.Scope{Role: entities.RoleFarmer, UserID: 3}
	rec, _, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	other := entities.Scope{Role: entities.RoleFarmer, UserID: 4}
	_, _, err = svc.Update(other, rec.YieldID, validInput())
	assert.ErrorIs(t, err, service.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(other, rec.YieldID), service.ErrForbidden)

	// admins may
	admin := entities.Scope{Role: entities.RoleAdmin, UserID: 9}
	_, verrs, err := svc.Update(admin, rec.YieldID, validInput())
	require.NoError(t, err)
	assert.Empty(t, verrs)
	require.NoError(t, svc.Delete(admin, rec.YieldID))
}

func TestUpdateMissingRecord(t *testing.T) {
	svc, _ := newService(t)
	_, _, err := svc.Update(entities.Scope{Role: entities.RoleAdmin, UserID: 1}, 42, validInput())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
