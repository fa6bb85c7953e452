package repositoryImp

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agriyield/database"
	"agriyield/entities"
	"agriyield/pkg/master/repository"
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

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&entities.Country{CountryID: 1, CountryName: "Testland"}).Error)
	require.NoError(t, db.Create(&entities.Province{ProvinceID: 1, CountryID: 1, ProvinceName: "North"}).Error)
	require.NoError(t, db.Create(&entities.District{DistrictID: 1, ProvinceID: 1, DistrictName: "Hilltop"}).Error)
	require.NoError(t, db.Create(&entities.MunicipalityType{MunicipalityTypeID: 1, MunicipalityTypeName: "Rural"}).Error)
	require.NoError(t, db.Create(&entities.Municipality{MunicipalityID: 1, MunicipalityTypeID: 1, DistrictID: 1, MunicipalityName: "Greenfield"}).Error)
	require.NoError(t, db.Create(&entities.Season{SeasonID: 1, SeasonName: "Spring"}).Error)
	require.NoError(t, db.Create(&entities.CropType{CropTypeID: 1, CropTypeName: "Cereal"}).Error)
	require.NoError(t, db.Create(&entities.Crop{CropID: 1, CropName: "Maize", CropTypeID: 1}).Error)
}

func TestDeleteSeasonRefusedWhileReferenced(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	uid := uint(1)
	sid := uint(1)
	require.NoError(t, db.Create(&entities.YieldRecord{
		CropID: 1, DistrictID: 1, MunicipalityID: 1, SeasonID: &sid,
		Year: 2023, YieldAmount: 1, AreaHarvested: 1, Production: 1, CreatedBy: &uid,
	}).Error)

	repo := New(db)
	err := repo.DeleteSeason(1)
	assert.ErrorIs(t, err, repository.ErrInUse)

	var n int64
	require.NoError(t, db.Model(&entities.Season{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestDeleteUnreferencedSeason(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	repo := New(db)
	require.NoError(t, repo.DeleteSeason(1))

	var n int64
	require.NoError(t, db.Model(&entities.Season{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestDeleteCropTypeRefusedWhileCropsExist(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	repo := New(db)

	err := repo.DeleteCropType(1)
	assert.ErrorIs(t, err, repository.ErrInUse)

	var n int64
	require.NoError(t, db.Model(&entities.CropType{}).Count(&n).Error)
	assert.Equal(t, int64(1), n, "crop_type_master row count must be unchanged")

	// once the crop goes, the type can go too
	require.NoError(t, repo.DeleteCrop(1))
	require.NoError(t, repo.DeleteCropType(1))
}

func TestDeleteCropRefusedWhileYieldRecordsExist(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	uid := uint(1)
	require.NoError(t, db.Create(&entities.YieldRecord{
		CropID: 1, DistrictID: 1, MunicipalityID: 1,
		Year: 2023, YieldAmount: 1, AreaHarvested: 1, Production: 1, CreatedBy: &uid,
	}).Error)

	repo := New(db)
	assert.ErrorIs(t, repo.DeleteCrop(1), repository.ErrInUse)
}

func TestDeleteMissingRowsReportNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := New(db)
	assert.ErrorIs(t, repo.DeleteCrop(42), repository.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteCropType(42), repository.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteSeason(42), repository.ErrNotFound)
}

func TestNameTakenIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	repo := New(db)

	taken, err := repo.CropNameTaken("mAiZe", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	// the row itself is excluded during edits
	taken, err = repo.CropNameTaken("MAIZE", 1)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.SeasonNameTaken("spring", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.CropTypeNameTaken("CEREAL", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestDuplicateInsertMapsToDuplicateName(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	repo := New(db)

	err := repo.CreateSeason(&entities.Season{SeasonName: "Spring"})
	assert.ErrorIs(t, err, repository.ErrDuplicateName)
}

func TestListCropsJoinsTypeName(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	repo := New(db)

	rows, err := repo.ListCrops()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Maize", rows[0].CropName)
	assert.Equal(t, "Cereal", rows[0].CropTypeName)
}

func TestExistenceChecks(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	repo := New(db)

	for _, tc := range []struct {
		name   string
		check  func(uint) (bool, error)
		hit    uint
		miss   uint
	}{
		{"crop", repo.CropExists, 1, 9},
		{"district", repo.DistrictExists, 1, 9},
		{"municipality", repo.MunicipalityExists, 1, 9},
		{"season", repo.SeasonExists, 1, 9},
	} {
		ok, err := tc.check(tc.hit)
		require.NoError(t, err, tc.name)
		assert.True(t, ok, tc.name)
		ok, err = tc.check(tc.miss)
		require.NoError(t, err, tc.name)
		assert.False(t, ok, tc.name)
	}
}
