package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"agriyield/entities"
	"agriyield/pkg/security"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatalf("automigrate: %v", err)
	}
	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.Session{},
		&entities.Country{},
		&entities.Province{},
		&entities.District{},
		&entities.MunicipalityType{},
		&entities.Municipality{},
		&entities.Season{},
		&entities.CropType{},
		&entities.Crop{},
		&entities.YieldRecord{},
		&entities.AuditLog{},
	)
}

// Seed fills the season table and the three default accounts on a
// fresh database. Existing rows are left alone.
func Seed(db *gorm.DB, withUsers bool) error {
	var seasonCount int64
	if err := db.Model(&entities.Season{}).Count(&seasonCount).Error; err != nil {
		return err
	}
	if seasonCount == 0 {
		for _, name := range []string{"Spring", "Summer", "Winter"} {
			if err := db.Create(&entities.Season{SeasonName: name}).Error; err != nil {
				return err
			}
		}
	}

	if !withUsers {
		return nil
	}
	defaults := []struct {
		username, email, password, role string
	}{
		{"admin", "admin@agri.local", "admin123", entities.RoleAdmin},
		{"officer", "officer@agri.local", "officer123", entities.RoleOfficer},
		{"farmer", "farmer@agri.local", "farmer123", entities.RoleFarmer},
	}
	for _, d := range defaults {
		var n int64
		if err := db.Model(&entities.User{}).
			Where("username = ? OR email = ?", d.username, d.email).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		hash, err := security.HashPassword(d.password)
		if err != nil {
			return err
		}
		u := &entities.User{Username: d.username, Email: d.email, PasswordHash: hash, Role: d.role}
		if err := db.Create(u).Error; err != nil {
			return err
		}
	}
	log.Printf("[db] seeded defaults: admin/admin123, officer/officer123, farmer/farmer123")
	return nil
}
