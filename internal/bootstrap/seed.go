package bootstrap

import (
	"errors"
	"log"

	"anoa.com/jobportal/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoRecruiterEmail = "recruiter@jobportal.dev"
	demoStudentEmail   = "student@jobportal.dev"
	demoPassword       = "password123"
	demoCompanyName    = "Demo Company"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Profile{},
		&entity.Company{},
		&entity.Job{},
		&entity.Application{},
		&entity.Notification{},
	)
}

// SeedDemoData creates a recruiter with a company and a student account.
// Existing rows are left untouched, so it is safe to run on every boot.
func SeedDemoData(db *gorm.DB) error {
	recruiter, err := seedUser(db, "Demo Recruiter", demoRecruiterEmail, entity.RoleRecruiter)
	if err != nil {
		return err
	}
	if _, err := seedUser(db, "Demo Student", demoStudentEmail, entity.RoleStudent); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&entity.Company{}).
		Where("name = ?", demoCompanyName).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		company := entity.Company{
			Name:        demoCompanyName,
			Description: "Seeded for local development",
			Location:    "Remote",
			UserID:      recruiter.ID,
		}
		if err := db.Create(&company).Error; err != nil {
			return err
		}
		log.Printf("✅ Seeded company %q", demoCompanyName)
	}

	return nil
}

func seedUser(db *gorm.DB, fullName, email, role string) (*entity.User, error) {
	var existing entity.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("%s already exists, skipping seed", email)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		return nil, err
	}

	user := entity.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hashed),
		PhoneNumber:  "0000000000",
		Role:         role,
		Profile:      entity.Profile{Skills: []string{}},
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(&user).Error; err != nil {
			return err
		}
		user.Profile.UserID = user.ID
		return tx.Create(&user.Profile).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Seeded %s account", role)
	log.Printf("   Email: %s", email)
	log.Printf("   Password: %s", demoPassword)
	return &user, nil
}
