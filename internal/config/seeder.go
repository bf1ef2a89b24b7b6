package config

import (
	"log"
	"time"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"
	"github.com/Ekantik19/SC2002-sub000/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("Running database seeders...")

	if err := s.seedManager(); err != nil {
		log.Printf("Manager seeder skipped: %v", err)
	}

	// Sample data is for development only
	if s.cfg.IsDev() {
		if err := s.seedSampleData(); err != nil {
			log.Printf("Sample data seeder skipped: %v", err)
		}
	}

	log.Println("Database seeding completed")
	return nil
}

// seedManager seeds the default manager account so the system is usable on
// first boot. In production, change the password immediately.
func (s *Seeder) seedManager() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleManager).Count(&count)
	if count > 0 {
		return nil // Manager already exists
	}

	hashedPassword, err := password.Hash("password")
	if err != nil {
		return err
	}

	manager := &models.User{
		NRIC:          "T8765432F",
		Name:          "Jessica",
		Password:      hashedPassword,
		Age:           26,
		MaritalStatus: models.MaritalMarried,
		Role:          models.RoleManager,
		IsActive:      true,
	}

	if err := s.db.Create(manager).Error; err != nil {
		return err
	}

	log.Printf("Manager account created: %s", manager.NRIC)
	return nil
}

// seedSampleData seeds one officer, one applicant and a sample listing
func (s *Seeder) seedSampleData() error {
	var count int64
	s.db.Model(&models.Project{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	hashedPassword, err := password.Hash("password")
	if err != nil {
		return err
	}

	officer := &models.User{
		NRIC:          "T2109876H",
		Name:          "Daniel",
		Password:      hashedPassword,
		Age:           36,
		MaritalStatus: models.MaritalSingle,
		Role:          models.RoleOfficer,
		IsActive:      true,
	}
	applicant := &models.User{
		NRIC:          "S1234567A",
		Name:          "John",
		Password:      hashedPassword,
		Age:           35,
		MaritalStatus: models.MaritalSingle,
		Role:          models.RoleApplicant,
		IsActive:      true,
	}
	if err := s.db.Create(officer).Error; err != nil {
		return err
	}
	if err := s.db.Create(applicant).Error; err != nil {
		return err
	}

	var manager models.User
	if err := s.db.Where("role = ?", models.RoleManager).First(&manager).Error; err != nil {
		return err
	}

	now := time.Now()
	project := &models.Project{
		Name:         "Acacia Breeze",
		Neighborhood: "Yishun",
		OpenDate:     now.AddDate(0, 0, -7),
		CloseDate:    now.AddDate(0, 1, 0),
		Visible:      true,
		ManagerID:    manager.ID,
		OfficerSlots: 3,
		Flats: []models.ProjectFlat{
			{
				FlatType:       models.FlatTypeTwoRoom,
				TotalUnits:     2,
				AvailableUnits: 2,
				SellingPrice:   350000,
			},
			{
				FlatType:       models.FlatTypeThreeRoom,
				TotalUnits:     3,
				AvailableUnits: 3,
				SellingPrice:   450000,
			},
		},
	}

	if err := s.db.Create(project).Error; err != nil {
		return err
	}

	log.Printf("Sample project created: %s", project.Name)
	return nil
}
