package config

import (
	"log"

	"librental/internal/adapters/persistence/models"
	"librental/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if err := s.seedLibrarianUser(); err != nil {
		log.Printf("⚠️ Librarian seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	// Check if admin already exists
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Administrator",
		Username: "admin",
		Email:    "admin@library.example.org",
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}

// seedLibrarianUser seeds a default librarian account for the front desk
func (s *Seeder) seedLibrarianUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleLibrarian).Count(&count)
	if count > 0 {
		return nil // Librarian already exists
	}

	hashedPassword, err := password.Hash("librarian123")
	if err != nil {
		return err
	}

	librarian := &models.User{
		Name:     "Front Desk",
		Username: "librarian",
		Email:    "librarian@library.example.org",
		Password: hashedPassword,
		Role:     models.RoleLibrarian,
		IsActive: true,
	}

	if err := s.db.Create(librarian).Error; err != nil {
		return err
	}

	log.Printf("✅ Librarian user created: %s", librarian.Username)
	return nil
}
