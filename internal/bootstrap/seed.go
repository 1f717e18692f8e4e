package bootstrap

import (
	"log"

	"anoa.com/schoolboard/internal/model"
	"anoa.com/schoolboard/internal/service"
	"gorm.io/gorm"
)

// Migrate creates the schema, including the explicit teacher-student join
// table with its composite primary key.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.TeacherProfile{}, "Students", &model.TeacherStudent{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&model.StudentProfile{}, "Teachers", &model.TeacherStudent{}); err != nil {
		return err
	}

	return db.AutoMigrate(
		&model.User{},
		&model.AdminProfile{},
		&model.TeacherProfile{},
		&model.StudentProfile{},
		&model.Article{},
	)
}

// SeedAdmin creates a default admin account for development environments.
func SeedAdmin(db *gorm.DB, hasher service.PasswordHasher) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@schoolboard.local").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("admin user already exists, skipping seed")
		return nil
	}

	hashed, err := hasher.Hash("admin123")
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        "admin@schoolboard.local",
		PasswordHash: hashed,
		Role:         model.RoleAdmin,
		IsStaff:      true,
	}
	admin.SetProfile(&model.AdminProfile{FullName: "Administrator"})

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("admin user seeded: admin@schoolboard.local / admin123")
	return nil
}
