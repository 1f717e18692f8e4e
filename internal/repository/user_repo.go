package repository

import (
	"context"

	"anoa.com/schoolboard/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	// Create persists the user together with its attached profile and any
	// teacher-student join rows in a single transaction.
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	FindByRole(ctx context.Context, role model.Role) ([]*model.User, error)
	FindTeachersByIDs(ctx context.Context, ids []uint) ([]model.TeacherProfile, error)
	FindStudentsOfTeacher(ctx context.Context, teacherUserID uint) ([]model.StudentProfile, error)
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.withProfiles(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.withProfiles(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := r.withProfiles(ctx).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) FindByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	var users []*model.User
	if err := r.withProfiles(ctx).
		Where("role = ?", role).
		Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) FindTeachersByIDs(ctx context.Context, ids []uint) ([]model.TeacherProfile, error) {
	var teachers []model.TeacherProfile
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&teachers).Error; err != nil {
		return nil, err
	}

	return teachers, nil
}

func (r *userRepository) FindStudentsOfTeacher(ctx context.Context, teacherUserID uint) ([]model.StudentProfile, error) {
	var students []model.StudentProfile
	if err := r.db.WithContext(ctx).
		Joins("JOIN teacher_students ON teacher_students.student_profile_id = student_profiles.id").
		Joins("JOIN teacher_profiles ON teacher_profiles.id = teacher_students.teacher_profile_id").
		Where("teacher_profiles.user_id = ?", teacherUserID).
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	// Select(clause.Associations) is not needed: profile FKs carry
	// OnDelete:CASCADE, so the profile row goes away with the user.
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepository) withProfiles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Admin").
		Preload("Teacher").
		Preload("Teacher.Students").
		Preload("Student").
		Preload("Student.Teachers")
}
