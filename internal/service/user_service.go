package service

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"anoa.com/schoolboard/internal/dto"
	"anoa.com/schoolboard/internal/model"
	"anoa.com/schoolboard/internal/repository"
	"anoa.com/schoolboard/pkg/apperror"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, input dto.RegisterUserInput) (*dto.UserResponse, error)
	GetAll(ctx context.Context, role *model.Role) ([]*dto.UserResponse, error)
	GetStudentsOfTeacher(ctx context.Context, teacher *model.User) ([]model.StudentProfile, error)
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	repo    repository.UserRepository
	factory *ProfileFactory
	hasher  PasswordHasher
}

func NewUserService(repo repository.UserRepository, factory *ProfileFactory, hasher PasswordHasher) UserService {
	return &userService{
		repo:    repo,
		factory: factory,
		hasher:  hasher,
	}
}

func (s *userService) Register(ctx context.Context, input dto.RegisterUserInput) (*dto.UserResponse, error) {
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("user with this email already exists: %w", apperror.ErrInvalidInput)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile, err := s.factory.Build(ctx, input.Role, input.Profile)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: hashed,
		Role:         input.Role,
		IsStaff:      input.Role == model.RoleAdmin,
	}
	user.SetProfile(profile)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponse(created), nil
}

func (s *userService) GetAll(ctx context.Context, role *model.Role) ([]*dto.UserResponse, error) {
	var (
		users []*model.User
		err   error
	)

	if role != nil {
		users, err = s.repo.FindByRole(ctx, *role)
	} else {
		users, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	return dto.NewUserListResponse(users), nil
}

func (s *userService) GetStudentsOfTeacher(ctx context.Context, teacher *model.User) ([]model.StudentProfile, error) {
	return s.repo.FindStudentsOfTeacher(ctx, teacher.ID)
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func validatePassword(password string) error {
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one number: %w", apperror.ErrInvalidInput)
	}

	return nil
}
