package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"anoa.com/schoolboard/internal/dto"
	"anoa.com/schoolboard/internal/model"
	"anoa.com/schoolboard/internal/repository"
	"anoa.com/schoolboard/pkg/apperror"
	pkgvalidator "anoa.com/schoolboard/pkg/validator"
)

// ProfileFactory builds the profile variant matching a role from the raw
// profile payload. The result is not persisted; attaching it to the user
// and committing belongs to the caller.
type ProfileFactory struct {
	repo repository.UserRepository
}

func NewProfileFactory(repo repository.UserRepository) *ProfileFactory {
	return &ProfileFactory{repo: repo}
}

func (f *ProfileFactory) Build(ctx context.Context, role model.Role, raw json.RawMessage) (model.Profile, error) {
	switch role {
	case model.RoleAdmin:
		var input dto.AdminProfileInput
		if err := f.decode(raw, &input); err != nil {
			return nil, err
		}
		return &model.AdminProfile{FullName: input.FullName}, nil

	case model.RoleTeacher:
		var input dto.TeacherProfileInput
		if err := f.decode(raw, &input); err != nil {
			return nil, err
		}
		return &model.TeacherProfile{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Degree:    model.Degree(input.Degree),
		}, nil

	case model.RoleStudent:
		var input dto.StudentProfileInput
		if err := f.decode(raw, &input); err != nil {
			return nil, err
		}
		return f.buildStudent(ctx, input)
	}

	// The role set is closed and validated at the binding layer; anything
	// else reaching the factory is a programming error.
	panic(fmt.Sprintf("unknown role: %q", role))
}

func (f *ProfileFactory) buildStudent(ctx context.Context, input dto.StudentProfileInput) (model.Profile, error) {
	entryDate, err := time.Parse("2006-01-02", input.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("entry_date must be a valid date: %w", apperror.ErrInvalidInput)
	}

	if entryDate.After(startOfToday()) {
		return nil, fmt.Errorf("entry date must not be in the future: %w", apperror.ErrInvalidInput)
	}

	teachers, err := f.repo.FindTeachersByIDs(ctx, input.Teachers)
	if err != nil {
		return nil, err
	}

	// Ids that resolve to no teacher at all are rejected. A partial match
	// (some ids resolve, some do not) is accepted with the resolved set.
	if len(teachers) == 0 {
		return nil, fmt.Errorf("teachers with provided ids not found: %w", apperror.ErrBadRequest)
	}

	return &model.StudentProfile{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		EntryDate: entryDate,
		Teachers:  teachers,
	}, nil
}

func (f *ProfileFactory) decode(raw json.RawMessage, input interface{}) error {
	if err := json.Unmarshal(raw, input); err != nil {
		return fmt.Errorf("invalid profile payload: %w", apperror.ErrInvalidInput)
	}

	if err := pkgvalidator.Validate(input); err != nil {
		return fmt.Errorf("%s: %w", pkgvalidator.FormatValidationError(err), apperror.ErrInvalidInput)
	}

	return nil
}

// startOfToday truncates now to midnight UTC, so an entry date equal to
// today's date still passes.
func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
