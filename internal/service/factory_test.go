package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"anoa.com/schoolboard/internal/model"
	"anoa.com/schoolboard/internal/repository"
	"anoa.com/schoolboard/internal/service"
	"anoa.com/schoolboard/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryBuildsAdminProfile(t *testing.T) {
	db := newTestDB(t)
	factory := service.NewProfileFactory(repository.NewUserRepository(db))

	profile, err := factory.Build(context.Background(), model.RoleAdmin, json.RawMessage(`{"full_name":"Jordan Admin"}`))
	require.NoError(t, err)

	admin, ok := profile.(*model.AdminProfile)
	require.True(t, ok)
	assert.Equal(t, "Jordan Admin", admin.FullName)
}

func TestFactoryRejectsShortAdminName(t *testing.T) {
	db := newTestDB(t)
	factory := service.NewProfileFactory(repository.NewUserRepository(db))

	_, err := factory.Build(context.Background(), model.RoleAdmin, json.RawMessage(`{"full_name":"Jo"}`))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestFactoryBuildsTeacherProfile(t *testing.T) {
	db := newTestDB(t)
	factory := service.NewProfileFactory(repository.NewUserRepository(db))

	profile, err := factory.Build(context.Background(), model.RoleTeacher, json.RawMessage(`{"first_name":"Pat","last_name":"Teach","degree":"PhD"}`))
	require.NoError(t, err)

	teacher, ok := profile.(*model.TeacherProfile)
	require.True(t, ok)
	assert.Equal(t, model.DegreePhD, teacher.Degree)
}

func TestFactoryRejectsUnknownDegree(t *testing.T) {
	db := newTestDB(t)
	factory := service.NewProfileFactory(repository.NewUserRepository(db))

	_, err := factory.Build(context.Background(), model.RoleTeacher, json.RawMessage(`{"first_name":"Pat","last_name":"Teach","degree":"Wizard"}`))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestFactoryRejectsEmptyTeacherList(t *testing.T) {
	db := newTestDB(t)
	factory := service.NewProfileFactory(repository.NewUserRepository(db))

	raw := json.RawMessage(`{"first_name":"Sam","last_name":"Learn","entry_date":"2020-09-01","teachers":[]}`)
	_, err := factory.Build(context.Background(), model.RoleStudent, raw)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	// Validation fails before anything touches the store.
	var count int64
	require.NoError(t, db.Model(&model.StudentProfile{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFactoryRejectsUnresolvableTeachers(t *testing.T) {
	db := newTestDB(t)
	factory := service.NewProfileFactory(repository.NewUserRepository(db))

	raw := json.RawMessage(`{"first_name":"Sam","last_name":"Learn","entry_date":"2020-09-01","teachers":[999]}`)
	_, err := factory.Build(context.Background(), model.RoleStudent, raw)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestFactoryAcceptsPartialTeacherResolution(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacherUser(t, db, "teacher@example.com")
	factory := service.NewProfileFactory(repository.NewUserRepository(db))

	raw := json.RawMessage(fmt.Sprintf(
		`{"first_name":"Sam","last_name":"Learn","entry_date":"2020-09-01","teachers":[%d,999]}`,
		teacher.Teacher.ID,
	))
	profile, err := factory.Build(context.Background(), model.RoleStudent, raw)
	require.NoError(t, err)

	student, ok := profile.(*model.StudentProfile)
	require.True(t, ok)
	require.Len(t, student.Teachers, 1)
	assert.Equal(t, teacher.Teacher.ID, student.Teachers[0].ID)
}

func TestFactoryRejectsFutureEntryDate(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacherUser(t, db, "teacher@example.com")
	factory := service.NewProfileFactory(repository.NewUserRepository(db))

	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	raw := json.RawMessage(fmt.Sprintf(
		`{"first_name":"Sam","last_name":"Learn","entry_date":"%s","teachers":[%d]}`,
		future, teacher.Teacher.ID,
	))
	_, err := factory.Build(context.Background(), model.RoleStudent, raw)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestFactoryAcceptsTodayAsEntryDate(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacherUser(t, db, "teacher@example.com")
	factory := service.NewProfileFactory(repository.NewUserRepository(db))

	today := time.Now().UTC().Format("2006-01-02")
	raw := json.RawMessage(fmt.Sprintf(
		`{"first_name":"Sam","last_name":"Learn","entry_date":"%s","teachers":[%d]}`,
		today, teacher.Teacher.ID,
	))
	_, err := factory.Build(context.Background(), model.RoleStudent, raw)
	assert.NoError(t, err)
}

func TestFactoryPanicsOnUnknownRole(t *testing.T) {
	db := newTestDB(t)
	factory := service.NewProfileFactory(repository.NewUserRepository(db))

	assert.Panics(t, func() {
		_, _ = factory.Build(context.Background(), model.Role("ghost"), json.RawMessage(`{}`))
	})
}
