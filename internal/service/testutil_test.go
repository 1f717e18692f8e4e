package service_test

import (
	"fmt"
	"testing"
	"time"

	"anoa.com/schoolboard/internal/bootstrap"
	"anoa.com/schoolboard/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared in-memory database keeps all pooled connections on
	// the same schema.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))

	return db
}

func createTeacherUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Email:        email,
		PasswordHash: "irrelevant",
		Role:         model.RoleTeacher,
	}
	user.SetProfile(&model.TeacherProfile{
		FirstName: "Pat",
		LastName:  "Teach",
		Degree:    model.DegreeMaster,
	})
	require.NoError(t, db.Create(user).Error)

	return user
}

func createStudentUser(t *testing.T, db *gorm.DB, email string, teachers ...model.TeacherProfile) *model.User {
	t.Helper()

	user := &model.User{
		Email:        email,
		PasswordHash: "irrelevant",
		Role:         model.RoleStudent,
	}
	user.SetProfile(&model.StudentProfile{
		FirstName: "Sam",
		LastName:  "Learn",
		EntryDate: time.Now().AddDate(-1, 0, 0),
		Teachers:  teachers,
	})
	require.NoError(t, db.Create(user).Error)

	return user
}

func createAdminUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Email:        email,
		PasswordHash: "irrelevant",
		Role:         model.RoleAdmin,
		IsStaff:      true,
	}
	user.SetProfile(&model.AdminProfile{FullName: "Jordan Admin"})
	require.NoError(t, db.Create(user).Error)

	return user
}
