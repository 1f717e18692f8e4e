package model

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles. Values outside this set are a
// programming error, not user input.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

type Degree string

const (
	DegreeBachelor  Degree = "Bachelor"
	DegreePhD       Degree = "PhD"
	DegreeAssociate Degree = "Associate"
	DegreeMaster    Degree = "Master"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:20;not null" json:"role"`
	IsStaff      bool      `gorm:"default:false" json:"is_staff"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Exactly one of these is populated, matching Role. Profiles are
	// deleted together with the user.
	Admin   *AdminProfile   `gorm:"constraint:OnDelete:CASCADE" json:"admin,omitempty"`
	Teacher *TeacherProfile `gorm:"constraint:OnDelete:CASCADE" json:"teacher,omitempty"`
	Student *StudentProfile `gorm:"constraint:OnDelete:CASCADE" json:"student,omitempty"`

	Articles []Article `gorm:"foreignKey:AuthorID" json:"articles,omitempty"`
}

// Profile is the role-specific attribute bundle attached 1:1 to a user.
// The three profile types form a sealed set.
type Profile interface {
	ProfileRole() Role
}

type AdminProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"size:100;not null" json:"full_name"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AdminProfile) ProfileRole() Role { return RoleAdmin }

type TeacherProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Degree    Degree    `gorm:"size:20" json:"degree"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Students []StudentProfile `gorm:"many2many:teacher_students;joinForeignKey:TeacherProfileID;joinReferences:StudentProfileID" json:"students,omitempty"`
}

func (TeacherProfile) ProfileRole() Role { return RoleTeacher }

type StudentProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	EntryDate time.Time `gorm:"type:date" json:"entry_date"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Teachers []TeacherProfile `gorm:"many2many:teacher_students;joinForeignKey:StudentProfileID;joinReferences:TeacherProfileID" json:"teachers,omitempty"`
}

func (StudentProfile) ProfileRole() Role { return RoleStudent }

// TeacherStudent is the join record between teacher and student profiles.
// It has no lifecycle of its own: rows are created when a student profile
// is created and removed when either side goes away.
type TeacherStudent struct {
	TeacherProfileID uint `gorm:"primaryKey" json:"teacher_profile_id"`
	StudentProfileID uint `gorm:"primaryKey" json:"student_profile_id"`
}

func (TeacherStudent) TableName() string { return "teacher_students" }

// Profile returns the profile matching the user's role. The role set is
// closed, so an unknown role panics rather than returning an error.
func (u *User) Profile() Profile {
	switch u.Role {
	case RoleAdmin:
		return u.Admin
	case RoleTeacher:
		return u.Teacher
	case RoleStudent:
		return u.Student
	}
	panic(fmt.Sprintf("unknown role: %q", u.Role))
}

// SetProfile attaches the profile to the relation selected by the user's
// role. A role mismatch or an unknown role is a programming error and
// panics.
func (u *User) SetProfile(p Profile) {
	if p == nil || p.ProfileRole() != u.Role {
		panic(fmt.Sprintf("profile does not match user role %q", u.Role))
	}

	switch u.Role {
	case RoleAdmin:
		u.Admin = p.(*AdminProfile)
	case RoleTeacher:
		u.Teacher = p.(*TeacherProfile)
	case RoleStudent:
		u.Student = p.(*StudentProfile)
	default:
		panic(fmt.Sprintf("unknown role: %q", u.Role))
	}
}
