package models

import (
	"time"
)

// ClassStatus is shared by classes, sections and subjects.
type ClassStatus string

const (
	ClassStatusActive   ClassStatus = "active"
	ClassStatusInactive ClassStatus = "inactive"
	ClassStatusArchived ClassStatus = "archived"
)

// Class defines a grade level (e.g. "Grade 5") based on the 'classes' table.
type Class struct {
	ID             int64       `json:"id" db:"id" example:"1"`
	SchoolID       int64       `json:"schoolId" db:"school_id" example:"1"`
	Name           string      `json:"name" db:"name" example:"Grade 5"`
	GradeLevel     int         `json:"gradeLevel" db:"grade_level" example:"5"`
	Description    *string     `json:"description,omitempty" db:"description"`
	AcademicYearID *int64      `json:"academicYearId,omitempty" db:"academic_year_id"`
	Capacity       int         `json:"capacity" db:"capacity" example:"40"`
	Status         ClassStatus `json:"status" db:"status" example:"active"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time   `json:"updatedAt" db:"updated_at"`
}

// Section defines a division of a class (e.g. "Section A").
// TeacherID is the homeroom teacher; it is one of the two relations that make
// a class "owned" by a teacher for authorization purposes.
type Section struct {
	ID         int64       `json:"id" db:"id"`
	SchoolID   int64       `json:"schoolId" db:"school_id"`
	ClassID    int64       `json:"classId" db:"class_id"`
	Name       string      `json:"name" db:"name" example:"A"`
	TeacherID  *int64      `json:"teacherId,omitempty" db:"teacher_id"`
	RoomNumber *string     `json:"roomNumber,omitempty" db:"room_number"`
	Capacity   int         `json:"capacity" db:"capacity"`
	Status     ClassStatus `json:"status" db:"status"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
}

// Subject defines a course of study based on the 'subjects' table.
type Subject struct {
	ID          int64       `json:"id" db:"id"`
	SchoolID    int64       `json:"schoolId" db:"school_id"`
	Name        string      `json:"name" db:"name" example:"Mathematics"`
	Code        string      `json:"code" db:"code" example:"MATH101"`
	Description *string     `json:"description,omitempty" db:"description"`
	Credits     float64     `json:"credits" db:"credits" example:"1"`
	IsElective  bool        `json:"isElective" db:"is_elective"`
	Status      ClassStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}

// ClassSubject assigns a subject to a (class, optional section) pair with a
// teacher and a weekly period count.
type ClassSubject struct {
	ID             int64     `json:"id" db:"id"`
	SchoolID       int64     `json:"schoolId" db:"school_id"`
	ClassID        int64     `json:"classId" db:"class_id"`
	SectionID      *int64    `json:"sectionId,omitempty" db:"section_id"`
	SubjectID      int64     `json:"subjectId" db:"subject_id"`
	TeacherID      *int64    `json:"teacherId,omitempty" db:"teacher_id"`
	AcademicYearID *int64    `json:"academicYearId,omitempty" db:"academic_year_id"`
	PeriodsPerWeek int       `json:"periodsPerWeek" db:"periods_per_week" example:"5"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Subject *Subject `json:"subject,omitempty"`
	Teacher *User    `json:"teacher,omitempty"`
}

// EnrollmentStatus defines the state of a student's class enrollment.
type EnrollmentStatus string

const (
	EnrollmentActive      EnrollmentStatus = "active"
	EnrollmentDropped     EnrollmentStatus = "dropped"
	EnrollmentTransferred EnrollmentStatus = "transferred"
)

// Enrollment records a student's membership in a class/section.
type Enrollment struct {
	ID             int64            `json:"id" db:"id"`
	SchoolID       int64            `json:"schoolId" db:"school_id"`
	StudentID      int64            `json:"studentId" db:"student_id"`
	ClassID        int64            `json:"classId" db:"class_id"`
	SectionID      *int64           `json:"sectionId,omitempty" db:"section_id"`
	AcademicYearID *int64           `json:"academicYearId,omitempty" db:"academic_year_id"`
	EnrollmentDate time.Time        `json:"enrollmentDate" db:"enrollment_date"`
	Status         EnrollmentStatus `json:"status" db:"status"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
}
