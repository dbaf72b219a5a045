package models

import (
	"time"
)

// SchoolStatus defines the lifecycle state of a school tenant.
type SchoolStatus string

const (
	SchoolStatusActive       SchoolStatus = "active"
	SchoolStatusInactive     SchoolStatus = "inactive"
	SchoolStatusPendingSetup SchoolStatus = "pending_setup"
	SchoolStatusSuspended    SchoolStatus = "suspended"
)

// School defines a tenant based on the 'schools' table. Every other
// tenant-owned entity carries this record's ID as school_id.
type School struct {
	ID             int64        `json:"id" db:"id" example:"1"`
	Name           string       `json:"name" db:"name" example:"Greenfield Academy"`
	Code           string       `json:"code" db:"code" example:"GRNF2024"`
	Address        *string      `json:"address,omitempty" db:"address"`
	City           *string      `json:"city,omitempty" db:"city"`
	Country        *string      `json:"country,omitempty" db:"country"`
	PhoneNumber    *string      `json:"phoneNumber,omitempty" db:"phone_number"`
	Email          *string      `json:"email,omitempty" db:"email"`
	Website        *string      `json:"website,omitempty" db:"website"`
	Status         SchoolStatus `json:"status" db:"status" example:"active"`
	SetupCompleted bool         `json:"setupCompleted" db:"setup_completed"`
	AdminID        int64        `json:"adminId" db:"admin_id"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time    `json:"updatedAt" db:"updated_at"`
}

// GradingScale maps a percentage band to a letter grade and grade points,
// based on the 'grading_scales' table. Bands are matched top-down by
// MinScore, so sparse scales fall through to the lowest band.
type GradingScale struct {
	ID          int64   `json:"id" db:"id"`
	SchoolID    int64   `json:"schoolId" db:"school_id"`
	Name        string  `json:"name" db:"name" example:"A+"`
	MinScore    float64 `json:"minScore" db:"min_score" example:"90"`
	MaxScore    float64 `json:"maxScore" db:"max_score" example:"100"`
	GradeLetter string  `json:"gradeLetter" db:"grade_letter" example:"A+"`
	GradePoint  float64 `json:"gradePoint" db:"grade_point" example:"4.0"`
}

// DefaultGradingScales returns the scale applied when a school has not
// defined its own.
func DefaultGradingScales() []GradingScale {
	return []GradingScale{
		{Name: "A+", MinScore: 90, MaxScore: 100, GradeLetter: "A+", GradePoint: 4.0},
		{Name: "A", MinScore: 85, MaxScore: 89.99, GradeLetter: "A", GradePoint: 3.7},
		{Name: "B+", MinScore: 80, MaxScore: 84.99, GradeLetter: "B+", GradePoint: 3.3},
		{Name: "B", MinScore: 75, MaxScore: 79.99, GradeLetter: "B", GradePoint: 3.0},
		{Name: "C+", MinScore: 70, MaxScore: 74.99, GradeLetter: "C+", GradePoint: 2.7},
		{Name: "C", MinScore: 65, MaxScore: 69.99, GradeLetter: "C", GradePoint: 2.3},
		{Name: "D", MinScore: 60, MaxScore: 64.99, GradeLetter: "D", GradePoint: 2.0},
		{Name: "F", MinScore: 0, MaxScore: 59.99, GradeLetter: "F", GradePoint: 0.0},
	}
}

// AcademicYear defines a school year, e.g. "2025-2026".
type AcademicYear struct {
	ID        int64     `json:"id" db:"id"`
	SchoolID  int64     `json:"schoolId" db:"school_id"`
	Name      string    `json:"name" db:"name" example:"2025-2026"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`
	IsCurrent bool      `json:"isCurrent" db:"is_current"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// TermType defines how a school splits its academic year.
type TermType string

const (
	TermSemester  TermType = "semester"
	TermTrimester TermType = "trimester"
	TermQuarter   TermType = "quarter"
	TermAnnual    TermType = "annual"
)

// Term defines a grading period within an academic year.
type Term struct {
	ID             int64     `json:"id" db:"id"`
	SchoolID       int64     `json:"schoolId" db:"school_id"`
	AcademicYearID int64     `json:"academicYearId" db:"academic_year_id"`
	Name           string    `json:"name" db:"name" example:"Term 1"`
	TermType       TermType  `json:"termType" db:"term_type" example:"semester"`
	StartDate      time.Time `json:"startDate" db:"start_date"`
	EndDate        time.Time `json:"endDate" db:"end_date"`
	IsCurrent      bool      `json:"isCurrent" db:"is_current"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Holiday defines a non-instructional day in the school calendar.
type Holiday struct {
	ID          int64     `json:"id" db:"id"`
	SchoolID    int64     `json:"schoolId" db:"school_id"`
	Name        string    `json:"name" db:"name" example:"Winter Break"`
	Date        time.Time `json:"date" db:"date"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
