package models

import (
	"time"
)

// AttendanceStatus defines the per-day marking for a student.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
	AttendanceMedical AttendanceStatus = "medical"
)

// IsValid reports whether s is a known attendance status.
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused, AttendanceMedical:
		return true
	}
	return false
}

// Attendance defines a single attendance record based on the 'attendance'
// table. At most one record exists per (school, student, date, subject);
// re-marking updates the existing row.
type Attendance struct {
	ID        int64            `json:"id" db:"id"`
	SchoolID  int64            `json:"schoolId" db:"school_id"`
	StudentID int64            `json:"studentId" db:"student_id"`
	ClassID   int64            `json:"classId" db:"class_id"`
	SectionID *int64           `json:"sectionId,omitempty" db:"section_id"`
	SubjectID *int64           `json:"subjectId,omitempty" db:"subject_id"`
	Date      time.Time        `json:"date" db:"date"`
	Status    AttendanceStatus `json:"status" db:"status" example:"present"`
	Notes     *string          `json:"notes,omitempty" db:"notes"`
	MarkedBy  int64            `json:"markedBy" db:"marked_by"`
	MarkedAt  time.Time        `json:"markedAt" db:"marked_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`
}
