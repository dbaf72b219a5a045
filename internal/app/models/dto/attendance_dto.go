package dto

import (
	"github.com/emreacar/schoolhub/internal/app/models"
)

// MarkAttendanceRequest marks or re-marks one student on one date.
type MarkAttendanceRequest struct {
	StudentID int64                   `json:"studentId" binding:"required,min=1"`
	ClassID   int64                   `json:"classId" binding:"required,min=1"`
	SectionID *int64                  `json:"sectionId,omitempty"`
	SubjectID *int64                  `json:"subjectId,omitempty"`
	Date      string                  `json:"date" binding:"required" example:"2026-02-10"`
	Status    models.AttendanceStatus `json:"status" binding:"required" example:"present"`
	Notes     *string                 `json:"notes,omitempty"`
}

// BulkAttendanceEntry is one row of a bulk marking request.
type BulkAttendanceEntry struct {
	StudentID int64                   `json:"studentId" binding:"required,min=1"`
	Status    models.AttendanceStatus `json:"status" binding:"required"`
	Notes     *string                 `json:"notes,omitempty"`
}

// BulkMarkAttendanceRequest marks a whole class roster for one date.
type BulkMarkAttendanceRequest struct {
	ClassID   int64                 `json:"classId" binding:"required,min=1"`
	SectionID *int64                `json:"sectionId,omitempty"`
	SubjectID *int64                `json:"subjectId,omitempty"`
	Date      string                `json:"date" binding:"required" example:"2026-02-10"`
	Entries   []BulkAttendanceEntry `json:"entries" binding:"required,min=1,dive"`
}

// AttendanceResponse represents a single attendance record.
type AttendanceResponse struct {
	ID          int64   `json:"id"`
	StudentID   int64   `json:"studentId"`
	StudentName string  `json:"studentName,omitempty"`
	ClassID     int64   `json:"classId"`
	SectionID   *int64  `json:"sectionId,omitempty"`
	SubjectID   *int64  `json:"subjectId,omitempty"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes,omitempty"`
	MarkedBy    int64   `json:"markedBy"`
}

// AttendanceListResponse represents a list of attendance records.
type AttendanceListResponse struct {
	Records    []AttendanceResponse `json:"records"`
	Pagination PaginationInfo       `json:"pagination"`
}

// ClassAttendanceEntry is one roster row of the class day view. Status is
// null for students not yet marked on that date.
type ClassAttendanceEntry struct {
	StudentID   int64   `json:"studentId"`
	StudentName string  `json:"studentName"`
	RecordID    *int64  `json:"recordId,omitempty"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes,omitempty"`
}

// ClassAttendanceResponse is the full roster of one class on one date with
// each student's attendance status.
type ClassAttendanceResponse struct {
	ClassID int64                  `json:"classId"`
	Date    string                 `json:"date"`
	Entries []ClassAttendanceEntry `json:"entries"`
}

// BulkMarkAttendanceResponse reports the outcome of a bulk marking.
type BulkMarkAttendanceResponse struct {
	Marked int `json:"marked"`
}

// AttendanceSummaryResponse carries the aggregate statistics for one student
// over an explicit date range.
type AttendanceSummaryResponse struct {
	StudentID   int64   `json:"studentId"`
	StudentName string  `json:"studentName,omitempty"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	TotalDays   int     `json:"totalDays"`
	PresentDays int     `json:"presentDays"`
	AbsentDays  int     `json:"absentDays"`
	LateDays    int     `json:"lateDays"`
	ExcusedDays int     `json:"excusedDays"`
	Percentage  float64 `json:"percentage"`
}

// ClassAttendanceSummaryResponse aggregates per-student statistics for a
// class roster over an explicit date range.
type ClassAttendanceSummaryResponse struct {
	ClassID   int64                       `json:"classId"`
	StartDate string                      `json:"startDate"`
	EndDate   string                      `json:"endDate"`
	Students  []AttendanceSummaryResponse `json:"students"`
}

// FromAttendance converts a model attendance record.
func FromAttendance(a *models.Attendance) AttendanceResponse {
	if a == nil {
		return AttendanceResponse{}
	}
	return AttendanceResponse{
		ID:        a.ID,
		StudentID: a.StudentID,
		ClassID:   a.ClassID,
		SectionID: a.SectionID,
		SubjectID: a.SubjectID,
		Date:      a.Date.Format(dateLayout),
		Status:    string(a.Status),
		Notes:     a.Notes,
		MarkedBy:  a.MarkedBy,
	}
}

// FromAttendances converts a slice of model attendance records.
func FromAttendances(records []models.Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, FromAttendance(&records[i]))
	}
	return out
}
