package dto

import (
	"github.com/emreacar/schoolhub/internal/app/models"
)

// ClassResponse represents a grade level.
type ClassResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	GradeLevel     int     `json:"gradeLevel"`
	Description    *string `json:"description,omitempty"`
	AcademicYearID *int64  `json:"academicYearId,omitempty"`
	Capacity       int     `json:"capacity"`
	Status         string  `json:"status"`
}

// ClassListResponse represents a paginated list of classes.
type ClassListResponse struct {
	Classes    []ClassResponse `json:"classes"`
	Pagination PaginationInfo  `json:"pagination"`
}

// CreateClassRequest creates a grade level.
type CreateClassRequest struct {
	Name           string  `json:"name" binding:"required" example:"Grade 5"`
	GradeLevel     int     `json:"gradeLevel" binding:"required,min=1" example:"5"`
	Description    *string `json:"description,omitempty"`
	AcademicYearID *int64  `json:"academicYearId,omitempty"`
	Capacity       int     `json:"capacity" binding:"min=0" example:"40"`
}

// UpdateClassRequest updates a grade level.
type UpdateClassRequest struct {
	Name        string  `json:"name" binding:"required"`
	GradeLevel  int     `json:"gradeLevel" binding:"required,min=1"`
	Description *string `json:"description,omitempty"`
	Capacity    int     `json:"capacity" binding:"min=0"`
}

// SectionResponse represents a class division.
type SectionResponse struct {
	ID         int64   `json:"id"`
	ClassID    int64   `json:"classId"`
	Name       string  `json:"name"`
	TeacherID  *int64  `json:"teacherId,omitempty"`
	RoomNumber *string `json:"roomNumber,omitempty"`
	Capacity   int     `json:"capacity"`
	Status     string  `json:"status"`
}

// CreateSectionRequest creates a division inside a class.
type CreateSectionRequest struct {
	ClassID    int64   `json:"classId" binding:"required,min=1"`
	Name       string  `json:"name" binding:"required" example:"A"`
	TeacherID  *int64  `json:"teacherId,omitempty"`
	RoomNumber *string `json:"roomNumber,omitempty"`
	Capacity   int     `json:"capacity" binding:"min=0"`
}

// SubjectResponse represents a subject.
type SubjectResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
	Credits     float64 `json:"credits"`
	IsElective  bool    `json:"isElective"`
	Status      string  `json:"status"`
}

// CreateSubjectRequest creates a subject.
type CreateSubjectRequest struct {
	Name        string  `json:"name" binding:"required" example:"Mathematics"`
	Code        string  `json:"code" binding:"required" example:"MATH101"`
	Description *string `json:"description,omitempty"`
	Credits     float64 `json:"credits" binding:"min=0" example:"1"`
	IsElective  bool    `json:"isElective"`
}

// AssignSubjectRequest assigns a subject (and optionally a teacher) to a class.
type AssignSubjectRequest struct {
	ClassID        int64  `json:"classId" binding:"required,min=1"`
	SectionID      *int64 `json:"sectionId,omitempty"`
	SubjectID      int64  `json:"subjectId" binding:"required,min=1"`
	TeacherID      *int64 `json:"teacherId,omitempty"`
	AcademicYearID *int64 `json:"academicYearId,omitempty"`
	PeriodsPerWeek int    `json:"periodsPerWeek" binding:"min=0" example:"5"`
}

// ClassSubjectResponse represents a subject assignment on a class.
type ClassSubjectResponse struct {
	ID             int64   `json:"id"`
	ClassID        int64   `json:"classId"`
	SectionID      *int64  `json:"sectionId,omitempty"`
	SubjectID      int64   `json:"subjectId"`
	SubjectName    string  `json:"subjectName,omitempty"`
	SubjectCode    string  `json:"subjectCode,omitempty"`
	TeacherID      *int64  `json:"teacherId,omitempty"`
	TeacherName    string  `json:"teacherName,omitempty"`
	PeriodsPerWeek int     `json:"periodsPerWeek"`
}

// EnrollStudentRequest enrolls a student into a class/section.
type EnrollStudentRequest struct {
	StudentID      int64  `json:"studentId" binding:"required,min=1"`
	ClassID        int64  `json:"classId" binding:"required,min=1"`
	SectionID      *int64 `json:"sectionId,omitempty"`
	AcademicYearID *int64 `json:"academicYearId,omitempty"`
	EnrollmentDate string `json:"enrollmentDate" binding:"required" example:"2025-09-01"`
}

// EnrollmentResponse represents a class enrollment.
type EnrollmentResponse struct {
	ID             int64  `json:"id"`
	StudentID      int64  `json:"studentId"`
	ClassID        int64  `json:"classId"`
	SectionID      *int64 `json:"sectionId,omitempty"`
	EnrollmentDate string `json:"enrollmentDate"`
	Status         string `json:"status"`
}

// FromClass converts a model class to its response form.
func FromClass(c *models.Class) ClassResponse {
	if c == nil {
		return ClassResponse{}
	}
	return ClassResponse{
		ID:             c.ID,
		Name:           c.Name,
		GradeLevel:     c.GradeLevel,
		Description:    c.Description,
		AcademicYearID: c.AcademicYearID,
		Capacity:       c.Capacity,
		Status:         string(c.Status),
	}
}

// FromClasses converts a slice of model classes.
func FromClasses(classes []models.Class) []ClassResponse {
	out := make([]ClassResponse, 0, len(classes))
	for i := range classes {
		out = append(out, FromClass(&classes[i]))
	}
	return out
}

// FromSection converts a model section.
func FromSection(s *models.Section) SectionResponse {
	if s == nil {
		return SectionResponse{}
	}
	return SectionResponse{
		ID:         s.ID,
		ClassID:    s.ClassID,
		Name:       s.Name,
		TeacherID:  s.TeacherID,
		RoomNumber: s.RoomNumber,
		Capacity:   s.Capacity,
		Status:     string(s.Status),
	}
}

// FromSubject converts a model subject.
func FromSubject(s *models.Subject) SubjectResponse {
	if s == nil {
		return SubjectResponse{}
	}
	return SubjectResponse{
		ID:          s.ID,
		Name:        s.Name,
		Code:        s.Code,
		Description: s.Description,
		Credits:     s.Credits,
		IsElective:  s.IsElective,
		Status:      string(s.Status),
	}
}

// FromClassSubject converts a subject assignment with optional relations loaded.
func FromClassSubject(cs *models.ClassSubject) ClassSubjectResponse {
	if cs == nil {
		return ClassSubjectResponse{}
	}
	resp := ClassSubjectResponse{
		ID:             cs.ID,
		ClassID:        cs.ClassID,
		SectionID:      cs.SectionID,
		SubjectID:      cs.SubjectID,
		TeacherID:      cs.TeacherID,
		PeriodsPerWeek: cs.PeriodsPerWeek,
	}
	if cs.Subject != nil {
		resp.SubjectName = cs.Subject.Name
		resp.SubjectCode = cs.Subject.Code
	}
	if cs.Teacher != nil {
		resp.TeacherName = cs.Teacher.FullName()
	}
	return resp
}

// FromEnrollment converts a model enrollment.
func FromEnrollment(e *models.Enrollment) EnrollmentResponse {
	if e == nil {
		return EnrollmentResponse{}
	}
	return EnrollmentResponse{
		ID:             e.ID,
		StudentID:      e.StudentID,
		ClassID:        e.ClassID,
		SectionID:      e.SectionID,
		EnrollmentDate: e.EnrollmentDate.Format(dateLayout),
		Status:         string(e.Status),
	}
}
