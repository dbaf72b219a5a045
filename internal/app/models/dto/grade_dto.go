package dto

import (
	"github.com/emreacar/schoolhub/internal/app/models"
)

// CreateAssignmentRequest creates graded work for a class/subject pair.
type CreateAssignmentRequest struct {
	ClassID        int64                 `json:"classId" binding:"required,min=1"`
	SectionID      *int64                `json:"sectionId,omitempty"`
	SubjectID      int64                 `json:"subjectId" binding:"required,min=1"`
	Title          string                `json:"title" binding:"required" example:"Fractions Quiz"`
	Description    *string               `json:"description,omitempty"`
	AssignmentType models.AssignmentType `json:"assignmentType" binding:"required" example:"quiz"`
	MaxScore       float64               `json:"maxScore" binding:"required,gt=0" example:"100"`
	Weight         float64               `json:"weight" binding:"min=0" example:"1"`
	DueDate        string                `json:"dueDate" binding:"required" example:"2026-03-15"`
	TermID         *int64                `json:"termId,omitempty"`
}

// UpdateAssignmentRequest updates mutable assignment fields.
type UpdateAssignmentRequest struct {
	Title       string                  `json:"title" binding:"required"`
	Description *string                 `json:"description,omitempty"`
	MaxScore    float64                 `json:"maxScore" binding:"required,gt=0"`
	Weight      float64                 `json:"weight" binding:"min=0"`
	DueDate     string                  `json:"dueDate" binding:"required"`
	Status      models.AssignmentStatus `json:"status,omitempty"`
}

// AssignmentResponse represents an assignment.
type AssignmentResponse struct {
	ID             int64   `json:"id"`
	ClassID        int64   `json:"classId"`
	SectionID      *int64  `json:"sectionId,omitempty"`
	SubjectID      int64   `json:"subjectId"`
	TeacherID      int64   `json:"teacherId"`
	Title          string  `json:"title"`
	Description    *string `json:"description,omitempty"`
	AssignmentType string  `json:"assignmentType"`
	MaxScore       float64 `json:"maxScore"`
	Weight         float64 `json:"weight"`
	DueDate        string  `json:"dueDate"`
	Status         string  `json:"status"`
	TermID         *int64  `json:"termId,omitempty"`
}

// AssignmentListResponse represents a paginated list of assignments.
type AssignmentListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// RecordGradeRequest records one score for a student.
type RecordGradeRequest struct {
	StudentID    int64   `json:"studentId" binding:"required,min=1"`
	AssignmentID *int64  `json:"assignmentId,omitempty"`
	SubjectID    int64   `json:"subjectId" binding:"required,min=1"`
	ClassID      int64   `json:"classId" binding:"required,min=1"`
	Score        float64 `json:"score" binding:"min=0"`
	MaxScore     float64 `json:"maxScore" binding:"required,gt=0"`
	Comments     *string `json:"comments,omitempty"`
	IsPublished  bool    `json:"isPublished"`
}

// BulkGradeEntry is one row of a bulk grading request.
type BulkGradeEntry struct {
	StudentID int64   `json:"studentId" binding:"required,min=1"`
	Score     float64 `json:"score" binding:"min=0"`
	Comments  *string `json:"comments,omitempty"`
}

// BulkRecordGradesRequest grades many students on one assignment.
type BulkRecordGradesRequest struct {
	AssignmentID int64            `json:"assignmentId" binding:"required,min=1"`
	Entries      []BulkGradeEntry `json:"entries" binding:"required,min=1,dive"`
	IsPublished  bool             `json:"isPublished"`
}

// UpdateGradeRequest corrects a recorded score.
type UpdateGradeRequest struct {
	Score       float64 `json:"score" binding:"min=0"`
	Comments    *string `json:"comments,omitempty"`
	IsPublished bool    `json:"isPublished"`
}

// GradeResponse represents a recorded score.
type GradeResponse struct {
	ID              int64    `json:"id"`
	StudentID       int64    `json:"studentId"`
	AssignmentID    *int64   `json:"assignmentId,omitempty"`
	AssignmentTitle string   `json:"assignmentTitle,omitempty"`
	SubjectID       int64    `json:"subjectId"`
	ClassID         int64    `json:"classId"`
	Score           float64  `json:"score"`
	MaxScore        float64  `json:"maxScore"`
	Percentage      *float64 `json:"percentage,omitempty"`
	GradeLetter     string   `json:"gradeLetter,omitempty"`
	GradePoints     float64  `json:"gradePoints"`
	Comments        *string  `json:"comments,omitempty"`
	IsPublished     bool     `json:"isPublished"`
}

// GradeListResponse represents a list of grades.
type GradeListResponse struct {
	Grades     []GradeResponse `json:"grades"`
	Pagination PaginationInfo  `json:"pagination"`
}

// BulkRecordGradesResponse reports the outcome of a bulk grading.
type BulkRecordGradesResponse struct {
	Recorded int `json:"recorded"`
}

// StudentGradeSummaryResponse carries a student's weighted average, grouped
// per subject. Average is null when no gradable entries exist.
type StudentGradeSummaryResponse struct {
	StudentID     int64                 `json:"studentId"`
	Subjects      []SubjectGradeSummary `json:"subjects"`
	Overall       *float64              `json:"overallAverage"`
	OverallLetter *string               `json:"overallLetter,omitempty"`
}

// SubjectGradeSummary is the weighted average for one subject. The letter is
// resolved against the school's grading scale and omitted with the average.
type SubjectGradeSummary struct {
	SubjectID     int64    `json:"subjectId"`
	SubjectName   string   `json:"subjectName,omitempty"`
	GradeCount    int      `json:"gradeCount"`
	Average       *float64 `json:"average"`
	AverageLetter *string  `json:"averageLetter,omitempty"`
}

// FromAssignment converts a model assignment.
func FromAssignment(a *models.Assignment) AssignmentResponse {
	if a == nil {
		return AssignmentResponse{}
	}
	return AssignmentResponse{
		ID:             a.ID,
		ClassID:        a.ClassID,
		SectionID:      a.SectionID,
		SubjectID:      a.SubjectID,
		TeacherID:      a.TeacherID,
		Title:          a.Title,
		Description:    a.Description,
		AssignmentType: string(a.AssignmentType),
		MaxScore:       a.MaxScore,
		Weight:         a.Weight,
		DueDate:        a.DueDate.Format(dateLayout),
		Status:         string(a.Status),
		TermID:         a.TermID,
	}
}

// FromAssignments converts a slice of model assignments.
func FromAssignments(assignments []models.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, FromAssignment(&assignments[i]))
	}
	return out
}

// FromGrade converts a model grade. Percentage is omitted when the maximum
// score is not positive.
func FromGrade(g *models.Grade) GradeResponse {
	if g == nil {
		return GradeResponse{}
	}
	resp := GradeResponse{
		ID:           g.ID,
		StudentID:    g.StudentID,
		AssignmentID: g.AssignmentID,
		SubjectID:    g.SubjectID,
		ClassID:      g.ClassID,
		Score:        g.Score,
		MaxScore:     g.MaxScore,
		GradeLetter:  g.GradeLetter,
		GradePoints:  g.GradePoints,
		Comments:     g.Comments,
		IsPublished:  g.IsPublished,
	}
	if g.MaxScore > 0 {
		pct := g.Score / g.MaxScore * 100
		resp.Percentage = &pct
	}
	if g.Assignment != nil {
		resp.AssignmentTitle = g.Assignment.Title
	}
	return resp
}

// FromGrades converts a slice of model grades.
func FromGrades(grades []models.Grade) []GradeResponse {
	out := make([]GradeResponse, 0, len(grades))
	for i := range grades {
		out = append(out, FromGrade(&grades[i]))
	}
	return out
}
