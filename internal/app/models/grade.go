package models

import (
	"time"
)

// AssignmentType categorizes graded work.
type AssignmentType string

const (
	AssignmentHomework      AssignmentType = "homework"
	AssignmentQuiz          AssignmentType = "quiz"
	AssignmentTest          AssignmentType = "test"
	AssignmentExam          AssignmentType = "exam"
	AssignmentProject       AssignmentType = "project"
	AssignmentClasswork     AssignmentType = "classwork"
	AssignmentParticipation AssignmentType = "participation"
)

// AssignmentStatus defines the publication state of an assignment.
type AssignmentStatus string

const (
	AssignmentDraft     AssignmentStatus = "draft"
	AssignmentPublished AssignmentStatus = "published"
	AssignmentClosed    AssignmentStatus = "closed"
	AssignmentGraded    AssignmentStatus = "graded"
	AssignmentArchived  AssignmentStatus = "archived"
)

// Assignment defines graded work for a (class, subject) pair based on the
// 'assignments' table. Weight feeds the weighted grade average.
type Assignment struct {
	ID             int64            `json:"id" db:"id"`
	SchoolID       int64            `json:"schoolId" db:"school_id"`
	ClassID        int64            `json:"classId" db:"class_id"`
	SectionID      *int64           `json:"sectionId,omitempty" db:"section_id"`
	SubjectID      int64            `json:"subjectId" db:"subject_id"`
	TeacherID      int64            `json:"teacherId" db:"teacher_id"`
	Title          string           `json:"title" db:"title" example:"Fractions Quiz"`
	Description    *string          `json:"description,omitempty" db:"description"`
	AssignmentType AssignmentType   `json:"assignmentType" db:"assignment_type" example:"quiz"`
	MaxScore       float64          `json:"maxScore" db:"max_score" example:"100"`
	Weight         float64          `json:"weight" db:"weight" example:"1"`
	DueDate        time.Time        `json:"dueDate" db:"due_date"`
	Status         AssignmentStatus `json:"status" db:"status" example:"published"`
	TermID         *int64           `json:"termId,omitempty" db:"term_id"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`
}

// Grade defines a score for a (student, assignment) pair based on the
// 'grades' table.
type Grade struct {
	ID           int64      `json:"id" db:"id"`
	SchoolID     int64      `json:"schoolId" db:"school_id"`
	StudentID    int64      `json:"studentId" db:"student_id"`
	AssignmentID *int64     `json:"assignmentId,omitempty" db:"assignment_id"`
	SubjectID    int64      `json:"subjectId" db:"subject_id"`
	ClassID      int64      `json:"classId" db:"class_id"`
	Score        float64    `json:"score" db:"score" example:"82.5"`
	MaxScore     float64    `json:"maxScore" db:"max_score" example:"100"`
	GradeLetter  string     `json:"gradeLetter" db:"grade_letter" example:"B+"`
	GradePoints  float64    `json:"gradePoints" db:"grade_points" example:"3.3"`
	Comments     *string    `json:"comments,omitempty" db:"comments"`
	GradedBy     int64      `json:"gradedBy" db:"graded_by"`
	IsPublished  bool       `json:"isPublished" db:"is_published"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty" db:"published_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Assignment *Assignment `json:"assignment,omitempty"`
}
