package dto

import (
	"github.com/emreacar/schoolhub/internal/app/models"
)

// StudentResponse represents a student record.
type StudentResponse struct {
	ID               int64   `json:"id"`
	EnrollmentNumber string  `json:"enrollmentNumber"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	DateOfBirth      string  `json:"dateOfBirth"`
	Gender           string  `json:"gender"`
	Email            *string `json:"email,omitempty"`
	PhoneNumber      *string `json:"phoneNumber,omitempty"`
	Address          *string `json:"address,omitempty"`
	ClassID          *int64  `json:"classId,omitempty"`
	ClassName        string  `json:"className,omitempty"`
	SectionID        *int64  `json:"sectionId,omitempty"`
	SectionName      string  `json:"sectionName,omitempty"`
	EnrollmentDate   string  `json:"enrollmentDate"`
	Status           string  `json:"status"`
}

// StudentListResponse represents a paginated list of students.
type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}

// CreateStudentRequest registers a new student in the school.
type CreateStudentRequest struct {
	EnrollmentNumber string        `json:"enrollmentNumber" binding:"required"`
	FirstName        string        `json:"firstName" binding:"required"`
	LastName         string        `json:"lastName" binding:"required"`
	DateOfBirth      string        `json:"dateOfBirth" binding:"required" example:"2012-04-15"`
	Gender           models.Gender `json:"gender" binding:"required"`
	Email            *string       `json:"email,omitempty"`
	PhoneNumber      *string       `json:"phoneNumber,omitempty"`
	Address          *string       `json:"address,omitempty"`
	ClassID          *int64        `json:"classId,omitempty"`
	SectionID        *int64        `json:"sectionId,omitempty"`
	EnrollmentDate   string        `json:"enrollmentDate" binding:"required" example:"2025-09-01"`
}

// UpdateStudentRequest updates mutable student fields.
type UpdateStudentRequest struct {
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Address     *string `json:"address,omitempty"`
	ClassID     *int64  `json:"classId,omitempty"`
	SectionID   *int64  `json:"sectionId,omitempty"`
}

// UpdateStudentStatusRequest transitions a student's enrollment status.
type UpdateStudentStatusRequest struct {
	Status models.StudentStatus `json:"status" binding:"required" example:"withdrawn"`
}

// LinkParentRequest links an existing parent user to a student.
type LinkParentRequest struct {
	ParentID         int64                   `json:"parentId" binding:"required,min=1"`
	Relationship     models.RelationshipType `json:"relationship" binding:"required" example:"mother"`
	IsPrimaryContact bool                    `json:"isPrimaryContact"`
}

// ParentLinkResponse represents a parent-student relation.
type ParentLinkResponse struct {
	ID               int64        `json:"id"`
	StudentID        int64        `json:"studentId"`
	Relationship     string       `json:"relationship"`
	IsPrimaryContact bool         `json:"isPrimaryContact"`
	Parent           UserResponse `json:"parent"`
}

// FromStudent converts a model student to its response form.
func FromStudent(s *models.Student) StudentResponse {
	if s == nil {
		return StudentResponse{}
	}
	resp := StudentResponse{
		ID:               s.ID,
		EnrollmentNumber: s.EnrollmentNumber,
		FirstName:        s.FirstName,
		LastName:         s.LastName,
		DateOfBirth:      s.DateOfBirth.Format(dateLayout),
		Gender:           string(s.Gender),
		Email:            s.Email,
		PhoneNumber:      s.PhoneNumber,
		Address:          s.Address,
		ClassID:          s.ClassID,
		SectionID:        s.SectionID,
		EnrollmentDate:   s.EnrollmentDate.Format(dateLayout),
		Status:           string(s.Status),
	}
	if s.Class != nil {
		resp.ClassName = s.Class.Name
	}
	if s.Section != nil {
		resp.SectionName = s.Section.Name
	}
	return resp
}

// FromStudents converts a slice of model students.
func FromStudents(students []models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, FromStudent(&students[i]))
	}
	return out
}

// FromParentLink converts a parent-student relation with its parent loaded.
func FromParentLink(link *models.ParentStudent) ParentLinkResponse {
	if link == nil {
		return ParentLinkResponse{}
	}
	resp := ParentLinkResponse{
		ID:               link.ID,
		StudentID:        link.StudentID,
		Relationship:     string(link.Relationship),
		IsPrimaryContact: link.IsPrimaryContact,
	}
	if link.Parent != nil {
		resp.Parent = FromUser(link.Parent)
	}
	return resp
}
