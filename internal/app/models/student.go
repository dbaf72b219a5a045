package models

import (
	"time"
)

// Gender values accepted on student records.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// StudentStatus defines the enrollment state of a student. Students are never
// hard-deleted; withdrawal is a status transition.
type StudentStatus string

const (
	StudentStatusActive      StudentStatus = "active"
	StudentStatusInactive    StudentStatus = "inactive"
	StudentStatusGraduated   StudentStatus = "graduated"
	StudentStatusTransferred StudentStatus = "transferred"
	StudentStatusWithdrawn   StudentStatus = "withdrawn"
)

// Student defines the student model based on the 'students' table.
// EnrollmentNumber is unique within a school, not globally.
type Student struct {
	ID               int64         `json:"id" db:"id" example:"1"`
	SchoolID         int64         `json:"schoolId" db:"school_id" example:"1"`
	UserID           *int64        `json:"userId,omitempty" db:"user_id"`
	EnrollmentNumber string        `json:"enrollmentNumber" db:"enrollment_number" example:"STU-4F2A91C3"`
	FirstName        string        `json:"firstName" db:"first_name" example:"Liam"`
	LastName         string        `json:"lastName" db:"last_name" example:"Okafor"`
	DateOfBirth      time.Time     `json:"dateOfBirth" db:"date_of_birth"`
	Gender           Gender        `json:"gender" db:"gender" example:"male"`
	Email            *string       `json:"email,omitempty" db:"email"`
	PhoneNumber      *string       `json:"phoneNumber,omitempty" db:"phone_number"`
	Address          *string       `json:"address,omitempty" db:"address"`
	ClassID          *int64        `json:"classId,omitempty" db:"class_id"`
	SectionID        *int64        `json:"sectionId,omitempty" db:"section_id"`
	EnrollmentDate   time.Time     `json:"enrollmentDate" db:"enrollment_date"`
	Status           StudentStatus `json:"status" db:"status" example:"active"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Class   *Class   `json:"class,omitempty"`
	Section *Section `json:"section,omitempty"`
}

// FullName returns the display name used in rosters and summaries.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// RelationshipType qualifies a parent-student link.
type RelationshipType string

const (
	RelationshipFather      RelationshipType = "father"
	RelationshipMother      RelationshipType = "mother"
	RelationshipGuardian    RelationshipType = "guardian"
	RelationshipGrandparent RelationshipType = "grandparent"
	RelationshipOther       RelationshipType = "other"
)

// ParentStudent links a parent user to a student within a school. The link is
// the ownership relation the authorization guard consults for parent access.
type ParentStudent struct {
	ID               int64            `json:"id" db:"id"`
	SchoolID         int64            `json:"schoolId" db:"school_id"`
	ParentID         int64            `json:"parentId" db:"parent_id"`
	StudentID        int64            `json:"studentId" db:"student_id"`
	Relationship     RelationshipType `json:"relationship" db:"relationship" example:"mother"`
	IsPrimaryContact bool             `json:"isPrimaryContact" db:"is_primary_contact"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Parent  *User    `json:"parent,omitempty"`
	Student *Student `json:"student,omitempty"`
}
