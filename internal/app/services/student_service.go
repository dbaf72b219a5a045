package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	authz "github.com/emreacar/schoolhub/internal/app/auth"
	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/app/repositories"
	"github.com/emreacar/schoolhub/internal/pkg/apperrors"
	"github.com/emreacar/schoolhub/internal/pkg/helpers"
	"github.com/emreacar/schoolhub/internal/pkg/validation"
)

// StudentService handles student records and parent-student links.
type StudentService struct {
	studentRepo *repositories.StudentRepository
	userRepo    *repositories.UserRepository
	guard       *authz.Guard
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(repos *repositories.Repositories, guard *authz.Guard, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: repos.StudentRepository,
		userRepo:    repos.UserRepository,
		guard:       guard,
		logger:      logger,
	}
}

func (s *StudentService) authorize(ctx context.Context, actor authz.Actor, action authz.Action, schoolID int64, own authz.Ownership) error {
	decision, err := s.guard.Authorize(ctx, actor, action, authz.ResourceStudents, schoolID, own)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		s.logger.Debug().
			Str("reason", string(decision.Reason)).
			Int64("actorId", actor.UserID).
			Str("action", string(action)).
			Msg("students access denied")
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, actor authz.Actor, req *dto.CreateStudentRequest) (*models.Student, error) {
	if err := s.authorize(ctx, actor, authz.ActionCreate, actor.SchoolID, authz.Ownership{}); err != nil {
		return nil, err
	}

	number := strings.TrimSpace(req.EnrollmentNumber)
	if !validation.IsValidEnrollmentNumber(number) {
		return nil, apperrors.NewBadRequestError("invalid enrollment number")
	}

	dob, err := helpers.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	enrolled, err := helpers.ParseDate(req.EnrollmentDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	student := &models.Student{
		SchoolID:         actor.SchoolID,
		EnrollmentNumber: number,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		DateOfBirth:      dob,
		Gender:           req.Gender,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		ClassID:          req.ClassID,
		SectionID:        req.SectionID,
		EnrollmentDate:   enrolled,
		Status:           models.StudentStatusActive,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Get retrieves one student. Ownership-scoped roles see only students linked
// to them.
func (s *StudentService) Get(ctx context.Context, actor authz.Actor, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, actor.SchoolID, id)
	if err != nil {
		return nil, err
	}

	own := authz.Ownership{StudentID: id}
	if actor.Role == models.RoleTeacher {
		if student.ClassID == nil {
			return nil, apperrors.ErrPermissionDenied
		}
		own = authz.Ownership{ClassID: *student.ClassID}
	}
	if err := s.authorize(ctx, actor, authz.ActionRead, student.SchoolID, own); err != nil {
		return nil, err
	}
	return student, nil
}

// List retrieves students of the actor's school. For ownership-scoped roles
// the result is pre-scoped to their linked students.
func (s *StudentService) List(ctx context.Context, actor authz.Actor, filter repositories.StudentFilter, page, pageSize int) ([]models.Student, int64, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, actor.SchoolID, authz.Ownership{}); err != nil {
		return nil, 0, err
	}

	switch actor.Role {
	case models.RoleParent:
		students, err := s.studentRepo.ListStudentsOfParent(ctx, actor.SchoolID, actor.UserID)
		if err != nil {
			return nil, 0, err
		}
		return students, int64(len(students)), nil
	case models.RoleStudent:
		student, err := s.studentRepo.GetByUserID(ctx, actor.SchoolID, actor.UserID)
		if err != nil {
			return nil, 0, err
		}
		return []models.Student{*student}, 1, nil
	}

	return s.studentRepo.List(ctx, actor.SchoolID, filter, page, pageSize)
}

// Update modifies a student's mutable fields.
func (s *StudentService) Update(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, actor.SchoolID, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, authz.ActionUpdate, student.SchoolID, authz.Ownership{}); err != nil {
		return nil, err
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Email = req.Email
	student.PhoneNumber = req.PhoneNumber
	student.Address = req.Address
	student.ClassID = req.ClassID
	student.SectionID = req.SectionID
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// SetStatus transitions a student's enrollment status. Withdrawal and
// graduation are status transitions, never deletes.
func (s *StudentService) SetStatus(ctx context.Context, actor authz.Actor, id int64, status models.StudentStatus) error {
	if err := s.authorize(ctx, actor, authz.ActionDeactivate, actor.SchoolID, authz.Ownership{}); err != nil {
		return err
	}
	return s.studentRepo.UpdateStatus(ctx, actor.SchoolID, id, status)
}

// LinkParent links a parent user to a student.
func (s *StudentService) LinkParent(ctx context.Context, actor authz.Actor, studentID int64, req *dto.LinkParentRequest) (*models.ParentStudent, error) {
	if err := s.authorize(ctx, actor, authz.ActionUpdate, actor.SchoolID, authz.Ownership{}); err != nil {
		return nil, err
	}

	parent, err := s.userRepo.GetByID(ctx, actor.SchoolID, req.ParentID)
	if err != nil {
		return nil, err
	}
	if parent.Role != models.RoleParent {
		return nil, apperrors.NewBadRequestError("linked user must have the parent role")
	}

	if _, err := s.studentRepo.GetByID(ctx, actor.SchoolID, studentID); err != nil {
		return nil, err
	}

	link := &models.ParentStudent{
		SchoolID:         actor.SchoolID,
		ParentID:         req.ParentID,
		StudentID:        studentID,
		Relationship:     req.Relationship,
		IsPrimaryContact: req.IsPrimaryContact,
	}
	if err := s.studentRepo.LinkParent(ctx, link); err != nil {
		return nil, err
	}
	link.Parent = parent
	return link, nil
}

// UnlinkParent removes a parent-student link.
func (s *StudentService) UnlinkParent(ctx context.Context, actor authz.Actor, studentID, parentID int64) error {
	if err := s.authorize(ctx, actor, authz.ActionUpdate, actor.SchoolID, authz.Ownership{}); err != nil {
		return err
	}
	return s.studentRepo.UnlinkParent(ctx, actor.SchoolID, studentID, parentID)
}

// ListParents retrieves the parents linked to a student.
func (s *StudentService) ListParents(ctx context.Context, actor authz.Actor, studentID int64) ([]models.ParentStudent, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, actor.SchoolID, authz.Ownership{StudentID: studentID}); err != nil {
		return nil, err
	}
	return s.studentRepo.ListParents(ctx, actor.SchoolID, studentID)
}

// MyChildren retrieves the students linked to the acting parent.
func (s *StudentService) MyChildren(ctx context.Context, actor authz.Actor) ([]models.Student, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, actor.SchoolID, authz.Ownership{}); err != nil {
		return nil, err
	}
	return s.studentRepo.ListStudentsOfParent(ctx, actor.SchoolID, actor.UserID)
}
