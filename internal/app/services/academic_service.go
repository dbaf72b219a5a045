package services

import (
	"context"

	"github.com/rs/zerolog"

	authz "github.com/emreacar/schoolhub/internal/app/auth"
	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/app/repositories"
	"github.com/emreacar/schoolhub/internal/pkg/apperrors"
	"github.com/emreacar/schoolhub/internal/pkg/helpers"
)

// AcademicService handles classes, sections, subjects, subject assignments
// and enrollments.
type AcademicService struct {
	academicRepo *repositories.AcademicRepository
	studentRepo  *repositories.StudentRepository
	userRepo     *repositories.UserRepository
	guard        *authz.Guard
	logger       zerolog.Logger
}

// NewAcademicService creates a new AcademicService
func NewAcademicService(repos *repositories.Repositories, guard *authz.Guard, logger zerolog.Logger) *AcademicService {
	return &AcademicService{
		academicRepo: repos.AcademicRepository,
		studentRepo:  repos.StudentRepository,
		userRepo:     repos.UserRepository,
		guard:        guard,
		logger:       logger,
	}
}

func (s *AcademicService) authorize(ctx context.Context, actor authz.Actor, action authz.Action, resource authz.Resource, own authz.Ownership) error {
	decision, err := s.guard.Authorize(ctx, actor, action, resource, actor.SchoolID, own)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		s.logger.Debug().
			Str("reason", string(decision.Reason)).
			Int64("actorId", actor.UserID).
			Str("resource", string(resource)).
			Str("action", string(action)).
			Msg("academic access denied")
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// CreateClass adds a grade level.
func (s *AcademicService) CreateClass(ctx context.Context, actor authz.Actor, req *dto.CreateClassRequest) (*models.Class, error) {
	if err := s.authorize(ctx, actor, authz.ActionCreate, authz.ResourceClasses, authz.Ownership{}); err != nil {
		return nil, err
	}

	class := &models.Class{
		SchoolID:       actor.SchoolID,
		Name:           req.Name,
		GradeLevel:     req.GradeLevel,
		Description:    req.Description,
		AcademicYearID: req.AcademicYearID,
		Capacity:       req.Capacity,
		Status:         models.ClassStatusActive,
	}
	if err := s.academicRepo.CreateClass(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// GetClass retrieves one class.
func (s *AcademicService) GetClass(ctx context.Context, actor authz.Actor, id int64) (*models.Class, error) {
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		own = authz.Ownership{ClassID: id}
	}
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceClasses, own); err != nil {
		return nil, err
	}
	return s.academicRepo.GetClass(ctx, actor.SchoolID, id)
}

// ListClasses retrieves the classes of the actor's school.
func (s *AcademicService) ListClasses(ctx context.Context, actor authz.Actor, status *models.ClassStatus, page, pageSize int) ([]models.Class, int64, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceClasses, authz.Ownership{}); err != nil {
		return nil, 0, err
	}
	return s.academicRepo.ListClasses(ctx, actor.SchoolID, status, page, pageSize)
}

// UpdateClass modifies a grade level.
func (s *AcademicService) UpdateClass(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateClassRequest) (*models.Class, error) {
	if err := s.authorize(ctx, actor, authz.ActionUpdate, authz.ResourceClasses, authz.Ownership{}); err != nil {
		return nil, err
	}

	class, err := s.academicRepo.GetClass(ctx, actor.SchoolID, id)
	if err != nil {
		return nil, err
	}

	class.Name = req.Name
	class.GradeLevel = req.GradeLevel
	class.Description = req.Description
	class.Capacity = req.Capacity
	if err := s.academicRepo.UpdateClass(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// SetClassStatus transitions a class's lifecycle status.
func (s *AcademicService) SetClassStatus(ctx context.Context, actor authz.Actor, id int64, status models.ClassStatus) error {
	if err := s.authorize(ctx, actor, authz.ActionDeactivate, authz.ResourceClasses, authz.Ownership{}); err != nil {
		return err
	}
	return s.academicRepo.UpdateClassStatus(ctx, actor.SchoolID, id, status)
}

// MyClasses retrieves the classes the acting teacher is assigned to.
func (s *AcademicService) MyClasses(ctx context.Context, actor authz.Actor) ([]models.Class, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceClasses, authz.Ownership{}); err != nil {
		return nil, err
	}
	return s.academicRepo.ListTeacherClasses(ctx, actor.SchoolID, actor.UserID)
}

// CreateSection adds a division to a class.
func (s *AcademicService) CreateSection(ctx context.Context, actor authz.Actor, req *dto.CreateSectionRequest) (*models.Section, error) {
	if err := s.authorize(ctx, actor, authz.ActionCreate, authz.ResourceSections, authz.Ownership{}); err != nil {
		return nil, err
	}

	if _, err := s.academicRepo.GetClass(ctx, actor.SchoolID, req.ClassID); err != nil {
		return nil, err
	}
	if req.TeacherID != nil {
		teacher, err := s.userRepo.GetByID(ctx, actor.SchoolID, *req.TeacherID)
		if err != nil {
			return nil, err
		}
		if teacher.Role != models.RoleTeacher {
			return nil, apperrors.NewBadRequestError("homeroom teacher must have the teacher role")
		}
	}

	section := &models.Section{
		SchoolID:   actor.SchoolID,
		ClassID:    req.ClassID,
		Name:       req.Name,
		TeacherID:  req.TeacherID,
		RoomNumber: req.RoomNumber,
		Capacity:   req.Capacity,
		Status:     models.ClassStatusActive,
	}
	if err := s.academicRepo.CreateSection(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// ListSections retrieves the sections of a class.
func (s *AcademicService) ListSections(ctx context.Context, actor authz.Actor, classID int64) ([]models.Section, error) {
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		own = authz.Ownership{ClassID: classID}
	}
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceSections, own); err != nil {
		return nil, err
	}
	return s.academicRepo.ListSections(ctx, actor.SchoolID, classID)
}

// UpdateSection modifies a class division.
func (s *AcademicService) UpdateSection(ctx context.Context, actor authz.Actor, id int64, req *dto.CreateSectionRequest) (*models.Section, error) {
	if err := s.authorize(ctx, actor, authz.ActionUpdate, authz.ResourceSections, authz.Ownership{}); err != nil {
		return nil, err
	}

	section, err := s.academicRepo.GetSection(ctx, actor.SchoolID, id)
	if err != nil {
		return nil, err
	}

	section.Name = req.Name
	section.TeacherID = req.TeacherID
	section.RoomNumber = req.RoomNumber
	section.Capacity = req.Capacity
	if err := s.academicRepo.UpdateSection(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// CreateSubject adds a subject.
func (s *AcademicService) CreateSubject(ctx context.Context, actor authz.Actor, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	if err := s.authorize(ctx, actor, authz.ActionCreate, authz.ResourceSubjects, authz.Ownership{}); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		SchoolID:    actor.SchoolID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Credits:     req.Credits,
		IsElective:  req.IsElective,
		Status:      models.ClassStatusActive,
	}
	if err := s.academicRepo.CreateSubject(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// ListSubjects retrieves the subjects of the actor's school.
func (s *AcademicService) ListSubjects(ctx context.Context, actor authz.Actor) ([]models.Subject, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceSubjects, authz.Ownership{}); err != nil {
		return nil, err
	}
	return s.academicRepo.ListSubjects(ctx, actor.SchoolID)
}

// SetSubjectStatus transitions a subject's lifecycle status.
func (s *AcademicService) SetSubjectStatus(ctx context.Context, actor authz.Actor, id int64, status models.ClassStatus) error {
	if err := s.authorize(ctx, actor, authz.ActionDeactivate, authz.ResourceSubjects, authz.Ownership{}); err != nil {
		return err
	}
	return s.academicRepo.UpdateSubjectStatus(ctx, actor.SchoolID, id, status)
}

// AssignSubject links a subject (and optionally a teacher) to a class.
func (s *AcademicService) AssignSubject(ctx context.Context, actor authz.Actor, req *dto.AssignSubjectRequest) (*models.ClassSubject, error) {
	if err := s.authorize(ctx, actor, authz.ActionUpdate, authz.ResourceSubjects, authz.Ownership{}); err != nil {
		return nil, err
	}

	if _, err := s.academicRepo.GetClass(ctx, actor.SchoolID, req.ClassID); err != nil {
		return nil, err
	}
	if _, err := s.academicRepo.GetSubject(ctx, actor.SchoolID, req.SubjectID); err != nil {
		return nil, err
	}
	if req.TeacherID != nil {
		teacher, err := s.userRepo.GetByID(ctx, actor.SchoolID, *req.TeacherID)
		if err != nil {
			return nil, err
		}
		if teacher.Role != models.RoleTeacher {
			return nil, apperrors.NewBadRequestError("assigned teacher must have the teacher role")
		}
	}

	cs := &models.ClassSubject{
		SchoolID:       actor.SchoolID,
		ClassID:        req.ClassID,
		SectionID:      req.SectionID,
		SubjectID:      req.SubjectID,
		TeacherID:      req.TeacherID,
		AcademicYearID: req.AcademicYearID,
		PeriodsPerWeek: req.PeriodsPerWeek,
	}
	if err := s.academicRepo.AssignSubject(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// ListClassSubjects retrieves the subject assignments of a class.
func (s *AcademicService) ListClassSubjects(ctx context.Context, actor authz.Actor, classID int64) ([]models.ClassSubject, error) {
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		own = authz.Ownership{ClassID: classID}
	}
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceSubjects, own); err != nil {
		return nil, err
	}
	return s.academicRepo.ListClassSubjects(ctx, actor.SchoolID, classID)
}

// RemoveClassSubject deletes a subject assignment.
func (s *AcademicService) RemoveClassSubject(ctx context.Context, actor authz.Actor, id int64) error {
	if err := s.authorize(ctx, actor, authz.ActionUpdate, authz.ResourceSubjects, authz.Ownership{}); err != nil {
		return err
	}
	return s.academicRepo.RemoveClassSubject(ctx, actor.SchoolID, id)
}

// Enroll records a student's membership in a class/section.
func (s *AcademicService) Enroll(ctx context.Context, actor authz.Actor, req *dto.EnrollStudentRequest) (*models.Enrollment, error) {
	if err := s.authorize(ctx, actor, authz.ActionCreate, authz.ResourceEnrollments, authz.Ownership{}); err != nil {
		return nil, err
	}

	if _, err := s.studentRepo.GetByID(ctx, actor.SchoolID, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.academicRepo.GetClass(ctx, actor.SchoolID, req.ClassID); err != nil {
		return nil, err
	}

	date, err := helpers.ParseDate(req.EnrollmentDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	enrollment := &models.Enrollment{
		SchoolID:       actor.SchoolID,
		StudentID:      req.StudentID,
		ClassID:        req.ClassID,
		SectionID:      req.SectionID,
		AcademicYearID: req.AcademicYearID,
		EnrollmentDate: date,
		Status:         models.EnrollmentActive,
	}
	if err := s.academicRepo.Enroll(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// ListEnrollments retrieves the enrollments of a class.
func (s *AcademicService) ListEnrollments(ctx context.Context, actor authz.Actor, classID int64) ([]models.Enrollment, error) {
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		own = authz.Ownership{ClassID: classID}
	}
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceEnrollments, own); err != nil {
		return nil, err
	}
	return s.academicRepo.ListEnrollments(ctx, actor.SchoolID, classID)
}

// SetEnrollmentStatus transitions an enrollment's status.
func (s *AcademicService) SetEnrollmentStatus(ctx context.Context, actor authz.Actor, id int64, status models.EnrollmentStatus) error {
	if err := s.authorize(ctx, actor, authz.ActionUpdate, authz.ResourceEnrollments, authz.Ownership{}); err != nil {
		return err
	}
	return s.academicRepo.UpdateEnrollmentStatus(ctx, actor.SchoolID, id, status)
}
