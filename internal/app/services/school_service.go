package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	authz "github.com/emreacar/schoolhub/internal/app/auth"
	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/app/repositories"
	"github.com/emreacar/schoolhub/internal/pkg/apperrors"
	"github.com/emreacar/schoolhub/internal/pkg/helpers"
)

// SchoolService handles school profile and academic calendar management.
type SchoolService struct {
	schoolRepo   *repositories.SchoolRepository
	calendarRepo *repositories.CalendarRepository
	guard        *authz.Guard
	logger       zerolog.Logger
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(repos *repositories.Repositories, guard *authz.Guard, logger zerolog.Logger) *SchoolService {
	return &SchoolService{
		schoolRepo:   repos.SchoolRepository,
		calendarRepo: repos.CalendarRepository,
		guard:        guard,
		logger:       logger,
	}
}

func (s *SchoolService) authorize(ctx context.Context, actor authz.Actor, action authz.Action, resource authz.Resource, schoolID int64) error {
	decision, err := s.guard.Authorize(ctx, actor, action, resource, schoolID, authz.Ownership{})
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// Get retrieves the actor's school profile.
func (s *SchoolService) Get(ctx context.Context, actor authz.Actor) (*models.School, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceSchools, actor.SchoolID); err != nil {
		return nil, err
	}
	return s.schoolRepo.GetByID(ctx, actor.SchoolID)
}

// Update modifies the actor's school profile.
func (s *SchoolService) Update(ctx context.Context, actor authz.Actor, req *dto.UpdateSchoolRequest) (*models.School, error) {
	if err := s.authorize(ctx, actor, authz.ActionUpdate, authz.ResourceSchools, actor.SchoolID); err != nil {
		return nil, err
	}

	school, err := s.schoolRepo.GetByID(ctx, actor.SchoolID)
	if err != nil {
		return nil, err
	}

	school.Name = req.Name
	school.Address = req.Address
	school.City = req.City
	school.Country = req.Country
	school.PhoneNumber = req.PhoneNumber
	school.Email = req.Email
	school.Website = req.Website
	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// GetGradingScales retrieves the school's letter grade bands, falling back to
// the default scale when the school has not customized one.
func (s *SchoolService) GetGradingScales(ctx context.Context, actor authz.Actor) ([]models.GradingScale, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceSchools, actor.SchoolID); err != nil {
		return nil, err
	}
	scales, err := s.schoolRepo.ListGradingScales(ctx, actor.SchoolID)
	if err != nil {
		return nil, err
	}
	if len(scales) == 0 {
		scales = models.DefaultGradingScales()
	}
	return scales, nil
}

// UpdateGradingScales replaces the school's grading scale. New letters apply
// to grades recorded from then on; existing rows keep their letter.
func (s *SchoolService) UpdateGradingScales(ctx context.Context, actor authz.Actor, req *dto.UpdateGradingScalesRequest) ([]models.GradingScale, error) {
	if err := s.authorize(ctx, actor, authz.ActionUpdate, authz.ResourceSchools, actor.SchoolID); err != nil {
		return nil, err
	}

	scales := make([]models.GradingScale, 0, len(req.Scales))
	for _, entry := range req.Scales {
		if entry.MinScore > entry.MaxScore {
			return nil, apperrors.NewBadRequestError("grading scale band " + entry.Name + " has minScore above maxScore")
		}
		scales = append(scales, models.GradingScale{
			SchoolID:    actor.SchoolID,
			Name:        entry.Name,
			MinScore:    entry.MinScore,
			MaxScore:    entry.MaxScore,
			GradeLetter: entry.GradeLetter,
			GradePoint:  entry.GradePoint,
		})
	}
	if err := s.schoolRepo.ReplaceGradingScales(ctx, actor.SchoolID, scales); err != nil {
		return nil, err
	}
	return scales, nil
}

// CompleteSetup marks the tenant's initial configuration as done and
// activates the school.
func (s *SchoolService) CompleteSetup(ctx context.Context, actor authz.Actor) error {
	if err := s.authorize(ctx, actor, authz.ActionUpdate, authz.ResourceSchools, actor.SchoolID); err != nil {
		return err
	}
	if err := s.schoolRepo.MarkSetupCompleted(ctx, actor.SchoolID); err != nil {
		return err
	}
	return s.schoolRepo.UpdateStatus(ctx, actor.SchoolID, models.SchoolStatusActive)
}

// ListAll retrieves every school. Platform-level operation for super admins;
// the tenant check passes only for actors outside any tenant.
func (s *SchoolService) ListAll(ctx context.Context, actor authz.Actor, status *models.SchoolStatus, page, pageSize int) ([]models.School, int64, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceSchools, 0); err != nil {
		return nil, 0, err
	}
	return s.schoolRepo.List(ctx, status, page, pageSize)
}

// SetStatus transitions a school's lifecycle status. Platform-level.
func (s *SchoolService) SetStatus(ctx context.Context, actor authz.Actor, schoolID int64, status models.SchoolStatus) error {
	if err := s.authorize(ctx, actor, authz.ActionDeactivate, authz.ResourceSchools, 0); err != nil {
		return err
	}
	return s.schoolRepo.UpdateStatus(ctx, schoolID, status)
}

// CreateAcademicYear adds an academic year to the calendar.
func (s *SchoolService) CreateAcademicYear(ctx context.Context, actor authz.Actor, req *dto.CreateAcademicYearRequest) (*models.AcademicYear, error) {
	if err := s.authorize(ctx, actor, authz.ActionCreate, authz.ResourceCalendar, actor.SchoolID); err != nil {
		return nil, err
	}

	start, end, err := helpers.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	year := &models.AcademicYear{
		SchoolID:  actor.SchoolID,
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		IsCurrent: req.IsCurrent,
	}
	if err := s.calendarRepo.CreateAcademicYear(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// ListAcademicYears retrieves the school's academic years.
func (s *SchoolService) ListAcademicYears(ctx context.Context, actor authz.Actor) ([]models.AcademicYear, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceCalendar, actor.SchoolID); err != nil {
		return nil, err
	}
	return s.calendarRepo.ListAcademicYears(ctx, actor.SchoolID)
}

// GetCurrentAcademicYear retrieves the tenant's academic year flagged current.
func (s *SchoolService) GetCurrentAcademicYear(ctx context.Context, actor authz.Actor) (*models.AcademicYear, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceCalendar, actor.SchoolID); err != nil {
		return nil, err
	}
	return s.calendarRepo.GetCurrentAcademicYear(ctx, actor.SchoolID)
}

// CreateTerm adds a grading period to an academic year.
func (s *SchoolService) CreateTerm(ctx context.Context, actor authz.Actor, req *dto.CreateTermRequest) (*models.Term, error) {
	if err := s.authorize(ctx, actor, authz.ActionCreate, authz.ResourceCalendar, actor.SchoolID); err != nil {
		return nil, err
	}

	year, err := s.calendarRepo.GetAcademicYear(ctx, actor.SchoolID, req.AcademicYearID)
	if err != nil {
		return nil, err
	}

	start, end, err := helpers.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	if start.Before(year.StartDate) || end.After(year.EndDate) {
		return nil, apperrors.NewBadRequestError("term dates must fall within the academic year")
	}

	term := &models.Term{
		SchoolID:       actor.SchoolID,
		AcademicYearID: year.ID,
		Name:           req.Name,
		TermType:       req.TermType,
		StartDate:      start,
		EndDate:        end,
		IsCurrent:      req.IsCurrent,
	}
	if err := s.calendarRepo.CreateTerm(ctx, term); err != nil {
		return nil, err
	}
	return term, nil
}

// ListTerms retrieves the terms of an academic year.
func (s *SchoolService) ListTerms(ctx context.Context, actor authz.Actor, academicYearID int64) ([]models.Term, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceCalendar, actor.SchoolID); err != nil {
		return nil, err
	}
	return s.calendarRepo.ListTerms(ctx, actor.SchoolID, academicYearID)
}

// CreateHoliday adds a holiday to the school calendar.
func (s *SchoolService) CreateHoliday(ctx context.Context, actor authz.Actor, req *dto.CreateHolidayRequest) (*models.Holiday, error) {
	if err := s.authorize(ctx, actor, authz.ActionCreate, authz.ResourceCalendar, actor.SchoolID); err != nil {
		return nil, err
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	holiday := &models.Holiday{
		SchoolID:    actor.SchoolID,
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
	}
	if err := s.calendarRepo.CreateHoliday(ctx, holiday); err != nil {
		return nil, err
	}
	return holiday, nil
}

// ListHolidays retrieves the school's holidays within an explicit inclusive
// range.
func (s *SchoolService) ListHolidays(ctx context.Context, actor authz.Actor, start, end time.Time) ([]models.Holiday, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceCalendar, actor.SchoolID); err != nil {
		return nil, err
	}
	return s.calendarRepo.ListHolidays(ctx, actor.SchoolID, start, end)
}

// DeleteHoliday removes a holiday from the calendar.
func (s *SchoolService) DeleteHoliday(ctx context.Context, actor authz.Actor, id int64) error {
	if err := s.authorize(ctx, actor, authz.ActionDeactivate, authz.ResourceCalendar, actor.SchoolID); err != nil {
		return err
	}
	return s.calendarRepo.DeleteHoliday(ctx, actor.SchoolID, id)
}
