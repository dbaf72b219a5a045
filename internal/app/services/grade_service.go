package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	authz "github.com/emreacar/schoolhub/internal/app/auth"
	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/app/repositories"
	"github.com/emreacar/schoolhub/internal/pkg/apperrors"
	"github.com/emreacar/schoolhub/internal/pkg/helpers"
	"github.com/emreacar/schoolhub/internal/pkg/validation"
)

// GradeService handles assignments, recorded scores and the derived grade
// summary view.
type GradeService struct {
	gradeRepo    *repositories.GradeRepository
	studentRepo  *repositories.StudentRepository
	academicRepo *repositories.AcademicRepository
	schoolRepo   *repositories.SchoolRepository
	aggregation  *AggregationService
	guard        *authz.Guard
	logger       zerolog.Logger
}

// NewGradeService creates a new GradeService
func NewGradeService(repos *repositories.Repositories, aggregation *AggregationService, guard *authz.Guard, logger zerolog.Logger) *GradeService {
	return &GradeService{
		gradeRepo:    repos.GradeRepository,
		studentRepo:  repos.StudentRepository,
		academicRepo: repos.AcademicRepository,
		schoolRepo:   repos.SchoolRepository,
		aggregation:  aggregation,
		guard:        guard,
		logger:       logger,
	}
}

// gradingScales loads the school's letter grade bands, falling back to the
// default scale when the school has not customized one.
func (s *GradeService) gradingScales(ctx context.Context, schoolID int64) ([]models.GradingScale, error) {
	scales, err := s.schoolRepo.ListGradingScales(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if len(scales) == 0 {
		scales = models.DefaultGradingScales()
	}
	return scales, nil
}

func (s *GradeService) authorize(ctx context.Context, actor authz.Actor, action authz.Action, resource authz.Resource, own authz.Ownership) error {
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
			Msg("gradebook access denied")
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// CreateAssignment adds graded work for a class/subject pair. The acting
// teacher becomes the assignment owner.
func (s *GradeService) CreateAssignment(ctx context.Context, actor authz.Actor, req *dto.CreateAssignmentRequest) (*models.Assignment, error) {
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		own = authz.Ownership{ClassID: req.ClassID}
	}
	if err := s.authorize(ctx, actor, authz.ActionCreate, authz.ResourceAssignments, own); err != nil {
		return nil, err
	}

	dueDate, err := helpers.ParseDate(req.DueDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	if _, err := s.academicRepo.GetClass(ctx, actor.SchoolID, req.ClassID); err != nil {
		return nil, err
	}
	if _, err := s.academicRepo.GetSubject(ctx, actor.SchoolID, req.SubjectID); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		SchoolID:       actor.SchoolID,
		ClassID:        req.ClassID,
		SectionID:      req.SectionID,
		SubjectID:      req.SubjectID,
		TeacherID:      actor.UserID,
		Title:          req.Title,
		Description:    req.Description,
		AssignmentType: req.AssignmentType,
		MaxScore:       req.MaxScore,
		Weight:         req.Weight,
		DueDate:        dueDate,
		Status:         models.AssignmentPublished,
		TermID:         req.TermID,
	}
	if err := s.gradeRepo.CreateAssignment(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// GetAssignment retrieves one assignment.
func (s *GradeService) GetAssignment(ctx context.Context, actor authz.Actor, id int64) (*models.Assignment, error) {
	assignment, err := s.gradeRepo.GetAssignment(ctx, actor.SchoolID, id)
	if err != nil {
		return nil, err
	}
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		own = authz.Ownership{ClassID: assignment.ClassID}
	}
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceAssignments, own); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ListAssignments retrieves assignments with filtering. Teachers are scoped
// to their own assignments.
func (s *GradeService) ListAssignments(ctx context.Context, actor authz.Actor, filter repositories.AssignmentFilter, page, pageSize int) ([]models.Assignment, int64, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceAssignments, authz.Ownership{}); err != nil {
		return nil, 0, err
	}
	if actor.Role == models.RoleTeacher {
		filter.TeacherID = &actor.UserID
	}
	return s.gradeRepo.ListAssignments(ctx, actor.SchoolID, filter, page, pageSize)
}

// UpdateAssignment modifies mutable assignment fields. Teachers can only
// touch their own assignments.
func (s *GradeService) UpdateAssignment(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateAssignmentRequest) (*models.Assignment, error) {
	assignment, err := s.gradeRepo.GetAssignment(ctx, actor.SchoolID, id)
	if err != nil {
		return nil, err
	}
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		if assignment.TeacherID != actor.UserID {
			return nil, apperrors.ErrPermissionDenied
		}
		own = authz.Ownership{ClassID: assignment.ClassID}
	}
	if err := s.authorize(ctx, actor, authz.ActionUpdate, authz.ResourceAssignments, own); err != nil {
		return nil, err
	}

	dueDate, err := helpers.ParseDate(req.DueDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.MaxScore = req.MaxScore
	assignment.Weight = req.Weight
	assignment.DueDate = dueDate
	if req.Status != "" {
		assignment.Status = req.Status
	}
	if err := s.gradeRepo.UpdateAssignment(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ArchiveAssignment retires an assignment. Teachers can only archive their
// own assignments; grades already recorded against it stay in place.
func (s *GradeService) ArchiveAssignment(ctx context.Context, actor authz.Actor, id int64) error {
	assignment, err := s.gradeRepo.GetAssignment(ctx, actor.SchoolID, id)
	if err != nil {
		return err
	}
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		if assignment.TeacherID != actor.UserID {
			return apperrors.ErrPermissionDenied
		}
		own = authz.Ownership{ClassID: assignment.ClassID}
	}
	if err := s.authorize(ctx, actor, authz.ActionDeactivate, authz.ResourceAssignments, own); err != nil {
		return err
	}
	return s.gradeRepo.UpdateAssignmentStatus(ctx, actor.SchoolID, id, models.AssignmentArchived)
}

// RecordGrade records one score. Scores above the maximum are rejected.
func (s *GradeService) RecordGrade(ctx context.Context, actor authz.Actor, req *dto.RecordGradeRequest) (*models.Grade, error) {
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		own = authz.Ownership{ClassID: req.ClassID}
	}
	if err := s.authorize(ctx, actor, authz.ActionCreate, authz.ResourceGrades, own); err != nil {
		return nil, err
	}

	if !validation.IsValidScore(req.Score, req.MaxScore) {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("score %.2f is outside the range [0, %.2f]", req.Score, req.MaxScore))
	}
	if _, err := s.studentRepo.GetByID(ctx, actor.SchoolID, req.StudentID); err != nil {
		return nil, err
	}
	if req.AssignmentID != nil {
		if _, err := s.gradeRepo.GetAssignment(ctx, actor.SchoolID, *req.AssignmentID); err != nil {
			return nil, err
		}
	}

	scales, err := s.gradingScales(ctx, actor.SchoolID)
	if err != nil {
		return nil, err
	}
	letter, points := s.aggregation.LetterFor(scales, req.Score/req.MaxScore*100)

	grade := &models.Grade{
		SchoolID:     actor.SchoolID,
		StudentID:    req.StudentID,
		AssignmentID: req.AssignmentID,
		SubjectID:    req.SubjectID,
		ClassID:      req.ClassID,
		Score:        req.Score,
		MaxScore:     req.MaxScore,
		GradeLetter:  letter,
		GradePoints:  points,
		Comments:     req.Comments,
		GradedBy:     actor.UserID,
		IsPublished:  req.IsPublished,
	}
	if err := s.gradeRepo.CreateGrade(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// BulkRecordGrades grades many students on one assignment. Every entry is
// validated against the assignment's maximum before anything is written.
func (s *GradeService) BulkRecordGrades(ctx context.Context, actor authz.Actor, req *dto.BulkRecordGradesRequest) (int, error) {
	assignment, err := s.gradeRepo.GetAssignment(ctx, actor.SchoolID, req.AssignmentID)
	if err != nil {
		return 0, err
	}
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		own = authz.Ownership{ClassID: assignment.ClassID}
	}
	if err := s.authorize(ctx, actor, authz.ActionBulk, authz.ResourceGrades, own); err != nil {
		return 0, err
	}

	scales, err := s.gradingScales(ctx, actor.SchoolID)
	if err != nil {
		return 0, err
	}

	grades := make([]models.Grade, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if !validation.IsValidScore(entry.Score, assignment.MaxScore) {
			return 0, apperrors.NewBadRequestError(fmt.Sprintf("score %.2f for student %d is outside the range [0, %.2f]", entry.Score, entry.StudentID, assignment.MaxScore))
		}
		letter, points := s.aggregation.LetterFor(scales, entry.Score/assignment.MaxScore*100)
		grades = append(grades, models.Grade{
			SchoolID:     actor.SchoolID,
			StudentID:    entry.StudentID,
			AssignmentID: &assignment.ID,
			SubjectID:    assignment.SubjectID,
			ClassID:      assignment.ClassID,
			Score:        entry.Score,
			MaxScore:     assignment.MaxScore,
			GradeLetter:  letter,
			GradePoints:  points,
			Comments:     entry.Comments,
			GradedBy:     actor.UserID,
			IsPublished:  req.IsPublished,
		})
	}

	return s.gradeRepo.BulkUpsertGrades(ctx, grades)
}

// UpdateGrade corrects a recorded score. Publication is one-way: a published
// grade stays published.
func (s *GradeService) UpdateGrade(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateGradeRequest) (*models.Grade, error) {
	grade, err := s.gradeRepo.GetGrade(ctx, actor.SchoolID, id)
	if err != nil {
		return nil, err
	}
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		own = authz.Ownership{ClassID: grade.ClassID}
	}
	if err := s.authorize(ctx, actor, authz.ActionUpdate, authz.ResourceGrades, own); err != nil {
		return nil, err
	}

	if !validation.IsValidScore(req.Score, grade.MaxScore) {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("score %.2f is outside the range [0, %.2f]", req.Score, grade.MaxScore))
	}

	scales, err := s.gradingScales(ctx, actor.SchoolID)
	if err != nil {
		return nil, err
	}
	grade.GradeLetter, grade.GradePoints = s.aggregation.LetterFor(scales, req.Score/grade.MaxScore*100)

	grade.Score = req.Score
	grade.Comments = req.Comments
	grade.IsPublished = grade.IsPublished || req.IsPublished
	if err := s.gradeRepo.UpdateGrade(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// GetStudentGrades retrieves one student's grades. Parents and students see
// published grades only.
func (s *GradeService) GetStudentGrades(ctx context.Context, actor authz.Actor, studentID int64, filter repositories.GradeFilter) ([]models.Grade, error) {
	if err := s.authorizeStudentRead(ctx, actor, studentID); err != nil {
		return nil, err
	}
	if actor.Role == models.RoleParent || actor.Role == models.RoleStudent {
		filter.PublishedOnly = true
	}
	return s.gradeRepo.ListStudentGrades(ctx, actor.SchoolID, studentID, filter)
}

// MyGrades retrieves the published grades of the student linked to the acting
// user. Parents use the my-children listing and the per-student endpoint.
func (s *GradeService) MyGrades(ctx context.Context, actor authz.Actor, filter repositories.GradeFilter) ([]models.Grade, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.ErrPermissionDenied
	}
	student, err := s.studentRepo.GetByUserID(ctx, actor.SchoolID, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.GetStudentGrades(ctx, actor, student.ID, filter)
}

// GetAssignmentGrades retrieves all recorded scores for one assignment.
func (s *GradeService) GetAssignmentGrades(ctx context.Context, actor authz.Actor, assignmentID int64) ([]models.Grade, error) {
	assignment, err := s.gradeRepo.GetAssignment(ctx, actor.SchoolID, assignmentID)
	if err != nil {
		return nil, err
	}
	// Class ownership is asserted for every ownership-scoped role; parents and
	// students read scores per student, never per assignment.
	own := authz.Ownership{ClassID: assignment.ClassID}
	if err := s.authorize(ctx, actor, authz.ActionRead, authz.ResourceGrades, own); err != nil {
		return nil, err
	}
	return s.gradeRepo.ListAssignmentGrades(ctx, actor.SchoolID, assignmentID)
}

// GetStudentSummary computes a student's weighted average per subject plus an
// overall average. Subjects with no gradable entries report a null average;
// a student with no graded work at all reports a null overall.
func (s *GradeService) GetStudentSummary(ctx context.Context, actor authz.Actor, studentID int64) (*dto.StudentGradeSummaryResponse, error) {
	if err := s.authorizeStudentRead(ctx, actor, studentID); err != nil {
		return nil, err
	}

	filter := repositories.GradeFilter{}
	if actor.Role == models.RoleParent || actor.Role == models.RoleStudent {
		filter.PublishedOnly = true
	}
	grades, err := s.gradeRepo.ListStudentGrades(ctx, actor.SchoolID, studentID, filter)
	if err != nil {
		return nil, err
	}

	subjects, err := s.academicRepo.ListSubjects(ctx, actor.SchoolID)
	if err != nil {
		return nil, err
	}
	subjectNames := make(map[int64]string, len(subjects))
	for i := range subjects {
		subjectNames[subjects[i].ID] = subjects[i].Name
	}

	bySubject := make(map[int64][]GradePoint)
	var all []GradePoint
	for i := range grades {
		point := gradePoint(&grades[i])
		bySubject[grades[i].SubjectID] = append(bySubject[grades[i].SubjectID], point)
		all = append(all, point)
	}

	subjectIDs := make([]int64, 0, len(bySubject))
	for id := range bySubject {
		subjectIDs = append(subjectIDs, id)
	}
	sort.Slice(subjectIDs, func(i, j int) bool { return subjectIDs[i] < subjectIDs[j] })

	scales, err := s.gradingScales(ctx, actor.SchoolID)
	if err != nil {
		return nil, err
	}

	summary := &dto.StudentGradeSummaryResponse{
		StudentID: studentID,
		Subjects:  make([]dto.SubjectGradeSummary, 0, len(subjectIDs)),
		Overall:   s.aggregation.AverageGrades(all),
	}
	if summary.Overall != nil {
		letter, _ := s.aggregation.LetterFor(scales, *summary.Overall)
		summary.OverallLetter = &letter
	}
	for _, id := range subjectIDs {
		points := bySubject[id]
		subject := dto.SubjectGradeSummary{
			SubjectID:   id,
			SubjectName: subjectNames[id],
			GradeCount:  len(points),
			Average:     s.aggregation.AverageGrades(points),
		}
		if subject.Average != nil {
			letter, _ := s.aggregation.LetterFor(scales, *subject.Average)
			subject.AverageLetter = &letter
		}
		summary.Subjects = append(summary.Subjects, subject)
	}
	return summary, nil
}

// gradePoint converts a grade row to an aggregation input. The assignment's
// weight applies when the assignment is loaded; ad-hoc grades weigh 1.
func gradePoint(g *models.Grade) GradePoint {
	point := GradePoint{Score: g.Score, MaxScore: g.MaxScore, Weight: 1}
	if g.Assignment != nil && g.Assignment.Weight > 0 {
		point.Weight = g.Assignment.Weight
	}
	return point
}

// authorizeStudentRead checks read access to one student's grades. Teachers
// own the student's class; parents and students own the student record.
func (s *GradeService) authorizeStudentRead(ctx context.Context, actor authz.Actor, studentID int64) error {
	own := authz.Ownership{StudentID: studentID}
	if actor.Role == models.RoleTeacher {
		student, err := s.studentRepo.GetByID(ctx, actor.SchoolID, studentID)
		if err != nil {
			return err
		}
		if student.ClassID == nil {
			return apperrors.ErrPermissionDenied
		}
		own = authz.Ownership{ClassID: *student.ClassID}
	}
	return s.authorize(ctx, actor, authz.ActionRead, authz.ResourceGrades, own)
}
