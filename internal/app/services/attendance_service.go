package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	authz "github.com/emreacar/schoolhub/internal/app/auth"
	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/app/repositories"
	"github.com/emreacar/schoolhub/internal/pkg/apperrors"
	"github.com/emreacar/schoolhub/internal/pkg/helpers"
)

// AttendanceService handles attendance marking and the derived summary view.
type AttendanceService struct {
	attendanceRepo *repositories.AttendanceRepository
	studentRepo    *repositories.StudentRepository
	academicRepo   *repositories.AcademicRepository
	aggregation    *AggregationService
	guard          *authz.Guard
	logger         zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(repos *repositories.Repositories, aggregation *AggregationService, guard *authz.Guard, logger zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: repos.AttendanceRepository,
		studentRepo:    repos.StudentRepository,
		academicRepo:   repos.AcademicRepository,
		aggregation:    aggregation,
		guard:          guard,
		logger:         logger,
	}
}

func (s *AttendanceService) authorize(ctx context.Context, actor authz.Actor, action authz.Action, own authz.Ownership) error {
	decision, err := s.guard.Authorize(ctx, actor, action, authz.ResourceAttendance, actor.SchoolID, own)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		s.logger.Debug().
			Str("reason", string(decision.Reason)).
			Int64("actorId", actor.UserID).
			Str("action", string(action)).
			Msg("attendance access denied")
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// Mark writes a single attendance record. Re-marking the same
// (student, date, subject) updates the existing record in place.
func (s *AttendanceService) Mark(ctx context.Context, actor authz.Actor, req *dto.MarkAttendanceRequest) (*models.Attendance, error) {
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		own = authz.Ownership{ClassID: req.ClassID}
	}
	if err := s.authorize(ctx, actor, authz.ActionCreate, own); err != nil {
		return nil, err
	}

	if !req.Status.IsValid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid attendance status: %s", req.Status))
	}
	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	student, err := s.studentRepo.GetByID(ctx, actor.SchoolID, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student.ClassID == nil || *student.ClassID != req.ClassID {
		return nil, apperrors.NewBadRequestError("student is not enrolled in the given class")
	}

	record := &models.Attendance{
		SchoolID:  actor.SchoolID,
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		SectionID: req.SectionID,
		SubjectID: req.SubjectID,
		Date:      date,
		Status:    req.Status,
		Notes:     req.Notes,
		MarkedBy:  actor.UserID,
	}
	if err := s.attendanceRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// BulkMark writes attendance for a whole roster on one date. Every entry is
// validated against the class roster before anything is written; one bad
// entry rejects the whole request.
func (s *AttendanceService) BulkMark(ctx context.Context, actor authz.Actor, req *dto.BulkMarkAttendanceRequest) (int, error) {
	own := authz.Ownership{}
	if actor.Role == models.RoleTeacher {
		own = authz.Ownership{ClassID: req.ClassID}
	}
	if err := s.authorize(ctx, actor, authz.ActionBulk, own); err != nil {
		return 0, err
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return 0, apperrors.NewBadRequestError(err.Error())
	}
	if _, err := s.academicRepo.GetClass(ctx, actor.SchoolID, req.ClassID); err != nil {
		return 0, err
	}

	roster, _, err := s.studentRepo.List(ctx, actor.SchoolID, repositories.StudentFilter{
		ClassID:   &req.ClassID,
		SectionID: req.SectionID,
	}, 1, helpers.MaxPageSize*10)
	if err != nil {
		return 0, err
	}
	enrolled := make(map[int64]bool, len(roster))
	for i := range roster {
		enrolled[roster[i].ID] = true
	}

	records := make([]models.Attendance, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if !entry.Status.IsValid() {
			return 0, apperrors.NewBadRequestError(fmt.Sprintf("invalid attendance status for student %d: %s", entry.StudentID, entry.Status))
		}
		if !enrolled[entry.StudentID] {
			return 0, apperrors.NewBadRequestError(fmt.Sprintf("student %d is not on the class roster", entry.StudentID))
		}
		records = append(records, models.Attendance{
			SchoolID:  actor.SchoolID,
			StudentID: entry.StudentID,
			ClassID:   req.ClassID,
			SectionID: req.SectionID,
			SubjectID: req.SubjectID,
			Date:      date,
			Status:    entry.Status,
			Notes:     entry.Notes,
			MarkedBy:  actor.UserID,
		})
	}

	return s.attendanceRepo.BulkUpsert(ctx, records)
}

// GetClassAttendance retrieves the full class roster for one date with each
// student's attendance status. Students not yet marked carry a null status.
func (s *AttendanceService) GetClassAttendance(ctx context.Context, actor authz.Actor, classID int64, sectionID *int64, dateStr string) (*dto.ClassAttendanceResponse, error) {
	// Class ownership is asserted for every ownership-scoped role, so parents
	// and students cannot read a whole class through this endpoint.
	own := authz.Ownership{ClassID: classID}
	if err := s.authorize(ctx, actor, authz.ActionRead, own); err != nil {
		return nil, err
	}

	date, err := helpers.ParseDate(dateStr)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	if _, err := s.academicRepo.GetClass(ctx, actor.SchoolID, classID); err != nil {
		return nil, err
	}

	active := models.StudentStatusActive
	roster, _, err := s.studentRepo.List(ctx, actor.SchoolID, repositories.StudentFilter{
		ClassID:   &classID,
		SectionID: sectionID,
		Status:    &active,
	}, 1, helpers.MaxPageSize*10)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByClassDate(ctx, actor.SchoolID, classID, sectionID, date)
	if err != nil {
		return nil, err
	}

	return &dto.ClassAttendanceResponse{
		ClassID: classID,
		Date:    date.Format(helpers.DateLayout),
		Entries: mergeRosterAttendance(roster, records),
	}, nil
}

// mergeRosterAttendance joins a class roster with the day's attendance
// records. Every roster student gets an entry; unmarked students keep a null
// status.
func mergeRosterAttendance(roster []models.Student, records []models.Attendance) []dto.ClassAttendanceEntry {
	byStudent := make(map[int64]*models.Attendance, len(records))
	for i := range records {
		byStudent[records[i].StudentID] = &records[i]
	}

	entries := make([]dto.ClassAttendanceEntry, 0, len(roster))
	for i := range roster {
		st := &roster[i]
		entry := dto.ClassAttendanceEntry{
			StudentID:   st.ID,
			StudentName: st.FullName(),
		}
		if record, ok := byStudent[st.ID]; ok {
			status := string(record.Status)
			entry.RecordID = &record.ID
			entry.Status = &status
			entry.Notes = record.Notes
		}
		entries = append(entries, entry)
	}
	return entries
}

// GetStudentAttendance retrieves one student's records within an explicit
// inclusive date range.
func (s *AttendanceService) GetStudentAttendance(ctx context.Context, actor authz.Actor, studentID int64, startStr, endStr string) ([]models.Attendance, error) {
	start, end, err := helpers.ParseDateRange(startStr, endStr)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	if err := s.authorizeStudentRead(ctx, actor, studentID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByStudentRange(ctx, actor.SchoolID, studentID, start, end)
}

// GetSummary computes the attendance summary for one student over an explicit
// inclusive date range.
func (s *AttendanceService) GetSummary(ctx context.Context, actor authz.Actor, studentID int64, startStr, endStr string) (*dto.AttendanceSummaryResponse, error) {
	start, end, err := helpers.ParseDateRange(startStr, endStr)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	if err := s.authorizeStudentRead(ctx, actor, studentID); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByStudentRange(ctx, actor.SchoolID, studentID, start, end)
	if err != nil {
		return nil, err
	}

	summary := s.aggregation.SummarizeAttendance(records, start, end)
	return &dto.AttendanceSummaryResponse{
		StudentID:   studentID,
		StartDate:   start.Format(helpers.DateLayout),
		EndDate:     end.Format(helpers.DateLayout),
		TotalDays:   summary.TotalDays,
		PresentDays: summary.PresentDays,
		AbsentDays:  summary.AbsentDays,
		LateDays:    summary.LateDays,
		ExcusedDays: summary.ExcusedDays,
		Percentage:  summary.Percentage,
	}, nil
}

// GetClassSummary computes per-student attendance summaries for a class
// roster over an explicit inclusive date range.
func (s *AttendanceService) GetClassSummary(ctx context.Context, actor authz.Actor, classID int64, sectionID *int64, startStr, endStr string) (*dto.ClassAttendanceSummaryResponse, error) {
	start, end, err := helpers.ParseDateRange(startStr, endStr)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	// Class ownership is asserted for every ownership-scoped role, so parents
	// and students cannot read a whole class through this endpoint.
	own := authz.Ownership{ClassID: classID}
	if err := s.authorize(ctx, actor, authz.ActionRead, own); err != nil {
		return nil, err
	}

	if _, err := s.academicRepo.GetClass(ctx, actor.SchoolID, classID); err != nil {
		return nil, err
	}

	roster, _, err := s.studentRepo.List(ctx, actor.SchoolID,
		repositories.StudentFilter{ClassID: &classID, SectionID: sectionID},
		1, helpers.MaxPageSize*10)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByClassRange(ctx, actor.SchoolID, classID, sectionID, start, end)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[int64][]models.Attendance)
	for _, r := range records {
		byStudent[r.StudentID] = append(byStudent[r.StudentID], r)
	}

	resp := &dto.ClassAttendanceSummaryResponse{
		ClassID:   classID,
		StartDate: start.Format(helpers.DateLayout),
		EndDate:   end.Format(helpers.DateLayout),
		Students:  make([]dto.AttendanceSummaryResponse, 0, len(roster)),
	}
	for i := range roster {
		st := &roster[i]
		summary := s.aggregation.SummarizeAttendance(byStudent[st.ID], start, end)
		resp.Students = append(resp.Students, dto.AttendanceSummaryResponse{
			StudentID:   st.ID,
			StudentName: st.FullName(),
			StartDate:   resp.StartDate,
			EndDate:     resp.EndDate,
			TotalDays:   summary.TotalDays,
			PresentDays: summary.PresentDays,
			AbsentDays:  summary.AbsentDays,
			LateDays:    summary.LateDays,
			ExcusedDays: summary.ExcusedDays,
			Percentage:  summary.Percentage,
		})
	}
	return resp, nil
}

// authorizeStudentRead checks read access to one student's attendance.
// Teachers own the student's class; parents and students own the student
// record itself.
func (s *AttendanceService) authorizeStudentRead(ctx context.Context, actor authz.Actor, studentID int64) error {
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
	return s.authorize(ctx, actor, authz.ActionRead, own)
}
