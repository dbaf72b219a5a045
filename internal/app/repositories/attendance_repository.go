package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emreacar/schoolhub/internal/app/models"
)

const attendanceColumns = `id, school_id, student_id, class_id, section_id, subject_id, date, status, notes, marked_by, marked_at, updated_at`

// AttendanceRepository handles database operations for attendance records.
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert marks one student on one date. At most one row exists per
// (school, student, date, subject); re-marking updates the existing row.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.Attendance) error {
	query := `
		INSERT INTO attendance (school_id, student_id, class_id, section_id, subject_id, date, status, notes, marked_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (school_id, student_id, date, COALESCE(subject_id, 0))
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes,
		              marked_by = EXCLUDED.marked_by, updated_at = NOW()
		RETURNING id, marked_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		record.SchoolID, record.StudentID, record.ClassID, record.SectionID,
		record.SubjectID, record.Date, record.Status, record.Notes, record.MarkedBy,
	).Scan(&record.ID, &record.MarkedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting attendance: %w", err)
	}
	return nil
}

// BulkUpsert marks a whole roster for one date inside one transaction.
// Returns the number of rows written.
func (r *AttendanceRepository) BulkUpsert(ctx context.Context, records []models.Attendance) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO attendance (school_id, student_id, class_id, section_id, subject_id, date, status, notes, marked_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (school_id, student_id, date, COALESCE(subject_id, 0))
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes,
		              marked_by = EXCLUDED.marked_by, updated_at = NOW()
	`

	for i := range records {
		rec := &records[i]
		_, err := tx.Exec(ctx, query,
			rec.SchoolID, rec.StudentID, rec.ClassID, rec.SectionID,
			rec.SubjectID, rec.Date, rec.Status, rec.Notes, rec.MarkedBy)
		if err != nil {
			return 0, fmt.Errorf("error marking student %d: %w", rec.StudentID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing bulk attendance: %w", err)
	}
	return len(records), nil
}

// ListByClassDate retrieves a class's attendance for one date.
func (r *AttendanceRepository) ListByClassDate(ctx context.Context, schoolID, classID int64, sectionID *int64, date time.Time) ([]models.Attendance, error) {
	query := squirrel.Select(attendanceColumns).
		From("attendance").
		Where("school_id = ?", schoolID).
		Where("class_id = ?", classID).
		Where("date = ?", date).
		OrderBy("student_id").
		PlaceholderFormat(squirrel.Dollar)

	if sectionID != nil {
		query = query.Where("section_id = ?", *sectionID)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return r.queryRecords(ctx, sql, args...)
}

// ListByClassRange retrieves a class's attendance within an inclusive date
// range, for per-student summarization.
func (r *AttendanceRepository) ListByClassRange(ctx context.Context, schoolID, classID int64, sectionID *int64, start, end time.Time) ([]models.Attendance, error) {
	query := squirrel.Select(attendanceColumns).
		From("attendance").
		Where("school_id = ?", schoolID).
		Where("class_id = ?", classID).
		Where("date BETWEEN ? AND ?", start, end).
		OrderBy("student_id", "date").
		PlaceholderFormat(squirrel.Dollar)

	if sectionID != nil {
		query = query.Where("section_id = ?", *sectionID)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return r.queryRecords(ctx, sql, args...)
}

// ListByStudentRange retrieves a student's attendance within an inclusive
// date range. The range is always explicit; there is no implicit "today".
func (r *AttendanceRepository) ListByStudentRange(ctx context.Context, schoolID, studentID int64, start, end time.Time) ([]models.Attendance, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM attendance
		WHERE school_id = $1 AND student_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date
	`, attendanceColumns)

	return r.queryRecords(ctx, query, schoolID, studentID, start, end)
}

func (r *AttendanceRepository) queryRecords(ctx context.Context, sql string, args ...interface{}) ([]models.Attendance, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var records []models.Attendance
	for rows.Next() {
		var a models.Attendance
		err := rows.Scan(
			&a.ID, &a.SchoolID, &a.StudentID, &a.ClassID, &a.SectionID, &a.SubjectID,
			&a.Date, &a.Status, &a.Notes, &a.MarkedBy, &a.MarkedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
