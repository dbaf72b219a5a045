package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/pkg/apperrors"
)

// CalendarRepository handles academic years, terms and holidays.
type CalendarRepository struct {
	db *pgxpool.Pool
}

// NewCalendarRepository creates a new CalendarRepository
func NewCalendarRepository(db *pgxpool.Pool) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// CreateAcademicYear inserts an academic year. When IsCurrent is set, any
// previous current year of the school is cleared in the same transaction.
func (r *CalendarRepository) CreateAcademicYear(ctx context.Context, year *models.AcademicYear) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if year.IsCurrent {
		if _, err := tx.Exec(ctx,
			`UPDATE academic_years SET is_current = FALSE WHERE school_id = $1`, year.SchoolID); err != nil {
			return fmt.Errorf("error clearing current academic year: %w", err)
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO academic_years (school_id, name, start_date, end_date, is_current)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, year.SchoolID, year.Name, year.StartDate, year.EndDate, year.IsCurrent).
		Scan(&year.ID, &year.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating academic year: %w", err)
	}

	return tx.Commit(ctx)
}

// ListAcademicYears retrieves all academic years of a school, newest first.
func (r *CalendarRepository) ListAcademicYears(ctx context.Context, schoolID int64) ([]models.AcademicYear, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, school_id, name, start_date, end_date, is_current, created_at
		FROM academic_years
		WHERE school_id = $1
		ORDER BY start_date DESC
	`, schoolID)
	if err != nil {
		return nil, fmt.Errorf("error listing academic years: %w", err)
	}
	defer rows.Close()

	var years []models.AcademicYear
	for rows.Next() {
		var y models.AcademicYear
		if err := rows.Scan(&y.ID, &y.SchoolID, &y.Name, &y.StartDate, &y.EndDate, &y.IsCurrent, &y.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// GetCurrentAcademicYear retrieves the school's current academic year.
func (r *CalendarRepository) GetCurrentAcademicYear(ctx context.Context, schoolID int64) (*models.AcademicYear, error) {
	var y models.AcademicYear
	err := r.db.QueryRow(ctx, `
		SELECT id, school_id, name, start_date, end_date, is_current, created_at
		FROM academic_years
		WHERE school_id = $1 AND is_current = TRUE
	`, schoolID).Scan(&y.ID, &y.SchoolID, &y.Name, &y.StartDate, &y.EndDate, &y.IsCurrent, &y.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoCurrentAcademicYear
		}
		return nil, fmt.Errorf("error retrieving current academic year: %w", err)
	}
	return &y, nil
}

// GetAcademicYear retrieves an academic year by ID within a tenant.
func (r *CalendarRepository) GetAcademicYear(ctx context.Context, schoolID, id int64) (*models.AcademicYear, error) {
	var y models.AcademicYear
	err := r.db.QueryRow(ctx, `
		SELECT id, school_id, name, start_date, end_date, is_current, created_at
		FROM academic_years
		WHERE id = $1 AND school_id = $2
	`, id, schoolID).Scan(&y.ID, &y.SchoolID, &y.Name, &y.StartDate, &y.EndDate, &y.IsCurrent, &y.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}
	return &y, nil
}

// CreateTerm inserts a grading period.
func (r *CalendarRepository) CreateTerm(ctx context.Context, term *models.Term) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if term.IsCurrent {
		if _, err := tx.Exec(ctx,
			`UPDATE terms SET is_current = FALSE WHERE school_id = $1`, term.SchoolID); err != nil {
			return fmt.Errorf("error clearing current term: %w", err)
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO terms (school_id, academic_year_id, name, term_type, start_date, end_date, is_current)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, term.SchoolID, term.AcademicYearID, term.Name, term.TermType, term.StartDate, term.EndDate, term.IsCurrent).
		Scan(&term.ID, &term.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating term: %w", err)
	}

	return tx.Commit(ctx)
}

// ListTerms retrieves the terms of an academic year in calendar order.
func (r *CalendarRepository) ListTerms(ctx context.Context, schoolID, academicYearID int64) ([]models.Term, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, school_id, academic_year_id, name, term_type, start_date, end_date, is_current, created_at
		FROM terms
		WHERE school_id = $1 AND academic_year_id = $2
		ORDER BY start_date
	`, schoolID, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("error listing terms: %w", err)
	}
	defer rows.Close()

	var terms []models.Term
	for rows.Next() {
		var t models.Term
		if err := rows.Scan(&t.ID, &t.SchoolID, &t.AcademicYearID, &t.Name, &t.TermType,
			&t.StartDate, &t.EndDate, &t.IsCurrent, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// CreateHoliday inserts a holiday into the school calendar.
func (r *CalendarRepository) CreateHoliday(ctx context.Context, holiday *models.Holiday) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO holidays (school_id, name, date, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, holiday.SchoolID, holiday.Name, holiday.Date, holiday.Description).
		Scan(&holiday.ID, &holiday.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating holiday: %w", err)
	}
	return nil
}

// ListHolidays retrieves the holidays of a school within an inclusive range.
func (r *CalendarRepository) ListHolidays(ctx context.Context, schoolID int64, start, end time.Time) ([]models.Holiday, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, school_id, name, date, description, created_at
		FROM holidays
		WHERE school_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`, schoolID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error listing holidays: %w", err)
	}
	defer rows.Close()

	var holidays []models.Holiday
	for rows.Next() {
		var h models.Holiday
		if err := rows.Scan(&h.ID, &h.SchoolID, &h.Name, &h.Date, &h.Description, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// DeleteHoliday removes a holiday from the calendar.
func (r *CalendarRepository) DeleteHoliday(ctx context.Context, schoolID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM holidays WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error deleting holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
