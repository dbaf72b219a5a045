package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/pkg/apperrors"
)

// AcademicRepository handles classes, sections, subjects, subject assignments
// and enrollments.
type AcademicRepository struct {
	db *pgxpool.Pool
}

// NewAcademicRepository creates a new AcademicRepository
func NewAcademicRepository(db *pgxpool.Pool) *AcademicRepository {
	return &AcademicRepository{db: db}
}

// CreateClass inserts a grade level.
func (r *AcademicRepository) CreateClass(ctx context.Context, class *models.Class) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO classes (school_id, name, grade_level, description, academic_year_id, capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, class.SchoolID, class.Name, class.GradeLevel, class.Description,
		class.AcademicYearID, class.Capacity, class.Status).
		Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating class: %w", err)
	}
	return nil
}

// GetClass retrieves a class by ID within a tenant.
func (r *AcademicRepository) GetClass(ctx context.Context, schoolID, id int64) (*models.Class, error) {
	var c models.Class
	err := r.db.QueryRow(ctx, `
		SELECT id, school_id, name, grade_level, description, academic_year_id, capacity, status, created_at, updated_at
		FROM classes
		WHERE id = $1 AND school_id = $2
	`, id, schoolID).Scan(
		&c.ID, &c.SchoolID, &c.Name, &c.GradeLevel, &c.Description,
		&c.AcademicYearID, &c.Capacity, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}
	return &c, nil
}

// ListClasses retrieves classes of one school with filtering and pagination.
func (r *AcademicRepository) ListClasses(ctx context.Context, schoolID int64, status *models.ClassStatus, page, pageSize int) ([]models.Class, int64, error) {
	query := squirrel.Select("id", "school_id", "name", "grade_level", "description",
		"academic_year_id", "capacity", "status", "created_at", "updated_at").
		From("classes").
		Where("school_id = ?", schoolID).
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("grade_level, name").Limit(uint64(pageSize)).Offset(uint64(offset))

	countQuery := query.Column("COUNT(*) OVER()")
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var classes []models.Class
	var total int64
	for rows.Next() {
		var c models.Class
		err := rows.Scan(
			&c.ID, &c.SchoolID, &c.Name, &c.GradeLevel, &c.Description,
			&c.AcademicYearID, &c.Capacity, &c.Status, &c.CreatedAt, &c.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return classes, total, nil
}

// UpdateClass modifies a grade level.
func (r *AcademicRepository) UpdateClass(ctx context.Context, class *models.Class) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE classes
		SET name = $1, grade_level = $2, description = $3, capacity = $4, updated_at = NOW()
		WHERE id = $5 AND school_id = $6
	`, class.Name, class.GradeLevel, class.Description, class.Capacity, class.ID, class.SchoolID)
	if err != nil {
		return fmt.Errorf("error updating class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// UpdateClassStatus transitions a class's lifecycle status.
func (r *AcademicRepository) UpdateClassStatus(ctx context.Context, schoolID, id int64, status models.ClassStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE classes SET status = $1, updated_at = NOW() WHERE id = $2 AND school_id = $3`,
		status, id, schoolID)
	if err != nil {
		return fmt.Errorf("error updating class status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// CreateSection inserts a class division.
func (r *AcademicRepository) CreateSection(ctx context.Context, section *models.Section) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO sections (school_id, class_id, name, teacher_id, room_number, capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, section.SchoolID, section.ClassID, section.Name, section.TeacherID,
		section.RoomNumber, section.Capacity, section.Status).
		Scan(&section.ID, &section.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating section: %w", err)
	}
	return nil
}

// GetSection retrieves a section by ID within a tenant.
func (r *AcademicRepository) GetSection(ctx context.Context, schoolID, id int64) (*models.Section, error) {
	var s models.Section
	err := r.db.QueryRow(ctx, `
		SELECT id, school_id, class_id, name, teacher_id, room_number, capacity, status, created_at
		FROM sections
		WHERE id = $1 AND school_id = $2
	`, id, schoolID).Scan(
		&s.ID, &s.SchoolID, &s.ClassID, &s.Name, &s.TeacherID,
		&s.RoomNumber, &s.Capacity, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSectionNotFound
		}
		return nil, fmt.Errorf("error retrieving section: %w", err)
	}
	return &s, nil
}

// ListSections retrieves the sections of a class.
func (r *AcademicRepository) ListSections(ctx context.Context, schoolID, classID int64) ([]models.Section, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, school_id, class_id, name, teacher_id, room_number, capacity, status, created_at
		FROM sections
		WHERE school_id = $1 AND class_id = $2
		ORDER BY name
	`, schoolID, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing sections: %w", err)
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.SchoolID, &s.ClassID, &s.Name, &s.TeacherID,
			&s.RoomNumber, &s.Capacity, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// UpdateSection modifies a class division.
func (r *AcademicRepository) UpdateSection(ctx context.Context, section *models.Section) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE sections
		SET name = $1, teacher_id = $2, room_number = $3, capacity = $4, status = $5
		WHERE id = $6 AND school_id = $7
	`, section.Name, section.TeacherID, section.RoomNumber, section.Capacity,
		section.Status, section.ID, section.SchoolID)
	if err != nil {
		return fmt.Errorf("error updating section: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}
	return nil
}

// CreateSubject inserts a subject.
func (r *AcademicRepository) CreateSubject(ctx context.Context, subject *models.Subject) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO subjects (school_id, name, code, description, credits, is_elective, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, subject.SchoolID, subject.Name, subject.Code, subject.Description,
		subject.Credits, subject.IsElective, subject.Status).
		Scan(&subject.ID, &subject.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrSubjectAlreadyExists
		}
		return fmt.Errorf("error creating subject: %w", err)
	}
	return nil
}

// GetSubject retrieves a subject by ID within a tenant.
func (r *AcademicRepository) GetSubject(ctx context.Context, schoolID, id int64) (*models.Subject, error) {
	var s models.Subject
	err := r.db.QueryRow(ctx, `
		SELECT id, school_id, name, code, description, credits, is_elective, status, created_at
		FROM subjects
		WHERE id = $1 AND school_id = $2
	`, id, schoolID).Scan(
		&s.ID, &s.SchoolID, &s.Name, &s.Code, &s.Description,
		&s.Credits, &s.IsElective, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return &s, nil
}

// ListSubjects retrieves all subjects of a school.
func (r *AcademicRepository) ListSubjects(ctx context.Context, schoolID int64) ([]models.Subject, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, school_id, name, code, description, credits, is_elective, status, created_at
		FROM subjects
		WHERE school_id = $1
		ORDER BY name
	`, schoolID)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.SchoolID, &s.Name, &s.Code, &s.Description,
			&s.Credits, &s.IsElective, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// UpdateSubjectStatus transitions a subject's lifecycle status.
func (r *AcademicRepository) UpdateSubjectStatus(ctx context.Context, schoolID, id int64, status models.ClassStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE subjects SET status = $1 WHERE id = $2 AND school_id = $3`,
		status, id, schoolID)
	if err != nil {
		return fmt.Errorf("error updating subject status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// AssignSubject links a subject (and optionally a teacher) to a class.
func (r *AcademicRepository) AssignSubject(ctx context.Context, cs *models.ClassSubject) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO class_subjects (school_id, class_id, section_id, subject_id, teacher_id, academic_year_id, periods_per_week)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, cs.SchoolID, cs.ClassID, cs.SectionID, cs.SubjectID, cs.TeacherID,
		cs.AcademicYearID, cs.PeriodsPerWeek).
		Scan(&cs.ID, &cs.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error assigning subject: %w", err)
	}
	return nil
}

// ListClassSubjects retrieves the subject assignments of a class with subject
// and teacher loaded.
func (r *AcademicRepository) ListClassSubjects(ctx context.Context, schoolID, classID int64) ([]models.ClassSubject, error) {
	rows, err := r.db.Query(ctx, `
		SELECT cs.id, cs.school_id, cs.class_id, cs.section_id, cs.subject_id, cs.teacher_id,
		       cs.academic_year_id, cs.periods_per_week, cs.created_at,
		       s.id, s.school_id, s.name, s.code, s.description, s.credits, s.is_elective, s.status, s.created_at,
		       u.id, u.first_name, u.last_name, u.email
		FROM class_subjects cs
		JOIN subjects s ON s.id = cs.subject_id
		LEFT JOIN users u ON u.id = cs.teacher_id
		WHERE cs.school_id = $1 AND cs.class_id = $2
		ORDER BY s.name
	`, schoolID, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing class subjects: %w", err)
	}
	defer rows.Close()

	var assignments []models.ClassSubject
	for rows.Next() {
		var cs models.ClassSubject
		var subject models.Subject
		var teacherID *int64
		var firstName, lastName, email *string
		err := rows.Scan(
			&cs.ID, &cs.SchoolID, &cs.ClassID, &cs.SectionID, &cs.SubjectID, &cs.TeacherID,
			&cs.AcademicYearID, &cs.PeriodsPerWeek, &cs.CreatedAt,
			&subject.ID, &subject.SchoolID, &subject.Name, &subject.Code, &subject.Description,
			&subject.Credits, &subject.IsElective, &subject.Status, &subject.CreatedAt,
			&teacherID, &firstName, &lastName, &email,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		cs.Subject = &subject
		if teacherID != nil {
			cs.Teacher = &models.User{ID: *teacherID}
			if firstName != nil {
				cs.Teacher.FirstName = *firstName
			}
			if lastName != nil {
				cs.Teacher.LastName = *lastName
			}
			if email != nil {
				cs.Teacher.Email = *email
			}
		}
		assignments = append(assignments, cs)
	}
	return assignments, rows.Err()
}

// RemoveClassSubject deletes a subject assignment.
func (r *AcademicRepository) RemoveClassSubject(ctx context.Context, schoolID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM class_subjects WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("error removing class subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// ListTeacherClasses retrieves the distinct classes a teacher works with,
// through homeroom sections or subject assignments.
func (r *AcademicRepository) ListTeacherClasses(ctx context.Context, schoolID, teacherID int64) ([]models.Class, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT c.id, c.school_id, c.name, c.grade_level, c.description,
		       c.academic_year_id, c.capacity, c.status, c.created_at, c.updated_at
		FROM classes c
		WHERE c.school_id = $1 AND (
			c.id IN (SELECT class_id FROM sections WHERE school_id = $1 AND teacher_id = $2)
			OR c.id IN (SELECT class_id FROM class_subjects WHERE school_id = $1 AND teacher_id = $2)
		)
		ORDER BY c.grade_level, c.name
	`, schoolID, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error listing teacher classes: %w", err)
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ID, &c.SchoolID, &c.Name, &c.GradeLevel, &c.Description,
			&c.AcademicYearID, &c.Capacity, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Enroll records a student's membership in a class/section and stamps the
// student record with the same placement.
func (r *AcademicRepository) Enroll(ctx context.Context, enrollment *models.Enrollment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO enrollments (school_id, student_id, class_id, section_id, academic_year_id, enrollment_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, enrollment.SchoolID, enrollment.StudentID, enrollment.ClassID, enrollment.SectionID,
		enrollment.AcademicYearID, enrollment.EnrollmentDate, enrollment.Status).
		Scan(&enrollment.ID, &enrollment.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE students SET class_id = $1, section_id = $2, updated_at = NOW()
		WHERE id = $3 AND school_id = $4
	`, enrollment.ClassID, enrollment.SectionID, enrollment.StudentID, enrollment.SchoolID)
	if err != nil {
		return fmt.Errorf("error stamping student placement: %w", err)
	}

	return tx.Commit(ctx)
}

// ListEnrollments retrieves the enrollments of a class.
func (r *AcademicRepository) ListEnrollments(ctx context.Context, schoolID, classID int64) ([]models.Enrollment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, school_id, student_id, class_id, section_id, academic_year_id, enrollment_date, status, created_at
		FROM enrollments
		WHERE school_id = $1 AND class_id = $2
		ORDER BY enrollment_date
	`, schoolID, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.SchoolID, &e.StudentID, &e.ClassID, &e.SectionID,
			&e.AcademicYearID, &e.EnrollmentDate, &e.Status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// UpdateEnrollmentStatus transitions an enrollment's status.
func (r *AcademicRepository) UpdateEnrollmentStatus(ctx context.Context, schoolID, id int64, status models.EnrollmentStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE enrollments SET status = $1 WHERE id = $2 AND school_id = $3`,
		status, id, schoolID)
	if err != nil {
		return fmt.Errorf("error updating enrollment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
