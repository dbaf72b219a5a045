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

const studentColumns = `id, school_id, user_id, enrollment_number, first_name, last_name, date_of_birth, gender, email, phone_number, address, class_id, section_id, enrollment_date, status, created_at, updated_at`

// StudentRepository handles database operations for student records and
// parent-student links.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.SchoolID, &s.UserID, &s.EnrollmentNumber, &s.FirstName, &s.LastName,
		&s.DateOfBirth, &s.Gender, &s.Email, &s.PhoneNumber, &s.Address,
		&s.ClassID, &s.SectionID, &s.EnrollmentDate, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (school_id, user_id, enrollment_number, first_name, last_name,
			date_of_birth, gender, email, phone_number, address, class_id, section_id,
			enrollment_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.SchoolID, student.UserID, student.EnrollmentNumber, student.FirstName,
		student.LastName, student.DateOfBirth, student.Gender, student.Email,
		student.PhoneNumber, student.Address, student.ClassID, student.SectionID,
		student.EnrollmentDate, student.Status,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrEnrollmentNumberExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByID retrieves a student by ID within a tenant.
func (r *StudentRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1 AND school_id = $2`, studentColumns)

	student, err := scanStudent(r.db.QueryRow(ctx, query, id, schoolID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetByUserID retrieves the student record linked to a user account.
func (r *StudentRepository) GetByUserID(ctx context.Context, schoolID, userID int64) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE user_id = $1 AND school_id = $2`, studentColumns)

	student, err := scanStudent(r.db.QueryRow(ctx, query, userID, schoolID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by user: %w", err)
	}
	return student, nil
}

// StudentFilter narrows List results.
type StudentFilter struct {
	ClassID   *int64
	SectionID *int64
	Status    *models.StudentStatus
	Search    string
}

// List retrieves students of one school with filtering and pagination.
func (r *StudentRepository) List(ctx context.Context, schoolID int64, filter StudentFilter, page, pageSize int) ([]models.Student, int64, error) {
	query := squirrel.Select(studentColumns).
		From("students").
		Where("school_id = ?", schoolID).
		PlaceholderFormat(squirrel.Dollar)

	if filter.ClassID != nil {
		query = query.Where("class_id = ?", *filter.ClassID)
	}
	if filter.SectionID != nil {
		query = query.Where("section_id = ?", *filter.SectionID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(first_name ILIKE ? OR last_name ILIKE ? OR enrollment_number ILIKE ?)", pattern, pattern, pattern)
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("last_name, first_name").Limit(uint64(pageSize)).Offset(uint64(offset))

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

	var students []models.Student
	var total int64
	for rows.Next() {
		var s models.Student
		err := rows.Scan(
			&s.ID, &s.SchoolID, &s.UserID, &s.EnrollmentNumber, &s.FirstName, &s.LastName,
			&s.DateOfBirth, &s.Gender, &s.Email, &s.PhoneNumber, &s.Address,
			&s.ClassID, &s.SectionID, &s.EnrollmentDate, &s.Status, &s.CreatedAt, &s.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// Update modifies mutable student fields.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, email = $3, phone_number = $4,
		    address = $5, class_id = $6, section_id = $7, updated_at = NOW()
		WHERE id = $8 AND school_id = $9
	`

	tag, err := r.db.Exec(ctx, query,
		student.FirstName, student.LastName, student.Email, student.PhoneNumber,
		student.Address, student.ClassID, student.SectionID, student.ID, student.SchoolID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateStatus transitions a student's enrollment status. Withdrawal is this
// transition, not a delete.
func (r *StudentRepository) UpdateStatus(ctx context.Context, schoolID, id int64, status models.StudentStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE students SET status = $1, updated_at = NOW() WHERE id = $2 AND school_id = $3`,
		status, id, schoolID)
	if err != nil {
		return fmt.Errorf("error updating student status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// LinkParent creates a parent-student relation.
func (r *StudentRepository) LinkParent(ctx context.Context, link *models.ParentStudent) error {
	query := `
		INSERT INTO parent_students (school_id, parent_id, student_id, relationship, is_primary_contact)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		link.SchoolID, link.ParentID, link.StudentID, link.Relationship, link.IsPrimaryContact,
	).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrParentLinkAlreadyExists
		}
		return fmt.Errorf("error linking parent: %w", err)
	}
	return nil
}

// UnlinkParent removes a parent-student relation.
func (r *StudentRepository) UnlinkParent(ctx context.Context, schoolID, studentID, parentID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM parent_students WHERE school_id = $1 AND student_id = $2 AND parent_id = $3`,
		schoolID, studentID, parentID)
	if err != nil {
		return fmt.Errorf("error unlinking parent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// ListParents retrieves the parent links of a student with the parent user
// loaded.
func (r *StudentRepository) ListParents(ctx context.Context, schoolID, studentID int64) ([]models.ParentStudent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ps.id, ps.school_id, ps.parent_id, ps.student_id, ps.relationship, ps.is_primary_contact, ps.created_at,
		       u.id, u.school_id, u.email, u.first_name, u.last_name, u.role, u.status, u.phone_number, u.created_at
		FROM parent_students ps
		JOIN users u ON u.id = ps.parent_id
		WHERE ps.school_id = $1 AND ps.student_id = $2
		ORDER BY ps.is_primary_contact DESC, u.last_name
	`, schoolID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing parents: %w", err)
	}
	defer rows.Close()

	var links []models.ParentStudent
	for rows.Next() {
		var link models.ParentStudent
		var parent models.User
		err := rows.Scan(
			&link.ID, &link.SchoolID, &link.ParentID, &link.StudentID,
			&link.Relationship, &link.IsPrimaryContact, &link.CreatedAt,
			&parent.ID, &parent.SchoolID, &parent.Email, &parent.FirstName, &parent.LastName,
			&parent.Role, &parent.Status, &parent.PhoneNumber, &parent.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		link.Parent = &parent
		links = append(links, link)
	}
	return links, rows.Err()
}

// ListStudentsOfParent retrieves every student linked to a parent user.
func (r *StudentRepository) ListStudentsOfParent(ctx context.Context, schoolID, parentID int64) ([]models.Student, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM students s
		WHERE s.school_id = $1 AND s.id IN (
			SELECT student_id FROM parent_students WHERE school_id = $1 AND parent_id = $2
		)
		ORDER BY s.last_name, s.first_name
	`, prefixColumns("s", studentColumns))

	rows, err := r.db.Query(ctx, query, schoolID, parentID)
	if err != nil {
		return nil, fmt.Errorf("error listing students of parent: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		err := rows.Scan(
			&s.ID, &s.SchoolID, &s.UserID, &s.EnrollmentNumber, &s.FirstName, &s.LastName,
			&s.DateOfBirth, &s.Gender, &s.Email, &s.PhoneNumber, &s.Address,
			&s.ClassID, &s.SectionID, &s.EnrollmentDate, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
