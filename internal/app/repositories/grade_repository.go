package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/pkg/apperrors"
)

const assignmentColumns = `id, school_id, class_id, section_id, subject_id, teacher_id, title, description, assignment_type, max_score, weight, due_date, status, term_id, created_at, updated_at`
const gradeColumns = `id, school_id, student_id, assignment_id, subject_id, class_id, score, max_score, grade_letter, grade_points, comments, graded_by, is_published, published_at, created_at, updated_at`

const upsertGradeSQL = `
	INSERT INTO grades (school_id, student_id, assignment_id, subject_id, class_id,
		score, max_score, grade_letter, grade_points, comments, graded_by, is_published, published_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		CASE WHEN $12 THEN NOW() ELSE NULL END)
	ON CONFLICT (school_id, student_id, assignment_id)
	DO UPDATE SET score = EXCLUDED.score, grade_letter = EXCLUDED.grade_letter,
	              grade_points = EXCLUDED.grade_points, comments = EXCLUDED.comments,
	              graded_by = EXCLUDED.graded_by,
	              is_published = grades.is_published OR EXCLUDED.is_published,
	              published_at = COALESCE(grades.published_at, EXCLUDED.published_at),
	              updated_at = NOW()
	RETURNING id
`

// GradeRepository handles database operations for assignments and grades.
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db}
}

// CreateAssignment inserts graded work.
func (r *GradeRepository) CreateAssignment(ctx context.Context, a *models.Assignment) error {
	query := `
		INSERT INTO assignments (school_id, class_id, section_id, subject_id, teacher_id,
			title, description, assignment_type, max_score, weight, due_date, status, term_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		a.SchoolID, a.ClassID, a.SectionID, a.SubjectID, a.TeacherID,
		a.Title, a.Description, a.AssignmentType, a.MaxScore, a.Weight,
		a.DueDate, a.Status, a.TermID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating assignment: %w", err)
	}
	return nil
}

// GetAssignment retrieves an assignment by ID within a tenant.
func (r *GradeRepository) GetAssignment(ctx context.Context, schoolID, id int64) (*models.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM assignments WHERE id = $1 AND school_id = $2`, assignmentColumns)

	var a models.Assignment
	err := r.db.QueryRow(ctx, query, id, schoolID).Scan(
		&a.ID, &a.SchoolID, &a.ClassID, &a.SectionID, &a.SubjectID, &a.TeacherID,
		&a.Title, &a.Description, &a.AssignmentType, &a.MaxScore, &a.Weight,
		&a.DueDate, &a.Status, &a.TermID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}
	return &a, nil
}

// AssignmentFilter narrows ListAssignments results.
type AssignmentFilter struct {
	ClassID   *int64
	SubjectID *int64
	TeacherID *int64
	Status    *models.AssignmentStatus
	TermID    *int64
}

// ListAssignments retrieves assignments of one school with filtering and
// pagination.
func (r *GradeRepository) ListAssignments(ctx context.Context, schoolID int64, filter AssignmentFilter, page, pageSize int) ([]models.Assignment, int64, error) {
	query := squirrel.Select(assignmentColumns).
		From("assignments").
		Where("school_id = ?", schoolID).
		PlaceholderFormat(squirrel.Dollar)

	if filter.ClassID != nil {
		query = query.Where("class_id = ?", *filter.ClassID)
	}
	if filter.SubjectID != nil {
		query = query.Where("subject_id = ?", *filter.SubjectID)
	}
	if filter.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filter.TeacherID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.TermID != nil {
		query = query.Where("term_id = ?", *filter.TermID)
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("due_date DESC").Limit(uint64(pageSize)).Offset(uint64(offset))

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

	var assignments []models.Assignment
	var total int64
	for rows.Next() {
		var a models.Assignment
		err := rows.Scan(
			&a.ID, &a.SchoolID, &a.ClassID, &a.SectionID, &a.SubjectID, &a.TeacherID,
			&a.Title, &a.Description, &a.AssignmentType, &a.MaxScore, &a.Weight,
			&a.DueDate, &a.Status, &a.TermID, &a.CreatedAt, &a.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

// UpdateAssignment modifies mutable assignment fields.
func (r *GradeRepository) UpdateAssignment(ctx context.Context, a *models.Assignment) error {
	query := `
		UPDATE assignments
		SET title = $1, description = $2, max_score = $3, weight = $4, due_date = $5,
		    status = $6, updated_at = NOW()
		WHERE id = $7 AND school_id = $8
	`

	tag, err := r.db.Exec(ctx, query,
		a.Title, a.Description, a.MaxScore, a.Weight, a.DueDate, a.Status, a.ID, a.SchoolID)
	if err != nil {
		return fmt.Errorf("error updating assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// UpdateAssignmentStatus transitions an assignment's status.
func (r *GradeRepository) UpdateAssignmentStatus(ctx context.Context, schoolID, id int64, status models.AssignmentStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE assignments SET status = $1, updated_at = NOW() WHERE id = $2 AND school_id = $3`,
		status, id, schoolID)
	if err != nil {
		return fmt.Errorf("error updating assignment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// CreateGrade records one score. A student has at most one grade per
// assignment.
func (r *GradeRepository) CreateGrade(ctx context.Context, g *models.Grade) error {
	query := `
		INSERT INTO grades (school_id, student_id, assignment_id, subject_id, class_id,
			score, max_score, grade_letter, grade_points, comments, graded_by, is_published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			CASE WHEN $12 THEN NOW() ELSE NULL END)
		RETURNING id, published_at, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		g.SchoolID, g.StudentID, g.AssignmentID, g.SubjectID, g.ClassID,
		g.Score, g.MaxScore, g.GradeLetter, g.GradePoints, g.Comments, g.GradedBy, g.IsPublished,
	).Scan(&g.ID, &g.PublishedAt, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrGradeAlreadyExists
		}
		return fmt.Errorf("error creating grade: %w", err)
	}
	return nil
}

// UpsertGrade records or corrects a score for (student, assignment). Used by
// the bulk path where re-grading overwrites. Publication is one-way: an
// already-published grade stays published even when the re-grade carries
// is_published = false.
func (r *GradeRepository) UpsertGrade(ctx context.Context, tx pgx.Tx, g *models.Grade) error {
	err := tx.QueryRow(ctx, upsertGradeSQL,
		g.SchoolID, g.StudentID, g.AssignmentID, g.SubjectID, g.ClassID,
		g.Score, g.MaxScore, g.GradeLetter, g.GradePoints, g.Comments, g.GradedBy, g.IsPublished,
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("error upserting grade: %w", err)
	}
	return nil
}

// BulkUpsertGrades grades many students on one assignment in one transaction.
func (r *GradeRepository) BulkUpsertGrades(ctx context.Context, grades []models.Grade) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range grades {
		if err := r.UpsertGrade(ctx, tx, &grades[i]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing bulk grades: %w", err)
	}
	return len(grades), nil
}

// GetGrade retrieves a grade by ID within a tenant.
func (r *GradeRepository) GetGrade(ctx context.Context, schoolID, id int64) (*models.Grade, error) {
	query := fmt.Sprintf(`SELECT %s FROM grades WHERE id = $1 AND school_id = $2`, gradeColumns)

	var g models.Grade
	err := r.db.QueryRow(ctx, query, id, schoolID).Scan(
		&g.ID, &g.SchoolID, &g.StudentID, &g.AssignmentID, &g.SubjectID, &g.ClassID,
		&g.Score, &g.MaxScore, &g.GradeLetter, &g.GradePoints, &g.Comments, &g.GradedBy, &g.IsPublished,
		&g.PublishedAt, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}
	return &g, nil
}

// UpdateGrade corrects a recorded score.
func (r *GradeRepository) UpdateGrade(ctx context.Context, g *models.Grade) error {
	query := `
		UPDATE grades
		SET score = $1, grade_letter = $2, grade_points = $3, comments = $4, is_published = $5,
		    published_at = CASE WHEN $5 AND published_at IS NULL THEN NOW() ELSE published_at END,
		    updated_at = NOW()
		WHERE id = $6 AND school_id = $7
	`

	tag, err := r.db.Exec(ctx, query, g.Score, g.GradeLetter, g.GradePoints, g.Comments, g.IsPublished, g.ID, g.SchoolID)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}
	return nil
}

// GradeFilter narrows ListStudentGrades results.
type GradeFilter struct {
	SubjectID     *int64
	AssignmentID  *int64
	PublishedOnly bool
}

// ListStudentGrades retrieves a student's grades with the assignment loaded.
// PublishedOnly restricts the view for students and parents.
func (r *GradeRepository) ListStudentGrades(ctx context.Context, schoolID, studentID int64, filter GradeFilter) ([]models.Grade, error) {
	query := squirrel.Select(
		prefixColumns("g", gradeColumns)+", "+
			"a.id, a.title, a.assignment_type, a.max_score, a.weight, a.due_date").
		From("grades g").
		LeftJoin("assignments a ON a.id = g.assignment_id").
		Where("g.school_id = ?", schoolID).
		Where("g.student_id = ?", studentID).
		OrderBy("g.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.SubjectID != nil {
		query = query.Where("g.subject_id = ?", *filter.SubjectID)
	}
	if filter.AssignmentID != nil {
		query = query.Where("g.assignment_id = ?", *filter.AssignmentID)
	}
	if filter.PublishedOnly {
		query = query.Where("g.is_published = TRUE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var grades []models.Grade
	for rows.Next() {
		var g models.Grade
		var aID *int64
		var aTitle, aType *string
		var aMaxScore, aWeight *float64
		var aDueDate *time.Time
		err := rows.Scan(
			&g.ID, &g.SchoolID, &g.StudentID, &g.AssignmentID, &g.SubjectID, &g.ClassID,
			&g.Score, &g.MaxScore, &g.GradeLetter, &g.GradePoints, &g.Comments, &g.GradedBy, &g.IsPublished,
			&g.PublishedAt, &g.CreatedAt, &g.UpdatedAt,
			&aID, &aTitle, &aType, &aMaxScore, &aWeight, &aDueDate,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if aID != nil {
			assignment := &models.Assignment{ID: *aID}
			if aTitle != nil {
				assignment.Title = *aTitle
			}
			if aType != nil {
				assignment.AssignmentType = models.AssignmentType(*aType)
			}
			if aMaxScore != nil {
				assignment.MaxScore = *aMaxScore
			}
			if aWeight != nil {
				assignment.Weight = *aWeight
			}
			if aDueDate != nil {
				assignment.DueDate = *aDueDate
			}
			g.Assignment = assignment
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// ListAssignmentGrades retrieves every grade recorded on one assignment.
func (r *GradeRepository) ListAssignmentGrades(ctx context.Context, schoolID, assignmentID int64) ([]models.Grade, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM grades
		WHERE school_id = $1 AND assignment_id = $2
		ORDER BY student_id
	`, gradeColumns)

	rows, err := r.db.Query(ctx, query, schoolID, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var grades []models.Grade
	for rows.Next() {
		var g models.Grade
		err := rows.Scan(
			&g.ID, &g.SchoolID, &g.StudentID, &g.AssignmentID, &g.SubjectID, &g.ClassID,
			&g.Score, &g.MaxScore, &g.GradeLetter, &g.GradePoints, &g.Comments, &g.GradedBy, &g.IsPublished,
			&g.PublishedAt, &g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}
