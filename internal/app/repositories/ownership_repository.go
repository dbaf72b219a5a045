package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OwnershipRepository answers ownership relation queries for the
// authorization guard. It implements auth.OwnershipResolver.
type OwnershipRepository struct {
	db *pgxpool.Pool
}

// NewOwnershipRepository creates a new OwnershipRepository
func NewOwnershipRepository(db *pgxpool.Pool) *OwnershipRepository {
	return &OwnershipRepository{db: db}
}

// ParentHasStudent reports whether a parent_students link exists.
func (r *OwnershipRepository) ParentHasStudent(ctx context.Context, parentID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM parent_students WHERE parent_id = $1 AND student_id = $2
		)
	`, parentID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking parent link: %w", err)
	}
	return exists, nil
}

// StudentOwnedByUser reports whether the student record is linked to the
// given user account.
func (r *OwnershipRepository) StudentOwnedByUser(ctx context.Context, userID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM students WHERE id = $1 AND user_id = $2
		)
	`, studentID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student link: %w", err)
	}
	return exists, nil
}

// TeacherAssignedToClass reports whether the teacher is assigned to the class
// as homeroom teacher of one of its sections or through a subject assignment.
func (r *OwnershipRepository) TeacherAssignedToClass(ctx context.Context, teacherID, classID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM sections WHERE class_id = $1 AND teacher_id = $2
			UNION ALL
			SELECT 1 FROM class_subjects WHERE class_id = $1 AND teacher_id = $2
		)
	`, classID, teacherID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking teacher assignment: %w", err)
	}
	return exists, nil
}
