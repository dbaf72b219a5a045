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

const schoolColumns = `id, name, code, address, city, country, phone_number, email, website, status, setup_completed, admin_id, created_at, updated_at`

// SchoolRepository handles database operations for school tenants.
type SchoolRepository struct {
	db *pgxpool.Pool
}

// NewSchoolRepository creates a new SchoolRepository
func NewSchoolRepository(db *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{db: db}
}

func scanSchool(row pgx.Row) (*models.School, error) {
	var s models.School
	err := row.Scan(
		&s.ID, &s.Name, &s.Code, &s.Address, &s.City, &s.Country, &s.PhoneNumber,
		&s.Email, &s.Website, &s.Status, &s.SetupCompleted, &s.AdminID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new school tenant. The admin account is created separately
// inside the same transaction by the auth service.
func (r *SchoolRepository) Create(ctx context.Context, tx pgx.Tx, school *models.School) error {
	query := `
		INSERT INTO schools (name, code, address, city, country, phone_number, email, website, status, setup_completed, admin_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		school.Name, school.Code, school.Address, school.City, school.Country,
		school.PhoneNumber, school.Email, school.Website, school.Status,
		school.SetupCompleted, school.AdminID,
	).Scan(&school.ID, &school.CreatedAt, &school.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrSchoolAlreadyExists
		}
		return fmt.Errorf("error creating school: %w", err)
	}
	return nil
}

// GetByID retrieves a school by ID.
func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*models.School, error) {
	query := fmt.Sprintf(`SELECT %s FROM schools WHERE id = $1`, schoolColumns)

	school, err := scanSchool(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("error retrieving school: %w", err)
	}
	return school, nil
}

// GetByCode retrieves a school by its unique code.
func (r *SchoolRepository) GetByCode(ctx context.Context, code string) (*models.School, error) {
	query := fmt.Sprintf(`SELECT %s FROM schools WHERE code = $1`, schoolColumns)

	school, err := scanSchool(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("error retrieving school by code: %w", err)
	}
	return school, nil
}

// List retrieves all schools with pagination. Platform-level operation.
func (r *SchoolRepository) List(ctx context.Context, status *models.SchoolStatus, page, pageSize int) ([]models.School, int64, error) {
	query := squirrel.Select(schoolColumns).
		From("schools").
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	offset := (page - 1) * pageSize
	query = query.OrderBy("name").Limit(uint64(pageSize)).Offset(uint64(offset))

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

	var schools []models.School
	var total int64
	for rows.Next() {
		var s models.School
		err := rows.Scan(
			&s.ID, &s.Name, &s.Code, &s.Address, &s.City, &s.Country, &s.PhoneNumber,
			&s.Email, &s.Website, &s.Status, &s.SetupCompleted, &s.AdminID, &s.CreatedAt, &s.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		schools = append(schools, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return schools, total, nil
}

// Update modifies a school's profile fields.
func (r *SchoolRepository) Update(ctx context.Context, school *models.School) error {
	query := `
		UPDATE schools
		SET name = $1, address = $2, city = $3, country = $4, phone_number = $5,
		    email = $6, website = $7, updated_at = NOW()
		WHERE id = $8
	`

	tag, err := r.db.Exec(ctx, query,
		school.Name, school.Address, school.City, school.Country,
		school.PhoneNumber, school.Email, school.Website, school.ID)
	if err != nil {
		return fmt.Errorf("error updating school: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}

// UpdateStatus transitions a school's lifecycle status.
func (r *SchoolRepository) UpdateStatus(ctx context.Context, id int64, status models.SchoolStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE schools SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating school status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}

// ListGradingScales retrieves a school's grading scale bands, highest first.
// An empty result means the school has not customized its scale; callers fall
// back to the default.
func (r *SchoolRepository) ListGradingScales(ctx context.Context, schoolID int64) ([]models.GradingScale, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, school_id, name, min_score, max_score, grade_letter, grade_point
		FROM grading_scales
		WHERE school_id = $1
		ORDER BY min_score DESC
	`, schoolID)
	if err != nil {
		return nil, fmt.Errorf("error listing grading scales: %w", err)
	}
	defer rows.Close()

	var scales []models.GradingScale
	for rows.Next() {
		var gs models.GradingScale
		err := rows.Scan(&gs.ID, &gs.SchoolID, &gs.Name, &gs.MinScore, &gs.MaxScore, &gs.GradeLetter, &gs.GradePoint)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		scales = append(scales, gs)
	}
	return scales, rows.Err()
}

// ReplaceGradingScales swaps a school's grading scale for a new set of bands
// in one transaction.
func (r *SchoolRepository) ReplaceGradingScales(ctx context.Context, schoolID int64, scales []models.GradingScale) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM grading_scales WHERE school_id = $1`, schoolID); err != nil {
		return fmt.Errorf("error clearing grading scales: %w", err)
	}
	for i := range scales {
		gs := &scales[i]
		err := tx.QueryRow(ctx, `
			INSERT INTO grading_scales (school_id, name, min_score, max_score, grade_letter, grade_point)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, schoolID, gs.Name, gs.MinScore, gs.MaxScore, gs.GradeLetter, gs.GradePoint).Scan(&gs.ID)
		if err != nil {
			return fmt.Errorf("error inserting grading scale: %w", err)
		}
		gs.SchoolID = schoolID
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing grading scales: %w", err)
	}
	return nil
}

// MarkSetupCompleted flips the tenant's setup flag once initial configuration
// (calendar, classes) is done.
func (r *SchoolRepository) MarkSetupCompleted(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE schools SET setup_completed = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking school setup completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}
