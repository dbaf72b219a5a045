package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/pkg/apperrors"
)

const invitationColumns = `id, school_id, email, role, token, status, invited_by, expires_at, created_at`

// InvitationRepository handles database operations for invitations.
type InvitationRepository struct {
	db *pgxpool.Pool
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func scanInvitation(row pgx.Row) (*models.Invitation, error) {
	var inv models.Invitation
	err := row.Scan(
		&inv.ID, &inv.SchoolID, &inv.Email, &inv.Role, &inv.Token,
		&inv.Status, &inv.InvitedBy, &inv.ExpiresAt, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create inserts a new invitation.
func (r *InvitationRepository) Create(ctx context.Context, inv *models.Invitation) error {
	query := `
		INSERT INTO invitations (school_id, email, role, token, status, invited_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		inv.SchoolID, inv.Email, inv.Role, inv.Token, inv.Status, inv.InvitedBy, inv.ExpiresAt,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating invitation: %w", err)
	}
	return nil
}

// GetByToken retrieves an invitation by its token.
func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	query := fmt.Sprintf(`SELECT %s FROM invitations WHERE token = $1`, invitationColumns)

	inv, err := scanInvitation(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("error retrieving invitation: %w", err)
	}
	return inv, nil
}

// ListPending retrieves a school's pending invitations.
func (r *InvitationRepository) ListPending(ctx context.Context, schoolID int64) ([]models.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM invitations
		WHERE school_id = $1 AND status = $2
		ORDER BY created_at DESC
	`, invitationColumns)

	rows, err := r.db.Query(ctx, query, schoolID, models.InvitationPending)
	if err != nil {
		return nil, fmt.Errorf("error listing invitations: %w", err)
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		err := rows.Scan(
			&inv.ID, &inv.SchoolID, &inv.Email, &inv.Role, &inv.Token,
			&inv.Status, &inv.InvitedBy, &inv.ExpiresAt, &inv.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// UpdateStatus transitions an invitation's status.
func (r *InvitationRepository) UpdateStatus(ctx context.Context, id int64, status models.InvitationStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE invitations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating invitation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvitationNotFound
	}
	return nil
}

// HasPendingForEmail reports whether a pending invitation already exists for
// an email within a school.
func (r *InvitationRepository) HasPendingForEmail(ctx context.Context, schoolID int64, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM invitations
			WHERE school_id = $1 AND email = $2 AND status = $3
		)
	`, schoolID, email, models.InvitationPending).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking invitation: %w", err)
	}
	return exists, nil
}
