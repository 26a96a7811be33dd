package onboarding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kycbridge/pkg/sentinel"
)

// Schema creates the onboardings table. Applied idempotently at startup and
// by the integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS onboardings (
	id               UUID PRIMARY KEY,
	external_user_id UUID NOT NULL,
	applicant_id     TEXT NOT NULL,
	lead_id          UUID NOT NULL,
	lead_type        TEXT NOT NULL,
	payload          JSONB NOT NULL,
	status           TEXT NOT NULL DEFAULT 'PENDING',
	partner_response JSONB,
	error_details    TEXT NOT NULL DEFAULT '',
	sent_at          TIMESTAMPTZ,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS onboardings_status_idx ON onboardings (status);
CREATE INDEX IF NOT EXISTS onboardings_external_user_idx ON onboardings (external_user_id);
`

// PostgresStore persists onboarding records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema applies the table definition.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure onboardings schema: %w", err)
	}
	return nil
}

const recordColumns = `id, external_user_id, applicant_id, lead_id, lead_type, payload,
	status, partner_response, error_details, sent_at, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, r *Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO onboardings (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		r.ID, r.ExternalUserID, r.ApplicantID, r.LeadID, r.LeadType, []byte(r.Payload),
		r.Status, nullableJSON(r.PartnerResponse), r.ErrorDetails, r.SentAt, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert onboarding record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, r *Record) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE onboardings SET
			status = $2, partner_response = $3, error_details = $4, sent_at = $5, updated_at = $6
		WHERE id = $1`,
		r.ID, r.Status, nullableJSON(r.PartnerResponse), r.ErrorDetails, r.SentAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update onboarding record: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update onboarding record rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByExternalID(ctx context.Context, externalUserID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM onboardings
		WHERE external_user_id = $1
		ORDER BY created_at DESC LIMIT 1`, externalUserID)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return r, err
}

func (s *PostgresStore) ListPending(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM onboardings
		WHERE status = $1
		ORDER BY created_at`, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending onboardings: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		r        Record
		payload  []byte
		response []byte
	)
	err := row.Scan(
		&r.ID, &r.ExternalUserID, &r.ApplicantID, &r.LeadID, &r.LeadType, &payload,
		&r.Status, &response, &r.ErrorDetails, &r.SentAt, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Payload = payload
	if len(response) > 0 {
		r.PartnerResponse = response
	}
	return &r, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
