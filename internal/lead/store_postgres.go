package lead

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"kycbridge/pkg/sentinel"
)

// Schema creates the leads table. Applied idempotently at startup and by the
// integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS leads (
	id                UUID PRIMARY KEY,
	first_name        TEXT NOT NULL,
	last_name         TEXT NOT NULL,
	email             TEXT NOT NULL,
	phone             TEXT NOT NULL,
	lead_type         TEXT NOT NULL DEFAULT 'individual',
	company_name      TEXT NOT NULL DEFAULT '',
	applicant_id      TEXT NOT NULL DEFAULT '',
	external_user_id  UUID NOT NULL UNIQUE,
	status            TEXT NOT NULL DEFAULT 'CREATED',
	kyc_result        TEXT NOT NULL DEFAULT '',
	rejection_details JSONB,
	event_history     JSONB NOT NULL DEFAULT '[]',
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS leads_email_phone_idx ON leads (email, phone);
`

// PostgresStore persists leads in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed lead store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema applies the table definition.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure leads schema: %w", err)
	}
	return nil
}

const leadColumns = `id, first_name, last_name, email, phone, lead_type, company_name,
	applicant_id, external_user_id, status, kyc_result, rejection_details, event_history,
	created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, l *Lead) error {
	history, rejection, err := marshalJSONFields(l)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO leads (`+leadColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		l.ID, l.FirstName, l.LastName, l.Email, l.Phone, string(l.LeadType), l.CompanyName,
		l.ApplicantID, l.ExternalUserID, l.Status, l.KYCResult, rejection, history,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrDuplicate
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, l *Lead) error {
	history, rejection, err := marshalJSONFields(l)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE leads SET
			first_name = $2, last_name = $3, email = $4, phone = $5, lead_type = $6,
			company_name = $7, applicant_id = $8, status = $9, kyc_result = $10,
			rejection_details = $11, event_history = $12, updated_at = $13
		WHERE external_user_id = $1`,
		l.ExternalUserID, l.FirstName, l.LastName, l.Email, l.Phone, string(l.LeadType),
		l.CompanyName, l.ApplicantID, l.Status, l.KYCResult, rejection, history, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lead rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByExternalID(ctx context.Context, externalUserID string) (*Lead, error) {
	return s.findOne(ctx, "external_user_id = $1", externalUserID)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Lead, error) {
	return s.findOne(ctx, "email = $1", strings.ToLower(strings.TrimSpace(email)))
}

func (s *PostgresStore) FindByPhone(ctx context.Context, phone string) (*Lead, error) {
	return s.findOne(ctx, "phone = $1", strings.TrimSpace(phone))
}

func (s *PostgresStore) List(ctx context.Context) ([]*Lead, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var out []*Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PostgresStore) findOne(ctx context.Context, where string, arg any) (*Lead, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE `+where, arg)
	l, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return l, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*Lead, error) {
	var (
		l         Lead
		leadType  string
		rejection []byte
		history   []byte
	)
	err := row.Scan(
		&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.Phone, &leadType, &l.CompanyName,
		&l.ApplicantID, &l.ExternalUserID, &l.Status, &l.KYCResult, &rejection, &history,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.LeadType = Type(leadType)
	if len(rejection) > 0 {
		if err := json.Unmarshal(rejection, &l.RejectionDetails); err != nil {
			return nil, fmt.Errorf("decode rejection details: %w", err)
		}
	}
	if err := json.Unmarshal(history, &l.EventHistory); err != nil {
		return nil, fmt.Errorf("decode event history: %w", err)
	}
	return &l, nil
}

func marshalJSONFields(l *Lead) (history, rejection []byte, err error) {
	history, err = json.Marshal(l.EventHistory)
	if err != nil {
		return nil, nil, fmt.Errorf("encode event history: %w", err)
	}
	if l.RejectionDetails != nil {
		rejection, err = json.Marshal(l.RejectionDetails)
		if err != nil {
			return nil, nil, fmt.Errorf("encode rejection details: %w", err)
		}
	}
	return history, rejection, nil
}
