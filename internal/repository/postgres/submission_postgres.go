package postgres

import (
	"context"
	"database/sql"
	"errors"

	"kycintake/internal/model"
	"kycintake/internal/repository"
)

// SubmissionPostgres is a PostgreSQL implementation of repository.SubmissionRepository.
// Records are stored as JSONB next to a few indexed columns used for listing.
type SubmissionPostgres struct {
	db *sql.DB
}

// NewSubmissionPostgres creates a new SubmissionPostgres repository.
func NewSubmissionPostgres(db *sql.DB) *SubmissionPostgres {
	return &SubmissionPostgres{db: db}
}

var _ repository.SubmissionRepository = (*SubmissionPostgres)(nil)

const submissionColumns = `id, kind, subject_name, business_type, record, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*model.StoredSubmission, error) {
	var (
		s            model.StoredSubmission
		businessType sql.NullString
		record       []byte
	)
	if err := row.Scan(&s.ID, &s.Kind, &s.SubjectName, &businessType, &record, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.BusinessType = businessType.String
	s.Record = record
	return &s, nil
}

// Create inserts a submission row and returns the stored record.
func (r *SubmissionPostgres) Create(ctx context.Context, sub *model.StoredSubmission) (*model.StoredSubmission, error) {
	const q = `
		INSERT INTO kyc_submissions (id, kind, subject_name, business_type, record, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + submissionColumns

	businessType := sql.NullString{String: sub.BusinessType, Valid: sub.BusinessType != ""}
	row := r.db.QueryRowContext(ctx, q,
		sub.ID,
		string(sub.Kind),
		sub.SubjectName,
		businessType,
		string(sub.Record),
		sub.CreatedAt,
	)
	return scanSubmission(row)
}

// FindByID fetches a single submission by its ID.
func (r *SubmissionPostgres) FindByID(ctx context.Context, id string) (*model.StoredSubmission, error) {
	const q = `SELECT ` + submissionColumns + ` FROM kyc_submissions WHERE id = $1`

	s, err := scanSubmission(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List returns submissions using LIMIT/OFFSET pagination and a total count.
// An empty filter kind matches both business and individual records.
func (r *SubmissionPostgres) List(ctx context.Context, filter repository.SubmissionFilter, pq repository.PageQuery) (*repository.PageResult[model.StoredSubmission], error) {
	kind := string(filter.Kind)

	const qCount = `SELECT COUNT(*) FROM kyc_submissions WHERE ($1 = '' OR kind = $1)`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, kind).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + submissionColumns + `
		FROM kyc_submissions
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, qList, kind, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.StoredSubmission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.StoredSubmission]{
		Items: items,
		Total: total,
	}, nil
}
