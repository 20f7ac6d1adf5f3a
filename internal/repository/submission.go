package repository

import (
	"context"

	"kycintake/internal/model"
)

// SubmissionFilter narrows List results. Zero values match everything.
type SubmissionFilter struct {
	Kind model.SubmissionKind
}

// SubmissionRepository persists archived KYC records. It holds no
// validation logic; records reach it only after every upload succeeded.
type SubmissionRepository interface {
	// Create inserts a record and returns it as stored.
	Create(ctx context.Context, sub *model.StoredSubmission) (*model.StoredSubmission, error)

	// FindByID returns ErrNotFound when no record has the given ID.
	FindByID(ctx context.Context, id string) (*model.StoredSubmission, error)

	// List returns a page of records, newest first, and the total matching count.
	List(ctx context.Context, filter SubmissionFilter, pq PageQuery) (*PageResult[model.StoredSubmission], error)
}
