package mocks

import (
	"context"

	"kycintake/internal/model"
	"kycintake/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, sub *model.StoredSubmission) (*model.StoredSubmission, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoredSubmission), args.Error(1)
}

func (m *MockSubmissionRepository) FindByID(ctx context.Context, id string) (*model.StoredSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoredSubmission), args.Error(1)
}

func (m *MockSubmissionRepository) List(ctx context.Context, filter repository.SubmissionFilter, pq repository.PageQuery) (*repository.PageResult[model.StoredSubmission], error) {
	args := m.Called(ctx, filter, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.StoredSubmission]), args.Error(1)
}
