package mocks

import (
	"context"
	"io"

	"kycintake/internal/kyc"
	"kycintake/internal/model"
	"kycintake/internal/service"
	"kycintake/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) SubmitBusiness(ctx context.Context, in kyc.SubmissionInput) (*service.BusinessResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BusinessResult), args.Error(1)
}

func (m *MockSubmissionService) SubmitIndividual(ctx context.Context, in kyc.IndividualInput) (*service.IndividualResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IndividualResult), args.Error(1)
}

func (m *MockSubmissionService) Get(ctx context.Context, id string) (*model.StoredSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoredSubmission), args.Error(1)
}

func (m *MockSubmissionService) List(ctx context.Context, kind string, limit, offset int) (*service.SubmissionListResult, error) {
	args := m.Called(ctx, kind, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmissionListResult), args.Error(1)
}

func (m *MockSubmissionService) OpenDocument(ctx context.Context, contentID string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, contentID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockSubmissionService) PresignDocument(ctx context.Context, contentID string) (string, error) {
	args := m.Called(ctx, contentID)
	return args.String(0), args.Error(1)
}
