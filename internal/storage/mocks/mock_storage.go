package mocks

import (
	"context"
	"io"
	"time"

	"kycintake/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader, storage.PutObjectOptions) storage.ObjectInfo); ok {
		return f(ctx, key, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Stat(ctx context.Context, key string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Get(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

type MockContentStore struct {
	mock.Mock
}

func (m *MockContentStore) Store(ctx context.Context, filename string, content []byte, contentType string) (string, error) {
	args := m.Called(ctx, filename, content, contentType)
	if f, ok := args.Get(0).(func(context.Context, string, []byte, string) string); ok {
		return f(ctx, filename, content, contentType), args.Error(1)
	}
	return args.String(0), args.Error(1)
}

type MockContentIndex struct {
	mock.Mock
}

func (m *MockContentIndex) Lookup(ctx context.Context, digest string) (string, bool, error) {
	args := m.Called(ctx, digest)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockContentIndex) Remember(ctx context.Context, digest, id string) error {
	args := m.Called(ctx, digest, id)
	return args.Error(0)
}
