package storage_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycintake/internal/storage"
	"kycintake/internal/storage/mocks"
)

func TestDedupContentStore(t *testing.T) {
	ctx := context.Background()
	content := []byte("cr12 pdf")
	digest := storage.Digest(content)

	tests := []struct {
		name       string
		setupMocks func(inner *mocks.MockContentStore, index *mocks.MockContentIndex)
		wantID     string
		wantErr    string
		wantLog    string
	}{
		{
			name: "cache hit skips upload",
			setupMocks: func(inner *mocks.MockContentStore, index *mocks.MockContentIndex) {
				index.On("Lookup", ctx, digest).Return("root-1", true, nil)
			},
			wantID: "root-1",
		},
		{
			name: "cache miss uploads and remembers",
			setupMocks: func(inner *mocks.MockContentStore, index *mocks.MockContentIndex) {
				index.On("Lookup", ctx, digest).Return("", false, nil)
				inner.On("Store", ctx, "cr12.pdf", content, "application/pdf").Return("root-2", nil)
				index.On("Remember", ctx, digest, "root-2").Return(nil)
			},
			wantID: "root-2",
		},
		{
			name: "index errors are not fatal",
			setupMocks: func(inner *mocks.MockContentStore, index *mocks.MockContentIndex) {
				index.On("Lookup", ctx, digest).Return("", false, errors.New("redis down"))
				inner.On("Store", ctx, "cr12.pdf", content, "application/pdf").Return("root-3", nil)
				index.On("Remember", ctx, digest, "root-3").Return(errors.New("redis down"))
			},
			wantID:  "root-3",
			wantLog: "content index update failed",
		},
		{
			name: "upload failure is returned",
			setupMocks: func(inner *mocks.MockContentStore, index *mocks.MockContentIndex) {
				index.On("Lookup", ctx, digest).Return("", false, nil)
				inner.On("Store", ctx, "cr12.pdf", content, "application/pdf").Return("", errors.New("gateway 503"))
			},
			wantErr: "gateway 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := new(mocks.MockContentStore)
			index := new(mocks.MockContentIndex)
			tt.setupMocks(inner, index)

			var buf bytes.Buffer
			cs := storage.NewDedupContentStore(inner, index, slog.New(slog.NewJSONHandler(&buf, nil)))

			id, err := cs.Store(ctx, "cr12.pdf", content, "application/pdf")

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			if tt.wantLog != "" {
				assert.Contains(t, buf.String(), tt.wantLog)
			}
			inner.AssertExpectations(t)
			index.AssertExpectations(t)
		})
	}
}

func TestMemoryContentIndex(t *testing.T) {
	ctx := context.Background()
	idx := storage.NewMemoryContentIndex()

	_, ok, err := idx.Lookup(ctx, "d1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, idx.Remember(ctx, "d1", "root-1"))

	id, ok, err := idx.Lookup(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "root-1", id)
}

func TestDedupContentStore_SecondUploadReusesID(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockContentStore)
	inner.On("Store", ctx, "a.pdf", []byte("same"), "application/pdf").Return("root-a", nil).Once()

	cs := storage.NewDedupContentStore(inner, storage.NewMemoryContentIndex(), nil)

	first, err := cs.Store(ctx, "a.pdf", []byte("same"), "application/pdf")
	require.NoError(t, err)
	second, err := cs.Store(ctx, "b.pdf", []byte("same"), "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "root-a", first)
	assert.Equal(t, first, second)
	inner.AssertExpectations(t)
}
