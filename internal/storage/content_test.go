package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kycintake/internal/storage"
	"kycintake/internal/storage/mocks"
)

func TestDigest(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", storage.Digest([]byte("abc")))
}

func TestContentKey(t *testing.T) {
	assert.Equal(t, "kyc/abc", storage.ContentKey("", "abc"))
	assert.Equal(t, "archive/2024/abc", storage.ContentKey("archive/2024/", "abc"))
}

func TestObjectContentStore_Store(t *testing.T) {
	ctx := context.Background()
	content := []byte("national id scan")
	id := storage.Digest(content)
	key := "kyc/" + id

	tests := []struct {
		name       string
		setupMocks func(m *mocks.MockStorage)
		wantErr    string
	}{
		{
			name: "new content is uploaded",
			setupMocks: func(m *mocks.MockStorage) {
				m.On("Stat", ctx, key).Return(storage.ObjectInfo{}, storage.ErrObjectNotFound)
				m.On("Put", ctx, key, mock.AnythingOfType("*bytes.Reader"), storage.PutObjectOptions{
					Size:        int64(len(content)),
					ContentType: "image/jpeg",
					Metadata:    map[string]string{"original-filename": "owner0_national_id_passport.jpg"},
				}).Return(storage.ObjectInfo{Key: key}, nil)
			},
		},
		{
			name: "existing content is not uploaded again",
			setupMocks: func(m *mocks.MockStorage) {
				m.On("Stat", ctx, key).Return(storage.ObjectInfo{Key: key}, nil)
			},
		},
		{
			name: "stat failure",
			setupMocks: func(m *mocks.MockStorage) {
				m.On("Stat", ctx, key).Return(storage.ObjectInfo{}, errors.New("access denied"))
			},
			wantErr: "stat kyc/" + id + ": access denied",
		},
		{
			name: "put failure",
			setupMocks: func(m *mocks.MockStorage) {
				m.On("Stat", ctx, key).Return(storage.ObjectInfo{}, storage.ErrObjectNotFound)
				m.On("Put", ctx, key, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("bucket full"))
			},
			wantErr: "bucket full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mocks.MockStorage)
			tt.setupMocks(m)
			cs := storage.NewObjectContentStore(m, "")

			got, err := cs.Store(ctx, "owner0_national_id_passport.jpg", content, "image/jpeg")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Empty(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, id, got)
			}
			m.AssertExpectations(t)
		})
	}
}
