package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
)

// DefaultContentPrefix is the key prefix archived documents are stored under.
const DefaultContentPrefix = "kyc"

// Digest returns the hex-encoded SHA-256 of content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// objectContentStore archives documents in object storage under their
// SHA-256 digest, so storing the same bytes twice is a no-op.
type objectContentStore struct {
	store  Storage
	prefix string
}

// NewObjectContentStore returns a content-addressed ContentStore backed by s.
// The content identifier is the digest of the file.
func NewObjectContentStore(s Storage, prefix string) ContentStore {
	if prefix == "" {
		prefix = DefaultContentPrefix
	}
	return &objectContentStore{store: s, prefix: prefix}
}

// ContentKey is the object key a content identifier is stored under.
func ContentKey(prefix, id string) string {
	if prefix == "" {
		prefix = DefaultContentPrefix
	}
	return path.Join(prefix, id)
}

func (o *objectContentStore) Store(ctx context.Context, filename string, content []byte, contentType string) (string, error) {
	id := Digest(content)
	key := ContentKey(o.prefix, id)

	if _, err := o.store.Stat(ctx, key); err == nil {
		return id, nil
	} else if !errors.Is(err, ErrObjectNotFound) {
		return "", fmt.Errorf("stat %s: %w", key, err)
	}

	_, err := o.store.Put(ctx, key, bytes.NewReader(content), PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return id, nil
}
