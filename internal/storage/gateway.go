package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"kycintake/internal/config"
)

// gatewayContentStore archives documents through an external storage
// service. The service accepts a multipart upload in field "file" and answers
// with the root hash of the stored content.
type gatewayContentStore struct {
	url     string
	timeout time.Duration
}

type gatewayResponse struct {
	RootHash string `json:"rootHash"`
	TxHash   string `json:"txHash"`
	Error    string `json:"error"`
}

// NewGatewayContentStore returns a ContentStore that posts files to the
// storage gateway configured in cfg.
func NewGatewayContentStore(cfg config.ContentStoreConfig) (ContentStore, error) {
	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("storage gateway url is required")
	}
	return &gatewayContentStore{url: cfg.GatewayURL, timeout: cfg.GatewayTimeout}, nil
}

// Store uploads content. The request is bounded by the configured timeout
// rather than ctx; ctx is only checked before the request is issued.
func (g *gatewayContentStore) Store(ctx context.Context, filename string, content []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	a := fiber.Post(g.url)
	if g.timeout > 0 {
		a.Timeout(g.timeout)
	}
	a.FileData(&fiber.FormFile{Fieldname: "file", Name: filename, Content: content})
	a.MultipartForm(nil)

	var resp gatewayResponse
	code, body, errs := a.Struct(&resp)
	if code != 0 && code != fiber.StatusOK {
		msg := resp.Error
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return "", fmt.Errorf("storage gateway returned %d: %s", code, msg)
	}
	if len(errs) > 0 {
		return "", fmt.Errorf("storage gateway request: %w", errors.Join(errs...))
	}
	if resp.RootHash == "" {
		return "", errors.New("storage gateway returned no rootHash")
	}
	return resp.RootHash, nil
}
