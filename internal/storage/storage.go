package storage

import (
	"context"
	"io"
	"time"
)

// Service keeps cat photos in remote object storage.
type Service interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}
