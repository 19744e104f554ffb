package ports

import (
	"context"
	"io"
)

// FileStorage persists uploaded pictures.
type FileStorage interface {
	// Save stores the content under a name derived from filename and returns
	// the picture path clients should reference.
	Save(ctx context.Context, filename string, content io.Reader, size int64, contentType string) (string, error)
}
