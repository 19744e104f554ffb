package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sociopedia/server/internal/metrics"
)

// Local writes pictures into a directory, keeping the client's file name.
// An upload with an existing name replaces the previous file.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create assets dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Dir is the directory served as static assets.
func (l *Local) Dir() string { return l.dir }

func (l *Local) Save(_ context.Context, filename string, content io.Reader, _ int64, _ string) (string, error) {
	name, err := cleanName(filename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(DriverLocal, "error").Inc()
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	n, err := io.Copy(f, content)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(DriverLocal, "error").Inc()
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	metrics.UploadsTotal.WithLabelValues(DriverLocal, "success").Inc()
	metrics.UploadBytes.Observe(float64(n))
	return name, nil
}
