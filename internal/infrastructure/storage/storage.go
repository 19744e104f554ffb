// Package storage persists uploaded pictures either on local disk (served
// under /assets) or in an S3-compatible bucket.
package storage

import (
	"path"
	"strings"

	"github.com/sociopedia/server/internal/core/domain"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// ErrInvalidFilename is reported as a validation failure of the picture field.
var ErrInvalidFilename = domain.NewValidationError("picture", "has an invalid file name")

// cleanName strips any directory components a client may have sent.
func cleanName(filename string) (string, error) {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", ErrInvalidFilename
	}
	return name, nil
}
