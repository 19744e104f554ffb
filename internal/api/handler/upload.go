package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sociopedia/server/internal/core/ports"
)

// pictureField is the multipart field carrying an uploaded image.
const pictureField = "picture"

// savePicture stores the multipart "picture" file, if any, and returns the
// resulting picture path. Requests without a file fall back to the path the
// client sent in the body.
func savePicture(c echo.Context, storage ports.FileStorage, fallback string) (string, error) {
	fh, err := c.FormFile(pictureField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return fallback, nil
		}
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}
	if storage == nil {
		return "", fmt.Errorf("save picture: no storage configured")
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	return storage.Save(c.Request().Context(), fh.Filename, f, fh.Size, fh.Header.Get(echo.HeaderContentType))
}
