package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const maxUploadBytes = 10 << 20

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// formFile opens an optional multipart file. It returns a nil upload when the
// request is not multipart or the field is absent. The closer is never nil.
func formFile(c echo.Context, field string) (*services.Upload, io.Closer, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nopCloser{}, nil
		}
		return nil, nopCloser{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
	}
	if fh.Size > maxUploadBytes {
		return nil, nopCloser{}, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nopCloser{}, echo.NewHTTPError(http.StatusBadRequest, "Cannot read uploaded file")
	}
	return &services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        f,
	}, f, nil
}
