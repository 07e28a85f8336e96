package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apierr "github.com/daariikk/myhelp-web/pkg/api/types/errors"
	"github.com/daariikk/myhelp-web/pkg/photos"
)

// savePhoto stores an uploaded image under a new name, and returns its public path.
//
// It returns photos.ErrNotImage when the content is not an image.
func savePhoto(c echo.Context, store photos.Store, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	r, mimetype, ext, err := photos.Sniff(f)
	if err != nil {
		return "", err
	}
	return store.Save(c.Request().Context(), photos.NewName(ext), mimetype, r)
}

// UploadResponse is the response of POST /api/upload.
type UploadResponse struct {
	FilePath string `json:"filePath"`
}

// UploadAPIHandler serves POST /api/upload.
//
// The image is sent as multipart field "file".
func UploadAPIHandler(store photos.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return apierr.BadRequest("Файл не загружен", err)
		}

		path, err := savePhoto(c, store, fh)
		if errors.Is(err, photos.ErrNotImage) {
			return apierr.BadRequest("Файл должен быть изображением", err)
		}
		if err != nil {
			return apierr.InternalServerError("Ошибка загрузки изображения", err)
		}
		return c.JSON(http.StatusOK, UploadResponse{FilePath: path})
	}
}

// DeletePhotoRequest is the body of POST /api/photo.
type DeletePhotoRequest struct {
	PhotoPath string `json:"photoPath"`
}

// DeletePhotoAPIHandler serves POST /api/photo.
func DeletePhotoAPIHandler(store photos.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := DeletePhotoRequest{}
		if err := decodeJSON(c, &req); err != nil {
			return err
		}
		if strings.TrimSpace(req.PhotoPath) == "" {
			return apierr.BadRequest("Photo path is required", nil)
		}

		err := store.Delete(c.Request().Context(), req.PhotoPath)
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, map[string]bool{"success": true})
		case errors.Is(err, photos.ErrForbidden):
			return apierr.Forbidden("Access denied")
		case errors.Is(err, photos.ErrMissing):
			return apierr.NotFound("File not found")
		default:
			return apierr.InternalServerError("Internal server error", err)
		}
	}
}
