package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"shopper-api/internal/cloud"
)

// UploadDir holds temporary uploads and the statically served images.
const UploadDir = "upload/images"

type UploadHandler struct {
	Cloud *cloud.Client
}

// Upload proxies a multipart image to the media service. The local copy is
// removed whether or not the proxy call succeeds.
func (h *UploadHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("product")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": 0})
	}

	localPath, err := saveUploadedFile(file.Filename, func(dst io.Writer) error {
		src, err := file.Open()
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(dst, src)
		return err
	})
	if err != nil {
		c.Logger().Errorf("upload: save temp file: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": 0})
	}
	defer func() {
		if err := os.Remove(localPath); err != nil {
			c.Logger().Errorf("upload: remove temp file: %v", err)
		}
	}()

	if h.Cloud == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": 0})
	}

	imageURL, err := h.Cloud.UploadImage(c.Request().Context(), localPath)
	if err != nil {
		c.Logger().Errorf("upload: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": 0})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": 1, "image_url": imageURL})
}

func saveUploadedFile(original string, copyTo func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(UploadDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("product_%d%s", time.Now().UnixNano(), filepath.Ext(original))
	path := filepath.Join(UploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if err := copyTo(dst); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
