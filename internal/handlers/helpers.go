package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/room-booking/internal/httperr"
	"github.com/BruksfildServices01/room-booking/internal/infra/storage"
)

const maxImageBytes = 10 << 20

var errNoImage = errors.New("no image in request")

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// --------------------------------------------------
// Images
// --------------------------------------------------

// readImage returns the raw bytes of the multipart "image" field.
func readImage(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, errNoImage
	}
	if fh.Size > maxImageBytes {
		return nil, fmt.Errorf("image too large: %d bytes", fh.Size)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, maxImageBytes+1))
}

// storeImage converts raw to WebP and uploads it under prefix.
func storeImage(ctx context.Context, store storage.ImageStore, prefix string, raw []byte) (string, error) {
	img, err := storage.NormalizeImage(raw)
	if err != nil {
		return "", httperr.ErrValidation("invalid_image", "Image must be a JPEG, PNG or WebP file.")
	}
	return store.Put(ctx, storage.ObjectKey(prefix, time.Now()), storage.WebPMediaType, img)
}

// uploadImage reads the multipart image and stores it, writing the error
// response itself when something fails.
func uploadImage(c *gin.Context, store storage.ImageStore, prefix string) (string, bool) {
	raw, err := readImage(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "A single image file up to 10MB is required.")
		return "", false
	}

	url, err := storeImage(c.Request.Context(), store, prefix, raw)
	if err != nil {
		writeStorageError(c, err)
		return "", false
	}
	return url, true
}

func writeStorageError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrDisabled) {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_unavailable", "Image uploads are disabled.")
		return
	}
	httperr.FromError(c, err)
}
