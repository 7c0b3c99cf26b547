package utils

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// MaxUploadSize is the ceiling for a single uploaded image (5 MiB).
const MaxUploadSize = 5 << 20

// UploadDir is where image blobs land; they are served back verbatim
// under /uploads.
const UploadDir = "uploads"

var (
	ErrFileTooLarge = errors.New("image exceeds the 5MB size limit")
	ErrBadFileType  = errors.New("only jpeg, jpg, png and gif images are allowed")
)

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedImageTypes = []string{"jpeg", "jpg", "png", "gif"}

// ValidateImage checks extension, declared content type and size
// against the fixed allowlist. Both the extension and the content type
// must look like an allowed image.
func ValidateImage(filename, contentType string, size int64) error {
	if size > MaxUploadSize {
		return ErrFileTooLarge
	}

	if !allowedImageExts[strings.ToLower(filepath.Ext(filename))] {
		return ErrBadFileType
	}

	ct := strings.ToLower(contentType)
	for _, t := range allowedImageTypes {
		if strings.Contains(ct, t) {
			return nil
		}
	}
	return ErrBadFileType
}

// UploadName builds the stored filename: submission timestamp in
// milliseconds plus the original extension, e.g. "1717430400000.png".
func UploadName(now time.Time, originalName string) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + strings.ToLower(filepath.Ext(originalName))
}

// SaveUploadedImage pulls the named multipart file from the request,
// validates it and writes it under UploadDir. It returns the relative
// path stored on the document ("" when no file was sent).
func SaveUploadedImage(ctx *gin.Context, field string) (string, error) {
	file, err := ctx.FormFile(field)
	if err != nil {
		// A urlencoded form (no file part at all) surfaces as
		// ErrNotMultipart rather than ErrMissingFile.
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}

	if err := ValidateImage(file.Filename, fileContentType(file), file.Size); err != nil {
		return "", err
	}

	name := UploadName(time.Now(), file.Filename)
	dst := filepath.Join(UploadDir, name)
	if err := ctx.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}

	return UploadDir + "/" + name, nil
}

func fileContentType(file *multipart.FileHeader) string {
	return file.Header.Get("Content-Type")
}
