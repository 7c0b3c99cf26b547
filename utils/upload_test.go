package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantErr     error
	}{
		{"valid jpeg", "leaf.jpg", "image/jpeg", 1024, nil},
		{"valid png", "leaf.png", "image/png", 1024, nil},
		{"valid gif", "leaf.gif", "image/gif", 1024, nil},
		{"uppercase extension is accepted", "LEAF.PNG", "image/png", 1024, nil},
		{"exactly at the size limit", "leaf.jpg", "image/jpeg", MaxUploadSize, nil},
		{"one byte over the limit", "leaf.jpg", "image/jpeg", MaxUploadSize + 1, ErrFileTooLarge},
		{"pdf extension rejected", "report.pdf", "application/pdf", 1024, ErrBadFileType},
		{"image extension with non-image content type", "leaf.png", "application/octet-stream", 1024, ErrBadFileType},
		{"allowed content type with bad extension", "leaf.txt", "image/png", 1024, ErrBadFileType},
		{"no extension at all", "leaf", "image/png", 1024, ErrBadFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.filename, tt.contentType, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestUploadName(t *testing.T) {
	now := time.UnixMilli(1717430400000)

	assert.Equal(t, "1717430400000.png", UploadName(now, "leaf.png"))
	assert.Equal(t, "1717430400000.jpg", UploadName(now, "photo.from.phone.JPG"))
	assert.Equal(t, "1717430400000", UploadName(now, "noext"))
}
