// Package storage talks to the external media host that keeps project
// images and testimony avatars.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/models"
)

// ErrNotConfigured is returned by every call when no media host is set up
var ErrNotConfigured = errors.New("media storage is not configured")

// AssetStore uploads and purges externally hosted images
type AssetStore interface {
	// Upload stores the file under folder and returns its URL and storage id
	Upload(ctx context.Context, folder Folder, file dto.FileUpload) (models.Asset, error)
	// Destroy removes the asset with the given storage id
	Destroy(ctx context.Context, publicID string) error
}

// Folder groups assets and restricts the accepted formats
type Folder struct {
	Name    string
	Formats []string
}

var (
	ProjectFolder = Folder{Name: "projects", Formats: []string{"jpg", "jpeg", "png", "webp", "gif", "svg"}}
	AvatarFolder  = Folder{Name: "avatars", Formats: []string{"jpg", "jpeg", "png", "webp"}}
)

var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
}

// Format returns the lowercase extension of filename without the dot
func Format(filename string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
}

// Accepts reports whether the folder takes files with this name
func (f Folder) Accepts(filename string) bool {
	format := Format(filename)
	for _, allowed := range f.Formats {
		if format == allowed {
			return true
		}
	}
	return false
}

// CheckUpload validates a file against the folder's formats
func (f Folder) CheckUpload(file dto.FileUpload) error {
	if !f.Accepts(file.Filename) {
		return fmt.Errorf("%s: unsupported image format, allowed: %s", file.Filename, strings.Join(f.Formats, ", "))
	}
	return nil
}

// ContentType returns the content type stored with the object
func ContentType(file dto.FileUpload) string {
	if ct, ok := contentTypes[Format(file.Filename)]; ok {
		return ct
	}
	if file.ContentType != "" {
		return file.ContentType
	}
	return "application/octet-stream"
}

// Disabled is used when no media host is configured
type Disabled struct{}

func (Disabled) Upload(context.Context, Folder, dto.FileUpload) (models.Asset, error) {
	return models.Asset{}, ErrNotConfigured
}

func (Disabled) Destroy(context.Context, string) error {
	return ErrNotConfigured
}
