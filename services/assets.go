package services

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/lib/storage"
	"github.com/opsvix-api/models"
)

// MaxProjectImages caps the gallery files accepted in one request
const MaxProjectImages = 10

// assetManager wraps the media host with the upload and purge rules shared
// by projects and testimonies
type assetManager struct {
	store  storage.AssetStore
	logger hclog.Logger
}

// checkUploads validates every file before anything is uploaded
func checkUploads(folder storage.Folder, files ...dto.FileUpload) error {
	for _, f := range files {
		if err := folder.CheckUpload(f); err != nil {
			return &ValidationError{Message: err.Error()}
		}
	}
	return nil
}

// upload stores files in order. On failure the files already uploaded by
// this call are purged and the error is returned.
func (m *assetManager) upload(ctx context.Context, folder storage.Folder, files ...dto.FileUpload) ([]models.Asset, error) {
	uploaded := make([]models.Asset, 0, len(files))
	for _, f := range files {
		asset, err := m.store.Upload(ctx, folder, f)
		if err != nil {
			m.discard(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, asset)
	}
	return uploaded, nil
}

// purge destroys every asset once, attempting all of them even after a
// failure. The returned error lists the ids that are still stored.
func (m *assetManager) purge(ctx context.Context, assets []models.Asset) error {
	seen := make(map[string]bool, len(assets))
	var (
		result *multierror.Error
		failed []string
	)
	for _, a := range assets {
		if a.PublicID == "" || seen[a.PublicID] {
			continue
		}
		seen[a.PublicID] = true

		if err := m.store.Destroy(ctx, a.PublicID); err != nil {
			result = multierror.Append(result, err)
			failed = append(failed, a.PublicID)
		}
	}
	if result == nil {
		return nil
	}
	return &AssetPurgeError{PublicIDs: failed, Err: result.ErrorOrNil()}
}

// discard purges assets that are no longer referenced after a write.
// Failures are logged and do not fail the request.
func (m *assetManager) discard(ctx context.Context, assets []models.Asset) {
	if len(assets) == 0 {
		return
	}
	if err := m.purge(ctx, assets); err != nil {
		m.logger.Error("orphaned assets left in storage", "error", err)
	}
}
