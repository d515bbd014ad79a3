// Package storagetest provides an in-memory AssetStore that records calls.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/lib/storage"
	"github.com/opsvix-api/models"
)

// Fake is an AssetStore that keeps uploads in memory
type Fake struct {
	mu        sync.Mutex
	seq       int
	objects   map[string][]byte
	destroyed []string

	// FailDestroy makes Destroy fail for the listed ids
	FailDestroy map[string]bool
	// FailUpload makes every Upload fail
	FailUpload bool
}

// New returns an empty Fake
func New() *Fake {
	return &Fake{objects: map[string][]byte{}, FailDestroy: map[string]bool{}}
}

func (f *Fake) Upload(_ context.Context, folder storage.Folder, file dto.FileUpload) (models.Asset, error) {
	if err := folder.CheckUpload(file); err != nil {
		return models.Asset{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailUpload {
		return models.Asset{}, errors.New("upload failed")
	}

	var data []byte
	if file.Body != nil {
		b, err := io.ReadAll(file.Body)
		if err != nil {
			return models.Asset{}, err
		}
		data = b
	}
	f.seq++
	id := fmt.Sprintf("%s/asset-%d.%s", folder.Name, f.seq, storage.Format(file.Filename))
	f.objects[id] = data
	return models.Asset{URL: "https://cdn.test/" + id, PublicID: id}, nil
}

func (f *Fake) Destroy(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, publicID)
	if f.FailDestroy[publicID] {
		return fmt.Errorf("destroy %s failed", publicID)
	}
	delete(f.objects, publicID)
	return nil
}

// Put seeds an object as if it had been uploaded earlier
func (f *Fake) Put(publicID string) models.Asset {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[publicID] = nil
	return models.Asset{URL: "https://cdn.test/" + publicID, PublicID: publicID}
}

// Has reports whether the object is still stored
func (f *Fake) Has(publicID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[publicID]
	return ok
}

// Destroyed returns every id passed to Destroy, in call order
func (f *Fake) Destroyed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.destroyed...)
}

// Stored returns the number of objects currently held
func (f *Fake) Stored() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}
