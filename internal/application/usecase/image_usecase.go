// internal/application/usecase/image_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	proddom "luxe/internal/domain/product"
)

var (
	ErrImageNoFiles  = errors.New("image_usecase: no files")
	ErrImageTooMany  = errors.New("image_usecase: too many images")
	ErrImageStoreNil = errors.New("image_usecase: image store is not configured")
)

// ImageStore is the outbound port for image hosting. Implementations return
// a public URL for the uploaded bytes.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// ImageRemover deletes a hosted image by its public URL. Backends without a
// delete API (the external image host) simply do not implement it.
type ImageRemover interface {
	Delete(ctx context.Context, publicURL string) error
}

// ImageFile is one attached file from the dashboard form.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageUsecase orchestrates multi-image uploads during a product save.
type ImageUsecase struct {
	store ImageStore
}

func NewImageUsecase(store ImageStore) *ImageUsecase {
	return &ImageUsecase{store: store}
}

// UploadBatch uploads all files concurrently and joins the results.
//
// The batch is all-or-nothing: if any upload fails, the whole new batch is
// discarded and the error is returned so the caller can proceed with the
// previously-existing URLs only (the product save itself must not abort).
// URLs are returned in the input order.
func (uc *ImageUsecase) UploadBatch(ctx context.Context, existing []string, files []ImageFile) ([]string, error) {
	if uc == nil || uc.store == nil {
		return nil, ErrImageStoreNil
	}
	if len(files) == 0 {
		return nil, ErrImageNoFiles
	}
	if len(existing)+len(files) > proddom.MaxImages {
		return nil, ErrImageTooMany
	}

	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f ImageFile) {
			defer wg.Done()
			url, err := uc.store.Upload(ctx, f.Filename, f.ContentType, f.Data)
			if err != nil {
				errs[i] = fmt.Errorf("upload %q: %w", f.Filename, err)
				return
			}
			urls[i] = url
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			log.Printf("[image_usecase] batch failed: %v", err)
			return nil, err
		}
	}

	return urls, nil
}
