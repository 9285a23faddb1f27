// internal/adapters/out/gcs/productImage_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	gcscommon "luxe/internal/adapters/out/gcs/common"
)

// ProductImageRepositoryGCS stores product image binaries in GCS and
// returns the public URL. Satisfies usecase.ImageStore.
type ProductImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

// objects live under products/YYYY/MM/<uuid><ext>
const productImagePrefix = "products"

func NewProductImageRepositoryGCS(client *storage.Client, bucket string) *ProductImageRepositoryGCS {
	return &ProductImageRepositoryGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

func (r *ProductImageRepositoryGCS) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("ProductImageRepositoryGCS: nil storage client")
	}
	bucket := strings.TrimSpace(r.Bucket)
	if bucket == "" {
		return "", errors.New("ProductImageRepositoryGCS: bucket is empty")
	}
	if len(data) == 0 {
		return "", errors.New("ProductImageRepositoryGCS: empty payload")
	}

	obj := objectPathFor(filename, time.Now().UTC())

	w := r.Client.Bucket(bucket).Object(obj).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	w.CacheControl = "public, max-age=31536000"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write %q: %w", obj, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close %q: %w", obj, err)
	}

	return gcscommon.GCSPublicURL(bucket, obj, ""), nil
}

// Delete removes a previously uploaded image by its public URL.
// Missing objects are not an error.
func (r *ProductImageRepositoryGCS) Delete(ctx context.Context, publicURL string) error {
	if r == nil || r.Client == nil {
		return errors.New("ProductImageRepositoryGCS: nil storage client")
	}

	bucket, obj, ok := gcscommon.ParseGCSURL(publicURL)
	if !ok {
		return fmt.Errorf("ProductImageRepositoryGCS: not a GCS URL: %q", publicURL)
	}

	err := r.Client.Bucket(bucket).Object(obj).Delete(ctx)
	if err != nil && err != storage.ErrObjectNotExist {
		return err
	}
	return nil
}

// objectPathFor keeps the original extension but never the original
// filename; uploads from the dashboard often collide on names like
// "image.jpg".
func objectPathFor(filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(filename)))
	return fmt.Sprintf("%s/%s/%s%s",
		productImagePrefix, now.Format("2006/01"), uuid.NewString(), ext)
}
