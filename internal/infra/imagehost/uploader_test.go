// internal/infra/imagehost/uploader_test.go
package imagehost

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("posts multipart form and returns the hosted url", func(t *testing.T) {
		var gotKey, gotFilename string
		var gotData []byte

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			gotKey = r.FormValue("key")

			f, fh, err := r.FormFile("image")
			require.NoError(t, err)
			defer f.Close()
			gotFilename = fh.Filename
			gotData, _ = io.ReadAll(f)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{"url":"https://cdn.example.com/abc.jpg"}}`))
		}))
		defer srv.Close()

		u := NewHTTPUploader(srv.URL, "api-key")
		url, err := u.Upload(ctx, "dress.jpg", "image/jpeg", []byte{0xff, 0xd8})
		require.NoError(t, err)

		assert.Equal(t, "https://cdn.example.com/abc.jpg", url)
		assert.Equal(t, "api-key", gotKey)
		assert.Equal(t, "dress.jpg", gotFilename)
		assert.Equal(t, []byte{0xff, 0xd8}, gotData)
	})

	t.Run("flat url field also accepted", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/x.png"}`))
		}))
		defer srv.Close()

		url, err := NewHTTPUploader(srv.URL, "").Upload(ctx, "x.png", "image/png", []byte{1})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/x.png", url)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "quota exceeded", http.StatusForbidden)
		}))
		defer srv.Close()

		_, err := NewHTTPUploader(srv.URL, "k").Upload(ctx, "x.png", "image/png", []byte{1})
		assert.Error(t, err)
	})

	t.Run("unconfigured endpoint", func(t *testing.T) {
		_, err := NewHTTPUploader("", "").Upload(ctx, "x.png", "image/png", []byte{1})
		assert.Error(t, err)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := NewHTTPUploader("http://example.com", "").Upload(ctx, "x.png", "image/png", nil)
		assert.Error(t, err)
	})
}
