package services

import (
	"context"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cutmevents/internal/metrics"
	"cutmevents/internal/storage"
)

const MaxImageSize = 5 << 20

type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type UploadService interface {
	UploadImage(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*UploadResult, error)
	ImageRemover
}

type uploadServiceImpl struct {
	store storage.ObjectStorage
}

// NewUploadService accepts a nil store, in which case every upload fails
// with ErrUnavailable.
func NewUploadService(store storage.ObjectStorage) UploadService {
	return &uploadServiceImpl{store: store}
}

func (s *uploadServiceImpl) UploadImage(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*UploadResult, error) {
	if s.store == nil {
		return nil, newError(ErrUnavailable, "Image uploads are not configured")
	}
	if size > MaxImageSize {
		return nil, newError(ErrTooLarge, "Image must be 5 MB or smaller")
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return nil, newError(ErrValidation, "Only image files are allowed")
	}

	key := "items/" + uuid.NewString() + imageExtension(filename, mediaType)
	if err := s.store.Put(ctx, key, r, size, mediaType); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to store image")
		return nil, err
	}

	metrics.ImagesUploadedTotal.Inc()
	log.Info().Str("key", key).Int64("size", size).Msg("Image uploaded")
	return &UploadResult{URL: s.store.URL(key), Key: key}, nil
}

// RemoveImage deletes an object previously returned by UploadImage. URLs that
// point anywhere else are left alone. Failures are logged, not returned.
func (s *uploadServiceImpl) RemoveImage(ctx context.Context, imageURL string) {
	if s.store == nil || imageURL == "" {
		return
	}
	key, ok := strings.CutPrefix(imageURL, s.store.URL(""))
	if !ok {
		return
	}
	key, err := url.PathUnescape(key)
	if err != nil || !strings.HasPrefix(key, "items/") {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to remove image")
		return
	}
	log.Info().Str("key", key).Msg("Image removed")
}

func imageExtension(filename, mediaType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && len(ext) <= 5 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
