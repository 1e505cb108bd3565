package services

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStore) EnsureBucket(context.Context) error { return nil }

func (f *fakeStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = b
	f.types[key] = contentType
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) URL(key string) string { return "https://cdn.example.com/events/" + key }

func (f *fakeStore) Bucket() string { return "events" }

func TestUploadImage(t *testing.T) {
	store := newFakeStore()
	svc := NewUploadService(store)

	res, err := svc.UploadImage(context.Background(), "Poster.PNG", "image/png", 4, bytes.NewReader([]byte("\x89PNG")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Key, "items/"))
	assert.True(t, strings.HasSuffix(res.Key, ".png"))
	assert.Equal(t, "https://cdn.example.com/events/"+res.Key, res.URL)
	assert.Equal(t, []byte("\x89PNG"), store.objects[res.Key])
	assert.Equal(t, "image/png", store.types[res.Key])
}

func TestUploadImageRejects(t *testing.T) {
	svc := NewUploadService(newFakeStore())
	ctx := context.Background()

	_, err := svc.UploadImage(ctx, "notes.txt", "text/plain", 3, strings.NewReader("abc"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UploadImage(ctx, "huge.jpg", "image/jpeg", MaxImageSize+1, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = NewUploadService(nil).UploadImage(ctx, "a.png", "image/png", 1, strings.NewReader("a"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRemoveImage(t *testing.T) {
	store := newFakeStore()
	svc := NewUploadService(store)
	ctx := context.Background()

	res, err := svc.UploadImage(ctx, "poster.jpg", "image/jpeg", 3, strings.NewReader("jpg"))
	require.NoError(t, err)
	keep, err := svc.UploadImage(ctx, "banner.jpg", "image/jpeg", 3, strings.NewReader("jpg"))
	require.NoError(t, err)
	store.objects["logo.png"] = []byte("x")

	svc.RemoveImage(ctx, "https://elsewhere.example.org/events/"+keep.Key)
	svc.RemoveImage(ctx, "https://cdn.example.com/events/logo.png")
	svc.RemoveImage(ctx, "")
	assert.Len(t, store.objects, 3)

	svc.RemoveImage(ctx, res.URL)
	assert.NotContains(t, store.objects, res.Key)
	assert.Contains(t, store.objects, keep.Key)

	assert.NotPanics(t, func() { NewUploadService(nil).RemoveImage(ctx, res.URL) })
}
