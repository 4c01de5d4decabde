package domain

import (
	"context"
	"io"
)

// ImageExtensions are the accepted image upload suffixes.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// StoredMedia describes an uploaded file.
type StoredMedia struct {
	URL     string `json:"url"`
	IsLocal bool   `json:"isLocal"`
	// Key locates the file in its store.
	Key string `json:"-"`
}

// MediaStore persists uploaded files under a key and returns their public URL.
type MediaStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// Delete removes key. A missing key is not an error.
	Delete(ctx context.Context, key string) error
	IsLocal() bool
}

// Upload is one file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaService validates and stores uploads.
type MediaService interface {
	StoreAudio(ctx context.Context, u Upload) (StoredMedia, error)
	StoreImage(ctx context.Context, u Upload) (StoredMedia, error)
	// Store accepts either an audio or an image file.
	Store(ctx context.Context, u Upload) (StoredMedia, error)
	// Discard removes a file stored by this service, used when the entity it
	// was uploaded for could not be saved.
	Discard(ctx context.Context, m StoredMedia) error
}
