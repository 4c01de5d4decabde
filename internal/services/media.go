package services

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"

	"churchconnect/internal/domain"
)

type mediaService struct {
	store    domain.MediaStore
	maxBytes int64
}

// NewMediaService creates a MediaService that rejects files larger than maxBytes.
func NewMediaService(store domain.MediaStore, maxBytes int64) domain.MediaService {
	return &mediaService{store: store, maxBytes: maxBytes}
}

func (s *mediaService) StoreAudio(ctx context.Context, u domain.Upload) (domain.StoredMedia, error) {
	return s.put(ctx, "audio", u, domain.AudioExtensions)
}

func (s *mediaService) StoreImage(ctx context.Context, u domain.Upload) (domain.StoredMedia, error) {
	return s.put(ctx, "images", u, domain.ImageExtensions)
}

func (s *mediaService) Store(ctx context.Context, u domain.Upload) (domain.StoredMedia, error) {
	if slices.Contains(domain.AudioExtensions, extension(u.Filename)) {
		return s.StoreAudio(ctx, u)
	}
	return s.StoreImage(ctx, u)
}

// put stores u under prefix with a random name, keeping the original extension.
func (s *mediaService) put(ctx context.Context, prefix string, u domain.Upload, allowed []string) (domain.StoredMedia, error) {
	ext := extension(u.Filename)
	if !slices.Contains(allowed, ext) {
		return domain.StoredMedia{}, domain.NewValidationError(domain.KindInvalidFormat, "file",
			"file must end in one of %s", strings.Join(allowed, ", "))
	}
	if s.maxBytes > 0 && u.Size > s.maxBytes {
		return domain.StoredMedia{}, domain.NewValidationError(domain.KindOutOfRange, "file",
			"file must be at most %d MB", s.maxBytes>>20)
	}
	key := prefix + "/" + uuid.NewString() + ext
	url, err := s.store.Put(ctx, key, u.ContentType, u.Body, u.Size)
	if err != nil {
		return domain.StoredMedia{}, fmt.Errorf("failed to store %s: %w", key, err)
	}
	return domain.StoredMedia{URL: url, IsLocal: s.store.IsLocal(), Key: key}, nil
}

func (s *mediaService) Discard(ctx context.Context, m domain.StoredMedia) error {
	if m.Key == "" {
		return nil
	}
	if err := s.store.Delete(ctx, m.Key); err != nil {
		return fmt.Errorf("failed to discard %s: %w", m.Key, err)
	}
	return nil
}

func extension(filename string) string {
	return strings.ToLower(path.Ext(filename))
}
