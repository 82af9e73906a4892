package services

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"io"
	"path/filepath"
	"storefront/models"
	"storefront/storage"
	"strings"
	"time"
)

const (
	DefaultMaxImages    = 5
	DefaultMaxImageSize = 5 << 20
)

// ImageFile is one uploaded file as declared by the client.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type MediaService struct {
	storage   storage.Storage
	identity  *IdentityService
	maxImages int
	maxSize   int64
}

func NewMediaService(store storage.Storage, identity *IdentityService, maxImages int, maxSize int64) *MediaService {
	if maxImages <= 0 {
		maxImages = DefaultMaxImages
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	return &MediaService{storage: store, identity: identity, maxImages: maxImages, maxSize: maxSize}
}

// StoreImages validates the whole batch before writing anything, then stores each file
// under a generated name. URLs are returned in input order.
func (s *MediaService) StoreImages(ctx context.Context, files []ImageFile) ([]string, error) {
	if len(files) == 0 {
		return nil, validationError("no images uploaded")
	}
	if len(files) > s.maxImages {
		return nil, validationError("at most %d images per upload", s.maxImages)
	}
	for _, file := range files {
		if !strings.HasPrefix(strings.ToLower(file.ContentType), "image/") {
			return nil, validationError("%s is not an image", file.Filename)
		}
		if file.Size > s.maxSize {
			return nil, validationError("%s exceeds %d bytes", file.Filename, s.maxSize)
		}
	}

	urls := make([]string, 0, len(files))
	saved := make([]string, 0, len(files))
	for _, file := range files {
		name := generateFileName(file.Filename)
		url, err := s.save(ctx, name, file)
		if err != nil {
			s.discard(ctx, saved...)
			return nil, err
		}
		saved = append(saved, name)
		urls = append(urls, url)
	}
	return urls, nil
}

// StoreSingleImage stores file without filtering and makes it the user's profile image.
func (s *MediaService) StoreSingleImage(ctx context.Context, userID string, file ImageFile) (*models.User, error) {
	if _, err := s.identity.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	name := generateFileName(file.Filename)
	url, err := s.save(ctx, name, file)
	if err != nil {
		return nil, err
	}

	user, err := s.identity.SetProfileImage(ctx, userID, url)
	if err != nil {
		s.discard(ctx, name)
		return nil, err
	}
	return user, nil
}

func (s *MediaService) save(ctx context.Context, name string, file ImageFile) (string, error) {
	url, err := s.storage.Save(ctx, name, file.ContentType, file.Content)
	if err != nil {
		return "", &StoreError{Op: "store image", Err: err}
	}
	return url, nil
}

// discard removes objects saved by a request that failed afterwards.
func (s *MediaService) discard(ctx context.Context, names ...string) {
	for _, name := range names {
		if err := s.storage.Delete(ctx, name); err != nil {
			log.Warn().Err(err).Str("name", name).Msg("remove orphaned image")
		}
	}
}

// generateFileName returns <unix millis>-<12 hex chars of a uuid><original extension>.
func generateFileName(original string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
