package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/infinity-school/portfolio-apiserver/internal/storage"
)

// ErrStorageDisabled is returned when no object storage backend is
// configured and a media upload is attempted.
var ErrStorageDisabled = errors.New("media storage is not configured")

// MediaService uploads profile photos and project images to object
// storage and hands back the public URL to store on the owning row.
type MediaService struct {
	storage *storage.Storage
}

func NewMediaService(st *storage.Storage) *MediaService {
	return &MediaService{storage: st}
}

// Enabled reports whether a storage backend is configured.
func (s *MediaService) Enabled() bool {
	return s != nil && s.storage != nil
}

// UploadUserPhoto stores a profile photo under usuarios/{id}/ and returns
// its public URL.
func (s *MediaService) UploadUserPhoto(ctx context.Context, userID int, filename, contentType string, data []byte) (string, error) {
	return s.upload(ctx, fmt.Sprintf("usuarios/%d", userID), filename, contentType, data)
}

// UploadProjectImage stores a project image under projetos/{id}/ and
// returns its public URL.
func (s *MediaService) UploadProjectImage(ctx context.Context, projectID int, filename, contentType string, data []byte) (string, error) {
	return s.upload(ctx, fmt.Sprintf("projetos/%d", projectID), filename, contentType, data)
}

func (s *MediaService) upload(ctx context.Context, prefix, filename, contentType string, data []byte) (string, error) {
	if !s.Enabled() {
		return "", ErrStorageDisabled
	}

	key := fmt.Sprintf("%s/%d%s", prefix, time.Now().UnixNano(), sanitizeExt(filename))
	if err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", err
	}
	return s.storage.ObjectURL(key), nil
}

// sanitizeExt keeps only a short, lowercase file extension so client
// filenames never leak into object keys.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\ ") {
		return ""
	}
	return ext
}
