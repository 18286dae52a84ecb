package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"zettel-todo/internal/repository"
)

// ObjectStorage define las operaciones de object storage que necesita
// el servicio de avatares.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

// AvatarService gestiona la imagen de avatar de cada usuario.
type AvatarService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	storage ObjectStorage
	bucket  string
}

var (
	ErrAvatarTooLarge    = errors.New("avatar too large")
	ErrAvatarInvalidType = errors.New("avatar content type not allowed")
)

const maxAvatarBytes = 2 << 20

func NewAvatarService(logger *zap.Logger, users repository.UserRepository, storage ObjectStorage, bucket string) *AvatarService {
	return &AvatarService{
		logger:  logger,
		users:   users,
		storage: storage,
		bucket:  bucket,
	}
}

// Upload guarda la imagen bajo la clave del usuario y persiste la URL.
func (s *AvatarService) Upload(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	if len(data) == 0 || len(data) > maxAvatarBytes {
		return "", ErrAvatarTooLarge
	}
	if contentType != "image/jpeg" && contentType != "image/png" {
		return "", ErrAvatarInvalidType
	}

	url, err := s.storage.Upload(ctx, s.bucket, userID, data, contentType)
	if err != nil {
		return "", err
	}

	if err := s.users.SetAvatarURL(ctx, userID, url); err != nil {
		return "", err
	}

	s.logger.Info("avatar uploaded", zap.String("user_id", userID))
	return url, nil
}

// Delete borra el objeto y limpia la URL del usuario.
func (s *AvatarService) Delete(ctx context.Context, userID string) error {
	if err := s.storage.Delete(ctx, s.bucket, userID); err != nil {
		return err
	}
	return s.users.SetAvatarURL(ctx, userID, "")
}
