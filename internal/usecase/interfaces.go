package usecase

import (
	"context"
	"io"

	"localmarket/internal/domain/entity"
)

// IdentityProvider is the external account system. It owns credentials;
// the service only creates accounts and exchanges bearer tokens for uids.
// CreateUser reports problems the caller can fix as *errors.AppError with a
// 4xx status; any other error is treated as a provider failure.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.Event) error
}

// ImageStore keeps uploaded images and returns their public URL.
type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader, contentType, folder string) (string, error)
}
