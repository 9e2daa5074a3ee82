package usecase

import (
	"context"
	"io"

	"localmarket/internal/domain/policy"
	"localmarket/pkg/errors"
)

const MaxUploadBytes = 5 << 20

var uploadFolders = map[string]bool{
	"listings": true,
	"evidence": true,
}

var uploadContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type UploadUseCase struct {
	images ImageStore
}

func NewUploadUseCase(images ImageStore) *UploadUseCase {
	return &UploadUseCase{
		images: images,
	}
}

type UploadInput struct {
	File        io.Reader
	Size        int64
	ContentType string
	Folder      string
}

// UploadImage stores a listing photo or verification evidence and returns
// its public URL.
func (uc *UploadUseCase) UploadImage(ctx context.Context, actor policy.Actor, input UploadInput) (string, error) {
	if actor.UserID == "" {
		return "", errors.Unauthorized("Unauthorized", nil)
	}
	if input.Folder == "" {
		input.Folder = "listings"
	}
	if !uploadFolders[input.Folder] {
		return "", errors.BadRequest("folder must be one of: listings evidence", nil)
	}
	if !uploadContentTypes[input.ContentType] {
		return "", errors.BadRequest("Only JPEG, PNG, GIF and WebP images are accepted", nil)
	}
	if input.Size > MaxUploadBytes {
		return "", errors.BadRequest("Image must be 5 MB or smaller", nil)
	}

	url, err := uc.images.UploadImage(ctx, input.File, input.ContentType, input.Folder+"/"+actor.UserID)
	if err != nil {
		return "", errors.Internal("Failed to upload image", err)
	}
	return url, nil
}
