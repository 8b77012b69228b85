package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const MaxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]struct{}{
	"jpg": {}, "png": {}, "gif": {}, "webp": {},
}

type UploadedMedia struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	MimeType string `json:"mime_type"`
	Size     int    `json:"size"`
}

type MediaService interface {
	Upload(ctx context.Context, userID int64, file *multipart.FileHeader) (*UploadedMedia, error)
}

type mediaService struct {
	storage ObjectStorage
}

func NewMediaService(storage ObjectStorage) MediaService {
	return &mediaService{storage: storage}
}

// Upload checks that file is a supported image and stores it. The returned
// URL is what composers attach to posts.
func (s *mediaService) Upload(ctx context.Context, userID int64, file *multipart.FileHeader) (*UploadedMedia, error) {
	if file.Size > MaxImageSize {
		return nil, fmt.Errorf("%w: image larger than %d bytes", ErrInvalidInput, MaxImageSize)
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("%w: image larger than %d bytes", ErrInvalidInput, MaxImageSize)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == types.Unknown {
		return nil, ErrUnsupportedFile
	}
	if _, ok := allowedImageTypes[kind.Extension]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, kind.Extension)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("media/%d/%s.%s", userID, id, kind.Extension)

	url, err := s.storage.Upload(ctx, key, data, kind.MIME.Value)
	if err != nil {
		return nil, err
	}

	return &UploadedMedia{URL: url, Key: key, MimeType: kind.MIME.Value, Size: len(data)}, nil
}
