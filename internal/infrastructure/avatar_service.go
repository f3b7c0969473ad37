package infrastructure

import (
	"bytes"
	"image"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	"task-service/internal/domain/apperrors"
)

const AvatarSize = 250

// AvatarService normalizes uploaded avatar images: any decodable JPEG or
// PNG becomes a square PNG of AvatarSize pixels.
type AvatarService struct {
	size int
}

func NewAvatarService() *AvatarService {
	return &AvatarService{size: AvatarSize}
}

func (a *AvatarService) Normalize(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Validation("please provide a valid image")
	}

	dst := image.NewRGBA(image.Rect(0, 0, a.size, a.size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, apperrors.Internal("encoding avatar", err)
	}
	return buf.Bytes(), nil
}
