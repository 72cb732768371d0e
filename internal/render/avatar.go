package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	_ "golang.org/x/image/webp"
)

// MaxAvatarSide bounds either dimension of an uploaded avatar. Every render
// decodes and rescales the picture under the renderer lock.
const MaxAvatarSide = 4096

var (
	errNotDataURL   = errors.New("avatar is not a data: URL")
	ErrAvatarTooBig = errors.New("avatar dimensions too large")
)

// DecodeAvatar decodes a data: URL holding a PNG, JPEG, GIF or WebP picture.
func DecodeAvatar(dataURL string) (image.Image, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, errNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL")
	}

	var raw []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
		}
		raw = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to unescape payload: %w", err)
		}
		raw = []byte(s)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// EncodeAvatar builds the data: URL stored on a profile for an uploaded
// picture. The bytes must decode as one of the supported formats and neither
// side may exceed MaxAvatarSide.
func EncodeAvatar(data []byte) (string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unsupported image: %w", err)
	}
	if cfg.Width > MaxAvatarSide || cfg.Height > MaxAvatarSide {
		return "", fmt.Errorf("%w: %dx%d", ErrAvatarTooBig, cfg.Width, cfg.Height)
	}
	return "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// avatarCache keeps the last decoded avatar; a session rarely has more than one.
type avatarCache struct {
	key string
	img image.Image
	err error
}

func (a *avatarCache) get(dataURL string) (image.Image, error) {
	if a.key == dataURL && (a.img != nil || a.err != nil) {
		return a.img, a.err
	}
	a.key = dataURL
	a.img, a.err = DecodeAvatar(dataURL)
	return a.img, a.err
}
