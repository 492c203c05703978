package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardbinder/internal/util"
)

// ErrUnsupportedRef is returned for image references that are not http(s) URLs.
var ErrUnsupportedRef = errors.New("image reference must be an http(s) url")

// LoadImage fetches and decodes the image at an http(s) URL. Anything else,
// local paths included, is rejected.
func LoadImage(ctx context.Context, ref string) (image.Image, error) {
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%q: %w", ref, ErrUnsupportedRef)
	}

	body, err := util.GetBytes(ctx, u.String())
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	return img, nil
}
