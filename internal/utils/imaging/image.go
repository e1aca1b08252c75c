package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	"github.com/bbrks/go-blurhash"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// blurHashSize bounds the thumbnail used for BlurHash; the hash is a
// low-resolution placeholder so a small source gives the same result.
const blurHashSize = 64

var AllowImage = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecode            = errors.New("image could not be decoded")
)

type Image struct {
	ContentType string
	Extension   string
	Width       int
	Height      int
	BlurHash    string
}

// Inspect checks that data is a fully decodable image of an allowed type.
func Inspect(data []byte) (Image, error) {
	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), AllowImage...) {
		return Image{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mtype.String())
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	out := Image{
		ContentType: mtype.String(),
		Extension:   mtype.Extension(),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}

	// A failed BlurHash leaves the field empty.
	if hash, err := blurhash.Encode(4, 3, thumbnail(img)); err == nil {
		out.BlurHash = hash
	}
	return out, nil
}

func thumbnail(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= blurHashSize && h <= blurHashSize {
		return img
	}

	if w > h {
		h = max(1, h*blurHashSize/w)
		w = blurHashSize
	} else {
		w = max(1, w*blurHashSize/h)
		h = blurHashSize
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
