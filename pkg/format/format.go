// Package format resolves a user-chosen output token to a concrete
// encoder and file extension, and performs the encoding.
//
// Supported outputs are JPEG, PNG, WebP and BMP. WebP goes through
// github.com/chai2010/webp since the x/image decoder has no encode
// side. Encoders without alpha support (JPEG, BMP) flatten transparent
// images onto opaque white instead of rejecting them.
package format

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// KeepOriginal is the token that selects the source file's own format.
const KeepOriginal = "org"

// DefaultQuality is the default JPEG/WebP quality.
const DefaultQuality = 90

// ErrUnsupportedFormat is returned when no encoder exists for the
// resolved format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format identifies an image encoder.
type Format int

const (
	JPEG Format = iota
	PNG
	WebP
	BMP
)

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case JPEG:
		return "jpeg"
	case PNG:
		return "png"
	case WebP:
		return "webp"
	case BMP:
		return "bmp"
	default:
		return "unknown"
	}
}

// Target is a concrete encoding decision: the encoder to use and the
// extension the output file gets.
type Target struct {
	Format    Format
	Extension string
}

var extensionFormats = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"webp": WebP,
	"bmp":  BMP,
}

// Resolve maps an output token and the source's original extension to
// a Target. An empty token or KeepOriginal selects the original
// extension's format. Matching is case-insensitive and tolerates a
// leading dot. Returns ErrUnsupportedFormat when the resolved
// extension has no encoder.
func Resolve(token, originalExt string) (Target, error) {
	ext := normalizeExt(token)
	if ext == "" || ext == KeepOriginal {
		ext = normalizeExt(originalExt)
	}

	f, ok := extensionFormats[ext]
	if !ok {
		return Target{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return Target{Format: f, Extension: ext}, nil
}

// ValidToken reports whether token is acceptable as an output choice.
func ValidToken(token string) bool {
	ext := normalizeExt(token)
	if ext == "" || ext == KeepOriginal {
		return true
	}
	_, ok := extensionFormats[ext]
	return ok
}

// Encode writes img to w in the target's format. Quality applies to
// JPEG and WebP; values outside 1..100 fall back to DefaultQuality.
func (t Target) Encode(w io.Writer, img image.Image, quality int) error {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}

	switch t.Format {
	case JPEG:
		return imaging.Encode(w, flatten(img), imaging.JPEG, imaging.JPEGQuality(quality))
	case PNG:
		return imaging.Encode(w, img, imaging.PNG)
	case WebP:
		return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
	case BMP:
		return bmp.Encode(w, flatten(img))
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, t.Extension)
	}
}

// flatten composites img onto an opaque white canvas when it carries
// transparency, for encoders that cannot represent alpha.
func flatten(img image.Image) image.Image {
	if opaque(img) {
		return img
	}
	b := img.Bounds()
	white := imaging.New(b.Dx(), b.Dy(), color.NRGBA{255, 255, 255, 255})
	return imaging.Overlay(white, img, image.Point{}, 1.0)
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}

	// No fast path: scan the alpha channel
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

func normalizeExt(s string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
}
