// Package imaging normalizes uploaded item pictures.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// MIME is the type of every processed picture.
const MIME = "image/jpeg"

// ErrUnsupportedFormat is returned for uploads that are not JPEG or PNG.
var ErrUnsupportedFormat = errors.New("unsupported picture format (only JPEG and PNG accepted)")

// Options controls picture normalization.
type Options struct {
	// MaxDimension bounds the width and height of the stored picture.
	MaxDimension int
	// Quality is the JPEG quality of the stored picture.
	Quality int
}

// DefaultOptions suit item cards.
var DefaultOptions = Options{MaxDimension: 512, Quality: 85}

var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Picture is a processed picture ready to store.
type Picture struct {
	Data   []byte
	Width  int
	Height int
}

// Process sniffs the format from the bytes (not the client's headers),
// shrinks the picture to fit opts.MaxDimension and re-encodes it as JPEG.
func Process(r io.Reader, opts Options) (*Picture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading picture: %w", err)
	}

	if !accepted[http.DetectContentType(data)] {
		return nil, ErrUnsupportedFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding picture: %w", err)
	}
	img = fit(img, opts.MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return nil, fmt.Errorf("encoding picture: %w", err)
	}

	b := img.Bounds()
	return &Picture{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// fit scales img down with Catmull-Rom so neither side exceeds maxDim,
// keeping the aspect ratio. Smaller images are returned as they are.
func fit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = max(1, h*maxDim/w)
	} else {
		newW = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
