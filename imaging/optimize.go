// Package imaging fetches and optimizes image payloads before they are
// embedded in a presentation.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// Optimization bounds. Images already within bounds pass through
// untouched so repeated conversions stay byte-stable.
const (
	MaxWidth  = 1920
	MaxHeight = 1080

	DefaultJPEGQuality = 85
)

// Optimized is the result of running an image payload through Optimize.
type Optimized struct {
	Data   []byte
	Format string // "png", "jpeg" or "gif"
	Width  int
	Height int
}

// Optimize decodes data, downscales it to fit within MaxWidth×MaxHeight
// preserving aspect ratio, and re-encodes. Payloads that already fit are
// returned unmodified. Unsupported formats are an error; the caller
// decides whether to skip or embed the original bytes.
func Optimize(data []byte, quality int) (*Optimized, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image header: %w", err)
	}

	if cfg.Width <= MaxWidth && cfg.Height <= MaxHeight {
		return &Optimized{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	w, h := FitWithin(cfg.Width, cfg.Height, MaxWidth, MaxHeight)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		// Keep PNG for possible transparency.
		err = png.Encode(&buf, dst)
	case "gif":
		err = gif.Encode(&buf, dst, nil)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality})
		format = "jpeg"
	}
	if err != nil {
		return nil, fmt.Errorf("encoding resized image: %w", err)
	}

	return &Optimized{Data: buf.Bytes(), Format: format, Width: w, Height: h}, nil
}

// FitWithin scales (w, h) down to fit inside (maxW, maxH) preserving the
// aspect ratio. Sizes already inside the bounds are returned unchanged.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	rw := float64(maxW) / float64(w)
	rh := float64(maxH) / float64(h)
	r := rw
	if rh < rw {
		r = rh
	}
	nw := int(float64(w) * r)
	nh := int(float64(h) * r)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}
