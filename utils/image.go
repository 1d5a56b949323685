// utils/image.go
package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// FitJPEG decodes an image, shrinks it to fit within maxW x maxH keeping the
// aspect ratio (never enlarging) and re-encodes it as JPEG. Metadata is not
// carried over.
func FitJPEG(data []byte, maxW, maxH, quality int) ([]byte, image.Point, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := FitWithin(bounds.Dx(), bounds.Dy(), maxW, maxH)

	var out image.Image = src
	if w != bounds.Dx() || h != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality}); err != nil {
		return nil, image.Point{}, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), image.Pt(w, h), nil
}

// FitWithin returns w x h scaled down to fit maxW x maxH.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}
