package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/stemtools/map4d-mcp/internal/dataset"
)

// MapImageResult contains a rendered map encoded as base64 PNG.
type MapImageResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
	Colormap    string  `json:"colormap"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}

// Map renders a 2D array as a colormapped preview image.
//
// Values are normalized linearly between the array's min and max; a
// flat array renders entirely at the gradient origin. smoothSigma > 0
// applies a Gaussian blur to the preview, and scale != 1 resizes it
// with nearest-neighbor sampling so scan pixels stay crisp.
func Map(a *dataset.Array, colormap string, scale, smoothSigma float64) (*MapImageResult, error) {
	if a.NDim() != 2 {
		return nil, fmt.Errorf("can only render 2D arrays, got %d dimensions", a.NDim())
	}
	g, err := lookupColormap(colormap)
	if err != nil {
		return nil, err
	}
	if colormap == "" {
		colormap = DefaultColormap
	}

	height, width := a.Shape[0], a.Shape[1]

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range a.Data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t := 0.0
			if hi > lo {
				t = (a.Data[y*width+x] - lo) / (hi - lo)
			}
			c := g.at(t)
			img.Set(x, y, color.RGBA{
				R: uint8(c.R*255 + 0.5),
				G: uint8(c.G*255 + 0.5),
				B: uint8(c.B*255 + 0.5),
				A: 255,
			})
		}
	}

	out := image.Image(img)
	if smoothSigma > 0 {
		out = blur.Gaussian(out, smoothSigma)
	}
	outW, outH := width, height
	if scale != 0 && scale != 1 {
		if scale < 0 {
			return nil, fmt.Errorf("scale must be positive, got %g", scale)
		}
		outW = int(math.Round(float64(width) * scale))
		outH = int(math.Round(float64(height) * scale))
		if outW < 1 || outH < 1 {
			return nil, fmt.Errorf("scale %g collapses %dx%d preview to nothing", scale, width, height)
		}
		out = imaging.Resize(out, outW, outH, imaging.NearestNeighbor)
	}

	encoded, err := encodePNG(out)
	if err != nil {
		return nil, err
	}

	return &MapImageResult{
		Width:       outW,
		Height:      outH,
		ImageBase64: encoded,
		MimeType:    "image/png",
		Colormap:    colormap,
		Min:         lo,
		Max:         hi,
	}, nil
}

// MaskImageResult contains a rendered mask encoded as base64 PNG.
type MaskImageResult struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	SelectedPixels int     `json:"selected_pixels"`
	Coverage       float64 `json:"coverage"`
	ImageBase64    string  `json:"image_base64"`
	MimeType       string  `json:"mime_type"`
}

// Mask renders a mask white-on-black, with selected pixels counted and
// reported as a fraction of the plane.
func Mask(m *dataset.Mask, scale float64) (*MaskImageResult, error) {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(y, x) {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	out := image.Image(img)
	outW, outH := m.Width, m.Height
	if scale != 0 && scale != 1 {
		if scale < 0 {
			return nil, fmt.Errorf("scale must be positive, got %g", scale)
		}
		outW = int(math.Round(float64(m.Width) * scale))
		outH = int(math.Round(float64(m.Height) * scale))
		if outW < 1 || outH < 1 {
			return nil, fmt.Errorf("scale %g collapses %dx%d preview to nothing", scale, m.Width, m.Height)
		}
		out = imaging.Resize(out, outW, outH, imaging.NearestNeighbor)
	}

	encoded, err := encodePNG(out)
	if err != nil {
		return nil, err
	}

	selected := m.Count()
	return &MaskImageResult{
		Width:          outW,
		Height:         outH,
		SelectedPixels: selected,
		Coverage:       float64(selected) / float64(m.Height*m.Width),
		ImageBase64:    encoded,
		MimeType:       "image/png",
	}, nil
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
