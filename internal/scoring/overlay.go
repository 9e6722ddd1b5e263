package scoring

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
)

// ErrNotAnImage is returned when the stored bytes cannot be decoded as an image.
var ErrNotAnImage = errors.New("cannot decode image")

// Fixed bounding box of the placeholder heat-map ellipse.
const (
	ellipseMinX = 50
	ellipseMinY = 50
	ellipseMaxX = 250
	ellipseMaxY = 250
)

// overlayFill is the translucent red used for the heat-map placeholder.
var overlayFill = color.NRGBA{R: 255, A: 100}

// EllipseExplainer is the placeholder explanation generator: it composites a
// fixed translucent ellipse over the stored image and returns the result as a
// base64-encoded PNG. A real explainer (e.g. LIME) satisfies the same contract.
type EllipseExplainer struct{}

// NewEllipseExplainer creates a new EllipseExplainer.
func NewEllipseExplainer() *EllipseExplainer {
	return &EllipseExplainer{}
}

// Explain opens the stored image, composites the fixed overlay and returns the
// flattened result as a base64 PNG string.
func (e *EllipseExplainer) Explain(imagePath string) (string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("open stored image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, err)
	}

	base := image.NewRGBA(src.Bounds())
	draw.Draw(base, base.Bounds(), src, src.Bounds().Min, draw.Src)

	overlay := image.NewNRGBA(base.Bounds())
	fillEllipse(overlay, image.Rect(ellipseMinX, ellipseMinY, ellipseMaxX, ellipseMaxY), overlayFill)
	draw.Draw(base, base.Bounds(), overlay, image.Point{}, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, base); err != nil {
		return "", fmt.Errorf("encode overlay png: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// fillEllipse paints the ellipse inscribed in rect onto img.
func fillEllipse(img *image.NRGBA, rect image.Rectangle, c color.NRGBA) {
	cx := float64(rect.Min.X+rect.Max.X) / 2
	cy := float64(rect.Min.Y+rect.Max.Y) / 2
	rx := float64(rect.Dx()) / 2
	ry := float64(rect.Dy()) / 2
	if rx == 0 || ry == 0 {
		return
	}

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}
