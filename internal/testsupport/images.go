package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"testing"
)

// Pattern draws a deterministic test image. Different variants produce
// visibly different structure so their perceptual hashes diverge.
func Pattern(w, h, variant int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var v uint8
			switch variant % 4 {
			case 0:
				v = uint8(x * 255 / w)
			case 1:
				v = uint8(y * 255 / h)
			case 3:
				fx, fy := float64(x), float64(y)
				v = uint8(128 + 60*math.Sin(fx*0.11+fy*0.05) + 50*math.Cos(fy*0.17-fx*0.03))
			default:
				if (x/(w/4)+y/(h/4))%2 == 0 {
					v = 230
				} else {
					v = 20
				}
			}
			img.Set(x, y, color.RGBA{R: v, G: v / 2, B: 255 - v, A: 255})
		}
	}
	return img
}

// JPEG encodes img as a JPEG
func JPEG(t testing.TB, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// PNG encodes img as a PNG
func PNG(t testing.TB, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// TaggedJPEG returns a JPEG of the given pattern variant carrying x
func TaggedJPEG(t testing.TB, variant int, x Exif) []byte {
	t.Helper()
	return WithExif(JPEG(t, Pattern(64, 64, variant)), x)
}
