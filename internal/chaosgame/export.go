package chaosgame

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Summary is the one-line report printed after a run.
func Summary(steps uint64, mse Real) string {
	return printer.Sprintf("%d iterations, MSE: %.6g", steps, mse)
}

// Downscale resizes a supersampled frame by 1/factor with Catmull-Rom.
func Downscale(src *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, max(b.Dx()/factor, 1), max(b.Dy()/factor, 1)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Stamp writes text lines in the bottom-left corner.
func Stamp(img *image.RGBA, lines ...string) {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: face,
	}
	y := img.Bounds().Max.Y - 4 - lineHeight*(len(lines)-1)
	for _, line := range lines {
		d.Dot = fixed.P(img.Bounds().Min.X+4, y)
		d.DrawString(line)
		y += lineHeight
	}
}

// ExportImage prepares a frame for saving: downscale by supersample, then
// optionally stamp it with steps and MSE.
func ExportImage(img *Image, supersample int, stamp bool) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.Pix)
	out = Downscale(out, supersample)
	if stamp {
		Stamp(out, Summary(img.Steps, img.MSE))
	}
	return out
}

// SavePNG writes img with the best compression.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	b := img.Bounds()
	DebugLog("Saved PNG: %s (%dx%d)", path, b.Dx(), b.Dy())
	return nil
}
