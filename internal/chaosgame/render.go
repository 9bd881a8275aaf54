package chaosgame

import (
	"image"
	"math"
)

// Image is a rendered RGBA8 frame. It is never modified once published.
type Image struct {
	Width, Height int
	Pix           []byte
	Steps         uint64
	MSE           Real
}

// RGBA wraps the pixels without copying.
func (img *Image) RGBA() *image.RGBA {
	return &image.RGBA{Pix: img.Pix, Stride: img.Width * 4, Rect: image.Rect(0, 0, img.Width, img.Height)}
}

// toByte applies the display gamma to a squared-linear channel.
func toByte(v Real) uint8 {
	if v <= 0 {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(math.Pow(v, 1/Gamma) * 255)
}

func backgroundRGBA(bg RGB) [4]byte {
	return [4]byte{toByte(bg.R), toByte(bg.G), toByte(bg.B), 255}
}

func backgroundImage(width, height int, bg RGB) *Image {
	img := &Image{Width: width, Height: height, Pix: make([]byte, width*height*4)}
	fill(img.Pix, backgroundRGBA(bg))
	return img
}

func fill(buf []byte, px [4]byte) {
	for i := 0; i+3 < len(buf); i += 4 {
		copy(buf[i:i+4], px[:])
	}
}

// Render tone-maps the state: a = 1 - exp(-n * w*h/steps * gain) blends the
// background toward the pixel's mean color, then the gamma is applied.
func (s *State) Render(gain Real, bg RGB) *Image {
	if s.Steps == 0 {
		return backgroundImage(s.Width, s.Height, bg)
	}
	img := &Image{
		Width:  s.Width,
		Height: s.Height,
		Pix:    make([]byte, s.Width*s.Height*4),
		Steps:  s.Steps,
		MSE:    s.MSE(),
	}
	ratio := Real(s.Width) * Real(s.Height) / Real(s.Steps) * gain
	empty := backgroundRGBA(bg)
	for i := range s.Pixels {
		p := &s.Pixels[i]
		out := img.Pix[i*4 : i*4+4]
		if p.N <= 0 {
			copy(out, empty[:])
			continue
		}
		a := 1 - math.Exp(-p.N*ratio)
		m := p.Mean()
		out[0] = toByte(lerp(bg.R, m.R, a))
		out[1] = toByte(lerp(bg.G, m.G, a))
		out[2] = toByte(lerp(bg.B, m.B, a))
		out[3] = 255
	}
	return img
}
