package chaosgame

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// Timelapse collects frames for an animated GIF of the convergence.
type Timelapse struct {
	Every  uint64 // capture period in steps
	Delay  int    // 100ths of a second per frame
	next   uint64
	frames []*image.Paletted
}

func NewTimelapse(every uint64, delay int) *Timelapse {
	if delay <= 0 {
		delay = GIFDelay
	}
	return &Timelapse{Every: every, Delay: delay, next: every}
}

// Capture quantizes img when it has passed the next capture point.
func (t *Timelapse) Capture(img *Image) bool {
	if t.Every == 0 || img.Steps < t.next {
		return false
	}
	t.add(img)
	for t.next <= img.Steps {
		t.next += t.Every
	}
	return true
}

func (t *Timelapse) add(img *Image) {
	p := image.NewPaletted(image.Rect(0, 0, img.Width, img.Height), palette.Plan9)
	draw.FloydSteinberg.Draw(p, p.Bounds(), img.RGBA(), image.Point{})
	t.frames = append(t.frames, p)
	DebugLog("GIF frame #%d at %d steps", len(t.frames), img.Steps)
}

// Frames is the number of captured frames.
func (t *Timelapse) Frames() int { return len(t.frames) }

// Save writes the frames plus a closing copy of last to path.
func (t *Timelapse) Save(path string, last *Image) error {
	if last != nil {
		t.add(last)
	}
	out := &gif.GIF{
		Image:     t.frames,
		Delay:     make([]int, len(t.frames)),
		LoopCount: 0,
	}
	for i := range out.Delay {
		out.Delay[i] = t.Delay
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gif.EncodeAll(f, out); err != nil {
		return err
	}
	DebugLog("Saved animated GIF: %s (%d frames)", path, len(t.frames))
	return nil
}
