package chaosgame

import (
	"context"
	"fmt"
	"io"
	"time"
)

// RunOptions are the output switches of a run.
type RunOptions struct {
	Supersample int           // render at this multiple of the output size
	Stamp       bool          // write steps and MSE onto the PNG
	Poll        time.Duration // progress check period of a headless run
	Out         io.Writer     // summary line; nil discards it
}

// Start builds the scene of cfg and starts a world sized for the output.
func Start(cfg *Config, opts RunOptions) (*World, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	ss := max(opts.Supersample, 1)
	return New(cfg.Width*ss, cfg.Height*ss, params, cfg.Threads, cfg.QueueLength)
}

// Finish stops world, prints the summary and saves cfg.Output. A fatal
// pipeline error skips the export.
func Finish(world *World, cfg *Config, opts RunOptions) (*Image, error) {
	err := world.Stop()
	img := world.Image()
	if st, serr := world.State(); serr == nil {
		DebugLog("Samples: %s", st.Stats)
	}
	if opts.Out != nil {
		fmt.Fprintln(opts.Out, Summary(img.Steps, img.MSE))
	}
	if err != nil {
		return img, err
	}
	return img, SavePNG(ExportImage(img, max(opts.Supersample, 1), opts.Stamp), cfg.Output)
}

// Run renders the scene without a window until cfg.MaxSteps main iterations
// are merged or ctx is done, then saves cfg.Output and the optional GIF.
func Run(ctx context.Context, cfg *Config, opts RunOptions) (*Image, error) {
	world, err := Start(cfg, opts)
	if err != nil {
		return nil, err
	}
	if opts.Poll <= 0 {
		opts.Poll = 50 * time.Millisecond
	}
	var tl *Timelapse
	if cfg.GIFOut != "" {
		every := cfg.GIFEvery
		if every == 0 {
			every = uint64(cfg.Steps)
		}
		tl = NewTimelapse(every, cfg.GIFDelay)
	}

	start := time.Now()
	ticker := time.NewTicker(opts.Poll)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-ctx.Done():
			DebugLog("Interrupted: %v", context.Cause(ctx))
			break loop
		case <-world.Done():
			break loop
		case <-ticker.C:
		}
		if tl != nil {
			tl.Capture(world.Image())
		}
		if cfg.MaxSteps > 0 && world.Steps() >= cfg.MaxSteps {
			break loop
		}
	}
	img, err := Finish(world, cfg, opts)
	DebugLog("Steps: %d, time: %s", img.Steps, time.Since(start))
	if err != nil {
		return img, err
	}
	if tl != nil {
		if err := tl.Save(cfg.GIFOut, img); err != nil {
			return img, err
		}
	}
	return img, nil
}
