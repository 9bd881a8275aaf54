package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/lukaszgryglicki/chaosgame/internal/chaosgame"
	"github.com/lukaszgryglicki/chaosgame/internal/viewer"
)

var (
	maxSteps     chaosgame.Count
	steps        chaosgame.Count
	gifEvery     chaosgame.Count
	flagHeadless = flag.Bool("headless", false, "render without a window")
	flagPolygon  = flag.Int("polygon", chaosgame.DefaultPolygon, "number of anchors of the default shape")
	flagScale    = flag.Float64("scale", chaosgame.DefaultZoom, "zoom: half-height of the view in world units, unless the scene sets zoom")
	flagScatter  = flag.Int("scatter-steps", chaosgame.DefaultScatterSteps, "scatter samples per main step")
	flagQueue    = flag.Int("queue-length", 0, "results queue length (0: 2 per thread)")
	flagThreads  = flag.Int("threads", 0, "worker threads (0: one per CPU)")
	flagDim      = flag.String("dim", "", "output size WxH")
	flagSS       = flag.Int("ss", 1, "supersampling factor of the exported image")
	flagStamp    = flag.Bool("stamp", false, "write steps and MSE onto the exported image")
	flagGIF      = flag.String("gif", "", "write a timelapse GIF (headless only)")
	flagOutput   = flag.String("output", chaosgame.OutputPNG, "output PNG")
	flagHUD      = flag.Bool("hud", true, "show steps and MSE in the window")
)

func init() {
	flag.Var(&maxSteps, "max-steps", "stop after this many iterations (k/m/b/t suffixes)")
	flag.Var(&steps, "steps", "iterations per worker batch (k/m/b/t suffixes)")
	flag.Var(&gifEvery, "gif-every", "timelapse frame period in iterations (k/m/b/t suffixes)")
}

// configure loads the scene and applies the flags given on the command line.
func configure() (*chaosgame.Config, error) {
	cfg, err := chaosgame.LoadConfig(flag.Arg(0))
	if err != nil {
		return nil, err
	}
	var dimErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "polygon":
			cfg.Polygon = *flagPolygon
		case "scale":
			cfg.SetFallbackZoom(*flagScale)
		case "steps":
			cfg.Steps = int(steps)
		case "scatter-steps":
			cfg.ScatterSteps = flagScatter
		case "max-steps":
			cfg.MaxSteps = uint64(maxSteps)
		case "queue-length":
			cfg.QueueLength = *flagQueue
		case "threads":
			cfg.Threads = *flagThreads
		case "dim":
			cfg.Width, cfg.Height, dimErr = chaosgame.ParseDim(*flagDim)
		case "gif":
			cfg.GIFOut = *flagGIF
		case "gif-every":
			cfg.GIFEvery = uint64(gifEvery)
		case "output":
			cfg.Output = *flagOutput
		}
	})
	return cfg, dimErr
}

func run(ctx context.Context) error {
	cfg, err := configure()
	if err != nil {
		return err
	}
	opts := chaosgame.RunOptions{Supersample: *flagSS, Stamp: *flagStamp, Out: os.Stdout}
	if *flagHeadless {
		_, err := chaosgame.Run(ctx, cfg, opts)
		return err
	}
	if opts.Supersample > 1 {
		chaosgame.DebugLog("supersampling applies to headless runs only")
		opts.Supersample = 1
	}
	world, err := chaosgame.Start(cfg, opts)
	if err != nil {
		return err
	}
	verr := viewer.Run(world, "chaos game", cfg.MaxSteps, *flagHUD)
	if _, err := chaosgame.Finish(world, cfg, opts); err != nil {
		return err
	}
	return verr
}

func main() {
	flag.Parse()
	if os.Getenv("DEBUG") != "" {
		chaosgame.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if os.Getenv("PROFILE") != "" {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}
