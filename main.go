package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/DenisKolodin/lustre-go/pkg/config"
	"github.com/DenisKolodin/lustre-go/pkg/renderer"
	"github.com/DenisKolodin/lustre-go/pkg/scene"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses flags and settings, renders the selected scene, and writes the
// result as a PNG. Split from main so tests can drive the whole pipeline.
func run(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("lustre-go", flag.ContinueOnError)
	flags.SetOutput(out)

	sceneName := flags.String("scene", "", "Scene to render (default \"default\")")
	meshPath := flags.String("mesh", "", "glTF file to load into the mesh scene")
	width := flags.Int("width", 0, "Image width in pixels (default 1200)")
	samples := flags.Int("samples", 0, "Samples per pixel (default 100)")
	depth := flags.Int("depth", 0, "Maximum ray bounce depth (default 50)")
	workers := flags.Int("workers", 0, "Render workers, 0 uses every CPU")
	tileSize := flags.Int("tile", 0, "Tile size in pixels, 0 picks a default")
	seed := flags.Uint64("seed", 0, "Random seed, 0 keeps the scene default")
	output := flags.String("output", "", "Output PNG path (default \"output.png\")")
	configPath := flags.String("config", "", "YAML settings file")
	progressive := flags.Bool("progressive", false, "Save the image after every progressive pass")
	help := flags.Bool("help", false, "Show help information")

	flags.Usage = func() {
		fmt.Fprintln(out, "Lustre: a weekend path tracer")
		fmt.Fprintln(out, "Usage: lustre-go [options]")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		flags.PrintDefaults()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Available scenes: "+strings.Join(scene.Names(), ", "))
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *help {
		flags.Usage()
		return nil
	}

	settings := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		settings = loaded
	}

	// Flags given on the command line win over the settings file.
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			settings.Scene.Name = *sceneName
		case "mesh":
			settings.Scene.Mesh = *meshPath
		case "width":
			settings.Render.Width = *width
		case "samples":
			settings.Render.SamplesPerPixel = *samples
		case "depth":
			settings.Render.MaxDepth = *depth
		case "workers":
			settings.Render.Workers = *workers
		case "tile":
			settings.Render.TileSize = *tileSize
		case "seed":
			settings.Render.Seed = *seed
		case "output":
			settings.Output.Path = *output
		case "progressive":
			settings.Output.Progressive = *progressive
		}
	})

	if err := settings.Validate(); err != nil {
		return err
	}

	s, err := scene.ByName(settings.Scene.Name, scene.Overrides{
		Camera:          renderer.CameraConfig{Width: settings.Render.Width},
		SamplesPerPixel: settings.Render.SamplesPerPixel,
		MaxDepth:        settings.Render.MaxDepth,
		Workers:         settings.Render.Workers,
		TileSize:        settings.Render.TileSize,
		Seed:            settings.Render.Seed,
		MeshPath:        settings.Scene.Mesh,
	})
	if err != nil {
		return err
	}

	logger := log.New(out, "", 0)
	r, err := renderer.NewRenderer(s, logger)
	if err != nil {
		return err
	}

	// Ctrl-C or SIGTERM cancels the render instead of killing it mid-write.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		cancel()
	}()

	sampling := s.GetSamplingConfig()
	logger.Printf("Rendering %q at %dx%d, %d samples per pixel, %d primitives",
		settings.Scene.Name, sampling.Width, sampling.Height, sampling.SamplesPerPixel, s.PrimitiveCount())

	start := time.Now()
	if settings.Output.Progressive {
		if err := runProgressive(ctx, r, logger, settings.Output.Path); err != nil {
			return err
		}
	} else {
		img, stats, err := r.Render(ctx)
		if err != nil {
			return err
		}
		logger.Printf("Samples per pixel: %.1f (range %d - %d)",
			stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)
		if err := writePNG(settings.Output.Path, img); err != nil {
			return err
		}
	}
	logger.Printf("Render completed in %v", time.Since(start).Round(time.Millisecond))
	logger.Printf("Render saved as %s", settings.Output.Path)

	return nil
}

// runProgressive rewrites the output file after each pass so the image on
// disk sharpens while the render is still running.
func runProgressive(ctx context.Context, r *renderer.Renderer, logger *log.Logger, path string) error {
	passes, errs := r.RenderProgressive(ctx, renderer.ProgressiveOptions{})
	for result := range passes {
		if err := writePNG(path, result.Image); err != nil {
			return err
		}
		logger.Printf("Pass %d: %.1f samples per pixel average", result.Pass, result.Stats.AverageSamples)
	}
	return <-errs
}

// writePNG encodes the image, creating the parent directory when needed.
func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return nil
}
