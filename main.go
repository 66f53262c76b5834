package main

import (
	"context"
	"flag"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/iburimskiy/portfolio-landing/internal/audio"
	"github.com/iburimskiy/portfolio-landing/internal/config"
	"github.com/iburimskiy/portfolio-landing/internal/game"
	"github.com/iburimskiy/portfolio-landing/internal/particles"
	"github.com/iburimskiy/portfolio-landing/internal/splat"
)

const splatTimeout = 30 * time.Second

func main() {
	var (
		configPath  = flag.String("config", "", "TOML settings file overlaid on the defaults")
		portrait    = flag.String("portrait", "static/Headshot.png", "portrait image the particle field is sampled from")
		pick        = flag.Bool("pick", false, "choose the portrait with a file dialog")
		splatOn     = flag.Bool("splat", false, "bootstrap the splat viewer")
		splatScript = flag.String("splat-script", splat.DefaultScriptURL, "splat viewer script URL")
		splatAsset  = flag.String("splat-asset", "static/Headshot.ply", "point cloud the splat viewer opens")
		splatOut    = flag.String("splat-out", "splat", "directory the patched viewer is written to")
		splatAddr   = flag.String("splat-addr", "", "serve the splat directory on this address")
		mute        = flag.Bool("mute", false, "disable hover and click chimes")
		verbose     = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[landing] ", log.LstdFlags)

	settings, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load settings: %v", err)
	}
	palette, err := particles.ParsePalette(settings.Palette)
	if err != nil {
		logger.Fatalf("palette: %v", err)
	}

	path := *portrait
	if *pick {
		path, err = pickPortrait(path)
		if err != nil {
			logger.Printf("portrait picker: %v", err)
		}
	}
	img, err := loadPortrait(path)
	if err != nil {
		// The field stays empty; the menu still works.
		logger.Printf("portrait: %v", err)
	} else if *verbose {
		logger.Printf("loaded portrait %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
	}

	var chime *audio.Chime
	if !*mute {
		chime, err = audio.NewChime()
		if err != nil {
			logger.Printf("audio disabled: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *splatOn {
		cfg := splat.Config{ScriptURL: *splatScript, AssetURL: *splatAsset, OutDir: *splatOut, Addr: *splatAddr}
		go runSplat(ctx, cfg, log.New(os.Stderr, "[splat] ", log.LstdFlags))
	}

	g, err := game.New(game.Options{
		Store:    config.NewStore(settings),
		Portrait: img,
		Palette:  palette,
		Chime:    chime,
		Logger:   logger,
		Verbose:  *verbose,
		Seed:     uint64(time.Now().UnixNano()),
	})
	if err != nil {
		logger.Fatalf("init: %v", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}

// pickPortrait asks for an image file. A cancelled dialog keeps fallback.
func pickPortrait(fallback string) (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Choose a portrait"),
		zenity.FileFilters{
			{Name: "Images", Patterns: []string{"*.png", "*.jpg", "*.jpeg", "*.webp", "*.bmp"}},
		},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	return path, nil
}

func loadPortrait(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open portrait")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return img, nil
}

// runSplat bootstraps the viewer once and optionally serves it until ctx
// ends. Failures are logged; nothing retries.
func runSplat(ctx context.Context, cfg splat.Config, logger *log.Logger) {
	fetchCtx, cancel := context.WithTimeout(ctx, splatTimeout)
	defer cancel()

	client := &http.Client{Timeout: splatTimeout}
	if err := splat.Bootstrap(fetchCtx, cfg, client, splat.DirInjector{Dir: cfg.OutDir, AssetRoot: ".", Assets: []string{cfg.AssetURL}}); err != nil {
		logger.Printf("bootstrap: %v", err)
		return
	}
	logger.Printf("viewer written to %s", cfg.OutDir)

	if cfg.Addr == "" {
		return
	}
	if err := splat.Serve(ctx, cfg.Addr, cfg.OutDir, logger); err != nil {
		logger.Printf("serve: %v", err)
	}
}
