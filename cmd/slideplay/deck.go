package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/slideplay/internal/config"
	"github.com/ivlev/slideplay/internal/deck"
	"github.com/ivlev/slideplay/internal/store/file"
	"github.com/ivlev/slideplay/internal/system"
)

func runDeck(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("deck", flag.ExitOnError)
	input := fs.String("input", "", "PDF, image, or folder of images (default: newest PDF in input/pdf/)")
	out := fs.String("out", "", "Output scenario file (default: a timestamped file in the store dir)")
	assets := fs.String("assets", cfg.AssetsDir, "Directory for rendered page images")
	title := fs.String("title", "", "Scenario title (default: input file name)")
	dpi := fs.Int("dpi", cfg.DPI, "PDF render DPI")
	workers := fs.Int("workers", cfg.Workers, "Parallel page renderers")
	maxWidth := fs.Int("max-width", cfg.MaxWidth, "Downscale pages wider than this")
	duration := fs.Float64("page-duration", 0, "Seconds per page; enables auto-advance when set")
	reveal := fs.Bool("reveal", false, "Detect content regions and reveal them one by one")
	step := fs.Float64("reveal-step", deck.DefaultRevealStep, "Seconds between revealed regions")
	fs.Parse(args)

	inputPath := *input
	if inputPath == "" {
		latest, err := system.FindLatest("input/pdf", []string{".pdf"})
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a PDF into input/pdf/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Selected file: %s\n", inputPath)
	}

	src, err := deck.Open(inputPath)
	if err != nil {
		log.Fatalf("[-] Source error: %v", err)
	}
	defer src.Close()

	name := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if *title == "" {
		*title = name
	}
	outPath := *out
	if outPath == "" {
		if err := os.MkdirAll(cfg.StorePath, 0755); err != nil {
			log.Fatalf("[-] Cannot create %s: %v", cfg.StorePath, err)
		}
		outPath = system.TimestampedPath(cfg.StorePath, strings.ReplaceAll(name, " ", "_"), ".json")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("[*] Source: %s | Pages: %d | Page: %s | DPI: %d | Workers: %d\n",
		inputPath, src.PageCount(), pageFormat(src), *dpi, *workers)
	started := time.Now()
	doc, err := deck.Import(ctx, src, deck.Options{
		Title:         *title,
		AssetDir:      *assets,
		Workers:       *workers,
		DPI:           *dpi,
		MaxWidth:      *maxWidth,
		SlideDuration: *duration,
		Reveal:        *reveal,
		RevealStep:    *step,
		OnPage: func(done, total int) {
			fmt.Printf("[>] Ready: %d/%d\n", done, total)
		},
	})
	if err != nil {
		log.Fatalf("[-] Import failed: %v", err)
	}
	if *duration > 0 {
		doc.Settings.AutoAdvance = true
	}

	if err := file.WriteFile(outPath, doc); err != nil {
		log.Fatalf("[-] Write failed: %v", err)
	}
	if cfg.ShowStats {
		if s, err := system.CollectStats(started); err == nil {
			fmt.Print(s.Report(cfg.BuildVersion))
		}
	}
	fmt.Printf("[+++] Success! %d slides written to %s\n", len(doc.Slides), outPath)
}

// pageFormat reports the first page's dimensions in source units: points for PDF,
// pixels for images.
func pageFormat(src deck.Source) string {
	if src.PageCount() == 0 {
		return "none"
	}
	w, h, err := src.PageSize(0)
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("%.0fx%.0f", w, h)
}
