package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/ivlev/slideplay/internal/background"
	"github.com/ivlev/slideplay/internal/config"
	"github.com/ivlev/slideplay/internal/editor"
	"github.com/ivlev/slideplay/internal/media"
	"github.com/ivlev/slideplay/internal/scenario"
	"github.com/ivlev/slideplay/internal/store/file"
	"github.com/ivlev/slideplay/internal/system"
)

func runNew(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	title := fs.String("title", "Untitled scenario", "Scenario title")
	slides := fs.String("slides", "", "Extra slide types to append, comma separated (e.g. content,quiz,stats)")
	out := fs.String("out", "", "Output file (.json or .yaml); default: a timestamped file in the store dir")
	fs.Parse(args)

	session := editor.NewSession(nil, editor.Options{Limit: cfg.HistoryLimit})
	session.Rename(*title, "")
	for _, t := range strings.Split(*slides, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, err := session.AddSlide(scenario.SlideType(t)); err != nil {
			log.Fatalf("[-] Cannot add slide %q: %v", t, err)
		}
	}

	path := *out
	if path == "" {
		if err := os.MkdirAll(cfg.StorePath, 0755); err != nil {
			log.Fatalf("[-] Cannot create %s: %v", cfg.StorePath, err)
		}
		path = system.TimestampedPath(cfg.StorePath, "scenario", ".json")
	}
	doc := session.Current()
	if err := file.WriteFile(path, doc); err != nil {
		log.Fatalf("[-] Write failed: %v", err)
	}
	fmt.Printf("[+++] Created %s (%d slides)\n", path, len(doc.Slides))
}

func runValidate(_ config.Config, args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() == 0 {
		log.Fatalf("[-] validate: no files given")
	}

	failed := 0
	for _, path := range fs.Args() {
		doc, err := file.ReadFile(path)
		if err != nil {
			fmt.Printf("[-] %v\n", err)
			failed++
			continue
		}
		for _, w := range lint(doc) {
			fmt.Printf("[!] %s: %s\n", path, w)
		}
		fmt.Printf("[+++] %s: %d slides, version %s\n", path, len(doc.Slides), doc.Version)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// lint reports problems that do not make a document invalid but will show at playback.
func lint(doc *scenario.Scenario) []string {
	var out []string
	for i, sl := range doc.Slides {
		if u, ok := sl.Content.(*scenario.Unsupported); ok {
			out = append(out, fmt.Sprintf("slide %d (%s): unsupported type %q will render a placeholder", i+1, sl.ID, u.Tag))
		}
		for _, pair := range media.Overlaps(sl.Subtitles) {
			out = append(out, fmt.Sprintf("slide %d (%s): subtitles %d and %d overlap, the first wins", i+1, sl.ID, pair[0], pair[1]))
		}
		if stage, ok := sl.Content.(*scenario.StageContent); ok {
			for _, el := range stage.Elements {
				if !el.Valid() {
					out = append(out, fmt.Sprintf("slide %d (%s): element %s ends before it starts", i+1, sl.ID, el.ID))
				}
			}
		}
	}
	return out
}

func runFmt(_ config.Config, args []string) {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	out := fs.String("out", "", "Write here instead of rewriting the input (extension picks JSON or YAML)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatalf("[-] fmt: expected one file")
	}
	in := fs.Arg(0)

	doc, err := file.ReadFile(in)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	doc.Reindex()
	target := *out
	if target == "" {
		target = in
	}
	if err := file.WriteFile(target, doc); err != nil {
		log.Fatalf("[-] Write failed: %v", err)
	}
	fmt.Printf("[+++] Formatted %s\n", target)
}

func runThumb(_ config.Config, args []string) {
	fs := flag.NewFlagSet("thumb", flag.ExitOnError)
	index := fs.Int("slide", 0, "Slide index")
	width := fs.Int("width", 320, "Width in pixels")
	height := fs.Int("height", 180, "Height in pixels")
	out := fs.String("out", "", "Output PNG")
	fs.Parse(args)
	if fs.NArg() != 1 || *out == "" {
		log.Fatalf("[-] thumb: expected -out and one scenario file")
	}
	if *width <= 0 || *height <= 0 {
		log.Fatalf("[-] thumb: size must be positive")
	}

	doc, err := file.ReadFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	slide := doc.At(*index)
	if slide == nil {
		log.Fatalf("[-] thumb: slide %d out of range (0..%d)", *index, len(doc.Slides)-1)
	}

	paint := background.Resolve(slide.Background, doc.Theme)
	img := background.Rasterize(paint, *width, *height)
	defer system.PutImage(img)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		log.Fatalf("[-] Encode failed: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("[-] %v", err)
	}
	fmt.Printf("[+++] %s background of slide %d written to %s\n", paint.Kind, *index, filepath.Clean(*out))
}

func runQR(_ config.Config, args []string) {
	fs := flag.NewFlagSet("qr", flag.ExitOnError)
	url := fs.String("url", "", "Playback link to encode")
	size := fs.Int("size", 256, "Image size in pixels")
	out := fs.String("out", "qr.png", "Output PNG")
	fs.Parse(args)
	if *url == "" {
		log.Fatalf("[-] qr: -url is required")
	}
	if err := qrcode.WriteFile(*url, qrcode.Medium, *size, *out); err != nil {
		log.Fatalf("[-] QR generation failed: %v", err)
	}
	fmt.Printf("[+++] QR code for %s written to %s\n", *url, *out)
}
