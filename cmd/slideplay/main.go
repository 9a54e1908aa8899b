package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ivlev/slideplay/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type command struct {
	name  string
	usage string
	run   func(cfg config.Config, args []string)
}

var commands = []command{
	{"new", "new [-title T] [-slides title,content,...] -out file", runNew},
	{"validate", "validate file...", runValidate},
	{"fmt", "fmt [-out file] file", runFmt},
	{"play", "play [-speed N] [-dwell D] [-stats] [file]", runPlay},
	{"deck", "deck [-input pdf|dir] [-out file] [-assets dir] [-reveal]", runDeck},
	{"serve", "serve [-addr :8080] [-driver file|sqlite] [-store path]", runServe},
	{"thumb", "thumb [-slide N] [-width W] [-height H] -out file.png file", runThumb},
	{"qr", "qr -url URL [-size N] -out file.png", runQR},
}

func usage() {
	fmt.Fprintf(os.Stderr, "slideplay %s\n\nUsage:\n", version)
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  slideplay %s\n", c.usage)
	}
	fmt.Fprintln(os.Stderr, "\nSettings are read from SLIDEPLAY_* environment variables; flags override them.")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[-] Configuration error: %v", err)
	}
	cfg.BuildVersion = version

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	name := os.Args[1]
	for _, c := range commands {
		if c.name == name {
			c.run(cfg, os.Args[2:])
			return
		}
	}
	if name != "help" && name != "-h" && name != "--help" {
		fmt.Fprintf(os.Stderr, "[-] Unknown command %q\n\n", name)
	}
	usage()
	os.Exit(2)
}
