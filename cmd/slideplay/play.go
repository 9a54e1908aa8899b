package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/slideplay/internal/clock"
	"github.com/ivlev/slideplay/internal/config"
	"github.com/ivlev/slideplay/internal/media"
	"github.com/ivlev/slideplay/internal/player"
	"github.com/ivlev/slideplay/internal/scenario"
	"github.com/ivlev/slideplay/internal/store/file"
	"github.com/ivlev/slideplay/internal/system"
)

// scaledClock runs a Loop faster than real time.
type scaledClock struct {
	*clock.Loop
	cfg config.Config
}

func (c scaledClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	return c.Loop.AfterFunc(c.cfg.Scaled(d), f)
}

func runPlay(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	speed := fs.Float64("speed", cfg.Speed, "Playback speed multiplier")
	dwell := fs.Duration("dwell", 3*time.Second, "Minimum time on slides that do not advance by themselves")
	start := fs.Int("start", 0, "Initial slide index")
	blocked := fs.Bool("block-autoplay", false, "Refuse audio autoplay, as a browser without a user gesture would")
	stats := fs.Bool("stats", cfg.ShowStats, "Print a resource usage report at the end")
	fs.Parse(args)

	cfg.Speed = *speed
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] %v", err)
	}

	path := fs.Arg(0)
	if path == "" {
		latest, err := system.FindLatest(cfg.StorePath, system.ScenarioExtensions)
		if err != nil {
			log.Fatalf("[-] No scenario given: %v", err)
		}
		path = latest
		fmt.Printf("[*] Selected file: %s\n", path)
	}
	doc, err := file.ReadFile(path)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := clock.NewLoop(64)
	clk := scaledClock{Loop: loop, cfg: cfg}
	baseDir := filepath.Dir(path)

	fmt.Println("--- [SLIDEPLAY: HEADLESS PLAYER] ---")
	fmt.Printf("[*] Scenario: %s | Slides: %d | Speed: x%.2f\n", doc.Title, len(doc.Slides), cfg.Speed)
	fmt.Println("------------------------------------")

	started := time.Now()
	var (
		p     *player.Player
		next  clock.Timer
		ended bool
	)
	p = player.New(doc, player.Options{
		InitialSlide:       *start,
		Clock:              clk,
		Logger:             slog.Default(),
		TransitionDuration: cfg.TransitionDuration,
		SettleDelay:        cfg.SettleDelay,
		LoadingDelay:       cfg.LoadingDelay,
		SwipeThreshold:     cfg.SwipeThreshold,
		Transports: media.Simulator{
			Clock:         clk,
			Interval:      cfg.TimeUpdateInterval,
			AudioDuration: audioDurations(ctx, baseDir),
			BlockAutoplay: *blocked,
		}.Factory(),
		OnSlideChange: func(index int) {
			slide := doc.At(index)
			fmt.Printf("[*] Slide %d/%d: %s (%s)\n", index+1, len(doc.Slides), slide.ID, slide.Type)
			clock.Stop(next)
			next = scheduleNext(clk, p, index, dwellFor(slide, doc.Settings, *dwell))
		},
		OnSubtitle: func(_ int, text string) {
			if text != "" {
				fmt.Printf("[>] %q\n", text)
			}
		},
		OnComplete: func(res player.Result) {
			ended = true
			fmt.Printf("[+++] Completed: %d/%d slides visited, %d interactions\n",
				len(res.CompletedSlides), res.TotalSlides, len(res.Interactions))
			cancel()
		},
		OnExit: func(state player.PlaybackState) {
			ended = true
			fmt.Printf("[!] Exited on slide %d/%d\n", state.CurrentSlide+1, state.TotalSlides)
			cancel()
		},
	})

	loop.Post(p.Start)
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("[-] Playback failed: %v", err)
	}
	if !ended {
		p.Exit()
	}

	if *stats {
		s, err := system.CollectStats(started)
		if err != nil {
			fmt.Printf("[!] Stats unavailable: %v\n", err)
			return
		}
		fmt.Print(s.Report(cfg.BuildVersion))
	}
}

// dwellFor is how long the headless player stays on slide before pressing next. Slides
// that auto-advance are left to the player.
func dwellFor(slide *scenario.Slide, settings scenario.Settings, floor time.Duration) time.Duration {
	if settings.AutoAdvance && slide.Duration != nil && *slide.Duration > 0 {
		return 0
	}
	natural := time.Duration(media.NaturalLength(slide) * float64(time.Second))
	return max(natural, floor)
}

func scheduleNext(clk clock.Clock, p *player.Player, index int, after time.Duration) clock.Timer {
	if after <= 0 {
		return nil
	}
	var press func()
	press = func() {
		s := p.Snapshot()
		if s.CurrentSlide != index || s.State == player.Completed || s.State == player.Exited {
			return
		}
		if s.State != player.Ready {
			clk.AfterFunc(100*time.Millisecond, press)
			return
		}
		p.Next()
	}
	return clk.AfterFunc(after, press)
}

// audioDurations measures local audio files with ffprobe; remote URLs and failures fall
// back to the slide's natural length.
func audioDurations(ctx context.Context, baseDir string) func(url string) float64 {
	cache := make(map[string]float64)
	return func(url string) float64 {
		if strings.Contains(url, "://") {
			return 0
		}
		if d, ok := cache[url]; ok {
			return d
		}
		path := url
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		d, err := system.MediaDuration(ctx, path)
		if err != nil {
			slog.Debug("audio duration unavailable", "url", url, "error", err)
		}
		cache[url] = d
		return d
	}
}
