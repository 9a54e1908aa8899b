package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ivlev/slideplay/internal/api"
	"github.com/ivlev/slideplay/internal/config"
	"github.com/ivlev/slideplay/internal/store"
	"github.com/ivlev/slideplay/internal/store/file"
	"github.com/ivlev/slideplay/internal/store/sqlite"
)

func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		return sqlite.Open(cfg.StorePath)
	default:
		return file.Open(cfg.StorePath, file.JSON)
	}
}

func runServe(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.ListenAddr, "Listen address")
	driver := fs.String("driver", cfg.StoreDriver, "Store driver: file or sqlite")
	storePath := fs.String("store", cfg.StorePath, "Store directory (file) or database path (sqlite)")
	origin := fs.String("origin", "", "Allowed CORS origin for a browser editor")
	fs.Parse(args)

	cfg.StoreDriver, cfg.StorePath, cfg.ListenAddr = *driver, *storePath, *addr
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] %v", err)
	}

	s, err := openStore(cfg)
	if err != nil {
		log.Fatalf("[-] Cannot open %s store at %s: %v", cfg.StoreDriver, cfg.StorePath, err)
	}
	defer s.Close()

	h := api.NewHandler(s, api.Options{
		Logger:             slog.Default(),
		AllowedOrigin:      *origin,
		TimeUpdateInterval: cfg.TimeUpdateInterval,
		TransitionDuration: cfg.TransitionDuration,
		SettleDelay:        cfg.SettleDelay,
		LoadingDelay:       cfg.LoadingDelay,
	})
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		fmt.Printf("[*] Serving %s store %s on %s\n", cfg.StoreDriver, cfg.StorePath, cfg.ListenAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[-] Server error: %v", err)
		}
	case <-ctx.Done():
		fmt.Println("[*] Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("[!] Shutdown: %v\n", err)
		}
	}
}
