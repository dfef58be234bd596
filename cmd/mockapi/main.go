package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookdesk/internal/config"
	"bookdesk/internal/fakeapi"
)

func main() {
	cfg := config.Load()
	logger := cfg.Logger()

	memory := fakeapi.NewMemory(fakeapi.DefaultResources...)
	if cfg.MockSeed != "" {
		mustSeed(memory, cfg.MockSeed)
	}
	handler := fakeapi.NewHTTPHandler(memory, logger)

	httpServer := &http.Server{
		Addr:         cfg.MockAddr,
		Handler:      handler.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("Starting mock API on %s", cfg.MockAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

func mustSeed(memory *fakeapi.Memory, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("cannot open seed %s: %v", path, err)
	}
	defer f.Close()
	if err := memory.Seed(f); err != nil {
		log.Fatalf("cannot load seed %s: %v", path, err)
	}
	log.Printf("seed loaded from %s", path)
}
