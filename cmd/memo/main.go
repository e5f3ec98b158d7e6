package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"memo-go/config"
	"memo-go/internal/game"
	"memo-go/internal/infrastructure"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to configuration.yml")
	noClear := flag.Bool("no-clear", false, "do not clear the terminal between turns")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()

	store, err := infrastructure.Open(ctx, cfg.Bdd, cfg.AWSRegion)
	if err != nil {
		return fmt.Errorf("failed to open save store: %w", err)
	}
	defer store.Close()

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = newSeed(); err != nil {
			return err
		}
	}
	logger.Debug("starting", slog.String("store", cfg.Bdd), slog.Int64("seed", seed))

	service := game.NewGameService(store, cfg.GameSettings(), game.NewBoardGenerator(seed), logger)
	handler := game.NewHandler(service, os.Stdin, os.Stdout).WithScreenClearing(!*noClear)
	return handler.Run(ctx)
}

// newLogger writes to LOG_FILE when set so log lines stay off the board.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	noColor := false
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
		noColor = true
	}

	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
	return logger, closeFn, nil
}

func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
