package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/word-orbit/client"
	"github.com/lixenwraith/word-orbit/config"
	"github.com/lixenwraith/word-orbit/core"
	"github.com/lixenwraith/word-orbit/ingest"
	"github.com/lixenwraith/word-orbit/render"
	"github.com/lixenwraith/word-orbit/viewer"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <word>",
		Short: "Explore the neighborhood of a word interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(args[0])
		},
	}
}

// loadConfig layers flag overrides over the config file
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if modelName != "" {
		cfg.Model = modelName
	}
	return cfg, nil
}

// setupLogging redirects the standard logger to a file
// The screen owns stdout for the whole session
func setupLogging(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

func runViewer(word string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	var cache *client.Cache
	if cfg.CachePath != "" {
		cache, err = client.OpenCache(cfg.CachePath)
		if err != nil {
			log.Printf("layout cache unavailable: %v", err)
		} else {
			defer cache.Close()
		}
	}
	cl := client.New(cfg.ServerURL, cfg.Model, cache)

	ctx := context.Background()
	resolved, exists, err := cl.CheckWord(ctx, word)
	if err != nil {
		return fmt.Errorf("check word %q: %w", word, err)
	}
	if !exists {
		return fmt.Errorf("word %q is not in the %s vocabulary", word, cfg.Model)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	screen.EnableMouse()
	defer screen.Fini()

	// Reset the terminal before the panic reaches the user
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "word-orbit crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	v := viewer.New(render.NewTcellBackend(screen), core.NewMonotonicTimeProvider())
	v.Camera().SetTuning(cfg.Camera.Tuning())
	defer v.Dispose()

	fetch := func(spec client.FetchSpec, mode ingest.Mode) {
		gen := v.BeginSequence(mode)
		go cl.FetchSequence(ctx, spec, gen, v.Queue())
	}

	// Double-select re-anchors: keep the picked word in place, rescale its
	// fresh neighborhood onto it
	v.SetDoubleClickHandler(func(picked string) {
		log.Printf("re-anchor on %q", picked)
		v.ClearWordObjectsExcept(picked)
		fetch(client.FetchSpec{Anchor: picked, BatchSize: cfg.BatchSize},
			ingest.ProgressiveAppendAligned(picked))
	})

	fetch(client.FetchSpec{Anchor: resolved, BatchSize: cfg.BatchSize}, ingest.Full())

	v.Run(screen)
	return nil
}
