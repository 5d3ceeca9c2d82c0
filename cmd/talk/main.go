package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jwebster45206/britannia/internal/config"
	"github.com/jwebster45206/britannia/internal/logger"
	"github.com/jwebster45206/britannia/internal/session"
	"github.com/jwebster45206/britannia/internal/storage"
	"github.com/jwebster45206/britannia/pkg/actions"
	"github.com/jwebster45206/britannia/pkg/input"
	"github.com/jwebster45206/britannia/pkg/screen"
)

func main() {
	saveID := flag.String("save", os.Getenv("SAVE_ID"), "resume the party saved under this id")
	logPath := flag.String("log", "talk.log", "file to write logs to")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()
	log := logger.SetupWriter(cfg, logFile)

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, cfg.SaveTTL, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure storage: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	ctx := context.Background()
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = store.WaitForConnection(pingCtx, 5, time.Second)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not connect to Redis at %s. Please ensure Redis is running.\n", cfg.RedisURL)
		os.Exit(1)
	}

	scr, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := scr.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init screen: %v\n", err)
		os.Exit(1)
	}

	term := &terminal{
		screen: scr,
		pane:   newPane(2, 1, screen.TextAreaW, screen.TextAreaH),
	}
	sess, err := session.New(ctx, store, term, input.NewCollector(term, term), session.Options{
		SaveID: *saveID,
		Settings: actions.Settings{
			Enhancements:  cfg.Enhancements,
			C64ChestTraps: cfg.C64ChestTraps,
		},
		Logger: log,
	})
	if err != nil {
		scr.Fini()
		switch {
		case errors.Is(err, session.ErrSaveNotFound):
			fmt.Fprintf(os.Stderr, "No saved party %s. Saves last %s.\n", *saveID, cfg.SaveTTL)
		case session.IsNotFound(err):
			fmt.Fprintf(os.Stderr, "Missing game data in %s: %v\n", cfg.DataDir, err)
		default:
			fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		}
		os.Exit(1)
	}
	term.sess = sess

	err = play(ctx, sess, term, input.NewCollector(term, term), term.redraw)
	scr.Fini()
	if err != nil && !errors.Is(err, input.ErrNoMoreKeys) {
		log.Error("Game ended with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sess.Save(saveCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save party: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Party saved. Resume with: talk -save %s\n", sess.ID)
}
