package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sadopc/kokpit/internal/cli"
	"github.com/sadopc/kokpit/internal/config"
	"github.com/sadopc/kokpit/internal/lifecycle"
	"github.com/sadopc/kokpit/internal/store"
	"github.com/sadopc/kokpit/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.EnsureDirectories(); err != nil {
		return err
	}

	dbPath := os.Getenv("KOKPIT_DB")
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return err
		}
	}

	st, err := store.New(dbPath, store.PlaceholderOwner)
	if err != nil {
		return err
	}
	defer st.Close()

	var logw io.Writer = io.Discard
	if logPath, err := config.LogPath(); err == nil {
		if f, ferr := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); ferr == nil {
			defer f.Close()
			logw = f
		}
	}

	app := &cli.App{
		Store:       st,
		Service:     lifecycle.NewService(st, logw),
		Weather:     weather.NewClient(),
		Config:      *cfg,
		Interactive: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	return cli.NewRootCmd(app).Execute()
}
