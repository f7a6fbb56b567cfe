package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/1broseidon/aurora/internal/platform"
)

func runDisplays(args []string) int {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/aurora/config.yaml)")
	backend := fs.String("backend", "", "Platform backend: auto, "+backendList())
	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	if *backend != "" {
		cfg.Backend = *backend
	}
	logger := newLogger(os.Stderr, cfg.Logging)

	adapter, err := platform.New(cfg.Backend, platform.Options{Display: cfg.Display, Logger: logger})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := adapter.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "initialize %s: %v\n", adapter.Name(), err)
		return 1
	}
	defer adapter.Shutdown()

	displays, err := platform.ListDisplays(adapter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPOSITION\tSIZE")
	for _, d := range displays {
		fmt.Fprintf(tw, "%d\t%s\t%d,%d\t%dx%d\n", d.ID, d.Name, d.Bounds.X, d.Bounds.Y, d.Bounds.Width, d.Bounds.Height)
	}
	tw.Flush()
	return 0
}
