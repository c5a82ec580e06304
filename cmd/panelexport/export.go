package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/eringen/panelexport"
)

// runExport reads a manifest (an ExportRequest as JSON), runs the pipeline,
// and writes the resulting artifacts to the output directory.
func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("out", ".", "output directory for artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: panelexport export <manifest.json> [-out dir]")
	}
	manifest := fs.Arg(0)
	// Parse stops at the first positional argument, so flags given after
	// the manifest path need a second pass.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return err
	}

	data, err := os.ReadFile(manifest)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	var req panelexport.ExportRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	exporter := panelexport.NewExporter(nil)
	artifacts, err := exporter.Export(context.Background(), req.Panels, req.Config)
	if err != nil {
		return err
	}

	paths, err := panelexport.WriteArtifacts(*out, artifacts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func runServe() error {
	cfg := panelexport.ServiceConfig{
		Addr:                panelexport.EnvOr("PANELEXPORT_ADDR", ":3000"),
		HistoryEnabled:      panelexport.EnvOr("PANELEXPORT_HISTORY", "") == "true",
		HistoryDatabasePath: panelexport.EnvOr("PANELEXPORT_HISTORY_DB", "data/exports.db"),
	}
	if v := panelexport.EnvOr("PANELEXPORT_RATE_LIMIT", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PANELEXPORT_RATE_LIMIT: %w", err)
		}
		cfg.ExportsPerMinute = n
	}

	app := panelexport.New(cfg)
	defer app.Close()
	return app.Start()
}
