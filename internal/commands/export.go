package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cdspub/mrt"
)

func newExportCmd() *cobra.Command {
	var (
		metaFile    string
		outFile     string
		description string
		limits      bool
	)

	cmd := &cobra.Command{
		Use:   "export <table.mrt>",
		Short: "Re-export an existing machine-readable table",
		Long: `Export reads a machine-readable table, recovers its byte-by-byte
description and data block, and writes it back with a fresh header.
With --limits the numeric columns are scanned and their value bounds
injected into the description.`,
		Example: `  # Normalize a legacy table and add value bounds
  mrt export --limits --out table1.mrt legacy.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], metaFile, outFile, description, limits)
		},
	}

	cmd.Flags().StringVar(&metaFile, "meta", "", "YAML metadata sidecar")
	cmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")
	cmd.Flags().StringVar(&description, "description", "", "table description override")
	cmd.Flags().BoolVar(&limits, "limits", false, "inject value bounds into the description")

	return cmd
}

func runExport(path, metaFile, outFile, description string, limits bool) error {
	meta, err := loadMeta(metaFile)
	if err != nil {
		return err
	}
	maker, err := meta.Maker()
	if err != nil {
		return err
	}

	f, err := mrt.OpenMRT(path, dataName(path), description)
	if err != nil {
		return err
	}
	if limits {
		// A failed statistics pass leaves the description unannotated;
		// the export itself still goes through.
		if err := f.InjectLimits(); err != nil {
			slog.Error("limit injection failed, exporting without bounds", "file", path, "error", err)
		}
	}
	maker.AddTable(f)

	var w io.Writer = os.Stdout
	if outFile != "" {
		out, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("create %s: %w", outFile, err)
		}
		defer out.Close()
		w = out
	}

	if err := maker.WriteMRT(w, f); err != nil {
		return err
	}
	if outFile != "" {
		slog.Info("table exported", "file", filepath.Clean(outFile), "rows", f.NRows())
	}
	return nil
}
