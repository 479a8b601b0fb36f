package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cdspub/mrt"
)

func newConvertCmd() *cobra.Command {
	var (
		metaFile string
		outDir   string
		nullRepr string
	)

	cmd := &cobra.Command{
		Use:   "convert <table.csv> [more.csv ...]",
		Short: "Convert CSV tables to fixed-width data files with a ReadMe",
		Long: `Convert reads each CSV file, infers a fixed-width layout for its
columns, and writes the aligned data file plus the ReadMe document
describing every file byte by byte.`,
		Example: `  # Convert one table with publication metadata
  mrt convert --meta catalog.yaml table1.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args, metaFile, outDir, nullRepr)
		},
	}

	cmd.Flags().StringVar(&metaFile, "meta", "", "YAML metadata sidecar")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default from config)")
	cmd.Flags().StringVar(&nullRepr, "null", "", "value to treat as missing in every column")

	return cmd
}

func runConvert(paths []string, metaFile, outDir, nullRepr string) error {
	meta, err := loadMeta(metaFile)
	if err != nil {
		return err
	}
	maker, err := meta.Maker()
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, path := range paths {
		t, err := loadTable(path, meta, nullRepr)
		if err != nil {
			return err
		}

		dest := filepath.Join(outDir, t.Name)
		f, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("create %s: %w", dest, err)
		}
		if err := t.Write(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", dest, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", dest, err)
		}

		slog.Info("table converted", "file", dest, "rows", t.NRows(), "width", t.LineWidth())
		maker.AddTable(t)
	}

	readme := filepath.Join(outDir, "ReadMe")
	f, err := os.Create(readme)
	if err != nil {
		return fmt.Errorf("create %s: %w", readme, err)
	}
	defer f.Close()
	if err := maker.WriteReadMe(f); err != nil {
		return fmt.Errorf("write %s: %w", readme, err)
	}

	slog.Info("readme written", "file", readme, "tables", len(maker.Tables()))
	return nil
}

// loadTable reads one CSV file and applies the overrides that match its
// output name.
func loadTable(path string, meta *mrt.Metadata, nullRepr string) (*mrt.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := mrt.ReadCSV(f, dataName(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if nullRepr != "" {
		t.SetNullValue(mrt.Literal(nullRepr))
	}
	if tm := meta.TableMeta(t.Name); tm != nil {
		if err := tm.Apply(t); err != nil {
			return nil, err
		}
	}
	if err := t.Parse(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// dataName turns an input path into the data file name: the base name
// with its extension replaced by .dat.
func dataName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".dat"
}

func loadMeta(path string) (*mrt.Metadata, error) {
	if path == "" {
		return &mrt.Metadata{}, nil
	}
	return mrt.LoadMetadata(path)
}
