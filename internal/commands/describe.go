package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	var (
		metaFile string
		nullRepr string
	)

	cmd := &cobra.Command{
		Use:   "describe <table.csv>",
		Short: "Print the byte-by-byte description inferred for a table",
		Example: `  # Inspect the layout without writing anything
  mrt describe table1.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(args[0], metaFile, nullRepr)
		},
	}

	cmd.Flags().StringVar(&metaFile, "meta", "", "YAML metadata sidecar")
	cmd.Flags().StringVar(&nullRepr, "null", "", "value to treat as missing in every column")

	return cmd
}

func runDescribe(path, metaFile, nullRepr string) error {
	meta, err := loadMeta(metaFile)
	if err != nil {
		return err
	}
	t, err := loadTable(path, meta, nullRepr)
	if err != nil {
		return err
	}
	return t.ByteByByte(os.Stdout)
}
