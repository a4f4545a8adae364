package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/westside-labs/rentscout/internal/export"
	"github.com/westside-labs/rentscout/internal/model"
)

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a stored run's apartments to a report file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().String("out", "", "output file path (required)")
	exportCmd.Flags().String("format", "", "csv or xlsx (default: inferred from --out extension)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	apartments, err := st.ListApartments(ctx, args[0])
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(out), ".")
	}
	return writeReport(out, format, apartments)
}

// writeReport writes apartments to path in the given format.
func writeReport(path, format string, apartments []model.RankedApartment) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	switch format {
	case "csv", "":
		err = export.WriteCSV(f, apartments)
	case "xlsx":
		err = export.WriteXLSX(f, apartments)
	default:
		return eris.Errorf("export: unknown format %q", format)
	}
	if err != nil {
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}
