package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tooldir/internal/service"
)

func newExportCmd(o *rootOptions) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole database as JSON or YAML",
		Long: `Export every collection to a file. Without --out the file is named
website_database_export_<timestamp>.<ext> in the current directory; use
--out - to write to standard output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.open()
			if err != nil {
				return err
			}
			defer a.close()

			if out == "-" {
				return a.db.ExportTo(cmd.Context(), format, cmd.OutOrStdout())
			}
			if out == "" {
				out = service.ExportFileName(time.Now(), format)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := a.db.ExportTo(cmd.Context(), format, f); err != nil {
				f.Close()
				_ = os.Remove(out)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, - for stdout")
	return cmd
}

func newImportCmd(o *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the database with an exported document",
		Long: `Import a document produced by export. The content collections are cleared
first; every field holding an array then replaces its collection. The format
follows the file extension unless --format is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.open()
			if err != nil {
				return err
			}
			defer a.close()

			var res *service.ImportResult
			if format != "" {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", args[0], err)
				}
				res, err = a.db.ImportData(cmd.Context(), data, format)
				if err != nil {
					return err
				}
			} else if res, err = a.db.ImportFile(cmd.Context(), args[0]); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "imported: %s\n", strings.Join(res.Imported, ", "))
			if len(res.Skipped) > 0 {
				fmt.Fprintf(w, "skipped: %s\n", strings.Join(res.Skipped, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format: json or yaml (default: from extension)")
	return cmd
}
