package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"proofsite/internal/proof"
)

var exportOut string

// exportCmd writes a theorem record back to disk as canonical JSON
var exportCmd = &cobra.Command{
	Use:   "export <theorem-id|file>",
	Short: "Export a theorem record as canonical JSON",
	Long: `Exports one theorem record as indented JSON with defaults applied.
Useful for normalizing hand-written records or extracting a single
theorem from the proofs directory.

Without --out the record is written to <theorem-id>.json in the
current directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "destination file (default <theorem-id>.json)")
}

func runExport(cmd *cobra.Command, args []string) error {
	t, err := resolveTheorem(args[0])
	if err != nil {
		return err
	}

	dest := exportOut
	if dest == "" {
		dest = t.ID + ".json"
	}
	if err := proof.ExportFile(t, dest); err != nil {
		return err
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		abs = dest
	}
	fmt.Printf("Exported %s to %s\n", t.ID, abs)
	return nil
}
