// Package main implements the validate command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"proofsite/internal/proof"
)

// validateCmd checks theorem records without generating anything
var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate theorem records",
	Long: `Validates theorem records against the structural rules: required
fields present and non-blank, known status and hypothesis types, and
proof steps numbered sequentially from 1.

With no arguments, validates every record in the proofs directory.
With file arguments, validates just those files.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	val := proof.NewValidator()

	var theorems []*proof.Theorem
	if len(args) > 0 {
		for _, path := range args {
			t, err := proof.LoadFile(path)
			if err != nil {
				return err
			}
			theorems = append(theorems, t)
		}
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := proof.LoadDir(cfg.Proofs.Dir)
		if err != nil {
			return err
		}
		theorems = reg.List()
	}

	if len(theorems) == 0 {
		fmt.Println("No theorem records found.")
		return nil
	}

	failed := 0
	for _, t := range theorems {
		errs := val.Validate(t)
		if len(errs) == 0 {
			fmt.Printf("  ok    %s (%s)\n", t.ID, t.Name)
			continue
		}
		failed++
		fmt.Printf("  FAIL  %s (%s)\n", t.ID, t.Name)
		for _, e := range errs {
			fmt.Printf("        - %v\n", e)
		}
	}

	fmt.Printf("\n%d/%d theorems valid\n", len(theorems)-failed, len(theorems))
	if failed > 0 {
		return fmt.Errorf("%d invalid theorem record(s)", failed)
	}
	return nil
}
