// Package main implements the build command: load, validate, generate,
// and record the build in history.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"proofsite/internal/proof"
	"proofsite/internal/site"
	"proofsite/internal/store"
)

var buildSkipHistory bool

// buildCmd generates the static site
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the static site from the proofs directory",
	Long: `Loads every theorem record from the proofs directory, validates
them, and renders the site into the output directory:

  output/index.html         overview with status badges and stats
  output/<theorem_id>.html  one detail page per theorem
  output/style.css          shared stylesheet

Each successful build is recorded in the build history database.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	start := time.Now()

	reg, err := proof.LoadDir(cfg.Proofs.Dir)
	if err != nil {
		return err
	}
	if reg.Len() == 0 {
		return fmt.Errorf("no theorem records found in %s", cfg.Proofs.Dir)
	}

	val := proof.NewValidator()
	for _, t := range reg.List() {
		if errs := val.Validate(t); len(errs) > 0 {
			return fmt.Errorf("theorem %q is invalid: %v (run 'proofsite validate' for the full report)", t.ID, errs[0])
		}
	}

	gen := site.NewGenerator(site.Meta{
		Title:    cfg.Site.Title,
		Subtitle: cfg.Site.Subtitle,
		Language: cfg.Site.Language,
		Version:  cfg.Version,
	}, cfg.SolverContext())

	res, err := gen.Generate(reg, cfg.Output.Dir)
	if err != nil {
		return err
	}

	logger.Info("site generated",
		zap.String("output", cfg.Output.Dir),
		zap.Int("pages", res.Pages),
		zap.String("build_id", res.BuildID),
		zap.Duration("duration", res.Duration),
	)

	if !buildSkipHistory {
		if err := recordBuild(cfg.Store.Path, res, reg, start); err != nil {
			// History is bookkeeping; the site itself is already on disk
			logger.Warn("failed to record build history", zap.Error(err))
		}
	}

	fmt.Printf("Site generated in %s (%d pages, %d/%d verified)\n",
		cfg.Output.Dir, res.Pages, res.Stats.Verified, res.Stats.Total)
	fmt.Printf("Open %s/index.html in a browser to view the proofs.\n", cfg.Output.Dir)

	return nil
}

func recordBuild(dbPath string, res *site.Result, reg *proof.Registry, start time.Time) error {
	hs, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer hs.Close()

	return hs.RecordBuild(store.BuildRecord{
		BuildID:    res.BuildID,
		BuiltAt:    start,
		Theorems:   res.Stats.Total,
		Verified:   res.Stats.Verified,
		Pages:      res.Pages,
		DurationMS: res.Duration.Milliseconds(),
	}, reg.List())
}

func init() {
	buildCmd.Flags().BoolVar(&buildSkipHistory, "no-history", false, "Skip recording the build in history")
}
