package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"proofsite/internal/proof"
	"proofsite/internal/serve"
	"proofsite/internal/site"
)

var serveAddr string

// serveCmd runs the local preview server with rebuild-on-change
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated site locally and rebuild on changes",
	Long: `Builds the site, serves the output directory over HTTP, and watches
the proofs directory. Editing, adding, or removing a record triggers a
rebuild, so a browser refresh always shows the current state.

Stop with Ctrl-C.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Serve.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	gen := site.NewGenerator(site.Meta{
		Title:    cfg.Site.Title,
		Subtitle: cfg.Site.Subtitle,
		Language: cfg.Site.Language,
		Version:  cfg.Version,
	}, cfg.SolverContext())

	rebuild := func() error {
		reg, err := proof.LoadDir(cfg.Proofs.Dir)
		if err != nil {
			return err
		}
		res, err := gen.Generate(reg, cfg.Output.Dir)
		if err != nil {
			return err
		}
		logger.Info("site rebuilt",
			zap.Int("pages", res.Pages),
			zap.Duration("duration", res.Duration),
		)
		return nil
	}

	srv := serve.New(serve.Options{
		Addr:      addr,
		OutputDir: cfg.Output.Dir,
		ProofsDir: cfg.Proofs.Dir,
		Rebuild:   rebuild,
		Debounce:  300 * time.Millisecond,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving %s on http://%s (watching %s)\n", cfg.Output.Dir, addr, cfg.Proofs.Dir)
	return srv.Run(ctx)
}
