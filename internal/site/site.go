// Package site renders the static HTML site: an index page listing all
// theorems with status badges, and one detail page per theorem embedding
// metadata, hypotheses, proof steps, and the solver configuration.
package site

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"proofsite/internal/logging"
	"proofsite/internal/proof"
	"proofsite/internal/solver"
)

// Meta carries site-wide presentation settings.
type Meta struct {
	Title    string
	Subtitle string
	Language string
	Version  string
}

// Result summarizes one site build.
type Result struct {
	BuildID  string
	Pages    int
	Stats    proof.Stats
	Duration time.Duration
}

// Generator renders a registry of theorems into a static site.
type Generator struct {
	meta      Meta
	solverCtx solver.Context
	now       func() time.Time
}

// NewGenerator returns a generator for the given site settings.
func NewGenerator(meta Meta, solverCtx solver.Context) *Generator {
	if meta.Language == "" {
		meta.Language = "en"
	}
	return &Generator{meta: meta, solverCtx: solverCtx, now: time.Now}
}

// Generate writes index.html, one <theorem_id>.html per theorem, and
// style.css into outDir. Detail pages render concurrently.
func (g *Generator) Generate(reg *proof.Registry, outDir string) (*Result, error) {
	start := g.now()
	timer := logging.StartTimer(logging.CategorySite, "site generation")
	defer timer.StopWithInfo()

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	buildID := uuid.NewString()
	generatedAt := start.Format("2006-01-02 15:04:05")

	if err := os.WriteFile(filepath.Join(outDir, "style.css"), styleCSS, 0644); err != nil {
		return nil, fmt.Errorf("failed to write stylesheet: %w", err)
	}

	if err := g.writeIndex(reg, outDir, buildID, generatedAt); err != nil {
		return nil, err
	}

	var eg errgroup.Group
	for _, t := range reg.List() {
		eg.Go(func() error {
			return g.writeTheoremPage(t, outDir, buildID, generatedAt)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	stats := reg.Stats()
	logging.Site("generated site in %s: %d theorem pages, build %s", outDir, reg.Len(), buildID)

	return &Result{
		BuildID:  buildID,
		Pages:    reg.Len() + 1,
		Stats:    stats,
		Duration: time.Since(start),
	}, nil
}

// indexRow is one theorem line in the index table.
type indexRow struct {
	ID         string
	Name       string
	Status     proof.ProofStatus
	Difficulty string
	Source     string
	Steps      int
}

type indexData struct {
	Site        Meta
	Stats       proof.Stats
	Rows        []indexRow
	GeneratedAt string
	BuildID     string
}

func (g *Generator) writeIndex(reg *proof.Registry, outDir, buildID, generatedAt string) error {
	data := indexData{
		Site:        g.meta,
		Stats:       reg.Stats(),
		GeneratedAt: generatedAt,
		BuildID:     buildID,
	}
	for _, t := range reg.List() {
		source := t.Source
		if source == "" {
			source = "-"
		}
		data.Rows = append(data.Rows, indexRow{
			ID:         t.ID,
			Name:       t.Name,
			Status:     t.Status,
			Difficulty: t.Difficulty,
			Source:     source,
			Steps:      t.StepCount(),
		})
	}

	path := filepath.Join(outDir, "index.html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index page: %w", err)
	}
	defer f.Close()

	if err := indexTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render index page: %w", err)
	}

	logging.SiteDebug("index page written: %s", path)
	return nil
}

type theoremData struct {
	Site        Meta
	Theorem     *proof.Theorem
	ConfigJSON  string
	ConfigRows  []solver.TableRow
	GeneratedAt string
	BuildID     string
}

func (g *Generator) writeTheoremPage(t *proof.Theorem, outDir, buildID, generatedAt string) error {
	cfg := solver.Build(t, g.solverCtx)
	cfgJSON, err := cfg.JSON()
	if err != nil {
		return err
	}

	data := theoremData{
		Site:        g.meta,
		Theorem:     t,
		ConfigJSON:  cfgJSON,
		ConfigRows:  cfg.TableRows(),
		GeneratedAt: generatedAt,
		BuildID:     buildID,
	}

	path := filepath.Join(outDir, t.ID+".html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create page for theorem %q: %w", t.ID, err)
	}
	defer f.Close()

	if err := theoremTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render page for theorem %q: %w", t.ID, err)
	}

	logging.SiteDebug("theorem page written: %s", path)
	return nil
}
