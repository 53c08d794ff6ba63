// Package solver derives the WHY3 solver configuration published for each
// theorem. The configuration is descriptive output only; no solver process
// is ever invoked.
package solver

import (
	"encoding/json"
	"fmt"
	"strconv"

	"proofsite/internal/logging"
	"proofsite/internal/proof"
)

// Known solver backends.
const (
	BackendWhy3    = "why3"
	BackendZ3      = "z3"
	BackendCVC4    = "cvc4"
	BackendAltErgo = "alt-ergo"
)

// Backends lists all supported solver backends.
var Backends = []string{BackendWhy3, BackendZ3, BackendCVC4, BackendAltErgo}

// IsKnownBackend reports whether name is a supported backend.
func IsKnownBackend(name string) bool {
	for _, b := range Backends {
		if b == name {
			return true
		}
	}
	return false
}

// Context carries the run configuration a solver config is derived from.
type Context struct {
	Backend              string
	TimeoutSeconds       int
	GenerateCertificates bool
}

// Config is the solver configuration embedded as JSON in each theorem page.
// The key set is part of the output contract and must not change.
type Config struct {
	GoalName             string           `json:"goal_name"`
	GoalID               string           `json:"goal_id"`
	Solver               string           `json:"solver"`
	Timeout              int              `json:"timeout"`
	FormalStatement      string           `json:"formal_statement"`
	Hypotheses           []HypothesisSpec `json:"hypotheses"`
	ProofStrategy        string           `json:"proof_strategy"`
	GenerateCertificates bool             `json:"generate_certificates"`
}

// HypothesisSpec is the hypothesis shape inside a solver config.
type HypothesisSpec struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Expression     string `json:"expression"`
	Description    string `json:"description,omitempty"`
	FormalNotation string `json:"formal_notation,omitempty"`
}

// Build derives the solver configuration for a theorem.
func Build(t *proof.Theorem, ctx Context) Config {
	hyps := make([]HypothesisSpec, 0, len(t.Hypotheses))
	for _, h := range t.Hypotheses {
		hyps = append(hyps, HypothesisSpec{
			Name:           h.Name,
			Type:           string(h.Type),
			Expression:     h.Expression,
			Description:    h.Description,
			FormalNotation: h.FormalNotation,
		})
	}

	cfg := Config{
		GoalName:             t.Name,
		GoalID:               t.ID,
		Solver:               ctx.Backend,
		Timeout:              ctx.TimeoutSeconds,
		FormalStatement:      t.FormalStatement,
		Hypotheses:           hyps,
		ProofStrategy:        t.ProofStrategy,
		GenerateCertificates: ctx.GenerateCertificates,
	}

	logging.Solver("derived config for goal %q (backend %s)", t.ID, ctx.Backend)
	return cfg
}

// JSON renders the config as indented JSON for page embedding.
func (c Config) JSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal solver config for %q: %w", c.GoalID, err)
	}
	return string(data), nil
}

// TableRow is one row of the human-readable parameter table on detail pages.
type TableRow struct {
	Key         string
	Value       string
	Description string
}

// TableRows returns the parameter table shown alongside the raw JSON.
func (c Config) TableRows() []TableRow {
	return []TableRow{
		{"goal_name", c.GoalName, "Name of the proof goal"},
		{"goal_id", c.GoalID, "Unique identifier"},
		{"solver", c.Solver, "Solver backend to use"},
		{"timeout", fmt.Sprintf("%ds", c.Timeout), "Time limit per proof"},
		{"proof_strategy", c.ProofStrategy, "Proof method"},
		{"hypotheses_count", strconv.Itoa(len(c.Hypotheses)), "Number of hypotheses"},
		{"generate_certificates", strconv.FormatBool(c.GenerateCertificates), "Emit proof certificates"},
	}
}
