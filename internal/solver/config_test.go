package solver

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"proofsite/internal/proof"
)

func sampleTheorem() *proof.Theorem {
	return &proof.Theorem{
		ID:              "lhopital_rule",
		Name:            "L'Hopital's Rule",
		Statement:       "Limits of indeterminate forms follow the derivatives.",
		FormalStatement: "lim (x->a) f(x)/g(x) = lim (x->a) f'(x)/g'(x)",
		ProofStrategy:   "structured",
		Hypotheses: []proof.Hypothesis{
			{Name: "H1", Type: proof.HypAssumption, Expression: "f, g differentiable"},
			{Name: "H2", Type: proof.HypConstraint, Expression: "g'(x) <> 0 near a", FormalNotation: "g' x <> 0"},
		},
	}
}

func TestBuild(t *testing.T) {
	ctx := Context{Backend: BackendWhy3, TimeoutSeconds: 60, GenerateCertificates: true}
	cfg := Build(sampleTheorem(), ctx)

	want := Config{
		GoalName:        "L'Hopital's Rule",
		GoalID:          "lhopital_rule",
		Solver:          "why3",
		Timeout:         60,
		FormalStatement: "lim (x->a) f(x)/g(x) = lim (x->a) f'(x)/g'(x)",
		Hypotheses: []HypothesisSpec{
			{Name: "H1", Type: "assumption", Expression: "f, g differentiable"},
			{Name: "H2", Type: "constraint", Expression: "g'(x) <> 0 near a", FormalNotation: "g' x <> 0"},
		},
		ProofStrategy:        "structured",
		GenerateCertificates: true,
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigJSON_KeySet(t *testing.T) {
	cfg := Build(sampleTheorem(), Context{Backend: BackendZ3, TimeoutSeconds: 30})

	out, err := cfg.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	// The key set is the published output contract
	for _, key := range []string{
		"goal_name", "goal_id", "solver", "timeout", "formal_statement",
		"hypotheses", "proof_strategy", "generate_certificates",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in solver config JSON", key)
		}
	}
	if len(decoded) != 8 {
		t.Errorf("expected exactly 8 top-level keys, got %d", len(decoded))
	}
}

func TestTableRows(t *testing.T) {
	cfg := Build(sampleTheorem(), Context{Backend: BackendWhy3, TimeoutSeconds: 45})
	rows := cfg.TableRows()

	if len(rows) != 7 {
		t.Fatalf("expected 7 table rows, got %d", len(rows))
	}

	byKey := map[string]string{}
	for _, r := range rows {
		byKey[r.Key] = r.Value
	}
	if byKey["timeout"] != "45s" {
		t.Errorf("expected timeout 45s, got %s", byKey["timeout"])
	}
	if byKey["hypotheses_count"] != "2" {
		t.Errorf("expected hypotheses_count 2, got %s", byKey["hypotheses_count"])
	}
	if byKey["generate_certificates"] != "false" {
		t.Errorf("expected generate_certificates false, got %s", byKey["generate_certificates"])
	}
}

func TestIsKnownBackend(t *testing.T) {
	for _, b := range Backends {
		if !IsKnownBackend(b) {
			t.Errorf("%s should be a known backend", b)
		}
	}
	if IsKnownBackend("coq") {
		t.Error("coq is not a supported backend")
	}
}
