package proof

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const lhopitalJSON = `{
  "theorem_id": "lhopital_rule",
  "name": "L'Hopital's Rule",
  "description": "Evaluates limits of indeterminate forms.",
  "statement": "If f and g are differentiable and f(a)=g(a)=0, the limit of f/g equals the limit of f'/g'.",
  "formal_statement": "lim (x->a) f(x)/g(x) = lim (x->a) f'(x)/g'(x)",
  "hypotheses": [
    {
      "name": "H1",
      "type": "assumption",
      "expression": "f and g differentiable on (a,b)",
      "formal_notation": "differentiable f (a,b) /\\ differentiable g (a,b)"
    },
    {
      "name": "H2",
      "type": "constraint",
      "expression": "g'(x) <> 0 near a"
    }
  ],
  "conditions": ["f(a) = 0", "g(a) = 0"],
  "conclusion": "lim f/g = lim f'/g'",
  "proof_steps": [
    {
      "step_number": 1,
      "description": "Apply Cauchy's mean value theorem",
      "justification": "H1 gives differentiability on the interval",
      "referenced_hypotheses": ["H1"],
      "referenced_theorems": ["cauchy_mvt"],
      "formal_expression": "exists c in (a,x). f'(c)/g'(c) = f(x)/g(x)"
    },
    {
      "step_number": 2,
      "description": "Take the limit as x approaches a",
      "justification": "c is squeezed between a and x",
      "referenced_hypotheses": ["H2"],
      "referenced_theorems": []
    }
  ],
  "proof_strategy": "structured",
  "status": "verified",
  "source": "Rudin, Principles of Mathematical Analysis",
  "difficulty_level": "hard"
}`

func TestDecode_FullRecord(t *testing.T) {
	thm, err := Decode([]byte(lhopitalJSON))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if thm.ID != "lhopital_rule" {
		t.Errorf("expected id lhopital_rule, got %s", thm.ID)
	}
	if thm.Status != StatusVerified {
		t.Errorf("expected status verified, got %s", thm.Status)
	}
	if len(thm.Hypotheses) != 2 {
		t.Fatalf("expected 2 hypotheses, got %d", len(thm.Hypotheses))
	}
	if thm.Hypotheses[1].Type != HypConstraint {
		t.Errorf("expected constraint hypothesis, got %s", thm.Hypotheses[1].Type)
	}
	if thm.StepCount() != 2 {
		t.Errorf("expected 2 proof steps, got %d", thm.StepCount())
	}
	if thm.ProofSteps[0].ReferencedTheorems[0] != "cauchy_mvt" {
		t.Errorf("unexpected referenced theorem: %v", thm.ProofSteps[0].ReferencedTheorems)
	}
}

func TestDecode_Defaults(t *testing.T) {
	minimal := `{
		"theorem_id": "t1",
		"name": "Minimal",
		"statement": "Something holds.",
		"formal_statement": "P",
		"hypotheses": [{"name": "H1", "expression": "Q"}]
	}`

	thm, err := Decode([]byte(minimal))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if thm.Status != StatusPending {
		t.Errorf("expected default status pending, got %s", thm.Status)
	}
	if thm.ProofStrategy != DefaultStrategy {
		t.Errorf("expected default strategy structured, got %s", thm.ProofStrategy)
	}
	if thm.Difficulty != DifficultyMedium {
		t.Errorf("expected default difficulty medium, got %s", thm.Difficulty)
	}
	if thm.Hypotheses[0].Type != HypAssumption {
		t.Errorf("expected default hypothesis type assumption, got %s", thm.Hypotheses[0].Type)
	}
}

func TestDecode_UnknownStatus(t *testing.T) {
	bad := `{"theorem_id": "t1", "name": "X", "statement": "S", "formal_statement": "F", "status": "maybe"}`
	if _, err := Decode([]byte(bad)); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestDecode_UnknownHypothesisType(t *testing.T) {
	bad := `{"theorem_id": "t1", "name": "X", "statement": "S", "formal_statement": "F",
		"hypotheses": [{"name": "H1", "type": "guess"}]}`
	if _, err := Decode([]byte(bad)); err == nil {
		t.Fatal("expected error for unknown hypothesis type")
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	thm, err := Decode([]byte(lhopitalJSON))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	data, err := Encode(thm)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode of encoded output failed: %v", err)
	}

	if diff := cmp.Diff(thm, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	writeProof := func(name, id string) {
		t.Helper()
		rec := strings.Replace(lhopitalJSON, `"lhopital_rule"`, `"`+id+`"`, 1)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(rec), 0644); err != nil {
			t.Fatal(err)
		}
	}

	writeProof("b_second.json", "second")
	writeProof("a_first.json", "first")
	// Non-JSON files are ignored
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	if reg.Len() != 2 {
		t.Fatalf("expected 2 theorems, got %d", reg.Len())
	}
	// Lexical file order
	if ids := reg.IDs(); ids[0] != "first" || ids[1] != "second" {
		t.Errorf("unexpected order: %v", ids)
	}
}

func TestLoadDir_DuplicateID(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "b.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(lhopitalJSON), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := LoadDir(dir); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestExportFile(t *testing.T) {
	thm, err := Decode([]byte(lhopitalJSON))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "exports", "lhopital.json")
	if err := ExportFile(thm, path); err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile of export failed: %v", err)
	}
	if loaded.ID != thm.ID {
		t.Errorf("expected id %s, got %s", thm.ID, loaded.ID)
	}
}
