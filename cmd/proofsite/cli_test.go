package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const testRecord = `{
  "theorem_id": "pythagoras",
  "name": "Satz des Pythagoras",
  "description": "Relates the side lengths of a right triangle.",
  "statement": "In a right triangle, a^2 + b^2 = c^2.",
  "formal_statement": "forall a b c:real. right_triangle a b c -> a*a + b*b = c*c",
  "hypotheses": [
    {"name": "H1", "type": "assumption", "expression": "right_triangle a b c"}
  ],
  "conditions": ["a > 0", "b > 0"],
  "conclusion": "a*a + b*b = c*c",
  "proof_steps": [
    {
      "step_number": 1,
      "description": "Drop the altitude from the right angle.",
      "justification": "Euclidean construction",
      "referenced_hypotheses": ["H1"],
      "referenced_theorems": []
    }
  ],
  "status": "verified",
  "difficulty_level": "easy"
}`

// setupWorkspace points the global flags at a temp directory with one
// valid record and restores them when the test ends.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	logger = zap.NewNop()

	ws := t.TempDir()
	proofs := filepath.Join(ws, "proofs")
	if err := os.MkdirAll(proofs, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(proofs, "pythagoras.json"), []byte(testRecord), 0o644); err != nil {
		t.Fatal(err)
	}

	origCfg, origProofs, origOutput := cfgPath, proofsDir, outputDir
	cfgPath = filepath.Join(ws, "proofsite.yaml")
	proofsDir = proofs
	outputDir = filepath.Join(ws, "output")
	t.Cleanup(func() {
		cfgPath, proofsDir, outputDir = origCfg, origProofs, origOutput
	})

	return ws
}

func TestRunBuild(t *testing.T) {
	ws := setupWorkspace(t)

	buildSkipHistory = true
	defer func() { buildSkipHistory = false }()

	output := captureOutput(t, func() {
		if err := runBuild(&cobra.Command{}, nil); err != nil {
			t.Errorf("runBuild failed: %v", err)
		}
	})

	for _, want := range []string{"index.html", "pythagoras.html", "style.css"} {
		if _, err := os.Stat(filepath.Join(ws, "output", want)); err != nil {
			t.Errorf("expected %s in output dir: %v", want, err)
		}
	}
	if !strings.Contains(output, "1/1 verified") {
		t.Errorf("expected verified count in summary, got: %s", output)
	}
}

func TestRunBuildEmptyProofsDir(t *testing.T) {
	setupWorkspace(t)

	empty := t.TempDir()
	origProofs := proofsDir
	proofsDir = empty
	defer func() { proofsDir = origProofs }()

	if err := runBuild(&cobra.Command{}, nil); err == nil {
		t.Fatal("expected error for empty proofs directory")
	}
}

func TestRunValidateFiles(t *testing.T) {
	ws := setupWorkspace(t)

	valid := filepath.Join(ws, "proofs", "pythagoras.json")
	output := captureOutput(t, func() {
		if err := runValidate(&cobra.Command{}, []string{valid}); err != nil {
			t.Errorf("runValidate failed on valid record: %v", err)
		}
	})
	if !strings.Contains(output, "ok    pythagoras") {
		t.Errorf("expected ok line, got: %s", output)
	}

	// A record with a gap in step numbering must fail
	bad := strings.Replace(testRecord, `"step_number": 1`, `"step_number": 3`, 1)
	badPath := filepath.Join(ws, "bad.json")
	if err := os.WriteFile(badPath, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	output = captureOutput(t, func() {
		if err := runValidate(&cobra.Command{}, []string{badPath}); err == nil {
			t.Error("expected error for invalid record")
		}
	})
	if !strings.Contains(output, "FAIL") {
		t.Errorf("expected FAIL line, got: %s", output)
	}
}

func TestRunSolverConfig(t *testing.T) {
	setupWorkspace(t)

	output := captureOutput(t, func() {
		if err := runSolverConfig(&cobra.Command{}, []string{"pythagoras"}); err != nil {
			t.Errorf("runSolverConfig failed: %v", err)
		}
	})

	var cfg map[string]any
	if err := json.Unmarshal([]byte(output), &cfg); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, output)
	}
	if cfg["goal_id"] != "pythagoras" {
		t.Errorf("goal_id = %v, want pythagoras", cfg["goal_id"])
	}
	if cfg["solver"] != "why3" {
		t.Errorf("solver = %v, want why3", cfg["solver"])
	}
}

func TestRunExport(t *testing.T) {
	ws := setupWorkspace(t)

	exportOut = filepath.Join(ws, "exported.json")
	defer func() { exportOut = "" }()

	captureOutput(t, func() {
		if err := runExport(&cobra.Command{}, []string{"pythagoras"}); err != nil {
			t.Errorf("runExport failed: %v", err)
		}
	})

	data, err := os.ReadFile(exportOut)
	if err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	if !strings.Contains(string(data), `"theorem_id": "pythagoras"`) {
		t.Errorf("exported record missing theorem_id: %s", data)
	}
}

func TestRunShowUnknownTheorem(t *testing.T) {
	setupWorkspace(t)

	if err := runShow(&cobra.Command{}, []string{"no-such-theorem"}); err == nil {
		t.Fatal("expected error for unknown theorem id")
	}
}

func TestResolveTheoremFromFile(t *testing.T) {
	ws := setupWorkspace(t)

	th, err := resolveTheorem(filepath.Join(ws, "proofs", "pythagoras.json"))
	if err != nil {
		t.Fatalf("resolveTheorem failed: %v", err)
	}
	if th.ID != "pythagoras" {
		t.Errorf("ID = %s, want pythagoras", th.ID)
	}
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origOut := os.Stdout
	origErr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rOut)
		_, _ = io.Copy(&buf, rErr)
		done <- buf.String()
	}()

	fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = origOut
	os.Stderr = origErr
	return <-done
}
