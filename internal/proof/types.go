// Package proof defines the theorem/proof data model and its JSON wire format,
// plus loading and validation of proof records from disk.
package proof

// =============================================================================
// ENUMS
// =============================================================================

// ProofStatus is the verification status of a theorem.
type ProofStatus string

const (
	StatusPending    ProofStatus = "pending"
	StatusInProgress ProofStatus = "in_progress"
	StatusVerified   ProofStatus = "verified"
	StatusFailed     ProofStatus = "failed"
)

// IsValid reports whether s is a known status value.
func (s ProofStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusVerified, StatusFailed:
		return true
	}
	return false
}

// HypothesisType classifies a hypothesis within a proof.
type HypothesisType string

const (
	HypDefinition HypothesisType = "definition"
	HypAssumption HypothesisType = "assumption"
	HypConstraint HypothesisType = "constraint"
	HypTheorem    HypothesisType = "theorem"
)

// IsValid reports whether t is a known hypothesis type.
func (t HypothesisType) IsValid() bool {
	switch t {
	case HypDefinition, HypAssumption, HypConstraint, HypTheorem:
		return true
	}
	return false
}

// Difficulty levels accepted in theorem records.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Proof strategy default. Records may carry any strategy string
// (structured, by_cases, induction, ...).
const DefaultStrategy = "structured"

// =============================================================================
// RECORD TYPES - JSON tags define the wire format
// =============================================================================

// Hypothesis is a single hypothesis or assumption in a proof.
type Hypothesis struct {
	Name           string         `json:"name" validate:"required,notblank"`
	Type           HypothesisType `json:"type" validate:"oneof=definition assumption constraint theorem"`
	Expression     string         `json:"expression"`
	Description    string         `json:"description,omitempty"`
	FormalNotation string         `json:"formal_notation,omitempty"`
}

// ProofStep is one step in a structured proof.
type ProofStep struct {
	StepNumber           int      `json:"step_number" validate:"min=1"`
	Description          string   `json:"description"`
	Justification        string   `json:"justification"`
	ReferencedHypotheses []string `json:"referenced_hypotheses"`
	ReferencedTheorems   []string `json:"referenced_theorems"`
	FormalExpression     string   `json:"formal_expression,omitempty"`
}

// Theorem is a formal theorem record with its proof.
type Theorem struct {
	ID              string `json:"theorem_id" validate:"required,notblank"`
	Name            string `json:"name" validate:"required,notblank"`
	Description     string `json:"description"`
	Statement       string `json:"statement" validate:"required,notblank"`
	FormalStatement string `json:"formal_statement" validate:"required,notblank"`

	Hypotheses []Hypothesis `json:"hypotheses" validate:"dive"`
	Conditions []string     `json:"conditions"`

	Conclusion    string      `json:"conclusion"`
	ProofSteps    []ProofStep `json:"proof_steps" validate:"dive"`
	ProofStrategy string      `json:"proof_strategy"`

	Status     ProofStatus `json:"status" validate:"oneof=pending in_progress verified failed"`
	Source     string      `json:"source,omitempty"`
	Difficulty string      `json:"difficulty_level" validate:"oneof=easy medium hard"`

	Notes string `json:"notes,omitempty"`
}

// applyDefaults fills zero-valued optional fields the way the wire format
// defines them: status pending, strategy structured, difficulty medium,
// hypothesis type assumption.
func (t *Theorem) applyDefaults() {
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.ProofStrategy == "" {
		t.ProofStrategy = DefaultStrategy
	}
	if t.Difficulty == "" {
		t.Difficulty = DifficultyMedium
	}
	for i := range t.Hypotheses {
		if t.Hypotheses[i].Type == "" {
			t.Hypotheses[i].Type = HypAssumption
		}
	}
}

// StepCount returns the number of proof steps.
func (t *Theorem) StepCount() int {
	return len(t.ProofSteps)
}
