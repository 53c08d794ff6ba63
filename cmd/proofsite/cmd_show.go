// Package main implements the show command: a terminal summary of one
// theorem record.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"proofsite/internal/proof"
	"proofsite/internal/solver"
)

// showCmd prints a theorem summary to the terminal
var showCmd = &cobra.Command{
	Use:   "show <theorem-id|file>",
	Short: "Print a terminal summary of a theorem",
	Long: `Prints a human-readable summary of one theorem: metadata, statement,
hypotheses, conditions, proof steps, and notes.

The argument is either a theorem id (resolved against the proofs
directory) or a path to a single record file.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

// Terminal styles for the summary output
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	formalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("37"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyles = map[proof.ProofStatus]lipgloss.Style{
		proof.StatusPending:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("178")),
		proof.StatusInProgress: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		proof.StatusVerified:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40")),
		proof.StatusFailed:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
	}
)

// resolveTheorem loads one theorem from a file path or by id from the
// proofs directory.
func resolveTheorem(arg string) (*proof.Theorem, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return proof.LoadFile(arg)
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	reg, err := proof.LoadDir(cfg.Proofs.Dir)
	if err != nil {
		return nil, err
	}
	t := reg.Get(arg)
	if t == nil {
		return nil, fmt.Errorf("theorem %q not found in %s (known: %s)",
			arg, cfg.Proofs.Dir, strings.Join(reg.IDs(), ", "))
	}
	return t, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	t, err := resolveTheorem(args[0])
	if err != nil {
		return err
	}

	rule := ruleStyle.Render(strings.Repeat("─", 72))

	fmt.Println()
	fmt.Println(rule)
	fmt.Println(titleStyle.Render("THEOREM: " + t.Name))
	fmt.Println(rule)
	fmt.Printf("%s %s\n", labelStyle.Render("ID:"), t.ID)
	fmt.Printf("%s %s\n", labelStyle.Render("Status:"), renderStatus(t.Status))
	fmt.Printf("%s %s\n", labelStyle.Render("Difficulty:"), strings.ToUpper(t.Difficulty))
	if t.Source != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Source:"), t.Source)
	}

	if t.Description != "" {
		fmt.Println()
		fmt.Println(labelStyle.Render("Description:"))
		fmt.Println(renderMarkdown(t.Description))
	}

	fmt.Println()
	fmt.Println(labelStyle.Render("Statement:"))
	fmt.Println("  " + t.Statement)
	fmt.Println(labelStyle.Render("Formal (HOL/Why3):"))
	fmt.Println("  " + formalStyle.Render(t.FormalStatement))

	if len(t.Hypotheses) > 0 {
		fmt.Println()
		fmt.Println(labelStyle.Render(fmt.Sprintf("Hypotheses (%d):", len(t.Hypotheses))))
		for _, h := range t.Hypotheses {
			fmt.Printf("  • %s (%s):\n", h.Name, h.Type)
			fmt.Printf("    %s\n", h.Expression)
			if h.Description != "" {
				fmt.Println(subtleStyle.Render("    (" + h.Description + ")"))
			}
		}
	}

	if len(t.Conditions) > 0 {
		fmt.Println()
		fmt.Println(labelStyle.Render(fmt.Sprintf("Conditions (%d):", len(t.Conditions))))
		for i, cond := range t.Conditions {
			fmt.Printf("  (%c) %s\n", 'a'+i, cond)
		}
	}

	if t.Conclusion != "" {
		fmt.Println()
		fmt.Println(labelStyle.Render("Conclusion:"))
		fmt.Println("  " + formalStyle.Render(t.Conclusion))
	}

	if len(t.ProofSteps) > 0 {
		fmt.Println()
		fmt.Println(labelStyle.Render(fmt.Sprintf("Proof (%d steps, strategy: %s):", len(t.ProofSteps), t.ProofStrategy)))
		for _, step := range t.ProofSteps {
			fmt.Printf("\n  Step %d: %s\n", step.StepNumber, step.Description)
			fmt.Printf("    Justification: %s\n", step.Justification)
			if step.FormalExpression != "" {
				fmt.Printf("    Formal: %s\n", formalStyle.Render(step.FormalExpression))
			}
			if len(step.ReferencedHypotheses) > 0 {
				fmt.Println(subtleStyle.Render("    Hypotheses: " + strings.Join(step.ReferencedHypotheses, ", ")))
			}
			if len(step.ReferencedTheorems) > 0 {
				fmt.Println(subtleStyle.Render("    Theorems: " + strings.Join(step.ReferencedTheorems, ", ")))
			}
		}
	}

	if t.Notes != "" {
		fmt.Println()
		fmt.Println(labelStyle.Render("Notes:"))
		fmt.Println(renderMarkdown(t.Notes))
	}

	fmt.Println(rule)
	return nil
}

func renderStatus(s proof.ProofStatus) string {
	style, ok := statusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(strings.ToUpper(string(s)))
}

// renderMarkdown renders description/notes markdown for the terminal,
// falling back to plain text when the renderer is unavailable.
func renderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "  " + text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return "  " + text
	}
	return strings.TrimRight(out, "\n")
}

// solverConfigCmd prints the derived solver configuration as JSON
var solverConfigCmd = &cobra.Command{
	Use:   "solver-config <theorem-id|file>",
	Short: "Print the solver configuration for a theorem as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolverConfig,
}

func runSolverConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	t, err := resolveTheorem(args[0])
	if err != nil {
		return err
	}

	out, err := solver.Build(t, cfg.SolverContext()).JSON()
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
