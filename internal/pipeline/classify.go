package pipeline

import (
	"fmt"
	"strings"
)

// Diagnosis is advisory guidance for a failed step.
type Diagnosis struct {
	// Summary is a one-line description of what went wrong.
	Summary string

	// Advice lists what the user can try, one item per line.
	Advice []string

	// Known is false when no rule matched and Summary is the generic fallback.
	Known bool
}

type rule struct {
	pattern string
	summary string
	advice  []string
}

// rules are matched in order against combined output; the first hit wins.
var rules = []rule{
	{
		pattern: "Connection refused",
		summary: "could not reach a local Solana validator",
		advice: []string{
			"Start one in another terminal: solana-test-validator",
			"Then re-run the failed step from the project directory",
		},
	},
	{
		pattern: "websocket error",
		summary: "the websocket connection to the cluster failed",
		advice: []string{
			"Check that the validator is running and its RPC/websocket ports are reachable",
			"Verify the cluster URL in Anchor.toml",
		},
	},
	{
		pattern: "No test files found",
		summary: "no test files were found",
		advice: []string{
			"Add tests under tests/ or check the test script in package.json",
		},
	},
}

// Classify maps a failed command's output to guidance. It never fails.
func Classify(output string, exitCode int) Diagnosis {
	for _, r := range rules {
		if strings.Contains(output, r.pattern) {
			return Diagnosis{Summary: r.summary, Advice: r.advice, Known: true}
		}
	}
	return Diagnosis{Summary: fmt.Sprintf("command failed with exit code %d", exitCode)}
}
