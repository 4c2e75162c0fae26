// Package narration formats explanations of algorithm-teaching steps.
package narration

import "fmt"

// Request identifies the step being explained.
type Request struct {
	Step       string
	Algorithm  string
	Difficulty string
}

// Explain returns the explanation for r. Fields are substituted verbatim.
func Explain(r Request) string {
	return fmt.Sprintf("Explaining the step: %s for %s at %s level.", r.Step, r.Algorithm, r.Difficulty)
}
