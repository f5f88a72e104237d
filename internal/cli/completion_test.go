package cli

import (
	"strings"
	"testing"
)

func TestCompletionCommand(t *testing.T) {
	for shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out, "stackorder") {
				t.Errorf("completion %s output does not mention stackorder", shell)
			}
		})
	}

	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh error = nil, want unsupported shell error")
	}
}
