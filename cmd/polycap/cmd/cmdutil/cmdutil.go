// Package cmdutil carries the small helpers shared by the capability commands.
package cmdutil

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"polycap/internal/app"
	"polycap/internal/app/model"
)

// Options assembles application options from the root command's persistent flags.
func Options(cmd *cobra.Command) app.Options {
	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")
	return app.Options{ConfigPath: configPath, Verbose: verbose}
}

// ReadText resolves the text input from --text or --file.
func ReadText(text, file string) (string, error) {
	if text != "" {
		return text, nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("either --text or --file is required")
}

// ReportOutcome prints the result disposition and warnings to stderr, and the
// per-chunk provenance when verbose is set.
func ReportOutcome(cmd *cobra.Command, result *model.CapabilityResult) {
	switch result.Status {
	case model.StatusDegradedSuccess:
		fmt.Fprintln(os.Stderr, "⚠️  degraded: fallback engines served part of this request")
	case model.StatusFailed:
		fmt.Fprintln(os.Stderr, "❌ failed: an engine chain was exhausted")
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "⚠️  %s\n", warning)
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		for _, p := range result.Provenance {
			engine := p.SuccessfulEngine
			if engine == "" {
				engine = "none"
			}
			fmt.Fprintf(os.Stderr, "chunk %d: %s after %d attempt(s)\n", p.ChunkIndex, engine, p.Attempts)
		}
	}
}

// WriteTextResult reports the outcome and writes the text payload to the
// output file, or stdout when no path is set. A failed result returns an
// error so the process exits non-zero.
func WriteTextResult(cmd *cobra.Command, result *model.CapabilityResult, outputPath string) error {
	ReportOutcome(cmd, result)

	if result.Status == model.StatusFailed {
		return fmt.Errorf("request failed: every engine in the chain was exhausted")
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result.Text), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", outputPath)
		return nil
	}

	fmt.Println(result.Text)
	return nil
}
