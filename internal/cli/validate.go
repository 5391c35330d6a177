package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/cardsearch/internal/corpus"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	File       string             `json:"file"`
	Valid      bool               `json:"valid"`
	Violations []corpus.Violation `json:"violations,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [corpus-file]",
		Short: "Check a corpus file against the schema",
		Long: `Check a card corpus JSON file against the built-in schema without
building the search index. Every violation is reported with its path and
position. With no argument the configured corpus is checked.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := loadConfig(rootOpts, f)
				if err != nil {
					return err
				}
				path = cfg.Corpus
			}
			return runValidate(f, path)
		},
	}

	return cmd
}

func runValidate(f *OutputFormatter, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeNotFound, err)
	}
	f.VerboseLog("Validating %s (%d bytes)", path, len(data))

	err = corpus.ValidateFile(path, data)
	var verr *corpus.ValidationError
	switch {
	case err == nil:
		if f.JSON() {
			return f.Success(ValidationResult{File: path, Valid: true})
		}
		return f.Success(fmt.Sprintf("✓ %s is valid", path))
	case errors.As(err, &verr):
		return outputViolations(f, path, verr.Violations)
	default:
		return f.Fail(ExitCommandError, ErrCodeInvalid, err)
	}
}

func outputViolations(f *OutputFormatter, path string, violations []corpus.Violation) error {
	msg := fmt.Sprintf("%s: %d schema violation(s)", path, len(violations))
	if f.JSON() {
		if err := f.Error(ErrCodeInvalid, msg, ValidationResult{File: path, Violations: violations}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "✗ %s\n", msg)
		for _, v := range violations {
			fmt.Fprintf(f.Writer, "  %s\n", v)
		}
	}
	return NewExitError(ExitFailure, msg)
}
