package cli

import (
	"github.com/spf13/cobra"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	ClayBody string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze <recipe.json>",
		Short: "Analyze the chemistry of an existing recipe",
		Long: `Analyze the chemistry of an existing recipe.

The recipe file is a JSON object mapping material names to parts by
weight. Use "-" to read the recipe from stdin. The report covers the
unity molecular formula, cone 6 limit checks, thermal expansion,
food-safety warnings, and water additions.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ClayBody, "clay-body", "", "clay body name for fit checks")

	return cmd
}

func runAnalyze(opts *AnalyzeOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	recipe, err := readRecipe(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ops, _, _, err := loadOps()
	if err != nil {
		return err
	}

	formatter.VerboseLog("Analyzing %d material(s)", len(recipe))
	return formatter.Emit(ops.Analyze(recipe, opts.ClayBody))
}
