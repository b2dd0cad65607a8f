package cli

import (
	"github.com/spf13/cobra"
)

// VariationOptions holds flags for the variation command.
type VariationOptions struct {
	*RootOptions
	Description string
	ClayBody    string
}

// NewVariationCommand creates the variation command.
func NewVariationCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VariationOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "variation <recipe.json> <direction>",
		Short: "Shift a recipe in a named direction",
		Long: `Shift a recipe in a named direction.

Directions include more_matte, less_matte, more_glossy, reduce_crazing,
increase_crazing, more_color, and less_color. The adjusted recipe is
renormalized to 100 parts and reported with its full chemistry.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVariation(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Description, "description", "", "description of the original glaze, echoed in the report")
	cmd.Flags().StringVar(&opts.ClayBody, "clay-body", "", "clay body name for fit checks")

	return cmd
}

func runVariation(opts *VariationOptions, path, direction string, cmd *cobra.Command) error {
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

	formatter.VerboseLog("Varying %d material(s) toward %s", len(recipe), direction)
	return formatter.Emit(ops.Variation(recipe, direction, opts.Description, opts.ClayBody, nil, nil))
}
