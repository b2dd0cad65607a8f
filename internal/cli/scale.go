package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewScaleCommand creates the scale command.
func NewScaleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scale <recipe.json> <target-weight-g>",
		Short: "Scale a recipe to a target dry batch weight",
		Long: `Scale a recipe to a target dry batch weight.

Amounts are treated as ratios, so the recipe does not need to sum to
100. The batch table lists each material's share and gram weight.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScale(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runScale(opts *RootOptions, path, weightArg string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	weight, err := strconv.ParseFloat(weightArg, 64)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid target weight %q", weightArg), err)
	}

	recipe, err := readRecipe(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ops, _, _, err := loadOps()
	if err != nil {
		return err
	}

	formatter.VerboseLog("Scaling %d material(s) to %.1f g", len(recipe), weight)
	return formatter.Emit(ops.Scale(recipe, weight))
}
