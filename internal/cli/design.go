package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// DesignOptions holds flags for the design command.
type DesignOptions struct {
	*RootOptions
	ClayBody string
	Cone     string
}

// NewDesignCommand creates the design command.
func NewDesignCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DesignOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "design <description>...",
		Short: "Design a glaze recipe from a plain-language description",
		Long: `Design a glaze recipe from a plain-language description.

The description selects a base template and colorant additions by
keyword, the recipe is nudged toward published oxide limits for the
target cone, and the result is reported with its full chemistry.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesign(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ClayBody, "clay-body", "", "clay body name for fit checks")
	cmd.Flags().StringVar(&opts.Cone, "cone", "", `target cone label (default "6")`)

	return cmd
}

func runDesign(opts *DesignOptions, description string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ops, _, _, err := loadOps()
	if err != nil {
		return err
	}

	formatter.VerboseLog("Designing %q (clay body %q, cone %q)", description, opts.ClayBody, opts.Cone)
	return formatter.Emit(ops.Design(description, opts.ClayBody, opts.Cone))
}
