package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluentq/fluentq"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	QueryFile string
}

// BuildResult is the rendered statement.
type BuildResult struct {
	Query string `json:"query"`
	Args  []any  `json:"args"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the SQL for a query file without executing it",
		Long: `Render the SELECT statement a query file describes, together with the
values that would be bound to its placeholders. No database is touched.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.QueryFile, "query", "f", "", "query description file (YAML)")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func runBuild(opts *BuildOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	qf, err := LoadQueryFile(opts.QueryFile)
	if err != nil {
		_ = formatter.Fail(err.Error())
		return WrapExitError(ExitCommandError, "loading query file", err)
	}

	query, args, err := qf.Apply(fluentq.Table(qf.Table)).SQL()
	if err != nil {
		_ = formatter.Fail(err.Error())
		return WrapExitError(ExitCommandError, "building query", err)
	}

	if args == nil {
		args = []any{}
	}

	handled, err := formatter.Success(BuildResult{Query: query, Args: args})
	if handled || err != nil {
		return err
	}

	fmt.Fprintln(formatter.Writer, query)
	if len(args) > 0 {
		fmt.Fprintf(formatter.Writer, "-- %d arg(s): %v\n", len(args), args)
	}
	return nil
}
