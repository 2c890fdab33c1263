package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fluentq/fluentq"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Config    string
	QueryFile string
	SQL       string
	Params    []string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a query and print its rows",
		Long: `Run a query described by a YAML file, or a raw SQL string with bound
parameters, and print the resulting rows.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "connection file (YAML)")
	cmd.Flags().StringVarP(&opts.QueryFile, "query", "f", "", "query description file (YAML)")
	cmd.Flags().StringVarP(&opts.SQL, "sql", "s", "", "raw SQL to run instead of a query file")
	cmd.Flags().StringArrayVarP(&opts.Params, "param", "p", nil, "positional parameter for --sql (repeatable)")
	_ = cmd.MarkFlagRequired("config")
	cmd.MarkFlagsOneRequired("query", "sql")
	cmd.MarkFlagsMutuallyExclusive("query", "sql")

	return cmd
}

func runQuery(opts *QueryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	conn, err := LoadConnectionFile(opts.Config)
	if err != nil {
		_ = formatter.Fail(err.Error())
		return WrapExitError(ExitCommandError, "loading connection file", err)
	}

	db, err := conn.Open()
	if err != nil {
		_ = formatter.Fail(err.Error())
		return WrapExitError(ExitFailure, "connecting", err)
	}
	defer db.Close()

	var rows []fluentq.Row
	if opts.SQL != "" {
		params := make([]any, len(opts.Params))
		for i, p := range opts.Params {
			params[i] = p
		}
		formatter.VerboseLog("running %s with %d param(s)", opts.SQL, len(params))
		rows, err = db.Raw().ExecuteRawContext(cmd.Context(), opts.SQL, params...)
	} else {
		var qf *QueryFile
		qf, err = LoadQueryFile(opts.QueryFile)
		if err != nil {
			_ = formatter.Fail(err.Error())
			return WrapExitError(ExitCommandError, "loading query file", err)
		}

		b := qf.Apply(db.Table(qf.Table))
		if query, args, sqlErr := b.SQL(); sqlErr == nil {
			formatter.VerboseLog("running %s with %d arg(s)", query, len(args))
		}
		rows, err = b.ExecuteContext(cmd.Context())
	}
	if err != nil {
		_ = formatter.Fail(err.Error())
		return WrapExitError(ExitFailure, "executing query", err)
	}

	if rows == nil {
		rows = []fluentq.Row{}
	}

	handled, err := formatter.Success(rows)
	if handled || err != nil {
		return err
	}

	printRows(formatter, rows)
	return nil
}

// printRows writes one line per row with columns sorted by name, so output
// stays stable across runs.
func printRows(formatter *OutputFormatter, rows []fluentq.Row) {
	for _, row := range rows {
		columns := make([]string, 0, len(row))
		for column := range row {
			columns = append(columns, column)
		}
		sort.Strings(columns)

		for i, column := range columns {
			if i > 0 {
				fmt.Fprint(formatter.Writer, "  ")
			}
			fmt.Fprintf(formatter.Writer, "%s=%v", column, row[column])
		}
		fmt.Fprintln(formatter.Writer)
	}
	fmt.Fprintf(formatter.Writer, "%d row(s)\n", len(rows))
}
