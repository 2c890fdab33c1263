package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	Config string
	SQL    string
	Params []string
}

// ExecResult reports what a statement changed.
type ExecResult struct {
	RowsAffected int64 `json:"rows_affected"`
	LastInsertID int64 `json:"last_insert_id,omitempty"`
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Run a raw statement with bound parameters",
		Long: `Run one raw SQL statement. Every --param value is bound to a ?
placeholder in order; parameters are never spliced into the SQL text.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "connection file (YAML)")
	cmd.Flags().StringVarP(&opts.SQL, "sql", "s", "", "statement to run")
	cmd.Flags().StringArrayVarP(&opts.Params, "param", "p", nil, "positional parameter (repeatable)")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("sql")

	return cmd
}

func runExec(opts *ExecOptions, cmd *cobra.Command) error {
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

	params := make([]any, len(opts.Params))
	for i, p := range opts.Params {
		params[i] = p
	}

	formatter.VerboseLog("running %s with %d param(s)", opts.SQL, len(params))

	result, err := db.Raw().ExecRawContext(cmd.Context(), opts.SQL, params...)
	if err != nil {
		_ = formatter.Fail(err.Error())
		return WrapExitError(ExitFailure, "executing statement", err)
	}

	execResult := ExecResult{}
	// Not every driver reports these; zero is fine when one does not.
	if n, err := result.RowsAffected(); err == nil {
		execResult.RowsAffected = n
	}
	if id, err := result.LastInsertId(); err == nil {
		execResult.LastInsertID = id
	}

	handled, err := formatter.Success(execResult)
	if handled || err != nil {
		return err
	}

	fmt.Fprintf(formatter.Writer, "✓ %d row(s) affected\n", execResult.RowsAffected)
	return nil
}
