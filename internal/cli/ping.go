package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// PingOptions holds flags for the ping command.
type PingOptions struct {
	*RootOptions
	Config string
}

// PingResult reports a successful connection check.
type PingResult struct {
	Driver  string `json:"driver"`
	Session string `json:"session"`
}

// NewPingCommand creates the ping command.
func NewPingCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PingOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "ping",
		Short:         "Check that the configured database answers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPing(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "connection file (YAML)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runPing(opts *PingOptions, cmd *cobra.Command) error {
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

	formatter.VerboseLog("dialing %s database", conn.Driver)

	db, err := conn.Open()
	if err != nil {
		_ = formatter.Fail(err.Error())
		return WrapExitError(ExitFailure, "connecting", err)
	}
	defer db.Close()

	handled, err := formatter.Success(PingResult{Driver: conn.Driver, Session: db.Session()})
	if handled || err != nil {
		return err
	}

	fmt.Fprintf(formatter.Writer, "✓ connected (%s, session %s)\n", conn.Driver, db.Session())
	return nil
}
