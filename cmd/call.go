package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"tasnim.dev/cwlogs-mcp/internal/dispatch"
)

// errDispatchFailed signals a failure whose envelope was already written.
var errDispatchFailed = errors.New("operation failed")

type dispatcher interface {
	Dispatch(ctx context.Context, name string, args dispatch.Args) (*dispatch.Response, error)
}

func NewCallCmd() *cobra.Command {
	var s settings
	var rawArgs string

	cmd := &cobra.Command{
		Use:   "call <operation>",
		Short: "Invoke one operation and print its envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load()
			if err != nil {
				return err
			}
			d, _, err := newDispatcher(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return runCall(cmd.Context(), d, args[0], rawArgs, cmd.OutOrStdout())
		},
	}

	s.bind(cmd)
	cmd.Flags().StringVarP(&rawArgs, "args", "a", "{}", "Operation arguments as a JSON object")

	return cmd
}

// runCall writes either the response envelope or the error envelope to w.
func runCall(ctx context.Context, d dispatcher, name, rawArgs string, w io.Writer) error {
	args, err := dispatch.ParseArgs([]byte(rawArgs))
	if err != nil {
		return err
	}
	resp, err := d.Dispatch(ctx, name, args)
	if err != nil {
		var de *dispatch.Error
		if !errors.As(err, &de) {
			return err
		}
		if wErr := writeJSON(w, de); wErr != nil {
			return wErr
		}
		return errDispatchFailed
	}
	return writeJSON(w, resp)
}
