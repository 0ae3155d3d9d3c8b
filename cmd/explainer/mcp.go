package main

import (
	"os"
	"os/signal"
	"syscall"

	"word-explainer/internal/mcpserver"

	"github.com/spf13/cobra"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "mcp",
		Short:       "Serve the explain_word tool over MCP stdio",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationStdoutReserved: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			exp, _, err := newExplainer(ctx)
			if err != nil {
				return err
			}
			return mcpserver.ServeStdio(ctx, mcpserver.New(exp, version))
		},
	}
}
