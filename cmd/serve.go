package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tasnim.dev/cwlogs-mcp/internal/logging"
	"tasnim.dev/cwlogs-mcp/internal/mcpserver"
)

func NewServeCmd() *cobra.Command {
	var s settings

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve CloudWatch Logs tools over MCP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load()
			if err != nil {
				return err
			}
			logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, client, err := newDispatcher(ctx, cfg)
			if err != nil {
				return err
			}

			idCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			accountID := client.ResolveAccountID(idCtx)
			cancel()
			if accountID == "" {
				logger.Warn("could not resolve AWS account", "region", client.Region)
			} else {
				logger.Info("using AWS account", "account", accountID, "region", client.Region)
			}

			return mcpserver.New(d, logger).Run(ctx, cfg.Transport, cfg.HTTPAddr)
		},
	}

	s.bind(cmd)
	cmd.Flags().StringVarP(&s.overrides.Transport, "transport", "t", "", "Transport: stdio or http")
	cmd.Flags().StringVar(&s.overrides.HTTPAddr, "http-addr", "", "Listen address for the http transport")

	return cmd
}
