package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	awsclient "tasnim.dev/cwlogs-mcp/internal/aws"
	"tasnim.dev/cwlogs-mcp/internal/config"
	"tasnim.dev/cwlogs-mcp/internal/dispatch"
)

// settings holds flags shared by commands that reach AWS.
type settings struct {
	configPath string
	overrides  config.Overrides
}

func (s *settings) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.configPath, "config", config.DefaultPath(), "Path to config file")
	cmd.Flags().StringVarP(&s.overrides.Region, "region", "r", "", "AWS region to use")
	cmd.Flags().StringVar(&s.overrides.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// load resolves and validates configuration. Missing credentials or region fail here,
// before any dispatcher exists.
func (s *settings) load() (*config.Config, error) {
	cfg, err := config.LoadFile(s.configPath, config.Environ())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.Merge(s.overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newBackend(ctx context.Context, cfg *config.Config) (*awsclient.ServiceClient, error) {
	client, err := awsclient.NewServiceClient(ctx, awsclient.Credentials{
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		SessionToken:    cfg.SessionToken,
	}, cfg.DefaultRegion)
	if err != nil {
		return nil, fmt.Errorf("initializing AWS client: %w", err)
	}
	return client, nil
}

func newDispatcher(ctx context.Context, cfg *config.Config) (*dispatch.Dispatcher, *awsclient.ServiceClient, error) {
	client, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return dispatch.New(client.Logs), client, nil
}
