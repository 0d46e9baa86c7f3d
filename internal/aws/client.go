package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	awslogs "tasnim.dev/cwlogs-mcp/internal/aws/logs"
)

// ServiceClient is the backend handle passed to components that need AWS access.
type ServiceClient struct {
	Logs      *awslogs.Client
	Region    string
	AccountID string

	cfg aws.Config
}

// NewServiceClient loads config from explicit credentials and builds the logs client.
func NewServiceClient(ctx context.Context, creds Credentials, region string) (*ServiceClient, error) {
	cfg, err := LoadConfig(ctx, creds, region)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewServiceClientFromConfig(cfg), nil
}

// NewServiceClientFromConfig wraps an already loaded config.
func NewServiceClientFromConfig(cfg aws.Config) *ServiceClient {
	return &ServiceClient{
		Logs:   awslogs.NewClient(cloudwatchlogs.NewFromConfig(cfg)),
		Region: cfg.Region,
		cfg:    cfg,
	}
}

// ResolveAccountID looks up the caller account once and caches it on the handle.
func (c *ServiceClient) ResolveAccountID(ctx context.Context) string {
	if c.AccountID == "" {
		c.AccountID = GetAccountID(ctx, c.cfg)
	}
	return c.AccountID
}
