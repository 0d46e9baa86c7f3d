package logs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwltypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// CloudWatchLogsAPI defines the subset of CloudWatch Logs API we use.
type CloudWatchLogsAPI interface {
	DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
	GetLogEvents(ctx context.Context, params *cloudwatchlogs.GetLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetLogEventsOutput, error)
}

// Client wraps the CloudWatch Logs API.
type Client struct {
	api CloudWatchLogsAPI
}

// NewClient creates a new logs client.
func NewClient(api CloudWatchLogsAPI) *Client {
	return &Client{api: api}
}

// ListLogGroups returns one page of log groups, optionally filtered by name prefix.
func (c *Client) ListLogGroups(ctx context.Context, q GroupsQuery) ([]LogGroup, error) {
	in := &cloudwatchlogs.DescribeLogGroupsInput{
		Limit: aws.Int32(q.Limit),
	}
	if q.Prefix != "" {
		in.LogGroupNamePrefix = aws.String(q.Prefix)
	}

	out, err := c.api.DescribeLogGroups(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("DescribeLogGroups: %w", err)
	}

	groups := make([]LogGroup, len(out.LogGroups))
	for i, g := range out.LogGroups {
		groups[i] = LogGroup{
			LogGroupName:         g.LogGroupName,
			CreationTime:         g.CreationTime,
			RetentionInDays:      g.RetentionInDays,
			MetricFilterCount:    g.MetricFilterCount,
			Arn:                  g.Arn,
			StoredBytes:          g.StoredBytes,
			KmsKeyID:             g.KmsKeyId,
			DataProtectionStatus: string(g.DataProtectionStatus),
			InheritedProperties:  inheritedProperties(g.InheritedProperties),
			LogGroupClass:        string(g.LogGroupClass),
			LogGroupArn:          g.LogGroupArn,
		}
	}
	return groups, nil
}

// ListLogStreams returns one page of streams in a group, most recently active first.
func (c *Client) ListLogStreams(ctx context.Context, q StreamsQuery) ([]LogStream, error) {
	out, err := c.api.DescribeLogStreams(ctx, &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName: aws.String(q.LogGroupName),
		OrderBy:      cwltypes.OrderByLastEventTime,
		Descending:   aws.Bool(true),
		Limit:        aws.Int32(q.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeLogStreams: %w", err)
	}

	streams := make([]LogStream, len(out.LogStreams))
	for i, s := range out.LogStreams {
		streams[i] = LogStream{
			LogStreamName:       s.LogStreamName,
			CreationTime:        s.CreationTime,
			FirstEventTimestamp: s.FirstEventTimestamp,
			LastEventTimestamp:  s.LastEventTimestamp,
			LastIngestionTime:   s.LastIngestionTime,
			UploadSequenceToken: s.UploadSequenceToken,
			Arn:                 s.Arn,
			StoredBytes:         s.StoredBytes,
		}
	}
	return streams, nil
}

// GetLogEvents retrieves events from a stream, optionally bounded by a time window.
func (c *Client) GetLogEvents(ctx context.Context, q EventsQuery) ([]LogEvent, error) {
	out, err := c.api.GetLogEvents(ctx, &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  aws.String(q.LogGroupName),
		LogStreamName: aws.String(q.LogStreamName),
		Limit:         aws.Int32(q.Limit),
		StartTime:     q.StartTime,
		EndTime:       q.EndTime,
	})
	if err != nil {
		return nil, fmt.Errorf("GetLogEvents: %w", err)
	}

	events := make([]LogEvent, len(out.Events))
	for i, e := range out.Events {
		events[i] = LogEvent{
			Timestamp:     e.Timestamp,
			Message:       e.Message,
			IngestionTime: e.IngestionTime,
		}
	}
	return events, nil
}

func inheritedProperties(props []cwltypes.InheritedProperty) []string {
	if len(props) == 0 {
		return nil
	}
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = string(p)
	}
	return out
}
