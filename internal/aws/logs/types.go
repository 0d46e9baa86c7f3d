package logs

// LogGroup is the JSON projection of a CloudWatch log group.
// Field names follow the CloudWatch Logs API so records are relayed as the backend reports them.
type LogGroup struct {
	LogGroupName         *string  `json:"logGroupName,omitempty"`
	CreationTime         *int64   `json:"creationTime,omitempty"`
	RetentionInDays      *int32   `json:"retentionInDays,omitempty"`
	MetricFilterCount    *int32   `json:"metricFilterCount,omitempty"`
	Arn                  *string  `json:"arn,omitempty"`
	StoredBytes          *int64   `json:"storedBytes,omitempty"`
	KmsKeyID             *string  `json:"kmsKeyId,omitempty"`
	DataProtectionStatus string   `json:"dataProtectionStatus,omitempty"`
	InheritedProperties  []string `json:"inheritedProperties,omitempty"`
	LogGroupClass        string   `json:"logGroupClass,omitempty"`
	LogGroupArn          *string  `json:"logGroupArn,omitempty"`
}

// LogStream is the JSON projection of a CloudWatch log stream.
type LogStream struct {
	LogStreamName       *string `json:"logStreamName,omitempty"`
	CreationTime        *int64  `json:"creationTime,omitempty"`
	FirstEventTimestamp *int64  `json:"firstEventTimestamp,omitempty"`
	LastEventTimestamp  *int64  `json:"lastEventTimestamp,omitempty"`
	LastIngestionTime   *int64  `json:"lastIngestionTime,omitempty"`
	UploadSequenceToken *string `json:"uploadSequenceToken,omitempty"`
	Arn                 *string `json:"arn,omitempty"`
	StoredBytes         *int64  `json:"storedBytes,omitempty"`
}

// LogEvent represents a single CloudWatch log event. Times are epoch milliseconds.
type LogEvent struct {
	Timestamp     *int64  `json:"timestamp,omitempty"`
	Message       *string `json:"message,omitempty"`
	IngestionTime *int64  `json:"ingestionTime,omitempty"`
}

// GroupsQuery parameterizes a log group listing.
type GroupsQuery struct {
	Prefix string
	Limit  int32
}

// StreamsQuery parameterizes a log stream listing within one group.
type StreamsQuery struct {
	LogGroupName string
	Limit        int32
}

// EventsQuery parameterizes an event fetch. StartTime and EndTime are optional epoch milliseconds.
type EventsQuery struct {
	LogGroupName  string
	LogStreamName string
	Limit         int32
	StartTime     *int64
	EndTime       *int64
}
