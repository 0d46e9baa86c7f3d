package dispatch

import (
	"tasnim.dev/cwlogs-mcp/internal/aws/logs"
	"tasnim.dev/cwlogs-mcp/internal/catalog"
)

// Request is a validated, fully defaulted operation request.
type Request interface {
	Operation() string
}

// ListLogGroupsRequest is a validated list_log_groups call.
type ListLogGroupsRequest struct {
	Prefix string
	Limit  int32
}

// ListLogStreamsRequest is a validated list_log_streams call.
type ListLogStreamsRequest struct {
	LogGroupName string
	Limit        int32
}

// GetLogEventsRequest is a validated get_log_events call.
type GetLogEventsRequest struct {
	LogGroupName  string
	LogStreamName string
	Limit         int32
	StartTime     *int64
	EndTime       *int64
}

func (ListLogGroupsRequest) Operation() string  { return catalog.ListLogGroups }
func (ListLogStreamsRequest) Operation() string { return catalog.ListLogStreams }
func (GetLogEventsRequest) Operation() string   { return catalog.GetLogEvents }

func (r ListLogGroupsRequest) query() logs.GroupsQuery {
	return logs.GroupsQuery{Prefix: r.Prefix, Limit: r.Limit}
}

func (r ListLogStreamsRequest) query() logs.StreamsQuery {
	return logs.StreamsQuery{LogGroupName: r.LogGroupName, Limit: r.Limit}
}

func (r GetLogEventsRequest) query() logs.EventsQuery {
	return logs.EventsQuery{
		LogGroupName:  r.LogGroupName,
		LogStreamName: r.LogStreamName,
		Limit:         r.Limit,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
	}
}

// Validate checks args against op and builds its typed request.
// Arguments the operation does not declare are ignored.
func Validate(op catalog.Operation, args Args) (Request, error) {
	switch op.Name {
	case catalog.ListLogGroups:
		return validateListLogGroups(op.Schema, args)
	case catalog.ListLogStreams:
		return validateListLogStreams(op.Schema, args)
	case catalog.GetLogEvents:
		return validateGetLogEvents(op.Schema, args)
	default:
		return nil, unknownOperation(op.Name)
	}
}

func validateListLogGroups(schema catalog.Schema, args Args) (Request, error) {
	r := newReader(schema, args)
	req := ListLogGroupsRequest{
		Prefix: r.optionalString("prefix"),
		Limit:  r.limit(),
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return req, nil
}

func validateListLogStreams(schema catalog.Schema, args Args) (Request, error) {
	r := newReader(schema, args)
	req := ListLogStreamsRequest{
		LogGroupName: r.requiredString("logGroupName"),
		Limit:        r.limit(),
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return req, nil
}

func validateGetLogEvents(schema catalog.Schema, args Args) (Request, error) {
	r := newReader(schema, args)
	req := GetLogEventsRequest{
		LogGroupName:  r.requiredString("logGroupName"),
		LogStreamName: r.requiredString("logStreamName"),
		Limit:         r.limit(),
		StartTime:     r.optionalInt("startTime"),
		EndTime:       r.optionalInt("endTime"),
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	if req.StartTime != nil && req.EndTime != nil && *req.StartTime > *req.EndTime {
		return nil, invalidArgument("startTime", "must not be after endTime (%d > %d)", *req.StartTime, *req.EndTime)
	}
	return req, nil
}

// reader pulls typed fields out of an argument bag, collecting the first
// type or bound violation and every missing required field.
type reader struct {
	schema  catalog.Schema
	args    Args
	missing []string
	invalid *Error
}

func newReader(schema catalog.Schema, args Args) *reader {
	return &reader{schema: schema, args: args}
}

func (r *reader) err() error {
	if len(r.missing) > 0 {
		return missingArguments(r.missing)
	}
	if r.invalid != nil {
		return r.invalid
	}
	return nil
}

func (r *reader) fail(e *Error) {
	if r.invalid == nil {
		r.invalid = e
	}
}

// present reports whether name carries a value. Null counts as absent.
func (r *reader) present(name string) (Value, bool) {
	v, ok := r.args[name]
	if !ok || v.Kind() == KindNull {
		return Value{}, false
	}
	return v, true
}

func (r *reader) requiredString(name string) string {
	v, ok := r.present(name)
	if !ok {
		r.missing = append(r.missing, name)
		return ""
	}
	s, ok := v.Str()
	if !ok {
		r.fail(invalidArgument(name, "expected string, got %s", v.Kind()))
		return ""
	}
	if s == "" {
		r.missing = append(r.missing, name)
	}
	return s
}

func (r *reader) optionalString(name string) string {
	v, ok := r.present(name)
	if !ok {
		return ""
	}
	s, ok := v.Str()
	if !ok {
		r.fail(invalidArgument(name, "expected string, got %s", v.Kind()))
	}
	return s
}

func (r *reader) optionalInt(name string) *int64 {
	v, ok := r.present(name)
	if !ok {
		return nil
	}
	n, ok := r.integer(name, v)
	if !ok {
		return nil
	}
	return &n
}

func (r *reader) integer(name string, v Value) (int64, bool) {
	if v.Kind() != KindNumber {
		r.fail(invalidArgument(name, "expected number, got %s", v.Kind()))
		return 0, false
	}
	n, ok := v.Int()
	if !ok {
		r.fail(invalidArgument(name, "expected an integer"))
		return 0, false
	}
	return n, true
}

// limit reads the limit argument, applying the declared default and bounds.
func (r *reader) limit() int32 {
	f, ok := r.schema.Field("limit")
	if !ok {
		r.fail(invalidArgument("limit", "not declared by the operation schema"))
		return 0
	}
	var n int64
	if f.Default != nil {
		n = *f.Default
	}
	if v, ok := r.present(f.Name); ok {
		got, ok := r.integer(f.Name, v)
		if !ok {
			return 0
		}
		n = got
	}
	if f.Bounds != nil && !f.Bounds.Contains(n) {
		r.fail(invalidArgument(f.Name, "must be between %d and %d, got %d", f.Bounds.Min, f.Bounds.Max, n))
		return 0
	}
	return int32(n)
}
