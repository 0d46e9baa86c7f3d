// Package dispatch maps an operation name and an argument bag to a single
// validated backend call and wraps the outcome in a response or error envelope.
package dispatch

import (
	"context"
	"fmt"

	"tasnim.dev/cwlogs-mcp/internal/aws/logs"
	"tasnim.dev/cwlogs-mcp/internal/catalog"
)

// Backend performs the three remote log queries.
type Backend interface {
	ListLogGroups(ctx context.Context, q logs.GroupsQuery) ([]logs.LogGroup, error)
	ListLogStreams(ctx context.Context, q logs.StreamsQuery) ([]logs.LogStream, error)
	GetLogEvents(ctx context.Context, q logs.EventsQuery) ([]logs.LogEvent, error)
}

// Dispatcher is stateless apart from its backend handle and is safe for concurrent use.
type Dispatcher struct {
	backend Backend
}

// New creates a dispatcher over the given backend.
func New(backend Backend) *Dispatcher {
	return &Dispatcher{backend: backend}
}

// Catalog returns the operations this dispatcher serves, in catalog order.
func (d *Dispatcher) Catalog() []catalog.Operation {
	return catalog.Operations()
}

// Dispatch runs one operation. Any returned error is a *Error.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args Args) (*Response, error) {
	op, ok := catalog.Lookup(name)
	if !ok {
		return nil, unknownOperation(name)
	}
	req, err := Validate(op, args)
	if err != nil {
		return nil, err
	}
	return d.Execute(ctx, req)
}

// Execute performs the backend call for an already validated request.
func (d *Dispatcher) Execute(ctx context.Context, req Request) (*Response, error) {
	switch r := req.(type) {
	case ListLogGroupsRequest:
		return run(ctx, r.query(), d.backend.ListLogGroups)
	case ListLogStreamsRequest:
		return run(ctx, r.query(), d.backend.ListLogStreams)
	case GetLogEventsRequest:
		return run(ctx, r.query(), d.backend.GetLogEvents)
	default:
		return nil, unknownOperation(fmt.Sprintf("%T", req))
	}
}

func run[Q, R any](ctx context.Context, q Q, call func(context.Context, Q) ([]R, error)) (*Response, error) {
	records, err := call(ctx, q)
	if err != nil {
		return nil, backendFailure(err)
	}
	resp, err := textResponse(records)
	if err != nil {
		return nil, backendFailure(fmt.Errorf("encoding records: %w", err))
	}
	return resp, nil
}
