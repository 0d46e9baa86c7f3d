// Package catalog declares the fixed set of read-only log operations and
// their argument schemas. The table is built once and never mutated.
package catalog

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"

	"tasnim.dev/cwlogs-mcp/internal/constants"
)

// Operation names.
const (
	ListLogGroups  = "list_log_groups"
	ListLogStreams = "list_log_streams"
	GetLogEvents   = "get_log_events"
)

// ArgType is the declared type of an argument.
type ArgType string

const (
	TypeString ArgType = "string"
	TypeNumber ArgType = "number"
)

// Bounds is an inclusive numeric range.
type Bounds struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Contains reports whether v lies within the range.
func (b Bounds) Contains(v int64) bool {
	return v >= b.Min && v <= b.Max
}

// Field describes one accepted argument.
type Field struct {
	Name        string  `json:"name"`
	Type        ArgType `json:"type"`
	Required    bool    `json:"required"`
	Description string  `json:"description"`
	Default     *int64  `json:"default,omitempty"`
	Bounds      *Bounds `json:"bounds,omitempty"`
}

// Schema is the ordered list of fields an operation accepts.
type Schema []Field

// Field returns the named field.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Required lists the names of required fields in declaration order.
func (s Schema) Required() []string {
	var names []string
	for _, f := range s {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// JSONSchema renders the schema as a JSON Schema object.
func (s Schema) JSONSchema() *jsonschema.Schema {
	out := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(s)),
		Required:   s.Required(),
	}
	for _, f := range s {
		prop := &jsonschema.Schema{
			Type:        string(f.Type),
			Description: f.Description,
		}
		if f.Bounds != nil {
			prop.Minimum = float64Ptr(float64(f.Bounds.Min))
			prop.Maximum = float64Ptr(float64(f.Bounds.Max))
		}
		if f.Default != nil {
			prop.Default = json.RawMessage(strconv.FormatInt(*f.Default, 10))
		}
		out.Properties[f.Name] = prop
	}
	return out
}

// Operation is one named capability exposed to callers.
type Operation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Schema      Schema `json:"argumentSchema"`
}

var operations = []Operation{
	{
		Name:        ListLogGroups,
		Description: "List CloudWatch log groups, optionally filtered by name prefix",
		Schema: Schema{
			{Name: "prefix", Type: TypeString, Description: "Log group name prefix to filter by"},
			limitField(constants.MaxListLimit, "Maximum number of log groups to return"),
		},
	},
	{
		Name:        ListLogStreams,
		Description: "List log streams in a log group, most recently active first",
		Schema: Schema{
			{Name: "logGroupName", Type: TypeString, Required: true, Description: "Name of the log group"},
			limitField(constants.MaxListLimit, "Maximum number of log streams to return"),
		},
	},
	{
		Name:        GetLogEvents,
		Description: "Get log events from a log stream, optionally within a time window",
		Schema: Schema{
			{Name: "logGroupName", Type: TypeString, Required: true, Description: "Name of the log group"},
			{Name: "logStreamName", Type: TypeString, Required: true, Description: "Name of the log stream"},
			limitField(constants.MaxEventsLimit, "Maximum number of events to return"),
			{Name: "startTime", Type: TypeNumber, Description: "Start of the time window in epoch milliseconds"},
			{Name: "endTime", Type: TypeNumber, Description: "End of the time window in epoch milliseconds"},
		},
	},
}

func limitField(upper int64, description string) Field {
	def := int64(constants.DefaultLimit)
	return Field{
		Name:        "limit",
		Type:        TypeNumber,
		Description: description,
		Default:     &def,
		Bounds:      &Bounds{Min: 1, Max: upper},
	}
}

// Operations returns every operation in catalog order. Callers get their own copy.
func Operations() []Operation {
	out := make([]Operation, len(operations))
	for i, op := range operations {
		out[i] = op.clone()
	}
	return out
}

// Lookup finds an operation by name.
func Lookup(name string) (Operation, bool) {
	for _, op := range operations {
		if op.Name == name {
			return op.clone(), true
		}
	}
	return Operation{}, false
}

func (op Operation) clone() Operation {
	fields := slices.Clone(op.Schema)
	for i, f := range fields {
		if f.Default != nil {
			d := *f.Default
			fields[i].Default = &d
		}
		if f.Bounds != nil {
			b := *f.Bounds
			fields[i].Bounds = &b
		}
	}
	op.Schema = fields
	return op
}

func float64Ptr(v float64) *float64 {
	return &v
}
