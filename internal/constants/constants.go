package constants

const (
	// ServerName identifies the adapter to MCP clients.
	ServerName = "cwlogs-mcp"
	// ServerVersion is reported in the MCP initialize handshake.
	ServerVersion = "0.1.0"
)

// DefaultLimit is used when a caller omits the limit argument.
const DefaultLimit = 10

const (
	// MaxListLimit bounds limit for group and stream listings.
	MaxListLimit = 50
	// MaxEventsLimit bounds limit for event fetches.
	MaxEventsLimit = 100
)
