package format

// Format identifies the wire representation of a value in the PostgreSQL
// frontend/backend protocol. The numeric values match the protocol's
// format codes as transmitted in Bind and RowDescription messages.
type Format int16

const (
	Text   Format = 0 // Text represents the human-readable text format.
	Binary Format = 1 // Binary represents the fixed-layout binary format.
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}
