package types

// Severity is a coarse-grained confidence level for a finding.
type Severity string

const (
	// SevLow marks stray carrier symbols that do not form a frame header.
	SevLow Severity = "low"
	// SevMed marks a readable length prefix whose payload is cut short.
	SevMed Severity = "medium"
	// SevHigh marks a complete frame.
	SevHigh Severity = "high"
)

// Finding describes carrier symbols detected in a file: which carrier saw
// them, how many bits they carry and whether they form a complete frame.
type Finding struct {
	Path     string   `json:"path"`
	Carrier  string   `json:"carrier"`
	Bits     int      `json:"bits"`
	Declared int      `json:"declared"` // Length prefix in bytes (-1 if unreadable)
	Complete bool     `json:"complete"`
	Severity Severity `json:"severity"`
	Digest   string   `json:"digest,omitempty"` // xxhash of the file contents
	Size     int64    `json:"size,omitempty"`
}
