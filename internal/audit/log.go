package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
)

// Operation is the kind of action recorded.
type Operation string

const (
	OpEncode Operation = "encode"
	OpDecode Operation = "decode"
)

// Record describes one encode or decode. Payload contents are never stored;
// Digest identifies the produced text (encode) or recovered payload (decode).
type Record struct {
	Timestamp    time.Time `json:"timestamp"`
	ID           string    `json:"id"`
	Operation    Operation `json:"operation"`
	Carrier      string    `json:"carrier"`
	Input        string    `json:"input,omitempty"`
	Output       string    `json:"output,omitempty"`
	PayloadBytes int       `json:"payload_bytes"`
	Symbols      int       `json:"symbols"`
	Keyed        bool      `json:"keyed"`
	Digest       string    `json:"digest"`
}

type AuditLog struct {
	logPath string
}

// DefaultName is the log file name used when no explicit path is configured.
const DefaultName = "audit.jsonl"

// NewAuditLog returns a log writing to path.
func NewAuditLog(path string) *AuditLog {
	return &AuditLog{logPath: path}
}

// Path returns the file the log appends to.
func (a *AuditLog) Path() string { return a.logPath }

// DefaultPath places the log in the given config directory.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, DefaultName)
}

// LoadHistory returns the records, newest first. Reading stops at the first
// malformed line.
func (a *AuditLog) LoadHistory() ([]Record, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []Record
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record Record
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogOp appends record, filling in the timestamp and ID when unset.
func (a *AuditLog) LogOp(record Record) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if record.ID == "" {
		record.ID = fmt.Sprintf("%s_%d", record.Operation, record.Timestamp.Unix())
	}
	if dir := filepath.Dir(a.logPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create audit dir: %w", err)
		}
	}

	// Restrict permissions to owner-only; records name files and carriers
	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// DeleteRecord removes the record at index in LoadHistory order.
func (a *AuditLog) DeleteRecord(index int) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}

	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}

	records = append(records[:index], records[index+1:]...)

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
	}
	return nil
}

// CreateRecord builds a record for an operation. data is the produced stego
// text for encodes and the recovered payload for decodes; only its digest
// is kept.
func CreateRecord(op Operation, carrier, input, output string, payloadBytes, symbols int, keyed bool, data []byte) Record {
	return Record{
		Timestamp:    time.Now(),
		Operation:    op,
		Carrier:      carrier,
		Input:        input,
		Output:       output,
		PayloadBytes: payloadBytes,
		Symbols:      symbols,
		Keyed:        keyed,
		Digest:       Digest(data),
	}
}

// Digest is the hex xxhash64 of b.
func Digest(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}
