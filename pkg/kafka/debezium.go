package kafka

import (
	"encoding/json"
	"time"
)

// DebeziumEnvelope is the standard Debezium CDC message format
type DebeziumEnvelope struct {
	Schema  json.RawMessage `json:"schema,omitempty"`
	Payload DebeziumPayload `json:"payload"`
}

// DebeziumPayload contains the before/after state of a row
type DebeziumPayload struct {
	Before json.RawMessage `json:"before"`
	After  json.RawMessage `json:"after"`
	Source DebeziumSource  `json:"source"`
	Op     string          `json:"op"` // c=create, u=update, d=delete, r=read (snapshot)
	TsMs   int64           `json:"ts_ms"`
}

// DebeziumSource contains metadata about the source of the change
type DebeziumSource struct {
	Version   string `json:"version"`
	Connector string `json:"connector"`
	Name      string `json:"name"`
	TsMs      int64  `json:"ts_ms"`
	Snapshot  string `json:"snapshot,omitempty"`
	Db        string `json:"db"`
	Schema    string `json:"schema"`
	Table     string `json:"table"`
}

// IsCreate returns true if this is a create operation
func (p *DebeziumPayload) IsCreate() bool {
	return p.Op == "c" || p.Op == "r"
}

// IsUpdate returns true if this is an update operation
func (p *DebeziumPayload) IsUpdate() bool {
	return p.Op == "u"
}

// IsDelete returns true if this is a delete operation
func (p *DebeziumPayload) IsDelete() bool {
	return p.Op == "d"
}

// Timestamp returns the event timestamp
func (p *DebeziumPayload) Timestamp() time.Time {
	return time.UnixMilli(p.TsMs)
}

// RecordID extracts the row's primary key from the after image, falling back
// to the before image for deletes.
func (p *DebeziumPayload) RecordID() string {
	type row struct {
		ID string `json:"id"`
	}

	var r row
	if len(p.After) > 0 && string(p.After) != "null" {
		if err := json.Unmarshal(p.After, &r); err == nil && r.ID != "" {
			return r.ID
		}
	}
	if len(p.Before) > 0 && string(p.Before) != "null" {
		if err := json.Unmarshal(p.Before, &r); err == nil {
			return r.ID
		}
	}
	return ""
}

// ParseDebeziumMessage parses a raw Kafka message as a Debezium envelope
func ParseDebeziumMessage(data []byte) (*DebeziumEnvelope, error) {
	var envelope DebeziumEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}
