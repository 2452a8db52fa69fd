// Package synopsis holds the bid synopsis a user prepares for a tender.
package synopsis

import (
	"encoding/json"
	"fmt"
	"time"
)

// MaxContentSize is the maximum synopsis payload size in bytes.
const MaxContentSize = 262144 // 256KB

// Synopsis is an opaque JSON payload owned by the web client, stamped on save.
type Synopsis struct {
	TenderID  string
	Content   json.RawMessage
	Timestamp time.Time
}

// New validates the payload and stamps it with the save time.
func New(tenderID string, content []byte, now time.Time) (Synopsis, error) {
	if tenderID == "" {
		return Synopsis{}, fmt.Errorf("tender ID is required")
	}
	if len(content) == 0 {
		return Synopsis{}, fmt.Errorf("synopsis content is required")
	}
	if len(content) > MaxContentSize {
		return Synopsis{}, fmt.Errorf("synopsis too large (max %d bytes)", MaxContentSize)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(content, &obj); err != nil {
		return Synopsis{}, fmt.Errorf("synopsis must be a JSON object: %w", err)
	}
	c := make(json.RawMessage, len(content))
	copy(c, content)
	return Synopsis{TenderID: tenderID, Content: c, Timestamp: now.UTC()}, nil
}

// MarshalJSON renders the payload with the save time merged in as "timestamp" (RFC 3339).
func (s Synopsis) MarshalJSON() ([]byte, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(s.Content, &obj); err != nil {
		return nil, fmt.Errorf("decode synopsis content: %w", err)
	}
	if obj == nil {
		obj = make(map[string]json.RawMessage, 1)
	}
	ts, err := json.Marshal(s.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	obj["timestamp"] = ts
	return json.Marshal(obj)
}
