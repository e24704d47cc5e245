package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

// CacheRecord is the single persisted fetch result.
// Timestamp is serialized as epoch milliseconds.
type CacheRecord struct {
	Data      Payload
	Timestamp time.Time
}

type cacheRecordJSON struct {
	Data      Payload `json:"data"`
	Timestamp int64   `json:"timestamp"`
}

// MarshalJSON encodes the record as {"data": ..., "timestamp": <epoch ms>}.
func (r CacheRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(cacheRecordJSON{
		Data:      r.Data,
		Timestamp: r.Timestamp.UnixMilli(),
	})
}

// UnmarshalJSON decodes the epoch-millisecond record format.
func (r *CacheRecord) UnmarshalJSON(b []byte) error {
	var raw cacheRecordJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decoding cache record: %w", err)
	}
	r.Data = raw.Data
	r.Timestamp = time.UnixMilli(raw.Timestamp).UTC()
	return nil
}

// Age returns how old the record is at now.
func (r CacheRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.Timestamp)
}
