package storage

import "time"

// Snapshot is one key/value slot. Payload is opaque to this package.
type Snapshot struct {
	Key       string
	Payload   []byte
	UpdatedAt time.Time
}

type Completion struct {
	ID          string
	TimerKey    string
	Mode        string
	DurationSec int
	CompletedAt time.Time
}

type SnapshotListFilter struct {
	Limit  int
	Offset int
}

type CompletionListFilter struct {
	TimerKey string
	Mode     string
	Since    *time.Time
	Limit    int
	Offset   int
}
