package model

import "time"

// EntityKind identifies which kind of internal record a sync operation targets.
type EntityKind string

const (
	KindUser       EntityKind = "user"
	KindRSVP       EntityKind = "rsvp"
	KindConnection EntityKind = "connection"
)

// ExportKinds lists every kind the export engine can push to Smartsheet.
var ExportKinds = []EntityKind{KindUser, KindRSVP, KindConnection}

type SyncDirection string

const (
	DirectionUpload   SyncDirection = "upload"
	DirectionDownload SyncDirection = "download"
)

type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSuccess SyncStatus = "success"
	SyncFailed  SyncStatus = "failed"
)

// SyncRecord is one append-only log entry per sync attempt. Records are never
// mutated after insert; the current state of an entity is the most recent
// record for its (kind, entity id) pair.
type SyncRecord struct {
	ID             string        `json:"id"`
	EntityKind     EntityKind    `json:"entity_kind"`
	EntityID       string        `json:"entity_id"`
	Direction      SyncDirection `json:"direction"`
	Status         SyncStatus    `json:"status"`
	RowID          *int64        `json:"row_id,omitempty"`
	ErrorDetail    string        `json:"error_detail,omitempty"`
	RetryCount     int           `json:"retry_count"`
	ProcessedCount int           `json:"processed_count"`
	TotalCount     int           `json:"total_count"`
	StartedAt      time.Time     `json:"started_at"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
}

// SyncResult is the uniform outcome of one single-entity export. It is always
// returned, never thrown: batch callers must be able to keep going.
type SyncResult struct {
	Success    bool       `json:"success"`
	EntityKind EntityKind `json:"entity_kind"`
	EntityID   string     `json:"entity_id"`
	RowID      *int64     `json:"row_id,omitempty"`
	Error      string     `json:"error,omitempty"`
}

type BatchSyncResult struct {
	Total      int          `json:"total"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Errors     []SyncResult `json:"errors,omitempty"`
}

// SyncCounts groups an entity kind's sync records by the latest status per
// entity, plus the timestamp of the most recent successful sync.
type SyncCounts struct {
	Synced   int        `json:"synced"`
	Pending  int        `json:"pending"`
	Failed   int        `json:"failed"`
	LastSync *time.Time `json:"last_sync,omitempty"`
}

type KindStatus struct {
	Total    int        `json:"total"`
	Synced   int        `json:"synced"`
	Pending  int        `json:"pending"`
	Failed   int        `json:"failed"`
	LastSync *time.Time `json:"last_sync,omitempty"`
}
