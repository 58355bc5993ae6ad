package models

import "time"

// SyncStatus is the transient indicator of the reconciliation loop. No
// history is kept; the last value wins.
type SyncStatus string

const (
	SyncOffline SyncStatus = "offline"
	SyncSyncing SyncStatus = "syncing"
	SyncSynced  SyncStatus = "synced"
	// SyncError marks persistent misconfiguration, distinct from a transient
	// network outage.
	SyncError SyncStatus = "error"
)

// SyncState is the snapshot served by the sync status endpoint.
type SyncState struct {
	Status       SyncStatus `json:"status"`
	Provider     string     `json:"provider"`
	Configured   bool       `json:"configured"`
	LastError    string     `json:"last_error,omitempty"`
	LastPushedAt *time.Time `json:"last_pushed_at,omitempty"`
	LastPulledAt *time.Time `json:"last_pulled_at,omitempty"`
}
