package dto

import "time"

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Database  string `json:"database"`
}

// FetchResult reports the outcome of a remote fetch
type FetchResult struct {
	Count       int  `json:"count"`
	CanLoadMore bool `json:"can_load_more"`
}

// UpdateStatusResult reports both phases of an order status update
type UpdateStatusResult struct {
	OptimisticRows int64  `json:"optimistic_rows"`
	RemoteRows     int64  `json:"remote_rows"`
	Status         string `json:"status"`
}

// NotificationsResponse lists cached notifications with the unread count
type NotificationsResponse struct {
	Notifications any   `json:"notifications"`
	Unread        int64 `json:"unread"`
}

// MarkSeenResponse returns the last seen time stored by the server
type MarkSeenResponse struct {
	LastSeenTime int64 `json:"last_seen_time"`
}

// SyncJobResponse describes the background refresh of a site
type SyncJobResponse struct {
	LocalSiteID   int64      `json:"local_site_id"`
	Status        string     `json:"status"`
	Attempts      int        `json:"attempts"`
	LastError     string     `json:"last_error,omitempty"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	NextRunAt     time.Time  `json:"next_run_at"`
}
