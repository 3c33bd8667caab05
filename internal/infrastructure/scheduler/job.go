package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// maxBackoff caps the delay between retries of a failing site
const maxBackoff = 30 * time.Minute

// SyncJobStatus represents the status of a site refresh
type SyncJobStatus string

const (
	SyncJobStatusPending SyncJobStatus = "PENDING"
	SyncJobStatusRunning SyncJobStatus = "RUNNING"
	SyncJobStatusSuccess SyncJobStatus = "SUCCESS"
	SyncJobStatusFailed  SyncJobStatus = "FAILED"
)

// SyncJob tracks the background refresh of one site
type SyncJob struct {
	ID            uuid.UUID     `json:"id"`
	LocalSiteID   int64         `json:"local_site_id"`
	Status        SyncJobStatus `json:"status"`
	Attempts      int           `json:"attempts"`
	MaxRetries    int           `json:"max_retries"`
	LastError     string        `json:"last_error,omitempty"`
	LastRunAt     *time.Time    `json:"last_run_at,omitempty"`
	LastSuccessAt *time.Time    `json:"last_success_at,omitempty"`
	NextRunAt     time.Time     `json:"next_run_at"`
}

// NewSyncJob creates a job due immediately
func NewSyncJob(localSiteID int64, maxRetries int, now time.Time) *SyncJob {
	return &SyncJob{
		ID:          uuid.New(),
		LocalSiteID: localSiteID,
		Status:      SyncJobStatusPending,
		MaxRetries:  maxRetries,
		NextRunAt:   now,
	}
}

// IsDue reports whether the job should run at now
func (j *SyncJob) IsDue(now time.Time) bool {
	return j.Status != SyncJobStatusRunning && !now.Before(j.NextRunAt)
}

// Start marks the job as running
func (j *SyncJob) Start(now time.Time) {
	j.Status = SyncJobStatusRunning
	j.LastRunAt = &now
}

// Complete marks the job as successful and schedules the next regular run
func (j *SyncJob) Complete(now time.Time, interval time.Duration) {
	j.Status = SyncJobStatusSuccess
	j.Attempts = 0
	j.LastError = ""
	j.LastSuccessAt = &now
	j.NextRunAt = now.Add(interval)
}

// Fail records err and schedules a retry with exponential backoff. Once
// MaxRetries retries have failed the job waits for the next regular run.
func (j *SyncJob) Fail(now time.Time, err error, baseDelay, interval time.Duration) {
	j.Status = SyncJobStatusFailed
	j.LastError = err.Error()
	j.Attempts++
	if j.Attempts > j.MaxRetries {
		j.Attempts = 0
		j.NextRunAt = now.Add(interval)
		return
	}
	j.NextRunAt = now.Add(Backoff(baseDelay, j.Attempts))
}

// Backoff returns baseDelay * 2^(attempt-1), capped at 30 minutes
func Backoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	if delay > maxBackoff {
		return maxBackoff
	}
	return delay
}
