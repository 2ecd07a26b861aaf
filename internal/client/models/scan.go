// Package models holds the client-side shapes of server-owned resources:
// scan jobs and results, the user profile, and cached news articles.
package models

import (
	"fmt"
	"time"
)

// JobStatus is the server-reported lifecycle state of a scan job. The client
// only observes transitions, it never drives them.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// ScanJob is one server-tracked impersonation scan.
type ScanJob struct {
	JobID     string
	UserID    string
	Status    JobStatus
	CreatedAt time.Time
}

// ScanResult is one matched media item produced by a scan job.
//
// Confidence is a probability in [0,1] except for the sentinel -1.0, which
// the backend emits for a certain match. Preserved as-is; see
// FormatConfidence for the display contract.
type ScanResult struct {
	ResultID   string
	JobID      string
	Confidence float64
	Label      string
	DetectedAt time.Time
	MediaURL   string
	PostURL    string
}

// ConfidenceCertain is the backend's sentinel for a certain match.
const ConfidenceCertain = -1.0

// FormatConfidence renders a result confidence for display: the -1.0
// sentinel becomes "100%", anything else is value*100 at two decimals.
func FormatConfidence(v float64) string {
	if v == ConfidenceCertain {
		return "100%"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}
