// Package scan is the scan-job accessor: the cached job history, its
// status-derived views, per-job result sets, and the operations that start
// scans and upload capture media.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"sync"

	"github.com/credor-app/credor/internal/client/models"
	"github.com/credor-app/credor/internal/logging"
)

// APIClient is the slice of the backend API this accessor needs.
type APIClient interface {
	ScanHistory(ctx context.Context, token string) ([]models.ScanJob, error)
	ScanResults(ctx context.Context, token, jobID string) ([]models.ScanResult, error)
	StartScan(ctx context.Context, token, target string) error
	UploadMedia(ctx context.Context, token, name string, payload []byte) error
}

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() string
}

// Accessor caches the job history and the result set of the most recently
// inspected job. Both caches are replaced wholesale on fetch, never merged.
//
// Concurrent refreshes are resolved with a per-cache generation counter:
// a response belonging to anything but the latest issued request is
// discarded, so an out-of-order arrival cannot overwrite newer data.
type Accessor struct {
	api     APIClient
	session TokenSource
	log     logging.Logger

	mu         sync.Mutex
	jobs       []models.ScanJob
	results    []models.ScanResult
	jobsGen    uint64
	resultsGen uint64
}

func NewAccessor(apiClient APIClient, session TokenSource, log logging.Logger) *Accessor {
	return &Accessor{api: apiClient, session: session, log: log}
}

// Refresh replaces the cached job history in full. On failure the existing
// cache is left untouched; there are no retries.
func (a *Accessor) Refresh(ctx context.Context) error {
	a.mu.Lock()
	a.jobsGen++
	gen := a.jobsGen
	a.mu.Unlock()

	jobs, err := a.api.ScanHistory(ctx, a.session.Token())
	if err != nil {
		a.log.Warn(ctx, "scan history refresh failed", "error", err)
		return fmt.Errorf("failed to fetch scan history: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.jobsGen {
		a.log.Debug(ctx, "discarding stale scan history response")
		return nil
	}
	a.jobs = jobs
	return nil
}

// DetailedInfo fetches the result set for one job, discarding whatever
// results were cached for a previously inspected job.
func (a *Accessor) DetailedInfo(ctx context.Context, jobID string) error {
	a.mu.Lock()
	a.resultsGen++
	gen := a.resultsGen
	a.mu.Unlock()

	results, err := a.api.ScanResults(ctx, a.session.Token(), jobID)
	if err != nil {
		a.log.Warn(ctx, "scan results fetch failed", "job_id", jobID, "error", err)
		return fmt.Errorf("failed to fetch scan results: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.resultsGen {
		a.log.Debug(ctx, "discarding stale scan results response")
		return nil
	}
	a.results = results
	return nil
}

// StartScan creates a new scan job for target and immediately refreshes the
// history so the job becomes visible. No optimistic local job is
// synthesized; until the refresh lands the list is unchanged.
func (a *Accessor) StartScan(ctx context.Context, target string) error {
	if err := a.api.StartScan(ctx, a.session.Token(), target); err != nil {
		a.log.Warn(ctx, "start scan failed", "target", target, "error", err)
		return fmt.Errorf("failed to start scan: %w", err)
	}
	return a.Refresh(ctx)
}

// UploadMedia reads an image file and posts its raw bytes to the user's
// media bucket for facial matching.
func (a *Accessor) UploadMedia(ctx context.Context, path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read media file: %w", err)
	}

	if err := a.api.UploadMedia(ctx, a.session.Token(), filepath.Base(path), payload); err != nil {
		a.log.Warn(ctx, "media upload failed", "path", path, "error", err)
		return fmt.Errorf("failed to upload media: %w", err)
	}
	return nil
}

// Jobs returns the full cached history, including jobs whose status falls
// outside the three derived views.
func (a *Accessor) Jobs() []models.ScanJob {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.ScanJob, len(a.jobs))
	copy(out, a.jobs)
	return out
}

// Pending returns the jobs with status pending.
func (a *Accessor) Pending() []models.ScanJob {
	return a.filter(models.JobStatusPending)
}

// Running returns the jobs with status running.
func (a *Accessor) Running() []models.ScanJob {
	return a.filter(models.JobStatusRunning)
}

// Completed returns the jobs with status completed.
func (a *Accessor) Completed() []models.ScanJob {
	return a.filter(models.JobStatusCompleted)
}

// Results returns the cached result set of the last DetailedInfo call.
func (a *Accessor) Results() []models.ScanResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.ScanResult, len(a.results))
	copy(out, a.results)
	return out
}

func (a *Accessor) filter(status models.JobStatus) []models.ScanJob {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]models.ScanJob, 0, len(a.jobs))
	for _, job := range a.jobs {
		if job.Status == status {
			out = append(out, job)
		}
	}
	return out
}
