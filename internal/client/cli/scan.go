package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/credor-app/credor/internal/client/models"
)

// ListScans refreshes the job history and prints it partitioned by status.
func (a *App) ListScans(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first")
		return nil
	}

	if err := a.scan.Refresh(ctx); err != nil {
		printlnFn("Could not refresh scan history: " + err.Error())
		return err
	}

	printJobs("Pending", a.scan.Pending())
	printJobs("Running", a.scan.Running())
	printJobs("Completed", a.scan.Completed())
	return nil
}

// ShowResults fetches and prints the result set of one job.
func (a *App) ShowResults(ctx context.Context, jobID string) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first")
		return nil
	}

	if err := a.scan.DetailedInfo(ctx, jobID); err != nil {
		printlnFn("Could not fetch results: " + err.Error())
		return err
	}

	results := a.scan.Results()
	if len(results) == 0 {
		printlnFn("No results for this job")
		return nil
	}

	for _, r := range results {
		printlnFn(fmt.Sprintf("%s  %s  confidence %s", r.Label, r.DetectedAt.Format("2006-01-02 15:04"), models.FormatConfidence(r.Confidence)))
		if r.PostURL != "" {
			printlnFn("  " + r.PostURL)
		}
	}
	return nil
}

// StartScan prompts for a target keyword or handle and starts a scan. The
// new job shows up in the listing once the follow-up refresh completes.
func (a *App) StartScan(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first")
		return nil
	}

	target, err := GetSimpleText(a.reader, "Target (keyword or handle)", os.Stdout)
	if err != nil {
		return err
	}
	if target == "" {
		printlnFn("A target is required")
		return nil
	}

	if err := a.scan.StartScan(ctx, target); err != nil {
		printlnFn("Could not start scan: " + err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Scan started; %d jobs on record", len(a.scan.Jobs())))
	return nil
}

// UploadMedia posts a local image for facial matching.
func (a *App) UploadMedia(ctx context.Context, path string) error {
	if !a.isLoggedIn() {
		printlnFn("Sign in first")
		return nil
	}

	if err := a.scan.UploadMedia(ctx, path); err != nil {
		printlnFn("Upload failed: " + err.Error())
		return err
	}

	printlnFn("Image uploaded")
	return nil
}

func printJobs(header string, jobs []models.ScanJob) {
	printlnFn(fmt.Sprintf("%s (%d):", header, len(jobs)))
	for _, j := range jobs {
		printlnFn(fmt.Sprintf("  %s  %s", j.JobID, j.CreatedAt.Format("2006-01-02 15:04")))
	}
}
