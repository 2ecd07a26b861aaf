package api

import (
	"context"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/credor-app/credor/internal/client/models"
)

// ScanHistory fetches the full scan-job history for the current user.
func (c *Client) ScanHistory(ctx context.Context, token string) ([]models.ScanJob, error) {
	var records []scanJobRecord
	if err := c.get(ctx, "/api/user/scan/history", token, &records); err != nil {
		return nil, err
	}

	jobs := make([]models.ScanJob, 0, len(records))
	for _, r := range records {
		jobs = append(jobs, r.toModel())
	}
	return jobs, nil
}

// ScanResults fetches the result set for one job.
func (c *Client) ScanResults(ctx context.Context, token, jobID string) ([]models.ScanResult, error) {
	var records []scanResultRecord
	path := "/api/user/scan/" + url.PathEscape(jobID) + "/results"
	if err := c.get(ctx, path, token, &records); err != nil {
		return nil, err
	}

	results := make([]models.ScanResult, 0, len(records))
	for _, r := range records {
		results = append(results, r.toModel())
	}
	return results, nil
}

// StartScan asks the backend to create a new scan job for the given target
// (a keyword or social handle). The created job shows up in ScanHistory
// after the backend registers it; no job payload is returned here.
func (c *Client) StartScan(ctx context.Context, token, target string) error {
	return c.post(ctx, "/api/user/scan", token, startScanRequest{Target: target}, nil)
}

// UploadMedia posts raw image bytes to the user's media bucket. The content
// type is derived from the file extension of name.
func (c *Client) UploadMedia(ctx context.Context, token, name string, payload []byte) error {
	return c.doRaw(ctx, http.MethodPost, "/api/user/bucket", token, MediaContentType(name), payload, nil)
}

// MediaContentType maps an image file name to its upload content type.
// Unknown extensions fall back to application/octet-stream.
func MediaContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
