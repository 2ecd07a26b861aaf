package api

import (
	"time"

	"github.com/credor-app/credor/internal/client/models"
)

// AuthPayload is what a successful login or registration yields: the issued
// bearer token plus the display name to cache alongside it.
type AuthPayload struct {
	Token string
	Name  string
}

// Wire shapes. Field names follow the backend exactly; mapping to the
// models package happens at the API boundary and nowhere else.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		UserMetadata struct {
			Name string `json:"name"`
		} `json:"user_metadata"`
	} `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	AccessToken string `json:"access_token"`
	Name        string `json:"name"`
}

type profileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// UpdateProfileRequest is a partial update: nil means "unchanged". All four
// fields are serialized, nulls included, which is what the backend expects.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Age      *int    `json:"age"`
}

type emailCheckResponse struct {
	Taken bool `json:"taken"`
}

type scanJobRecord struct {
	JobID     string `json:"job_id"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type scanResultRecord struct {
	ResultID   string  `json:"result_id"`
	JobID      string  `json:"job_id"`
	Confidence float64 `json:"confidence"`
	Label      string  `json:"label"`
	DetectedAt string  `json:"detected_at"`
	MediaURL   string  `json:"media_url"`
	PostURL    string  `json:"post_url"`
}

type startScanRequest struct {
	Target string `json:"target"`
}

func (r scanJobRecord) toModel() models.ScanJob {
	return models.ScanJob{
		JobID:     r.JobID,
		UserID:    r.UserID,
		Status:    models.JobStatus(r.Status),
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
}

func (r scanResultRecord) toModel() models.ScanResult {
	return models.ScanResult{
		ResultID:   r.ResultID,
		JobID:      r.JobID,
		Confidence: r.Confidence,
		Label:      r.Label,
		DetectedAt: parseTimestamp(r.DetectedAt),
		MediaURL:   r.MediaURL,
		PostURL:    r.PostURL,
	}
}

// parseTimestamp is deliberately lenient: a malformed server timestamp
// degrades to the zero time instead of failing the whole fetch.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
