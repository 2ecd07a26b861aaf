package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/credor-app/credor/internal/client/models"
	"github.com/credor-app/credor/internal/common"
)

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/user/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@b.com", body["email"])
		require.Equal(t, "pw", body["password"])

		io.WriteString(w, `{"access_token":"tok123","user":{"user_metadata":{"name":"Alice"}}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	payload, err := c.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok123", payload.Token)
	require.Equal(t, "Alice", payload.Name)
}

func TestLogin_ServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"invalid_credentials"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "a@b.com", "badpass")
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, CodeInvalidCredentials, apiErr.Code)
	require.Contains(t, apiErr.Body, "invalid_credentials")
	require.True(t, apiErr.IsUnauthorized())
}

func TestLogin_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, WithTimeout(time.Second))
	_, err := c.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	require.ErrorIs(t, err, common.ErrUnavailable)

	_, ok := AsAPIError(err)
	require.False(t, ok, "transport failure must not look like a server rejection")
}

func TestRegister_UsesSubmittedName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user/register", r.URL.Path)
		io.WriteString(w, `{"access_token":"tok456"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	payload, err := c.Register(context.Background(), "Bob", 30, "male", "bob@b.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok456", payload.Token)
	require.Equal(t, "Bob", payload.Name)
}

func TestCheckEmailTaken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/email", r.URL.Path)
		require.Equal(t, "x+y@b.com", r.URL.Query().Get("email"))
		io.WriteString(w, `{"taken":true}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	taken, err := c.CheckEmailTaken(context.Background(), "x+y@b.com")
	require.NoError(t, err)
	require.True(t, taken)
}

func TestScanHistory_MapsRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user/scan/history", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		io.WriteString(w, `[
			{"job_id":"j1","user_id":"u1","status":"pending","created_at":"2026-08-01T10:00:00Z"},
			{"job_id":"j2","user_id":"u1","status":"completed","created_at":"not-a-time"}
		]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	jobs, err := c.ScanHistory(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	require.Equal(t, "j1", jobs[0].JobID)
	require.Equal(t, models.JobStatusPending, jobs[0].Status)
	require.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), jobs[0].CreatedAt)

	require.Equal(t, models.JobStatusCompleted, jobs[1].Status)
	require.True(t, jobs[1].CreatedAt.IsZero(), "malformed timestamp degrades to zero time")
}

func TestScanResults_PreservesSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user/scan/j1/results", r.URL.Path)
		io.WriteString(w, `[
			{"result_id":"r1","job_id":"j1","confidence":-1.0,"label":"match","detected_at":"2026-08-02T11:00:00Z","media_url":"m","post_url":"p"}
		]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	results, err := c.ScanResults(context.Background(), "tok", "j1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, -1.0, results[0].Confidence)
	require.Equal(t, "match", results[0].Label)
}

func TestUpdateProfile_SerializesNulls(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		captured, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	name := "Alice"
	c := NewClient(srv.URL)
	err := c.UpdateProfile(context.Background(), "tok", UpdateProfileRequest{Name: &name})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(captured, &body))
	require.Equal(t, "Alice", body["name"])
	for _, k := range []string{"email", "password", "age"} {
		v, present := body[k]
		require.True(t, present, "field %q must travel as an explicit null", k)
		require.Nil(t, v)
	}
}

func TestUploadMedia_ContentTypeAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user/bucket", r.URL.Path)
		require.Equal(t, "image/png", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.Equal(t, []byte{1, 2, 3}, body)
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.UploadMedia(context.Background(), "tok", "face.png", []byte{1, 2, 3}))
}

func TestMediaContentType(t *testing.T) {
	require.Equal(t, "image/png", MediaContentType("a.PNG"))
	require.Equal(t, "image/jpeg", MediaContentType("a.jpg"))
	require.Equal(t, "image/jpeg", MediaContentType("a.jpeg"))
	require.Equal(t, "application/octet-stream", MediaContentType("a.gif"))
	require.Equal(t, "application/octet-stream", MediaContentType("noext"))
}

func TestParseError_FallsBackToRawBody(t *testing.T) {
	err := parseError(http.StatusInternalServerError, []byte("boom"))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Empty(t, apiErr.Code)
	require.Equal(t, "boom", apiErr.Body)
	require.Contains(t, apiErr.Error(), "boom")
}
