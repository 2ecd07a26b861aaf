package scan

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/credor-app/credor/internal/client/models"
	"github.com/credor-app/credor/internal/logging"
)

// ---- fakes ----

type fakeSession struct{ token string }

func (f *fakeSession) Token() string { return f.token }

type fakeAPI struct {
	mu sync.Mutex

	HistoryRet []models.ScanJob
	HistoryErr error
	HistoryFn  func() ([]models.ScanJob, error)

	ResultsRet map[string][]models.ScanResult
	ResultsErr error

	StartErr error

	UploadErr      error
	LastUploadName string
	LastUploadBody []byte

	LastToken    string
	HistoryCalls int
	StartCalls   int
}

func (f *fakeAPI) ScanHistory(ctx context.Context, token string) ([]models.ScanJob, error) {
	f.mu.Lock()
	f.LastToken = token
	f.HistoryCalls++
	fn := f.HistoryFn
	ret, err := f.HistoryRet, f.HistoryErr
	f.mu.Unlock()

	if fn != nil {
		return fn()
	}
	return ret, err
}

func (f *fakeAPI) ScanResults(ctx context.Context, token, jobID string) ([]models.ScanResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ResultsErr != nil {
		return nil, f.ResultsErr
	}
	return f.ResultsRet[jobID], nil
}

func (f *fakeAPI) StartScan(ctx context.Context, token, target string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StartCalls++
	return f.StartErr
}

func (f *fakeAPI) UploadMedia(ctx context.Context, token, name string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUploadName = name
	f.LastUploadBody = payload
	return f.UploadErr
}

func job(id string, status models.JobStatus) models.ScanJob {
	return models.ScanJob{JobID: id, UserID: "u1", Status: status, CreatedAt: time.Now()}
}

func newTestAccessor(f *fakeAPI) *Accessor {
	return NewAccessor(f, &fakeSession{token: "tok"}, logging.NewNopLogger())
}

// ---- partition ----

func TestRefresh_PartitionIsExclusiveAndExhaustive(t *testing.T) {
	f := &fakeAPI{HistoryRet: []models.ScanJob{
		job("p1", models.JobStatusPending),
		job("r1", models.JobStatusRunning),
		job("c1", models.JobStatusCompleted),
		job("c2", models.JobStatusCompleted),
		job("f1", models.JobStatusFailed),
		job("x1", "cancelled"),
	}}
	a := newTestAccessor(f)

	require.NoError(t, a.Refresh(context.Background()))
	require.Equal(t, "tok", f.LastToken)

	pending, running, completed := a.Pending(), a.Running(), a.Completed()
	require.Len(t, pending, 1)
	require.Len(t, running, 1)
	require.Len(t, completed, 2)
	require.Equal(t, "p1", pending[0].JobID)
	require.Equal(t, "r1", running[0].JobID)

	// Jobs outside the three statuses stay in the full set but in no view.
	require.Len(t, a.Jobs(), 6)
	seen := map[string]int{}
	for _, lists := range [][]models.ScanJob{pending, running, completed} {
		for _, j := range lists {
			seen[j.JobID]++
		}
	}
	require.NotContains(t, seen, "f1")
	require.NotContains(t, seen, "x1")
	for id, n := range seen {
		require.Equal(t, 1, n, "job %s must appear in exactly one view", id)
	}
}

func TestRefresh_ReplacesWholesale(t *testing.T) {
	f := &fakeAPI{HistoryRet: []models.ScanJob{job("old", models.JobStatusPending)}}
	a := newTestAccessor(f)
	require.NoError(t, a.Refresh(context.Background()))

	f.mu.Lock()
	f.HistoryRet = []models.ScanJob{job("new", models.JobStatusRunning)}
	f.mu.Unlock()
	require.NoError(t, a.Refresh(context.Background()))

	jobs := a.Jobs()
	require.Len(t, jobs, 1)
	require.Equal(t, "new", jobs[0].JobID)
}

func TestRefresh_FailureLeavesCacheUntouched(t *testing.T) {
	f := &fakeAPI{HistoryRet: []models.ScanJob{job("j1", models.JobStatusPending)}}
	a := newTestAccessor(f)
	require.NoError(t, a.Refresh(context.Background()))

	f.mu.Lock()
	f.HistoryErr = errors.New("boom")
	f.mu.Unlock()

	require.Error(t, a.Refresh(context.Background()))
	require.Len(t, a.Jobs(), 1)
	require.Equal(t, "j1", a.Jobs()[0].JobID)
}

func TestRefresh_StaleResponseIsDiscarded(t *testing.T) {
	f := &fakeAPI{}
	a := newTestAccessor(f)

	release := make(chan struct{})
	started := make(chan struct{})
	f.HistoryFn = func() ([]models.ScanJob, error) {
		close(started)
		<-release
		return []models.ScanJob{job("stale", models.JobStatusPending)}, nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = a.Refresh(context.Background())
	}()
	<-started

	// A second refresh is issued and completes while the first is blocked.
	f.mu.Lock()
	f.HistoryFn = nil
	f.HistoryRet = []models.ScanJob{job("fresh", models.JobStatusPending)}
	f.mu.Unlock()
	require.NoError(t, a.Refresh(context.Background()))

	close(release)
	wg.Wait()

	jobs := a.Jobs()
	require.Len(t, jobs, 1)
	require.Equal(t, "fresh", jobs[0].JobID, "the older in-flight response must not overwrite newer data")
}

// ---- results ----

func TestDetailedInfo_ReplacesResultsWholesale(t *testing.T) {
	f := &fakeAPI{ResultsRet: map[string][]models.ScanResult{
		"j1": {{ResultID: "r1", JobID: "j1", Confidence: 0.5}},
		"j2": {{ResultID: "r2", JobID: "j2", Confidence: -1.0}},
	}}
	a := newTestAccessor(f)

	require.NoError(t, a.DetailedInfo(context.Background(), "j1"))
	require.Len(t, a.Results(), 1)
	require.Equal(t, "r1", a.Results()[0].ResultID)

	require.NoError(t, a.DetailedInfo(context.Background(), "j2"))
	results := a.Results()
	require.Len(t, results, 1)
	require.Equal(t, "r2", results[0].ResultID, "previous job's results are discarded, not merged")
}

func TestDetailedInfo_FailureKeepsPriorResults(t *testing.T) {
	f := &fakeAPI{ResultsRet: map[string][]models.ScanResult{
		"j1": {{ResultID: "r1", JobID: "j1"}},
	}}
	a := newTestAccessor(f)
	require.NoError(t, a.DetailedInfo(context.Background(), "j1"))

	f.mu.Lock()
	f.ResultsErr = errors.New("boom")
	f.mu.Unlock()

	require.Error(t, a.DetailedInfo(context.Background(), "j2"))
	require.Len(t, a.Results(), 1)
}

// ---- start scan ----

func TestStartScan_TriggersRefreshWithNewJob(t *testing.T) {
	f := &fakeAPI{HistoryRet: []models.ScanJob{job("existing", models.JobStatusCompleted)}}
	a := newTestAccessor(f)
	require.NoError(t, a.Refresh(context.Background()))
	before := a.Jobs()

	// The backend registers the job; the follow-up refresh sees it.
	f.mu.Lock()
	f.HistoryRet = append(f.HistoryRet, job("created", models.JobStatusPending))
	f.mu.Unlock()

	require.NoError(t, a.StartScan(context.Background(), "alice_handle"))
	require.Equal(t, 1, f.StartCalls)

	after := a.Jobs()
	require.Len(t, after, len(before)+1)
	require.Equal(t, "created", after[len(after)-1].JobID)
	require.Equal(t, models.JobStatusPending, after[len(after)-1].Status)
}

func TestStartScan_FailureDoesNotRefresh(t *testing.T) {
	f := &fakeAPI{StartErr: errors.New("boom")}
	a := newTestAccessor(f)

	require.Error(t, a.StartScan(context.Background(), "x"))
	require.Zero(t, f.HistoryCalls)
}

// ---- upload ----

func TestUploadMedia_ReadsFileAndPosts(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/face.png"
	require.NoError(t, writeFile(path, []byte{9, 8, 7}))

	f := &fakeAPI{}
	a := newTestAccessor(f)

	require.NoError(t, a.UploadMedia(context.Background(), path))
	require.Equal(t, "face.png", f.LastUploadName)
	require.Equal(t, []byte{9, 8, 7}, f.LastUploadBody)
}

func writeFile(path string, b []byte) error {
	return os.WriteFile(path, b, 0o600)
}

func TestUploadMedia_MissingFile(t *testing.T) {
	f := &fakeAPI{}
	a := newTestAccessor(f)

	require.Error(t, a.UploadMedia(context.Background(), t.TempDir()+"/nope.png"))
}
