package workflow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend 模拟执行后端：POST 建执行，GET 按预设序列吐状态
type fakeBackend struct {
	statuses []pollResponse
	polls    atomic.Int64
}

func (f *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/executions":
			_ = json.NewEncoder(w).Encode(startResponse{ExecutionID: "exec-1"})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/executions/"):
			n := f.polls.Add(1)
			res := f.statuses[len(f.statuses)-1]
			if int(n) <= len(f.statuses) {
				res = f.statuses[n-1]
			}
			_ = json.NewEncoder(w).Encode(res)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newTestClient(target string, interval, timeout time.Duration) *Client {
	return NewClient(Config{
		Targets:      map[string]string{"IDOL_MULTIMODAL": target},
		PollInterval: interval,
		Timeout:      timeout,
	}, time.Second)
}

func TestStartUnknownWorkflow(t *testing.T) {
	client := newTestClient("http://localhost:0", time.Second, time.Second)

	_, err := client.Start(context.Background(), "NO_SUCH_FLOW", nil, "")
	assert.ErrorIs(t, err, ErrUnknownWorkflow)
}

func TestExecuteRunsToCompletion(t *testing.T) {
	backend := &fakeBackend{statuses: []pollResponse{
		{Status: StatusRunning},
		{Status: StatusRunning},
		{Status: StatusRunning},
		{Status: StatusSucceeded, Output: `{"idol_reply":"Thanks!"}`},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := newTestClient(srv.URL, 10*time.Millisecond, time.Second)

	result, err := client.Execute(context.Background(), "IDOL_MULTIMODAL", map[string]any{"request_type": "REPLY_SUGGESTION"})
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, result.Status)
	assert.Equal(t, "Thanks!", result.Output["idol_reply"])
	assert.EqualValues(t, 4, backend.polls.Load())
}

// 后端停在 RUNNING 时必须在 [timeout, timeout+interval) 内放弃
func TestWaitForCompletionTimeout(t *testing.T) {
	backend := &fakeBackend{statuses: []pollResponse{{Status: StatusRunning}}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	interval := 50 * time.Millisecond
	timeout := 200 * time.Millisecond
	client := newTestClient(srv.URL, interval, timeout)

	exec, err := client.Start(context.Background(), "IDOL_MULTIMODAL", nil, "")
	require.NoError(t, err)

	begin := time.Now()
	_, err = client.WaitForCompletion(context.Background(), exec, interval, timeout)
	elapsed := time.Since(begin)

	assert.ErrorIs(t, err, ErrExecutionTimeout)
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, timeout+interval+50*time.Millisecond)
}

// 后端自身的 TIMED_OUT 终态是正常结果，不是 ErrExecutionTimeout
func TestPollBackendTimedOut(t *testing.T) {
	backend := &fakeBackend{statuses: []pollResponse{{Status: StatusTimedOut}}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := newTestClient(srv.URL, 10*time.Millisecond, time.Second)

	result, err := client.Execute(context.Background(), "IDOL_MULTIMODAL", nil)
	require.NoError(t, err)
	assert.Equal(t, StatusTimedOut, result.Status)
}

func TestPollParseFailureKeepsRawOutput(t *testing.T) {
	backend := &fakeBackend{statuses: []pollResponse{{Status: StatusSucceeded, Output: "not-json"}}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := newTestClient(srv.URL, 10*time.Millisecond, time.Second)

	result, err := client.Execute(context.Background(), "IDOL_MULTIMODAL", nil)
	require.NoError(t, err)
	assert.Equal(t, "not-json", result.RawOutput)
	assert.Nil(t, result.Output)
}

func TestWaitForCompletionCallerCancel(t *testing.T) {
	backend := &fakeBackend{statuses: []pollResponse{{Status: StatusRunning}}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := newTestClient(srv.URL, 20*time.Millisecond, time.Second)

	exec, err := client.Start(context.Background(), "IDOL_MULTIMODAL", nil, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err = client.WaitForCompletion(ctx, exec, 20*time.Millisecond, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
