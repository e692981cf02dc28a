package workflow

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	pkgerrors "github.com/pkg/errors"
)

// 执行状态，RUNNING 之外均为终态
const (
	StatusRunning   = "RUNNING"
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusTimedOut  = "TIMED_OUT"
	StatusAborted   = "ABORTED"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultTimeout      = 5 * time.Minute
)

var (
	// ErrUnknownWorkflow 逻辑名未在配置中映射，属于部署期配置错误
	ErrUnknownWorkflow = errors.New("workflow: unknown workflow name")
	// ErrExecutionTimeout 客户端放弃等待
	// 与后端自身的 TIMED_OUT 终态是两回事，后者会作为正常结果返回
	ErrExecutionTimeout = errors.New("workflow: execution wait timed out")
)

// Config 注入式配置：逻辑名到执行端点的映射与轮询参数
type Config struct {
	Targets      map[string]string
	PollInterval time.Duration
	Timeout      time.Duration
}

// Execution 一次执行的不透明句柄
type Execution struct {
	Workflow string
	ID       string

	target string
}

// Result 单次状态检查的结果
// Output 是对 RawOutput 的尽力解析，解析失败时为 nil 但 RawOutput 仍然保留
type Result struct {
	Status    string
	RawOutput string
	Output    map[string]any
}

// Terminal 是否已到终态
func (r *Result) Terminal() bool {
	return r.Status != StatusRunning && r.Status != ""
}

// Client 外部工作流执行网关
type Client struct {
	http *resty.Client
	cfg  Config
}

func NewClient(cfg Config, requestTimeout time.Duration) *Client {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if requestTimeout <= 0 {
		requestTimeout = 15 * time.Second
	}

	return &Client{
		http: resty.New().SetTimeout(requestTimeout),
		cfg:  cfg,
	}
}

type startRequest struct {
	Name  string `json:"name,omitempty"`
	Input any    `json:"input"`
}

type startResponse struct {
	ExecutionID string `json:"executionId"`
}

type pollResponse struct {
	Status string `json:"status"`
	Output string `json:"output,omitempty"`
}

// Start 发起执行并立刻返回句柄，不等待完成
func (c *Client) Start(ctx context.Context, name string, input any, executionName string) (*Execution, error) {
	target, ok := c.cfg.Targets[name]
	if !ok {
		return nil, pkgerrors.Wrapf(ErrUnknownWorkflow, "name=%s", name)
	}

	var res startResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(startRequest{Name: executionName, Input: input}).
		SetResult(&res).
		Post(target + "/executions")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "start workflow %s", name)
	}
	if resp.IsError() {
		return nil, pkgerrors.Errorf("start workflow %s: backend returned %s", name, resp.Status())
	}
	if res.ExecutionID == "" {
		return nil, pkgerrors.Errorf("start workflow %s: backend returned no execution id", name)
	}

	log.InfoContext(ctx, "workflow execution started", "workflow", name, "execution_id", res.ExecutionID)
	return &Execution{Workflow: name, ID: res.ExecutionID, target: target}, nil
}

// Poll 单次状态检查
func (c *Client) Poll(ctx context.Context, exec *Execution) (*Result, error) {
	var res pollResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&res).
		Get(fmt.Sprintf("%s/executions/%s", exec.target, exec.ID))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "poll workflow %s execution %s", exec.Workflow, exec.ID)
	}
	if resp.IsError() {
		return nil, pkgerrors.Errorf("poll workflow %s execution %s: backend returned %s", exec.Workflow, exec.ID, resp.Status())
	}

	result := &Result{Status: res.Status}
	if result.Terminal() {
		result.RawOutput = res.Output
		result.Output = parseOutput(res.Output)
	}
	return result, nil
}

// WaitForCompletion 固定间隔轮询直至离开 RUNNING 或超出 timeout
// 定时器绑定 context，caller 取消时等待随之结束，不占用阻塞线程
func (c *Client) WaitForCompletion(ctx context.Context, exec *Execution, interval, timeout time.Duration) (*Result, error) {
	if interval <= 0 {
		interval = c.cfg.PollInterval
	}
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := c.Poll(waitCtx, exec)
		if err == nil && res.Terminal() {
			return res, nil
		}
		if err != nil {
			// 单次查询失败不终止等待，超时兜底
			log.WarnContext(ctx, "workflow poll failed", "workflow", exec.Workflow, "execution_id", exec.ID, "err", err)
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, pkgerrors.Wrapf(ErrExecutionTimeout, "workflow=%s execution=%s timeout=%s", exec.Workflow, exec.ID, timeout)
		case <-ticker.C:
		}
	}
}

// Execute 启动并按默认参数等待完成
func (c *Client) Execute(ctx context.Context, name string, input any) (*Result, error) {
	exec, err := c.Start(ctx, name, input, "")
	if err != nil {
		return nil, err
	}
	return c.WaitForCompletion(ctx, exec, c.cfg.PollInterval, c.cfg.Timeout)
}

func parseOutput(raw string) map[string]any {
	if raw == "" {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
