package service

import (
	"Aidol/internal/api/dto"
	"Aidol/internal/model"
	"Aidol/internal/pkg/consts"
	"Aidol/internal/pkg/workflow"
	"context"
	"fmt"
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

// suggestionBackend 模拟工作流后端，前 running 次轮询返回 RUNNING
func suggestionBackend(running int, output string) (http.Handler, *atomic.Int64) {
	var polls atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/executions":
			_, _ = fmt.Fprint(w, `{"executionId":"exec-1"}`)
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/executions/"):
			if int(polls.Add(1)) <= running {
				_, _ = fmt.Fprint(w, `{"status":"RUNNING"}`)
				return
			}
			body, _ := json.Marshal(map[string]string{"status": "SUCCEEDED", "output": output})
			_, _ = w.Write(body)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	return handler, &polls
}

func newReplyEnv(t *testing.T, target string) (*testEnv, ReplyService) {
	t.Helper()
	env := newTestEnv()
	env.createPost(t, "p1")

	comment := &model.Comment{
		ID:        "c1",
		PostID:    "p1",
		Username:  "fan01",
		Content:   "今天的直播什么时候开始呀，好期待！",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, env.commentRepo.Create(context.Background(), comment))

	wf := workflow.NewClient(workflow.Config{
		Targets:      map[string]string{consts.WorkflowIdolMultimodal: target},
		PollInterval: 10 * time.Millisecond,
		Timeout:      500 * time.Millisecond,
	}, time.Second)

	return env, NewReplyService(env.commentRepo, env.postRepo, wf)
}

// 后端只给单个 idol_reply 时广播到三种风格
func TestSuggestRepliesBroadcast(t *testing.T) {
	handler, polls := suggestionBackend(3, `{"idol_reply":"Thanks!"}`)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	_, svc := newReplyEnv(t, srv.URL)

	suggestion, err := svc.SuggestReplies(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Thanks!", suggestion.EmotionReply)
	assert.Equal(t, "Thanks!", suggestion.BrandReply)
	assert.Equal(t, "Thanks!", suggestion.MixedReply)
	assert.Equal(t, "Thanks!", suggestion.OriginalIdolReply)
	assert.False(t, suggestion.Fallback)
	assert.EqualValues(t, 4, polls.Load())
}

func TestSuggestRepliesThreeVariants(t *testing.T) {
	handler, _ := suggestionBackend(0, `{"emotion_reply":"e","brand_reply":"b","mixed_reply":"m"}`)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	_, svc := newReplyEnv(t, srv.URL)

	suggestion, err := svc.SuggestReplies(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "e", suggestion.EmotionReply)
	assert.Equal(t, "b", suggestion.BrandReply)
	assert.Equal(t, "m", suggestion.MixedReply)
	assert.Empty(t, suggestion.OriginalIdolReply)
	assert.False(t, suggestion.Fallback)
}

// 工作流一直 RUNNING，超时后必须拿到兜底而不是错误
func TestSuggestRepliesTimeoutFallsBack(t *testing.T) {
	handler, _ := suggestionBackend(1<<30, "")
	srv := httptest.NewServer(handler)
	defer srv.Close()

	_, svc := newReplyEnv(t, srv.URL)

	suggestion, err := svc.SuggestReplies(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, suggestion.Fallback)
	assert.Contains(t, suggestion.EmotionReply, "今天的直播什么时候开始呀，好期待！")
}

func TestSuggestRepliesMalformedOutputFallsBack(t *testing.T) {
	handler, _ := suggestionBackend(0, `{"unexpected":"shape"}`)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	_, svc := newReplyEnv(t, srv.URL)

	suggestion, err := svc.SuggestReplies(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, suggestion.Fallback)
}

func TestSuggestRepliesMessageMissing(t *testing.T) {
	_, svc := newReplyEnv(t, "http://localhost:0")

	_, err := svc.SuggestReplies(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

// 兜底是纯函数：同样输入必须逐字节一致
func TestFallbackDeterministic(t *testing.T) {
	message := "这条消息正好用来验证兜底生成器是不是纯函数"

	first := fallbackSuggestion(message)
	second := fallbackSuggestion(message)
	assert.Equal(t, first, second)
	assert.True(t, first.Fallback)
}

func TestFallbackTruncatesLongMessage(t *testing.T) {
	message := strings.Repeat("长", 50)

	suggestion := fallbackSuggestion(message)
	quoted := string([]rune(message)[:fallbackPrefixLimit]) + "..."
	assert.Contains(t, suggestion.EmotionReply, quoted)
	assert.NotContains(t, suggestion.EmotionReply, message)
}

func TestFallbackShortMessageNotTruncated(t *testing.T) {
	suggestion := fallbackSuggestion("谢谢")
	assert.Contains(t, suggestion.BrandReply, "谢谢")
	assert.NotContains(t, suggestion.BrandReply, "...")
}

// 审计工作流启动失败不阻塞回复落库
func TestSendReplyAuditFailureDoesNotBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	env, svc := newReplyEnv(t, srv.URL)

	err := svc.SendReply(context.Background(), &dto.ReplySendReq{
		MessageID: "c1",
		Content:   "谢谢你的支持！",
		Style:     "emotion",
	})
	require.NoError(t, err)

	comment, err := env.commentRepo.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "谢谢你的支持！", comment.IdolReply)
	assert.Equal(t, "emotion", comment.ReplyStyle)
	assert.NotEmpty(t, comment.RepliedAt)
}

func TestSendReplyMessageMissing(t *testing.T) {
	_, svc := newReplyEnv(t, "http://localhost:0")

	err := svc.SendReply(context.Background(), &dto.ReplySendReq{MessageID: "ghost", Content: "hi"})
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
