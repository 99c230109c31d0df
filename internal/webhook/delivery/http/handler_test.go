package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"webhook-receiver/internal/middleware"
	"webhook-receiver/internal/model"
	"webhook-receiver/internal/webhook"
	webhookHTTP "webhook-receiver/internal/webhook/delivery/http"
	"webhook-receiver/internal/webhook/usecase"
	"webhook-receiver/pkg/log"
	"webhook-receiver/pkg/response"
)

const (
	testSecret = "app-secret"
	testToken  = "verify-me"
)

type recordingSink struct {
	mu    sync.Mutex
	calls int
	err   error
	panic bool
}

func (s *recordingSink) Publish(ctx context.Context, d model.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.panic {
		panic("sink exploded")
	}
	return s.err
}

func setupRouter(t *testing.T, cfg webhook.SecurityConfig, sink webhook.Sink) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg.Secret = testSecret
	cfg.VerifyToken = testToken
	if cfg.SubscribeMode == "" {
		cfg.SubscribeMode = "subscribe"
	}

	l := log.NewWithCore(zapcore.NewNopCore())
	uc, err := usecase.New(l, cfg, sink, nil)
	require.NoError(t, err)

	mw := middleware.New(l, nil, nil, 1<<20)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.Use(mw.RequestID(), mw.Recovery())
	webhookHTTP.RegisterRoutes(r.Group("/webhook"), webhookHTTP.New(l, uc), mw)
	return r
}

func challengeURL(mode, token, challenge string) string {
	q := url.Values{}
	if mode != "" {
		q.Set("hub.mode", mode)
	}
	if token != "" {
		q.Set("hub.verify_token", token)
	}
	if challenge != "" {
		q.Set("hub.challenge", challenge)
	}
	return "/webhook?" + q.Encode()
}

func postDelivery(r http.Handler, body, signature, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(webhook.SignatureHeader, signature)
	}
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sign(body string) string {
	return webhook.Sign([]byte(body), testSecret)
}

func TestVerifyChallenge(t *testing.T) {
	r := setupRouter(t, webhook.SecurityConfig{}, &recordingSink{})

	tests := []struct {
		name     string
		url      string
		wantCode int
		wantBody string
	}{
		{"correct token", challengeURL("subscribe", testToken, "xyz123"), http.StatusOK, "xyz123"},
		{"wrong token", challengeURL("subscribe", "wrong", "xyz123"), http.StatusForbidden, ""},
		{"missing token", challengeURL("subscribe", "", "xyz123"), http.StatusForbidden, ""},
		{"missing mode", challengeURL("", testToken, "xyz123"), http.StatusForbidden, ""},
		{"unexpected mode", challengeURL("unsubscribe", testToken, "xyz123"), http.StatusForbidden, ""},
		{"challenge with spaces", challengeURL("subscribe", testToken, "a b&c"), http.StatusOK, "a b&c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantBody, w.Body.String())
				assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
			} else {
				assert.NotContains(t, w.Body.String(), "xyz123")
			}
		})
	}
}

func TestChallengeSkipsAllowlist(t *testing.T) {
	r := setupRouter(t, webhook.SecurityConfig{AllowedIPs: []string{"203.0.113.5"}}, &recordingSink{})

	req := httptest.NewRequest(http.MethodGet, challengeURL("subscribe", testToken, "abc"), nil)
	req.RemoteAddr = "198.51.100.9:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", w.Body.String())
}

func TestReceiveDelivery(t *testing.T) {
	const body = `{"object":"page","entry":[{"id":"1"}]}`

	tests := []struct {
		name      string
		cfg       webhook.SecurityConfig
		body      string
		signature string
		remote    string
		sinkErr   error
		wantCode  int
		wantCalls int
	}{
		{"valid", webhook.SecurityConfig{}, body, sign(body), "", nil, http.StatusOK, 1},
		{"missing signature", webhook.SecurityConfig{}, body, "", "", nil, http.StatusUnauthorized, 0},
		{"wrong signature", webhook.SecurityConfig{}, body, sign(body + " "), "", nil, http.StatusUnauthorized, 0},
		{"malformed header", webhook.SecurityConfig{}, body, "md5=abc", "", nil, http.StatusUnauthorized, 0},
		{"origin rejected", webhook.SecurityConfig{AllowedIPs: []string{"203.0.113.5"}}, body, sign(body), "198.51.100.9:4000", nil, http.StatusForbidden, 0},
		{"origin allowed mapped", webhook.SecurityConfig{AllowedIPs: []string{"203.0.113.5"}}, body, sign(body), "[::ffff:203.0.113.5]:4000", nil, http.StatusOK, 1},
		{"origin before signature", webhook.SecurityConfig{AllowedIPs: []string{"203.0.113.5"}}, body, "", "198.51.100.9:4000", nil, http.StatusForbidden, 0},
		{"not json", webhook.SecurityConfig{}, "hello", sign("hello"), "", nil, http.StatusBadRequest, 0},
		{"missing object", webhook.SecurityConfig{}, `{"entry":[]}`, sign(`{"entry":[]}`), "", nil, http.StatusNotFound, 0},
		{"sink error", webhook.SecurityConfig{}, body, sign(body), "", errors.New("down"), http.StatusInternalServerError, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{err: tt.sinkErr}
			r := setupRouter(t, tt.cfg, sink)

			w := postDelivery(r, tt.body, tt.signature, tt.remote)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCalls, sink.calls)

			var resp response.Resp
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			if tt.wantCode == http.StatusOK {
				data, ok := resp.Data.(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, "EVENT_RECEIVED", data["status"])
				assert.NotEmpty(t, data["delivery_id"])
			} else {
				assert.Equal(t, tt.wantCode, resp.ErrorCode)
				assert.NotContains(t, resp.Message, "down")
			}
		})
	}
}

func TestReceiveDeliveryUnauthorizedMessage(t *testing.T) {
	const body = `{"object":"page"}`
	r := setupRouter(t, webhook.SecurityConfig{}, &recordingSink{})

	tests := []struct {
		name      string
		signature string
		want      string
	}{
		{"missing", "", "Signature header missing"},
		{"mismatch", sign(body + " "), "Invalid signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postDelivery(r, body, tt.signature, "")

			var resp response.Resp
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, http.StatusUnauthorized, resp.ErrorCode)
			assert.Equal(t, tt.want, resp.Message)
		})
	}
}

func TestReceiveDeliveryPanicIsContained(t *testing.T) {
	const body = `{"object":"page"}`
	sink := &recordingSink{panic: true}
	r := setupRouter(t, webhook.SecurityConfig{}, sink)

	w := postDelivery(r, body, sign(body), "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	sink.panic = false
	w = postDelivery(r, body, sign(body), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReceiveDeliveryTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := log.NewWithCore(zapcore.NewNopCore())
	sink := &recordingSink{}
	uc, err := usecase.New(l, webhook.SecurityConfig{Secret: testSecret, VerifyToken: testToken}, sink, nil)
	require.NoError(t, err)

	mw := middleware.New(l, nil, nil, 32)
	r := gin.New()
	webhookHTTP.RegisterRoutes(r.Group("/webhook"), webhookHTTP.New(l, uc), mw)

	body := `{"object":"page","padding":"` + strings.Repeat("x", 64) + `"}`
	w := postDelivery(r, body, sign(body), "")

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Zero(t, sink.calls)
}
