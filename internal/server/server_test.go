package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"xplorer-be/internal/bootstrap"
	"xplorer-be/internal/config"
	"xplorer-be/internal/dto"
	"xplorer-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testEnv struct {
	app        *fiber.App
	chatCalls  *atomic.Int64
	chatServer *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	var chatCalls atomic.Int64
	chatSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatCalls.Add(1)
		w.Write([]byte(`{
			"chat_output": "OGMP is the Oil and Gas Methane Partnership.",
			"references": [
				{"metadata": {"source": {"filename": "a.pdf"}, "page_number": 3}, "text": "methane reporting framework"},
				{"metadata": {"source": {"filename": "a.pdf"}, "page_number": 7}, "text": "gold standard pathway"},
				{"metadata": {"source": {"filename": "b.pdf"}, "page_number": 1}, "text": null},
				{"metadata": {"source": {"filename": "c.pdf"}, "page_number": 2}, "text": "emission factors"}
			]
		}`))
	}))
	t.Cleanup(chatSrv.Close)

	storeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/object/list/"):
			w.Write([]byte(`[{"name": "a.pdf"}, {"name": "b.pdf"}, {"name": "c.pdf"}]`))
		case strings.Contains(r.URL.Path, "/object/sign/"):
			w.Write([]byte(`{"signedURL": "/object/sign/documents/signed?token=abc"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(storeSrv.Close)

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "test.log"),
			CorsAllowedOrigins: "http://localhost:5173",
			StaticDir:          t.TempDir(),
		},
		Auth: config.AuthConfig{
			Users:     map[string]string{"alice": "wonderland"},
			JWTSecret: "test-secret-0123456789",
		},
		Storage: config.StorageConfig{
			URL:        storeSrv.URL,
			ServiceKey: "service-key",
			Bucket:     "documents",
		},
		Chat: config.ChatConfig{
			Endpoint:       chatSrv.URL,
			APIKey:         "chat-key",
			DeploymentName: "green",
			TimeoutSeconds: 5,
		},
		Session: config.SessionConfig{
			Driver:     "memory",
			TTLMinutes: 60,
		},
	}

	container := bootstrap.NewContainer(cfg)
	t.Cleanup(func() { container.Sessions.Close() })

	return &testEnv{
		app:        New(cfg, container).GetApp(),
		chatCalls:  &chatCalls,
		chatServer: chatSrv,
	}
}

func (e *testEnv) request(t *testing.T, method, target, body, cookie string) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: serverutils.SessionCookieName, Value: cookie})
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp, env
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == serverutils.SessionCookieName {
			require.True(t, c.HttpOnly)
			return c.Value
		}
	}
	t.Fatal("login response carried no session cookie")
	return ""
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/api/session", "/api/documents", "/api/chat/references"} {
		resp, _ := env.request(t, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, target)
	}

	resp, _ := env.request(t, http.MethodPost, "/api/chat", `{"chat":"q"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)

	unknown, envUnknown := env.request(t, http.MethodPost, "/api/auth/login",
		`{"username":"mallory","password":"wonderland"}`, "")
	wrongPass, envWrong := env.request(t, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"guess"}`, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
	// Unknown user and wrong password are indistinguishable to the caller.
	assert.Equal(t, envUnknown.Message, envWrong.Message)
}

func TestLogin_GarbledCookieRejected(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.request(t, http.MethodGet, "/api/session", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDocuments_ListsSignedLinks(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "alice", "wonderland")

	resp, body := env.request(t, http.MethodGet, "/api/documents", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data dto.DocumentListResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, 3, data.Count)
	require.Len(t, data.Documents, 3)
	assert.Equal(t, "a.pdf", data.Documents[0].Name)
	assert.Contains(t, data.Documents[0].URL, "token=abc")
}

func TestChat_FullExchange(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "alice", "wonderland")

	resp, body := env.request(t, http.MethodPost, "/api/chat",
		`{"chat":"What is OGMP?"}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var turn dto.ChatTurnResponse
	require.NoError(t, json.Unmarshal(body.Data, &turn))
	assert.Equal(t, "What is OGMP?", turn.Prompt)
	assert.Equal(t, "OGMP is the Oil and Gas Methane Partnership.", turn.Answer)
	assert.Equal(t, "answered", turn.Status)

	// Four references came back, only three slots are shown.
	require.Len(t, turn.References, 3)
	assert.Equal(t, "a.pdf", turn.References[0].SourceFilename)
	assert.Equal(t, 3, turn.References[0].PageNumber)
	assert.Nil(t, turn.References[2].ExcerptText)

	// The transcript now holds the exchange.
	resp, body = env.request(t, http.MethodGet, "/api/session", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session dto.SessionResponse
	require.NoError(t, json.Unmarshal(body.Data, &session))
	require.Len(t, session.Transcript, 2)
	assert.Equal(t, "user", session.Transcript[0].Role)
	assert.Equal(t, "What is OGMP?", session.Transcript[0].Content)
	assert.Equal(t, "assistant", session.Transcript[1].Role)

	// Reference links are one per distinct document.
	resp, body = env.request(t, http.MethodGet, "/api/chat/references", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var panel dto.ReferencePanelResponse
	require.NoError(t, json.Unmarshal(body.Data, &panel))
	assert.Len(t, panel.Slots, 3)
	require.Len(t, panel.Links, 3)
	assert.Equal(t, "a.pdf", panel.Links[0].Name)
	assert.Contains(t, panel.Links[0].URL, "token=abc")
}

func TestChat_EmptyPromptIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "alice", "wonderland")

	resp, _ := env.request(t, http.MethodPost, "/api/chat", `{"chat":""}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Nothing went out and the transcript is unchanged.
	assert.Equal(t, int64(0), env.chatCalls.Load())

	_, body := env.request(t, http.MethodGet, "/api/session", "", cookie)
	var session dto.SessionResponse
	require.NoError(t, json.Unmarshal(body.Data, &session))
	assert.Empty(t, session.Transcript)
}

func TestChat_EndpointDownReturnsFailedTurn(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "alice", "wonderland")
	env.chatServer.Close()

	resp, body := env.request(t, http.MethodPost, "/api/chat", `{"chat":"q"}`, cookie)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var turn dto.ChatTurnResponse
	require.NoError(t, json.Unmarshal(body.Data, &turn))
	assert.Equal(t, "failed", turn.Status)
	assert.NotEmpty(t, turn.Error)

	// The failed attempt never reaches the transcript.
	_, body = env.request(t, http.MethodGet, "/api/session", "", cookie)
	var session dto.SessionResponse
	require.NoError(t, json.Unmarshal(body.Data, &session))
	assert.Empty(t, session.Transcript)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "alice", "wonderland")

	resp, _ := env.request(t, http.MethodPost, "/api/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The old token no longer maps to a live session.
	resp, _ = env.request(t, http.MethodGet, "/api/session", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
