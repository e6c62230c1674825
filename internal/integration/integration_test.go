// Package integration provides integration tests for the greeter server.
// These tests verify the full stack works correctly when all components are wired together.
package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jamesprial/greeter/internal/auth"
	"github.com/jamesprial/greeter/internal/config"
	"github.com/jamesprial/greeter/internal/transport"
)

const (
	testToken  = "hogehoge"
	testIssuer = "https://issuer.example.com"
)

var testSecret = []byte(strings.Repeat("k", 32))

// testFixture contains all dependencies for integration tests.
type testFixture struct {
	server *httptest.Server
	router transport.Router
	logs   *syncBuffer
}

// syncBuffer is a goroutine-safe log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// setupTestFixture creates a test fixture with all components wired together.
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	serverCfg := &config.Config{
		Addr:           ":0",
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxBodyBytes:   1024,
		LogLevel:       "debug",
		LogFormat:      config.LogFormatJSON,
		AuthToken:      testToken,
		AuthUserID:     0,
		AuthUserName:   "hoge",
		AuthRealm:      "greeter",
		JWTSecret:      string(testSecret),
		JWTIssuer:      testIssuer,
		JWTLeeway:      time.Minute,
		MetricsEnabled: true,
	}
	if err := config.Validate(serverCfg); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	validator, err := auth.NewValidator(&auth.Config{
		Token:     serverCfg.AuthToken,
		User:      auth.User{ID: serverCfg.AuthUserID, Name: serverCfg.AuthUserName},
		JWTSecret: []byte(serverCfg.JWTSecret),
		JWTIssuer: serverCfg.JWTIssuer,
		JWTLeeway: serverCfg.JWTLeeway,
	})
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	logs := &syncBuffer{}
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, router, err := transport.NewTransportServices(&transport.Config{
		ServerConfig: serverCfg,
		Validator:    validator,
		Logger:       logger,
		Registry:     prometheus.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("failed to create transport services: %v", err)
	}

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testFixture{server: server, router: router, logs: logs}
}

// do sends a request and returns the status, headers and body.
func (f *testFixture) do(t *testing.T, method, path string, body string, headers map[string]string) (int, http.Header, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, f.server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, resp.Header, data
}

// createToken signs an HS256 JWT for the configured issuer.
func createToken(t *testing.T, overrides jwt.MapClaims) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  "7",
		"name": "alice",
		"iss":  testIssuer,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
	for k, v := range overrides {
		claims[k] = v
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token, "Content-Type": "application/json"}
}

// decodeJSON unmarshals data into a generic value for structural comparison.
func decodeJSON(t *testing.T, data []byte) any {
	t.Helper()

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, data)
	}
	return v
}

// ============================================================================
// Greeting Endpoint Tests
// ============================================================================

func TestIntegration_HelloText(t *testing.T) {
	f := setupTestFixture(t)

	names := []string{"world", "", "世界", "hoge fuga", "a+b", "100%"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			status, headers, body := f.do(t, http.MethodGet, "/hello/"+url.PathEscape(name), "", nil)

			if status != http.StatusOK {
				t.Fatalf("status = %d, want 200", status)
			}
			if want := "Hello, " + name + "!"; string(body) != want {
				t.Errorf("body = %q, want %q", body, want)
			}
			if ct := headers.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
				t.Errorf("Content-Type = %q, want text/plain", ct)
			}
		})
	}
}

func TestIntegration_HelloJSON(t *testing.T) {
	f := setupTestFixture(t)

	names := []string{"world", "", "世界", `quote"d`}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			status, headers, body := f.do(t, http.MethodGet, "/hello/json/"+url.PathEscape(name), "", nil)

			if status != http.StatusOK {
				t.Fatalf("status = %d, want 200", status)
			}
			want := map[string]any{"data": "Hello, " + name + "!"}
			if diff := cmp.Diff(any(want), decodeJSON(t, body)); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
			if ct := headers.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestIntegration_Idempotence(t *testing.T) {
	f := setupTestFixture(t)

	paths := []string{"/hello/world", "/hello/json/world", "/health"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			_, _, first := f.do(t, http.MethodGet, path, "", nil)
			for i := 0; i < 5; i++ {
				_, _, again := f.do(t, http.MethodGet, path, "", nil)
				if !bytes.Equal(first, again) {
					t.Fatalf("response %d differs: %q vs %q", i, again, first)
				}
			}
		})
	}
}

// ============================================================================
// Body Echo Endpoint Tests
// ============================================================================

func TestIntegration_ReceiveJSON_RoundTrip(t *testing.T) {
	f := setupTestFixture(t)

	values := []string{"foo", "", "日本語", "line\nbreak", `"quoted"`, " "}
	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			in, err := json.Marshal(map[string]string{"data": v})
			if err != nil {
				t.Fatalf("failed to marshal: %v", err)
			}

			status, _, body := f.do(t, http.MethodPost, "/receive/json", string(in),
				map[string]string{"Content-Type": "application/json"})

			if status != http.StatusOK {
				t.Fatalf("status = %d, want 200 (body %s)", status, body)
			}
			if diff := cmp.Diff(decodeJSON(t, in), decodeJSON(t, body)); diff != "" {
				t.Errorf("echo mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIntegration_ReceiveJSON_ByteIdentical(t *testing.T) {
	f := setupTestFixture(t)

	inputs := []string{
		`{"data":"foo"}`,
		`{"data":"<script>&amp;</script>"}`,
		`{"data":"こんにちは"}`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			status, _, body := f.do(t, http.MethodPost, "/receive/json", in,
				map[string]string{"Content-Type": "application/json"})

			if status != http.StatusOK {
				t.Fatalf("status = %d, want 200 (body %s)", status, body)
			}
			if string(body) != in {
				t.Errorf("echo = %s, want %s", body, in)
			}
		})
	}
}

func TestIntegration_ReceiveJSON_Rejections(t *testing.T) {
	f := setupTestFixture(t)

	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			name:        "missing data",
			body:        `{"hoge":"foo"}`,
			wantMessage: "Request body deserialize error: missing field `data` at line 1 column 14",
		},
		{
			name:        "malformed",
			body:        `{"data":`,
			wantMessage: "Request body deserialize error: unexpected end of input at line 1 column 8",
		},
		{
			name:        "invalid utf-8",
			body:        "{\"data\":\"\xff\"}",
			wantMessage: "Request body deserialize error: invalid UTF-8 at line 1 column 10",
		},
		{
			name:        "over limit",
			body:        `{"data":"` + strings.Repeat("x", 2048) + `"}`,
			wantMessage: "Request body deserialize error: body exceeds 1024 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, body := f.do(t, http.MethodPost, "/receive/json", tt.body,
				map[string]string{"Content-Type": "application/json"})

			if status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", status)
			}
			want := map[string]any{"error": "bad_request", "message": tt.wantMessage}
			if diff := cmp.Diff(any(want), decodeJSON(t, body)); diff != "" {
				t.Errorf("error body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ============================================================================
// Authenticated Endpoint Tests
// ============================================================================

func TestIntegration_WithAuth_StaticToken(t *testing.T) {
	f := setupTestFixture(t)

	status, _, body := f.do(t, http.MethodPost, "/with_auth/json", `{"data":"foo"}`, bearer(testToken))

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", status, body)
	}
	if want := `{"user":{"id":0,"name":"hoge"},"body":{"data":"foo"}}`; string(body) != want {
		t.Errorf("body = %s, want %s", body, want)
	}
}

func TestIntegration_WithAuth_JWT(t *testing.T) {
	f := setupTestFixture(t)

	status, _, body := f.do(t, http.MethodPost, "/with_auth/json", `{"data":"bar"}`, bearer(createToken(t, nil)))

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", status, body)
	}
	want := map[string]any{
		"user": map[string]any{"id": float64(7), "name": "alice"},
		"body": map[string]any{"data": "bar"},
	}
	if diff := cmp.Diff(any(want), decodeJSON(t, body)); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestIntegration_WithAuth_Rejected(t *testing.T) {
	f := setupTestFixture(t)

	wrongSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7", "name": "alice", "iss": testIssuer, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(strings.Repeat("x", 32)))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "7", "name": "alice", "iss": testIssuer, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	tests := []struct {
		name          string
		headers       map[string]string
		wantCode      string
		wantChallenge string
	}{
		{
			name:          "no header",
			headers:       map[string]string{"Content-Type": "application/json"},
			wantCode:      "missing_auth_header",
			wantChallenge: `Bearer realm="greeter"`,
		},
		{
			name:          "wrong token",
			headers:       bearer("wrongtoken"),
			wantCode:      "invalid_auth_header",
			wantChallenge: `Bearer realm="greeter", error="invalid_token"`,
		},
		{
			name:          "basic scheme",
			headers:       map[string]string{"Authorization": "Basic aG9nZTpob2dl"},
			wantCode:      "invalid_auth_header",
			wantChallenge: `Bearer realm="greeter", error="invalid_token"`,
		},
		{
			name:          "expired jwt",
			headers:       bearer(createToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})),
			wantCode:      "invalid_auth_header",
			wantChallenge: `Bearer realm="greeter", error="invalid_token"`,
		},
		{
			name:          "wrong issuer jwt",
			headers:       bearer(createToken(t, jwt.MapClaims{"iss": "https://evil.example.com"})),
			wantCode:      "invalid_auth_header",
			wantChallenge: `Bearer realm="greeter", error="invalid_token"`,
		},
		{
			name:          "wrong secret jwt",
			headers:       bearer(wrongSecret),
			wantCode:      "invalid_auth_header",
			wantChallenge: `Bearer realm="greeter", error="invalid_token"`,
		},
		{
			name:          "alg none jwt",
			headers:       bearer(noneToken),
			wantCode:      "invalid_auth_header",
			wantChallenge: `Bearer realm="greeter", error="invalid_token"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, headers, body := f.do(t, http.MethodPost, "/with_auth/json", `{"data":"foo"}`, tt.headers)

			if status != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", status)
			}
			if got := headers.Get("WWW-Authenticate"); got != tt.wantChallenge {
				t.Errorf("WWW-Authenticate = %q, want %q", got, tt.wantChallenge)
			}

			resp, ok := decodeJSON(t, body).(map[string]any)
			if !ok {
				t.Fatalf("body is not an object: %s", body)
			}
			if resp["error"] != tt.wantCode {
				t.Errorf("error code = %v, want %v", resp["error"], tt.wantCode)
			}
			if strings.Contains(string(body), `"data":"foo"`) {
				t.Error("rejected request echoed the body")
			}
		})
	}
}

func TestIntegration_WithAuth_BadBodyAfterAuth(t *testing.T) {
	f := setupTestFixture(t)

	status, _, body := f.do(t, http.MethodPost, "/with_auth/json", `{"hoge":"foo"}`, bearer(testToken))

	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", status, body)
	}
}

// ============================================================================
// Routing Tests
// ============================================================================

func TestIntegration_Routing(t *testing.T) {
	f := setupTestFixture(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound, ""},
		{"too many segments", http.MethodGet, "/hello/a/b/c", http.StatusNotFound, ""},
		{"root", http.MethodGet, "/", http.StatusNotFound, ""},
		{"post to hello", http.MethodPost, "/hello/world", http.StatusMethodNotAllowed, "GET"},
		{"get receive", http.MethodGet, "/receive/json", http.StatusMethodNotAllowed, "POST"},
		{"delete with_auth", http.MethodDelete, "/with_auth/json", http.StatusMethodNotAllowed, "POST"},
		{"health", http.MethodGet, "/health", http.StatusOK, ""},
		{"non-utf-8 name", http.MethodGet, "/hello/%FF", http.StatusNotFound, ""},
		{"non-utf-8 name on json route", http.MethodGet, "/hello/json/%FF", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, headers, _ := f.do(t, tt.method, tt.path, "", nil)

			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantAllow != "" && headers.Get("Allow") != tt.wantAllow {
				t.Errorf("Allow = %q, want %q", headers.Get("Allow"), tt.wantAllow)
			}
		})
	}
}

func TestIntegration_RequestIDAndLogging(t *testing.T) {
	f := setupTestFixture(t)

	_, headers, _ := f.do(t, http.MethodGet, "/hello/world", "", map[string]string{"X-Request-ID": "trace-42"})

	if got := headers.Get("X-Request-ID"); got != "trace-42" {
		t.Errorf("X-Request-ID = %q, want trace-42", got)
	}

	logs := f.logs.String()
	if !strings.Contains(logs, `"request_id":"trace-42"`) {
		t.Errorf("request log missing request_id:\n%s", logs)
	}
	if !strings.Contains(logs, `"route":"/hello/{name}"`) {
		t.Errorf("request log missing route:\n%s", logs)
	}
}

func TestIntegration_Metrics(t *testing.T) {
	f := setupTestFixture(t)

	f.do(t, http.MethodGet, "/hello/world", "", nil)
	f.do(t, http.MethodGet, "/nope", "", nil)

	status, _, body := f.do(t, http.MethodGet, "/metrics", "", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	for _, want := range []string{
		`greeter_http_requests_total{method="GET",route="/hello/{name}",status="200"} 1`,
		`greeter_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestIntegration_PanicRecovery(t *testing.T) {
	f := setupTestFixture(t)

	// Served in-process so the extra route is registered before any
	// server goroutine reads the table.
	f.router.HandleFunc(http.MethodGet, "/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	resp, _ := decodeJSON(t, w.Body.Bytes()).(map[string]any)
	if resp["error"] != "internal_error" {
		t.Errorf("error code = %v, want internal_error", resp["error"])
	}
	if !strings.Contains(f.logs.String(), "panic recovered") {
		t.Error("panic was not logged")
	}

	// The router keeps serving after a panic.
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hello/again", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status after panic = %d, want 200", w.Code)
	}
}

func TestIntegration_ConcurrentRequests(t *testing.T) {
	f := setupTestFixture(t)

	var wg sync.WaitGroup
	errs := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := f.server.Client().Post(f.server.URL+"/with_auth/json", "application/json",
				strings.NewReader(`{"data":"x"}`))
			if err != nil {
				errs <- err.Error()
				return
			}
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusUnauthorized {
				errs <- resp.Status
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Errorf("unexpected result: %s", e)
	}
}
