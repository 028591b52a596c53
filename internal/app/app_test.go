package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/app"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/config"
	"github.com/Kitan-Dara06/n-atlas-scenapps/pkg/provider/asr"
	"github.com/Kitan-Dara06/n-atlas-scenapps/pkg/provider/asr/mock"
)

// stubExtractor avoids shelling out to ffmpeg in wiring tests.
type stubExtractor struct{}

func (stubExtractor) ExtractAudio(_ context.Context, _, videoID string) (string, error) {
	return "/tmp/" + videoID + "_audio.wav", nil
}

func (stubExtractor) Cleanup(string) {}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{ListenAddr: "127.0.0.1:0", LogLevel: config.LogInfo},
		ASR:    config.ASRConfig{Name: "mock"},
	}
}

func TestNew_NilConfig(t *testing.T) {
	t.Parallel()

	if _, err := app.New(nil, nil); err == nil {
		t.Fatal("New(nil, ...) = nil error, want error")
	}
}

func TestHandler_Routes(t *testing.T) {
	t.Parallel()

	a, err := app.New(testConfig(), &mock.Provider{}, app.WithExtractor(stubExtractor{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h := a.Handler()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"healthz", http.MethodGet, "/healthz", http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"search wrong method", http.MethodGet, "/search", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandler_ReadyzWithoutProvider(t *testing.T) {
	t.Parallel()

	a, err := app.New(testConfig(), nil, app.WithExtractor(stubExtractor{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/readyz without provider: status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestHandler_ProcessVideoEndToEnd(t *testing.T) {
	t.Parallel()

	provider := &mock.Provider{Result: asr.Result{Text: "big ups to amara", DurationSeconds: 4}}
	a, err := app.New(testConfig(), provider, app.WithExtractor(stubExtractor{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	body := `{
		"video_path": "/videos/v9.mp4",
		"video_id": "v9",
		"users": [{"user_id": 7, "first_name": "Amara"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/process-video", strings.NewReader(body))
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body)
	}
	if got := rec.Body.String(); !strings.Contains(got, `"mentioned_user_ids":[7]`) {
		t.Errorf("body = %s, want user 7 mentioned", got)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	a, err := app.New(testConfig(), &mock.Provider{}, app.WithExtractor(stubExtractor{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	// Give the listener a moment to come up, then cancel.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() after cancel = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after context cancellation")
	}
}
