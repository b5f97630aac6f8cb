package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cleanarr/internal/config"
	"cleanarr/internal/notifications"
	"cleanarr/internal/services"
)

type captured struct {
	calls    int
	title    string
	tags     string
	priority string
	body     string
}

func newNtfyServer(t *testing.T, status int) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		got.calls++
		got.title = r.Header.Get("Title")
		got.tags = r.Header.Get("Tags")
		got.priority = r.Header.Get("Priority")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		got.body = string(body)
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, got
}

func serviceFor(url string) notifications.Service {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = url
	cfg.Notifications.RequestTimeout = 5
	return notifications.NewService(&cfg)
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	svc := notifications.NewService(&cfg)
	if notifications.Enabled(svc) {
		t.Fatal("expected noop service without topic")
	}
	if err := svc.NotifyRunCompleted(context.Background(), notifications.RunSummary{Removed: 3}); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if notifications.Enabled(notifications.NewService(nil)) {
		t.Fatal("expected noop service for nil config")
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		send           func(notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "run completed",
			send: func(svc notifications.Service) error {
				return svc.NotifyRunCompleted(context.Background(), notifications.RunSummary{Unmatched: 2, Removed: 2, Duration: 1500 * time.Millisecond})
			},
			expectTitle:   "cleanarr - Cleanup Complete",
			expectMessage: "🧹 Removed 2 assets in 2s",
			expectTags:    "cleanarr,cleanup,completed",
		},
		{
			name: "dry run",
			send: func(svc notifications.Service) error {
				return svc.NotifyRunCompleted(context.Background(), notifications.RunSummary{Unmatched: 1, DryRun: true})
			},
			expectTitle:   "cleanarr - Dry Run",
			expectMessage: "🔍 1 unmatched asset would be removed (0s)",
			expectTags:    "cleanarr,cleanup,dry-run",
		},
		{
			name: "error",
			send: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("catalog unreachable"), "run")
			},
			expectTitle:    "cleanarr - Error",
			expectMessage:  "❌ Error during run: catalog unreachable",
			expectTags:     "cleanarr,error,alert",
			expectPriority: "high",
		},
		{
			name: "test",
			send: func(svc notifications.Service) error {
				return svc.TestNotification(context.Background())
			},
			expectTitle:    "cleanarr - Test",
			expectMessage:  "🧪 Notification system test",
			expectTags:     "cleanarr,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, got := newNtfyServer(t, http.StatusOK)
			svc := serviceFor(server.URL)
			if !notifications.Enabled(svc) {
				t.Fatal("expected ntfy service to be enabled")
			}
			if err := tc.send(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if got.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, got.title)
			}
			if got.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, got.body)
			}
			if got.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, got.tags)
			}
			if got.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, got.priority)
			}
		})
	}
}

func TestNtfyServiceSkipsEmptyRuns(t *testing.T) {
	server, got := newNtfyServer(t, http.StatusOK)
	svc := serviceFor(server.URL)

	for _, summary := range []notifications.RunSummary{
		{},
		{DryRun: true},
		// Removal failures leave Removed at zero even with unmatched assets.
		{Unmatched: 4},
	} {
		if err := svc.NotifyRunCompleted(context.Background(), summary); err != nil {
			t.Fatalf("NotifyRunCompleted(%+v): %v", summary, err)
		}
	}
	if got.calls != 0 {
		t.Fatalf("expected no requests, got %d", got.calls)
	}
}

func TestNtfyServiceReportsHTTPFailure(t *testing.T) {
	server, _ := newNtfyServer(t, http.StatusForbidden)
	err := serviceFor(server.URL).TestNotification(context.Background())
	if !errors.Is(err, services.ErrNotification) {
		t.Fatalf("expected ErrNotification, got %v", err)
	}
}
