package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"toniecloud/internal/config"
	"toniecloud/internal/notifications"
)

type captured struct {
	title    string
	tags     string
	priority string
	body     string
}

func newCapturingServer(t *testing.T) (*httptest.Server, *[]captured) {
	t.Helper()
	var got []captured
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read notification body: %v", err)
		}
		got = append(got, captured{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, &got
}

func serviceConfig(topic string) *config.Config {
	defaults := config.Default()
	cfg := &defaults
	cfg.Notifications.NtfyTopic = topic
	cfg.Notifications.Uploads = true
	cfg.Notifications.Removals = true
	cfg.Notifications.Errors = true
	return cfg
}

func TestNoopWithoutTopic(t *testing.T) {
	service := notifications.NewService(serviceConfig(""))
	if err := service.NotifyChapterUploaded(context.Background(), "Red Tonie", "Lullaby"); err != nil {
		t.Fatalf("noop upload notification returned error: %v", err)
	}
	if err := service.TestNotification(context.Background()); err != nil {
		t.Fatalf("noop test notification returned error: %v", err)
	}
}

func TestUploadNotification(t *testing.T) {
	server, got := newCapturingServer(t)
	service := notifications.NewService(serviceConfig(server.URL))

	if err := service.NotifyChapterUploaded(context.Background(), "Red Tonie", "Lullaby"); err != nil {
		t.Fatalf("upload notification failed: %v", err)
	}
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	first := (*got)[0]
	if first.title != "Tonie - Chapter Uploaded" {
		t.Errorf("unexpected title %q", first.title)
	}
	if first.tags != "tonie,upload,completed" {
		t.Errorf("unexpected tags %q", first.tags)
	}
	if first.body != `Uploaded "Lullaby" to Red Tonie` {
		t.Errorf("unexpected body %q", first.body)
	}
}

func TestRemovalNotification(t *testing.T) {
	server, got := newCapturingServer(t)
	service := notifications.NewService(serviceConfig(server.URL))

	if err := service.NotifyChaptersRemoved(context.Background(), "Red Tonie", 3); err != nil {
		t.Fatalf("removal notification failed: %v", err)
	}
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	if (*got)[0].body != "Removed 3 chapter(s) from Red Tonie" {
		t.Errorf("unexpected body %q", (*got)[0].body)
	}
}

func TestErrorNotificationUsesHighPriority(t *testing.T) {
	server, got := newCapturingServer(t)
	service := notifications.NewService(serviceConfig(server.URL))

	if err := service.NotifyError(context.Background(), errors.New("boom"), "upload"); err != nil {
		t.Fatalf("error notification failed: %v", err)
	}
	first := (*got)[0]
	if first.priority != "high" {
		t.Errorf("expected high priority, got %q", first.priority)
	}
	if first.body != "Error with upload: boom" {
		t.Errorf("unexpected body %q", first.body)
	}
}

func TestToggleSuppressesCategory(t *testing.T) {
	server, got := newCapturingServer(t)
	cfg := serviceConfig(server.URL)
	cfg.Notifications.Uploads = false
	service := notifications.NewService(cfg)

	if err := service.NotifyChapterUploaded(context.Background(), "Red Tonie", "Lullaby"); err != nil {
		t.Fatalf("suppressed upload notification returned error: %v", err)
	}
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %d", len(*got))
	}
}

func TestServerErrorReported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic limit reached", http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	service := notifications.NewService(serviceConfig(server.URL))
	if err := service.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error from failing ntfy server")
	}
}
