package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"toniecloud/internal/config"
)

const userAgent = "toniecloud-go/0.1.0"

// Service defines the notification surface exposed to the CLI commands.
type Service interface {
	NotifyChapterUploaded(ctx context.Context, tonieName, title string) error
	NotifyChaptersRemoved(ctx context.Context, tonieName string, count int) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		uploads:  cfg.Notifications.Uploads,
		removals: cfg.Notifications.Removals,
		errors:   cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	uploads  bool
	removals bool
	errors   bool
}

func (n *ntfyService) NotifyChapterUploaded(ctx context.Context, tonieName, title string) error {
	if !n.uploads {
		return nil
	}
	data := payload{
		title:   "Tonie - Chapter Uploaded",
		message: fmt.Sprintf("Uploaded %q to %s", strings.TrimSpace(title), strings.TrimSpace(tonieName)),
		tags:    []string{"tonie", "upload", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyChaptersRemoved(ctx context.Context, tonieName string, count int) error {
	if !n.removals {
		return nil
	}
	data := payload{
		title:   "Tonie - Chapters Removed",
		message: fmt.Sprintf("Removed %d chapter(s) from %s", count, strings.TrimSpace(tonieName)),
		tags:    []string{"tonie", "remove", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}
	data := payload{
		title:    "Tonie - Error",
		message:  builder.String(),
		tags:     []string{"tonie", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Tonie - Test",
		message:  "Notification system test",
		tags:     []string{"tonie", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyChapterUploaded(context.Context, string, string) error { return nil }
func (noopService) NotifyChaptersRemoved(context.Context, string, int) error    { return nil }
func (noopService) NotifyError(context.Context, error, string) error            { return nil }
func (noopService) TestNotification(context.Context) error                      { return nil }
