package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"reelkeeper/internal/config"
	"reelkeeper/internal/services"
)

const userAgent = "reelkeeper/0.1"

// Service defines the notification surface exposed to the watchdog and the
// poster backfill.
type Service interface {
	NotifyTunnelStarted(ctx context.Context, endpoint string, pid int) error
	NotifyBackfillCompleted(ctx context.Context, stats BackfillStats) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// BackfillStats is the run summary carried by a backfill notification.
type BackfillStats struct {
	Root     string
	Titles   int
	Written  int
	Failed   int
	Duration time.Duration
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
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
		toggles:  cfg.Notifications,
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
	toggles  config.Notifications
}

func (n *ntfyService) NotifyTunnelStarted(ctx context.Context, endpoint string, pid int) error {
	if !n.toggles.TunnelStarted {
		return nil
	}
	endpoint = strings.TrimSpace(endpoint)
	data := payload{
		title:    "reelkeeper - Tunnel Started",
		message:  fmt.Sprintf("🔌 %s was unreachable; tunnel client started (pid %d)", endpoint, pid),
		tags:     []string{"reelkeeper", "watchdog", "tunnel"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyBackfillCompleted(ctx context.Context, stats BackfillStats) error {
	if !n.toggles.Backfill {
		return nil
	}
	duration := stats.Duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	title := "reelkeeper - Posters Updated"
	message := fmt.Sprintf("🖼️ %d of %d titles received posters in %s", stats.Written, stats.Titles, duration)
	if stats.Failed > 0 {
		title = "reelkeeper - Posters Updated (with errors)"
		message = fmt.Sprintf("%s\n%d titles still need a poster", message, stats.Failed)
	}
	if root := strings.TrimSpace(stats.Root); root != "" {
		message = fmt.Sprintf("%s\nLibrary: %s", message, root)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"reelkeeper", "posters", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.toggles.Errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("❌ Error")
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
		title:    "reelkeeper - Error",
		message:  builder.String(),
		tags:     []string{"reelkeeper", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "reelkeeper - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"reelkeeper", "test"},
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
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", services.ClassifyTransport(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return services.Wrap(services.ErrStatus, "ntfy", "publish",
			fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyTunnelStarted(context.Context, string, int) error       { return nil }
func (noopService) NotifyBackfillCompleted(context.Context, BackfillStats) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error             { return nil }
func (noopService) TestNotification(context.Context) error                       { return nil }
