package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/Shuaibullattil/daily-motivation/internal/config"
	"github.com/Shuaibullattil/daily-motivation/internal/domain/profile"
	"github.com/Shuaibullattil/daily-motivation/internal/gemini"
	"github.com/Shuaibullattil/daily-motivation/internal/motivation"
	"github.com/Shuaibullattil/daily-motivation/internal/notifications"
)

type stubAPI struct{}

func (stubAPI) GenerateText(ctx context.Context, prompt string, opts gemini.Options) (string, error) {
	return "fresh start", nil
}

func TestNew_DefaultsToSMTPAndGemini(t *testing.T) {
	cfg := config.Config{ProfileFile: filepath.Join(t.TempDir(), "p.json"), Recipient: "me@example.com"}
	a := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if _, ok := a.Notifier.(*notifications.SMTPNotifier); !ok {
		t.Fatalf("notifier = %T, want *SMTPNotifier", a.Notifier)
	}
	if a.Dispatcher.Recipient() != "me@example.com" {
		t.Fatalf("recipient = %q", a.Dispatcher.Recipient())
	}
}

func TestNew_MissingAPIKeyFallsBack(t *testing.T) {
	cfg := config.Config{ProfileFile: filepath.Join(t.TempDir(), "p.json"), Recipient: "me@example.com"}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := New(cfg, log, WithNotifier(notifications.NewLogNotifier(log)))

	ctx := context.Background()
	if _, err := a.Store.Create(ctx, profile.Profile{Name: "A", Role: "R", About: &profile.About{}}); err != nil {
		t.Fatal(err)
	}

	res, err := a.Dispatcher.Send(ctx)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.Message != motivation.FallbackMessage {
		t.Fatalf("message = %q, want fallback without an api key", res.Message)
	}
}

func TestNew_WithTextGenerator(t *testing.T) {
	cfg := config.Config{ProfileFile: filepath.Join(t.TempDir(), "p.json")}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := New(cfg, log, WithTextGenerator(stubAPI{}), WithNotifier(notifications.NewLogNotifier(log)))

	ctx := context.Background()
	if _, err := a.Store.Create(ctx, profile.Profile{Name: "A", Role: "R", About: &profile.About{}}); err != nil {
		t.Fatal(err)
	}

	msg, err := a.Dispatcher.Preview(ctx)
	if err != nil || msg != "fresh start" {
		t.Fatalf("Preview = %q, %v", msg, err)
	}
}
