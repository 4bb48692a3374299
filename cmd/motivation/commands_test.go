package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Shuaibullattil/daily-motivation/internal/app"
	"github.com/Shuaibullattil/daily-motivation/internal/config"
	"github.com/Shuaibullattil/daily-motivation/internal/domain/profile"
	"github.com/Shuaibullattil/daily-motivation/internal/gemini"
	"github.com/Shuaibullattil/daily-motivation/internal/repo/filestore"
)

type stubAPI struct{ text string }

func (s stubAPI) GenerateText(ctx context.Context, prompt string, opts gemini.Options) (string, error) {
	return s.text, nil
}

func setup(t *testing.T, withProfile bool) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "profile.json")
	t.Setenv("JSON_FILE", path)
	t.Setenv("EMAIL", "me@example.com")
	t.Setenv("MOTIVATION_RECIPIENT", "")
	t.Setenv("APP_ENV", "test")

	if withProfile {
		_, err := filestore.New(path, nil).Create(context.Background(), profile.Profile{
			Name:  "A",
			Role:  "Student",
			About: &profile.About{Dreams: "ship it"},
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	orig := buildApp
	buildApp = func(cfg config.Config, log *slog.Logger, opts ...app.Option) *app.App {
		opts = append(opts, app.WithTextGenerator(stubAPI{text: "**Keep** going"}))
		return app.New(cfg, log, opts...)
	}
	t.Cleanup(func() { buildApp = orig })
}

func run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSend_DryRun(t *testing.T) {
	setup(t, true)

	out, err := run("send", "--dry-run", "--to", "friend@example.com")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(out, "Keep going") {
		t.Fatalf("output %q missing cleaned message", out)
	}
	if !strings.Contains(out, "not sent to friend@example.com") {
		t.Fatalf("output %q missing recipient", out)
	}
}

func TestSend_NoProfile(t *testing.T) {
	setup(t, false)

	_, err := run("send", "--dry-run")
	if !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPreview(t *testing.T) {
	setup(t, true)

	out, err := run("preview")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if strings.TrimSpace(out) != "Keep going" {
		t.Fatalf("preview = %q", out)
	}
}

func TestProfile_PrintsJSON(t *testing.T) {
	setup(t, true)

	out, err := run("profile")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	for _, want := range []string{`"name": "A"`, `"role": "Student"`, `"dreams": "ship it"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}
