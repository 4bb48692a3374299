// Package motivation turns a stored profile into a short personal message.
//
// Generation never fails from the caller's point of view: any API error or
// empty answer is replaced by FallbackMessage.
package motivation

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Shuaibullattil/daily-motivation/internal/domain/profile"
	"github.com/Shuaibullattil/daily-motivation/internal/gemini"
	"github.com/Shuaibullattil/daily-motivation/internal/observability"
)

const FallbackMessage = "You’ve already proved that effort beats everything. Keep pushing forward — your story is just getting started."

const (
	Temperature     float32 = 0.95
	MaxOutputTokens int32   = 250
)

var Tones = []string{"inspirational", "energetic", "calm", "reflective", "bold"}

// TextGenerator is the slice of the generation API the Generator uses.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, opts gemini.Options) (string, error)
}

type Generator struct {
	api  TextGenerator
	log  *slog.Logger
	prom *observability.Prom

	intn func(n int) int
	now  func() time.Time
}

type Option func(*Generator)

// WithIntn replaces the random source used to pick a tone.
func WithIntn(intn func(n int) int) Option {
	return func(g *Generator) { g.intn = intn }
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithMetrics(p *observability.Prom) Option {
	return func(g *Generator) { g.prom = p }
}

func NewGenerator(api TextGenerator, log *slog.Logger, opts ...Option) *Generator {
	if log == nil {
		log = slog.Default()
	}

	g := &Generator{
		api:  api,
		log:  log,
		intn: rand.IntN,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a message for p. It always returns usable text.
func (g *Generator) Generate(ctx context.Context, p profile.Profile) string {
	var about profile.About
	if p.About != nil {
		about = *p.About
	}

	tone := Tones[g.intn(len(Tones))]
	prompt := BuildPrompt(PromptInput{
		Tone:  tone,
		Today: g.now(),
		Name:  p.Name,
		Role:  p.Role,
		About: about,
	})

	start := time.Now()
	text, err := g.api.GenerateText(ctx, prompt, gemini.Options{
		Temperature:     Temperature,
		MaxOutputTokens: MaxOutputTokens,
	})
	elapsed := time.Since(start)

	if err != nil {
		g.prom.ObserveGeneration(observability.GenerationError, elapsed)
		g.log.WarnContext(ctx, "generation failed, using fallback", "err", err, "tone", tone)
		return FallbackMessage
	}

	text = strings.TrimSpace(text)
	if text == "" {
		g.prom.ObserveGeneration(observability.GenerationEmpty, elapsed)
		g.log.WarnContext(ctx, "generation returned no text, using fallback", "tone", tone)
		return FallbackMessage
	}

	g.prom.ObserveGeneration(observability.GenerationOK, elapsed)
	g.log.DebugContext(ctx, "generation ok", "tone", tone, "latency_ms", elapsed.Milliseconds())
	return text
}

// CleanMessage strips markdown bold markers the model tends to add.
func CleanMessage(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
